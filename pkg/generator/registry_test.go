package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModule(t *testing.T) {
	tests := []struct {
		in      string
		want    Module
		wantErr string
	}{
		{"kubernetes", ModuleKubernetes, ""},
		{" KUBERNETES ", ModuleKubernetes, ""},
		{"kubernets", "", `did you mean "kubernetes"`},
		{"terraform", "", "supported modules: kubernetes"},
		{"", "", "unknown module"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseModule(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []Module{ModuleKubernetes}, r.List())

	g, ok := r.Get(ModuleKubernetes)
	assert.True(t, ok)
	assert.IsType(t, &Kubernetes{}, g)

	require.NoError(t, r.Unregister(ModuleKubernetes))
	assert.Error(t, r.Unregister(ModuleKubernetes))
	_, ok = r.Get(ModuleKubernetes)
	assert.False(t, ok)

	r.Register(ModuleKubernetes, &Kubernetes{})
	assert.Len(t, r.List(), 1)
}
