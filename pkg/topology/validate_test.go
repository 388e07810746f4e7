package topology

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTier() Tier {
	return Tier{Name: "api", Replicas: 1, Image: "nginx:1.27", ContainerPort: 80}
}

func violationsOf(t *testing.T, err error) []string {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %v", err)
	return ve.Violations
}

func containsViolation(list []string, substr string) bool {
	for _, v := range list {
		if strings.Contains(v, substr) {
			return true
		}
	}
	return false
}

func TestValidate_Valid(t *testing.T) {
	req := TopologyRequest{AppName: "web", Namespace: "dev", Tiers: []Tier{validTier()}}
	assert.NoError(t, Validate(req))
}

func TestValidate_ReportsEveryMissingTopLevelField(t *testing.T) {
	tests := []struct {
		name    string
		req     TopologyRequest
		missing []string
	}{
		{"missing appName", TopologyRequest{Namespace: "dev", Tiers: []Tier{validTier()}}, []string{"appName"}},
		{"missing namespace", TopologyRequest{AppName: "web", Tiers: []Tier{validTier()}}, []string{"namespace"}},
		{"missing tiers", TopologyRequest{AppName: "web", Namespace: "dev"}, []string{"tiers"}},
		{"missing appName and namespace", TopologyRequest{Tiers: []Tier{validTier()}}, []string{"appName", "namespace"}},
		{"missing everything", TopologyRequest{}, []string{"appName", "namespace", "tiers"}},
		{"blank strings count as missing", TopologyRequest{AppName: "  ", Namespace: "\t"}, []string{"appName", "namespace", "tiers"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := violationsOf(t, Validate(tt.req))
			assert.Len(t, got, len(tt.missing))
			for _, field := range tt.missing {
				assert.True(t, containsViolation(got, field), "violations %v do not mention %q", got, field)
			}
		})
	}
}

func TestValidate_TierChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tier)
		want   string
	}{
		{"missing name", func(t *Tier) { t.Name = "" }, "tiers[0].name is required"},
		{"bad name", func(t *Tier) { t.Name = "API_Server" }, "not a valid DNS label"},
		{"zero replicas", func(t *Tier) { t.Replicas = 0 }, "tiers[0].replicas"},
		{"missing image", func(t *Tier) { t.Image = "" }, "tiers[0].image is required"},
		{"bad image", func(t *Tier) { t.Image = "Nginx:latest" }, "not a valid image reference"},
		{"missing port", func(t *Tier) { t.ContainerPort = 0 }, "tiers[0].containerPort"},
		{"port too large", func(t *Tier) { t.ContainerPort = 70000 }, "tiers[0].containerPort"},
		{"unknown workload", func(t *Tier) { t.WorkloadType = "Statefulset" }, `did you mean "StatefulSet"?`},
		{"env without name", func(t *Tier) { t.Env = []EnvVar{{Value: "x"}} }, "tiers[0].env[0].name is required"},
		{"duplicate configmap key", func(t *Tier) {
			t.ConfigMapData = []KeyValue{{Key: "a", Value: "1"}, {Key: "a", Value: "2"}}
		}, "configMapData[1].key \"a\" is duplicated"},
		{"bad secret key", func(t *Tier) { t.SecretData = []KeyValue{{Key: "a b", Value: "1"}} }, "secretData[0].key"},
		{"bad quantity", func(t *Tier) { t.Resources.LimitsMemory = "lots" }, "resources.limitsMemory"},
		{"bad pvc size", func(t *Tier) { t.PVC = PVCConfig{Enabled: true, Size: "big"} }, "pvc.size"},
		{"bad service type", func(t *Tier) { t.Service = &ServiceConfig{Type: "Ingress"} }, "service.type"},
		{"bad ingress path", func(t *Tier) { t.Ingress = &IngressConfig{Host: "a.example.com", Path: "api"} }, "ingress.path"},
		{"bad ingress host", func(t *Tier) { t.Ingress = &IngressConfig{Host: "Bad_Host"} }, "ingress.host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := validTier()
			tt.mutate(&tier)
			req := TopologyRequest{AppName: "web", Namespace: "dev", Tiers: []Tier{tier}}

			got := violationsOf(t, Validate(req))
			assert.True(t, containsViolation(got, tt.want), "violations %v do not contain %q", got, tt.want)
		})
	}
}

func TestValidate_DuplicateTierNames(t *testing.T) {
	req := TopologyRequest{AppName: "web", Namespace: "dev", Tiers: []Tier{validTier(), validTier()}}

	got := violationsOf(t, Validate(req))
	assert.Equal(t, []string{`tiers[1].name "api" duplicates tiers[0]`}, got)
}

func TestValidate_AppNameMustStartWithLetter(t *testing.T) {
	tests := []struct {
		name    string
		appName string
		wantErr bool
	}{
		{"letter first", "web1", false},
		{"digit first", "1web", true},
		{"uppercase", "Web", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := TopologyRequest{AppName: tt.appName, Namespace: "dev", Tiers: []Tier{validTier()}}
			err := Validate(req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, containsViolation(violationsOf(t, err), "appName"))
		})
	}
}

func TestValidate_NamespaceMayStartWithDigit(t *testing.T) {
	req := TopologyRequest{AppName: "web", Namespace: "1dev", Tiers: []Tier{validTier()}}
	assert.NoError(t, Validate(req))
}

func TestValidate_GeneratedNameLength(t *testing.T) {
	// "web-" + 55 + "-headless" is 68 characters; "web-" + 55 is 59.
	long := strings.Repeat("a", 55)

	tests := []struct {
		name     string
		workload WorkloadType
		wantErr  bool
	}{
		{"deployment fits", WorkloadDeployment, false},
		{"statefulset headless service too long", WorkloadStatefulSet, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := validTier()
			tier.Name = long
			tier.WorkloadType = tt.workload
			req := TopologyRequest{AppName: "web", Namespace: "dev", Tiers: []Tier{tier}}

			err := Validate(req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			got := violationsOf(t, err)
			assert.True(t, containsViolation(got, HeadlessServiceName("web", long)), "violations %v", got)
			assert.True(t, containsViolation(got, "exceeds 63 characters"), "violations %v", got)
		})
	}
}

func TestValidate_UnknownVolumeTypeIsNotAViolation(t *testing.T) {
	tier := validTier()
	tier.PV = PVConfig{Enabled: true, Type: "ceph"}
	req := TopologyRequest{AppName: "web", Namespace: "dev", Tiers: []Tier{tier}}

	assert.NoError(t, Validate(req))
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	tier := validTier()
	req := TopologyRequest{AppName: " web ", Namespace: "dev", Tiers: []Tier{tier}}

	require.NoError(t, Validate(req))
	assert.Equal(t, " web ", req.AppName)
	assert.Equal(t, WorkloadType(""), req.Tiers[0].WorkloadType)
}

func TestValidationError_Merge(t *testing.T) {
	shape := &ValidationError{Violations: []string{
		"tiers.0.replicas: expected integer, but got string",
		"tiers.1: expected object, but got string",
	}}
	semantic := &ValidationError{Violations: []string{
		"appName is required",
		"tiers[0].replicas must be a positive integer",
		"tiers[0].image is required",
		"tiers[1].name is required",
		"tiers[10].name is required",
	}}

	got := shape.Merge(semantic)
	assert.Equal(t, []string{
		"tiers.0.replicas: expected integer, but got string",
		"tiers.1: expected object, but got string",
		"appName is required",
		"tiers[0].image is required",
		"tiers[10].name is required",
	}, got.Violations)
	assert.Len(t, shape.Violations, 2)

	assert.Same(t, shape, shape.Merge(nil))
}

func TestValidationError_MergeRootCoversEverything(t *testing.T) {
	shape := &ValidationError{Violations: []string{"(root): expected object, but got array"}}
	got := shape.Merge(&ValidationError{Violations: []string{"appName is required"}})
	assert.Equal(t, shape.Violations, got.Violations)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"kubernetes", "terraform"}

	s, ok := Suggest("kubernets", candidates)
	assert.True(t, ok)
	assert.Equal(t, "kubernetes", s)

	_, ok = Suggest("ansible-playbook", candidates)
	assert.False(t, ok)

	_, ok = Suggest("", candidates)
	assert.False(t, ok)
}
