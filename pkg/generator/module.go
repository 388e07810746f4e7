package generator

import (
	"fmt"
	"strings"

	"github.com/Arunachalam-140897/DevEngine/pkg/topology"
)

// Module identifies an infrastructure-as-code target.
type Module string

const (
	ModuleKubernetes Module = "kubernetes"
)

func (m Module) String() string {
	return string(m)
}

// SupportedModules returns every module with a built-in generator.
func SupportedModules() []Module {
	return []Module{ModuleKubernetes}
}

// SupportedModulesAsStrings returns SupportedModules as strings.
func SupportedModulesAsStrings() []string {
	mods := SupportedModules()
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = m.String()
	}
	return out
}

// ParseModule converts s to a Module. Matching ignores case and surrounding
// whitespace; an unknown name yields an error with a suggestion when one is close.
func ParseModule(s string) (Module, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, m := range SupportedModules() {
		if name == m.String() {
			return m, nil
		}
	}

	msg := fmt.Sprintf("unknown module %q, supported modules: %s", s, strings.Join(SupportedModulesAsStrings(), ", "))
	if suggestion, ok := topology.Suggest(name, SupportedModulesAsStrings()); ok {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return "", fmt.Errorf("%s", msg)
}
