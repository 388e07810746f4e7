package topology

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/distribution/reference"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/Arunachalam-140897/DevEngine/pkg/defaults"
)

// ValidationError reports every problem found in a request.
type ValidationError struct {
	Violations []string `json:"violations" yaml:"violations"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Violations, "; "))
}

// Merge returns e with other's violations appended. Violations from other
// at a location e already reports are dropped. e's violations are expected
// in the "location: message" form produced by CheckShape.
func (e *ValidationError) Merge(other *ValidationError) *ValidationError {
	if other == nil {
		return e
	}

	locs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if loc, _, ok := strings.Cut(v, ": "); ok {
			locs = append(locs, loc)
		}
	}

	merged := append([]string(nil), e.Violations...)
	for _, v := range other.Violations {
		if !coveredBy(v, locs) {
			merged = append(merged, v)
		}
	}
	return &ValidationError{Violations: merged}
}

// coveredBy reports whether violation v is at or below one of locs. Index
// syntax is normalized so "tiers[0].replicas" matches "tiers.0.replicas".
func coveredBy(v string, locs []string) bool {
	norm := indexPattern.ReplaceAllString(v, ".$1")
	for _, loc := range locs {
		if loc == "(root)" {
			return true
		}
		rest, ok := strings.CutPrefix(norm, loc)
		if ok && (rest == "" || strings.ContainsRune(" .:", rune(rest[0]))) {
			return true
		}
	}
	return false
}

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// supportedServiceTypes lists the Service types a tier may request.
var supportedServiceTypes = []string{"ClusterIP", "NodePort", "LoadBalancer"}

type violations []string

func (v *violations) add(format string, args ...any) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

// Validate checks req and returns a *ValidationError listing every violation,
// or nil. Defaults are applied before checking, so an omitted workloadType or
// service port is not a violation.
func Validate(req TopologyRequest) error {
	req = req.WithDefaults()

	var v violations

	if req.AppName == "" {
		v.add("appName is required")
	} else if errs := validation.IsDNS1035Label(req.AppName); len(errs) > 0 {
		// appName prefixes every Service name, which must be a DNS-1035 label.
		v.add("appName %q is not a valid DNS-1035 label: %s", req.AppName, strings.Join(errs, ", "))
	}

	if req.Namespace == "" {
		v.add("namespace is required")
	} else if errs := validation.IsDNS1123Label(req.Namespace); len(errs) > 0 {
		v.add("namespace %q is not a valid DNS label: %s", req.Namespace, strings.Join(errs, ", "))
	}

	switch {
	case len(req.Tiers) == 0:
		v.add("tiers must contain at least one tier")
	case len(req.Tiers) > defaults.MaxTiers:
		v.add("tiers must contain at most %d tiers, got %d", defaults.MaxTiers, len(req.Tiers))
	}

	seen := make(map[string]int, len(req.Tiers))
	for i, t := range req.Tiers {
		validateTier(&v, req.AppName, i, t)
		if t.Name == "" {
			continue
		}
		if first, dup := seen[t.Name]; dup {
			v.add("tiers[%d].name %q duplicates tiers[%d]", i, t.Name, first)
			continue
		}
		seen[t.Name] = i
	}

	if len(v) > 0 {
		return &ValidationError{Violations: v}
	}
	return nil
}

func validateTier(v *violations, appName string, i int, t Tier) {
	field := func(name string) string { return fmt.Sprintf("tiers[%d].%s", i, name) }

	if t.Name == "" {
		v.add("%s is required", field("name"))
	} else if errs := validation.IsDNS1123Label(t.Name); len(errs) > 0 {
		v.add("%s %q is not a valid DNS label: %s", field("name"), t.Name, strings.Join(errs, ", "))
	} else if appName != "" {
		n := WorkloadName(appName, t.Name)
		if t.WorkloadType == WorkloadStatefulSet {
			n = HeadlessServiceName(appName, t.Name)
		}
		if len(n) > validation.DNS1123LabelMaxLength {
			v.add("%s: generated name %q exceeds %d characters", field("name"), n, validation.DNS1123LabelMaxLength)
		}
	}

	if t.Replicas < 1 {
		v.add("%s must be a positive integer", field("replicas"))
	}

	if t.Image == "" {
		v.add("%s is required", field("image"))
	} else if _, err := reference.ParseNormalizedNamed(t.Image); err != nil {
		v.add("%s %q is not a valid image reference: %v", field("image"), t.Image, err)
	}

	if !validPort(t.ContainerPort) {
		v.add("%s must be between 1 and 65535", field("containerPort"))
	}

	if !t.WorkloadType.IsValid() {
		msg := fmt.Sprintf("%s %q is not supported (supported: Deployment, StatefulSet)", field("workloadType"), t.WorkloadType)
		if s, ok := Suggest(string(t.WorkloadType), []string{string(WorkloadDeployment), string(WorkloadStatefulSet)}); ok {
			msg += fmt.Sprintf(", did you mean %q?", s)
		}
		v.add("%s", msg)
	}

	for j, e := range t.Env {
		if strings.TrimSpace(e.Name) == "" {
			v.add("%s is required", field(fmt.Sprintf("env[%d].name", j)))
		}
	}

	validateData(v, field("configMapData"), t.ConfigMapData)
	validateData(v, field("secretData"), t.SecretData)

	validateQuantity(v, field("resources.requestsCpu"), t.Resources.RequestsCPU)
	validateQuantity(v, field("resources.requestsMemory"), t.Resources.RequestsMemory)
	validateQuantity(v, field("resources.limitsCpu"), t.Resources.LimitsCPU)
	validateQuantity(v, field("resources.limitsMemory"), t.Resources.LimitsMemory)

	if t.PVC.Enabled {
		validateQuantity(v, field("pvc.size"), t.PVC.Size)
	}
	if t.PV.Active() && t.PV.Type.IsValid() {
		validateQuantity(v, field("pv.size"), t.PV.Size)
	}

	if svc := t.Service; svc != nil {
		if !containsString(supportedServiceTypes, svc.Type) {
			v.add("%s %q is not supported (supported: %s)", field("service.type"), svc.Type, strings.Join(supportedServiceTypes, ", "))
		}
		if !validPort(svc.Port) {
			v.add("%s must be between 1 and 65535", field("service.port"))
		}
		if !validPort(svc.TargetPort) {
			v.add("%s must be between 1 and 65535", field("service.targetPort"))
		}
	}

	if ing := t.Ingress; ing != nil && ing.Host != "" {
		if errs := validation.IsDNS1123Subdomain(ing.Host); len(errs) > 0 {
			v.add("%s %q is not a valid host: %s", field("ingress.host"), ing.Host, strings.Join(errs, ", "))
		}
	}
	if ing := t.Ingress; ing != nil && !strings.HasPrefix(ing.Path, "/") {
		v.add("%s %q must start with /", field("ingress.path"), ing.Path)
	}
}

func validateData(v *violations, field string, data []KeyValue) {
	keys := make(map[string]struct{}, len(data))
	for j, kv := range data {
		if kv.Key == "" {
			v.add("%s[%d].key is required", field, j)
			continue
		}
		if errs := validation.IsConfigMapKey(kv.Key); len(errs) > 0 {
			v.add("%s[%d].key %q is invalid: %s", field, j, kv.Key, strings.Join(errs, ", "))
			continue
		}
		if _, dup := keys[kv.Key]; dup {
			v.add("%s[%d].key %q is duplicated", field, j, kv.Key)
			continue
		}
		keys[kv.Key] = struct{}{}
	}
}

func validateQuantity(v *violations, field, value string) {
	if value == "" {
		return
	}
	if _, err := resource.ParseQuantity(value); err != nil {
		v.add("%s %q is not a valid quantity", field, value)
	}
}

func validPort(p int32) bool {
	return p >= 1 && p <= 65535
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
