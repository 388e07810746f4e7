package manifest

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/Arunachalam-140897/DevEngine/pkg/topology"
)

// envVars renders the container environment. An empty list renders nothing.
func envVars(env []topology.EnvVar) []corev1.EnvVar {
	if len(env) == 0 {
		return nil
	}
	out := make([]corev1.EnvVar, 0, len(env))
	for _, e := range env {
		out = append(out, corev1.EnvVar{Name: e.Name, Value: e.Value})
	}
	return out
}

// resourceRequirements renders requests and limits independently; a side
// with neither cpu nor memory is left out.
func resourceRequirements(r topology.Resources) corev1.ResourceRequirements {
	var req corev1.ResourceRequirements
	if r.HasRequests() {
		req.Requests = resourceList(r.RequestsCPU, r.RequestsMemory)
	}
	if r.HasLimits() {
		req.Limits = resourceList(r.LimitsCPU, r.LimitsMemory)
	}
	return req
}

func resourceList(cpu, memory string) corev1.ResourceList {
	list := corev1.ResourceList{}
	if q, ok := quantity(cpu); ok {
		list[corev1.ResourceCPU] = q
	}
	if q, ok := quantity(memory); ok {
		list[corev1.ResourceMemory] = q
	}
	if len(list) == 0 {
		return nil
	}
	return list
}

// quantity parses s; values are validated upstream so a parse failure only
// drops the entry.
func quantity(s string) (resource.Quantity, bool) {
	if s == "" {
		return resource.Quantity{}, false
	}
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return resource.Quantity{}, false
	}
	return q, true
}

func storageRequest(size string) corev1.ResourceList {
	q, ok := quantity(size)
	if !ok {
		return nil
	}
	return corev1.ResourceList{corev1.ResourceStorage: q}
}

// httpProbe renders a liveness or readiness probe, or nil when the probe is
// missing its path or port.
func httpProbe(p topology.Probe) *corev1.Probe {
	if !p.Enabled() {
		return nil
	}
	p = p.WithDefaults()
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{
				Path: p.Path,
				Port: intstr.FromInt32(p.Port),
			},
		},
		InitialDelaySeconds: p.InitialDelaySeconds,
		PeriodSeconds:       p.PeriodSeconds,
	}
}
