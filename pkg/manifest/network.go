package manifest

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	"github.com/Arunachalam-140897/DevEngine/pkg/topology"
)

// renderService returns nil when the tier declares no service.
func renderService(t topology.Tier, s scope) (*Rendered, error) {
	if t.Service == nil {
		return nil, nil
	}
	svc := *t.Service
	if svc.TargetPort == 0 {
		svc.TargetPort = t.ContainerPort
	}

	name := topology.ServiceName(s.app, t.Name)
	obj := &corev1.Service{
		TypeMeta:   typeMeta(corev1.SchemeGroupVersion.String(), "Service"),
		ObjectMeta: objectMeta(name, s.namespace, s.labels(t.Name)),
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceType(svc.Type),
			Selector: s.labels(t.Name),
			Ports: []corev1.ServicePort{{
				Port:       svc.Port,
				TargetPort: intstr.FromInt32(svc.TargetPort),
			}},
		},
	}
	return render(fmt.Sprintf("service-%s.yaml", t.Name), "Service", name, obj)
}

// renderHeadlessService renders the governing Service of a StatefulSet tier.
func renderHeadlessService(t topology.Tier, s scope) (*Rendered, error) {
	name := topology.HeadlessServiceName(s.app, t.Name)
	obj := &corev1.Service{
		TypeMeta:   typeMeta(corev1.SchemeGroupVersion.String(), "Service"),
		ObjectMeta: objectMeta(name, s.namespace, s.labels(t.Name)),
		Spec: corev1.ServiceSpec{
			ClusterIP: corev1.ClusterIPNone,
			Selector:  s.labels(t.Name),
			Ports: []corev1.ServicePort{{
				Port:       t.ContainerPort,
				TargetPort: intstr.FromInt32(t.ContainerPort),
			}},
		},
	}
	return render(fmt.Sprintf("service-%s-headless.yaml", t.Name), "Service", name, obj)
}

// ingressQualifies reports whether a tier contributes an Ingress path.
func ingressQualifies(t topology.Tier) bool {
	return t.Ingress != nil && t.Service != nil
}

// renderIngress renders one Ingress for the whole application. Tiers sharing
// a host become paths of a single rule; rules keep the order in which hosts
// first appear. It returns nil when no tier qualifies.
func renderIngress(tiers []topology.Tier, s scope) (*Rendered, error) {
	var (
		hosts []string
		paths = map[string][]networkingv1.HTTPIngressPath{}
	)

	for _, t := range tiers {
		if !ingressQualifies(t) {
			continue
		}
		ing := *t.Ingress
		if ing.Path == "" {
			ing.Path = topology.DefaultIngressPath
		}
		port := t.Service.Port
		if port == 0 {
			port = t.ContainerPort
		}

		if _, seen := paths[ing.Host]; !seen {
			hosts = append(hosts, ing.Host)
		}
		paths[ing.Host] = append(paths[ing.Host], networkingv1.HTTPIngressPath{
			Path:     ing.Path,
			PathType: ptr.To(networkingv1.PathTypePrefix),
			Backend: networkingv1.IngressBackend{
				Service: &networkingv1.IngressServiceBackend{
					Name: topology.ServiceName(s.app, t.Name),
					Port: networkingv1.ServiceBackendPort{Number: port},
				},
			},
		})
	}

	if len(hosts) == 0 {
		return nil, nil
	}

	rules := make([]networkingv1.IngressRule, 0, len(hosts))
	for _, h := range hosts {
		rules = append(rules, networkingv1.IngressRule{
			Host: h,
			IngressRuleValue: networkingv1.IngressRuleValue{
				HTTP: &networkingv1.HTTPIngressRuleValue{Paths: paths[h]},
			},
		})
	}

	name := topology.IngressName(s.app)
	obj := &networkingv1.Ingress{
		TypeMeta:   typeMeta(networkingv1.SchemeGroupVersion.String(), "Ingress"),
		ObjectMeta: objectMeta(name, s.namespace, s.appLabels()),
		Spec:       networkingv1.IngressSpec{Rules: rules},
	}
	return render("ingress.yaml", "Ingress", name, obj)
}
