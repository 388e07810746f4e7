package manifest

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/Arunachalam-140897/DevEngine/pkg/topology"
)

// scope carries the request-level values every renderer needs.
type scope struct {
	app       string
	namespace string
	rbac      bool
}

func (s scope) labels(tier string) map[string]string {
	return topology.Labels(s.app, tier)
}

func (s scope) appLabels() map[string]string {
	return map[string]string{topology.LabelApp: s.app}
}

func objectMeta(name, namespace string, labels map[string]string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:      name,
		Namespace: namespace,
		Labels:    labels,
	}
}

func typeMeta(apiVersion, kind string) metav1.TypeMeta {
	return metav1.TypeMeta{APIVersion: apiVersion, Kind: kind}
}

func render(filename, kind, name string, obj any) (*Rendered, error) {
	content, err := encode(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", filename, err)
	}
	return &Rendered{
		GeneratedFile: GeneratedFile{Filename: filename, Content: content},
		Kind:          kind,
		Name:          name,
	}, nil
}

// renderNamespace renders the application namespace.
func renderNamespace(s scope) (*Rendered, error) {
	ns := &corev1.Namespace{
		TypeMeta:   typeMeta(corev1.SchemeGroupVersion.String(), "Namespace"),
		ObjectMeta: objectMeta(s.namespace, "", s.appLabels()),
	}
	return render("namespace.yaml", "Namespace", s.namespace, ns)
}

// renderConfigMap returns nil when the tier has no ConfigMap data.
func renderConfigMap(t topology.Tier, s scope) (*Rendered, error) {
	if len(t.ConfigMapData) == 0 {
		return nil, nil
	}

	name := topology.ConfigMapName(s.app, t.Name)
	cm := &corev1.ConfigMap{
		TypeMeta:   typeMeta(corev1.SchemeGroupVersion.String(), "ConfigMap"),
		ObjectMeta: objectMeta(name, s.namespace, s.labels(t.Name)),
		Data:       keyValues(t.ConfigMapData),
	}
	return render(fmt.Sprintf("configmap-%s.yaml", t.Name), "ConfigMap", name, cm)
}

// renderSecret returns nil when the tier has no Secret data. Values are
// written as plaintext stringData.
func renderSecret(t topology.Tier, s scope) (*Rendered, error) {
	if len(t.SecretData) == 0 {
		return nil, nil
	}

	name := topology.SecretName(s.app, t.Name)
	secret := &corev1.Secret{
		TypeMeta:   typeMeta(corev1.SchemeGroupVersion.String(), "Secret"),
		ObjectMeta: objectMeta(name, s.namespace, s.labels(t.Name)),
		Type:       corev1.SecretTypeOpaque,
		StringData: keyValues(t.SecretData),
	}
	return render(fmt.Sprintf("secret-%s.yaml", t.Name), "Secret", name, secret)
}

func keyValues(kvs []topology.KeyValue) map[string]string {
	m := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

// renderPVC returns nil unless the tier is a Deployment with a claim enabled.
// StatefulSets get their claim from volumeClaimTemplates instead.
func renderPVC(t topology.Tier, s scope) (*Rendered, error) {
	if !t.PVC.Enabled || t.IsStatefulSet() {
		return nil, nil
	}

	name := topology.PVCName(s.app, t.Name)
	pvc := &corev1.PersistentVolumeClaim{
		TypeMeta:   typeMeta(corev1.SchemeGroupVersion.String(), "PersistentVolumeClaim"),
		ObjectMeta: objectMeta(name, s.namespace, s.labels(t.Name)),
		Spec:       claimSpec(t.PVC),
	}
	return render(fmt.Sprintf("pvc-%s.yaml", t.Name), "PersistentVolumeClaim", name, pvc)
}

// claimSpec is shared by standalone claims and StatefulSet claim templates.
func claimSpec(c topology.PVCConfig) corev1.PersistentVolumeClaimSpec {
	c = c.WithDefaults()
	spec := corev1.PersistentVolumeClaimSpec{
		AccessModes: []corev1.PersistentVolumeAccessMode{corev1.PersistentVolumeAccessMode(c.AccessMode)},
		Resources: corev1.VolumeResourceRequirements{
			Requests: storageRequest(c.Size),
		},
	}
	if c.StorageClass != "" {
		spec.StorageClassName = ptr.To(c.StorageClass)
	}
	return spec
}
