package manifest

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/Arunachalam-140897/DevEngine/pkg/topology"
)

// Volume names used inside generated pod specs.
const (
	configVolumeName = "config"
	secretVolumeName = "secret"
	dataVolumeName   = "data"
)

// supportRefs are the names produced for a tier by the first compiler pass.
// An empty name means the resource was not generated.
type supportRefs struct {
	configMap string
	secret    string
	pvc       string
}

// container builds the tier's single container without volume mounts.
func container(t topology.Tier) corev1.Container {
	return corev1.Container{
		Name:  t.Name,
		Image: t.Image,
		Ports: []corev1.ContainerPort{{
			ContainerPort: t.ContainerPort,
		}},
		Env:            envVars(t.Env),
		Resources:      resourceRequirements(t.Resources),
		LivenessProbe:  httpProbe(t.LivenessProbe),
		ReadinessProbe: httpProbe(t.ReadinessProbe),
	}
}

// configVolumes mounts the tier's ConfigMap and Secret, when present.
func configVolumes(t topology.Tier, refs supportRefs) ([]corev1.VolumeMount, []corev1.Volume) {
	var (
		mounts  []corev1.VolumeMount
		volumes []corev1.Volume
	)

	if refs.configMap != "" {
		mounts = append(mounts, corev1.VolumeMount{
			Name:      configVolumeName,
			MountPath: fmt.Sprintf("/config/%s", t.Name),
		})
		volumes = append(volumes, corev1.Volume{
			Name: configVolumeName,
			VolumeSource: corev1.VolumeSource{
				ConfigMap: &corev1.ConfigMapVolumeSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: refs.configMap},
				},
			},
		})
	}

	if refs.secret != "" {
		mounts = append(mounts, corev1.VolumeMount{
			Name:      secretVolumeName,
			MountPath: fmt.Sprintf("/secrets/%s", t.Name),
		})
		volumes = append(volumes, corev1.Volume{
			Name: secretVolumeName,
			VolumeSource: corev1.VolumeSource{
				Secret: &corev1.SecretVolumeSource{SecretName: refs.secret},
			},
		})
	}

	return mounts, volumes
}

func podTemplate(t topology.Tier, s scope, c corev1.Container, volumes []corev1.Volume) corev1.PodTemplateSpec {
	spec := corev1.PodSpec{
		Containers: []corev1.Container{c},
		Volumes:    volumes,
	}
	if s.rbac {
		spec.ServiceAccountName = topology.ServiceAccountName(s.app)
	}
	return corev1.PodTemplateSpec{
		ObjectMeta: metav1.ObjectMeta{Labels: s.labels(t.Name)},
		Spec:       spec,
	}
}

// renderDeployment renders a Deployment mounting whichever of the tier's
// ConfigMap, Secret and claim were generated.
func renderDeployment(t topology.Tier, s scope, refs supportRefs) (*Rendered, error) {
	c := container(t)
	mounts, volumes := configVolumes(t, refs)

	if refs.pvc != "" {
		mounts = append(mounts, corev1.VolumeMount{
			Name:      dataVolumeName,
			MountPath: t.PVC.WithDefaults().MountPath,
		})
		volumes = append(volumes, corev1.Volume{
			Name: dataVolumeName,
			VolumeSource: corev1.VolumeSource{
				PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: refs.pvc},
			},
		})
	}
	c.VolumeMounts = mounts

	name := topology.WorkloadName(s.app, t.Name)
	d := &appsv1.Deployment{
		TypeMeta:   typeMeta(appsv1.SchemeGroupVersion.String(), "Deployment"),
		ObjectMeta: objectMeta(name, s.namespace, s.labels(t.Name)),
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(t.Replicas),
			Selector: &metav1.LabelSelector{MatchLabels: s.labels(t.Name)},
			Template: podTemplate(t, s, c, volumes),
		},
	}
	return render(fmt.Sprintf("deployment-%s.yaml", t.Name), "Deployment", name, d)
}

// renderStatefulSet renders a StatefulSet governed by the tier's headless
// Service. Storage comes from a volumeClaimTemplate, never from a standalone
// claim.
func renderStatefulSet(t topology.Tier, s scope, refs supportRefs) (*Rendered, error) {
	c := container(t)
	mounts, volumes := configVolumes(t, refs)

	var templates []corev1.PersistentVolumeClaim
	if t.PVC.Enabled {
		pvc := t.PVC.WithDefaults()
		mounts = append(mounts, corev1.VolumeMount{
			Name:      dataVolumeName,
			MountPath: pvc.MountPath,
		})
		templates = append(templates, corev1.PersistentVolumeClaim{
			ObjectMeta: metav1.ObjectMeta{Name: dataVolumeName},
			Spec:       claimSpec(pvc),
		})
	}
	c.VolumeMounts = mounts

	name := topology.WorkloadName(s.app, t.Name)
	ss := &appsv1.StatefulSet{
		TypeMeta:   typeMeta(appsv1.SchemeGroupVersion.String(), "StatefulSet"),
		ObjectMeta: objectMeta(name, s.namespace, s.labels(t.Name)),
		Spec: appsv1.StatefulSetSpec{
			ServiceName:          topology.HeadlessServiceName(s.app, t.Name),
			Replicas:             ptr.To(t.Replicas),
			Selector:             &metav1.LabelSelector{MatchLabels: s.labels(t.Name)},
			Template:             podTemplate(t, s, c, volumes),
			VolumeClaimTemplates: templates,
		},
	}
	return render(fmt.Sprintf("statefulset-%s.yaml", t.Name), "StatefulSet", name, ss)
}
