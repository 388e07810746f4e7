package manifest

import (
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/ptr"

	"github.com/Arunachalam-140897/DevEngine/pkg/topology"
)

const (
	defaultFsType         = "ext4"
	defaultAzureKind      = corev1.AzureManagedDisk
	defaultAzureCaching   = corev1.AzureDataDiskCachingNone
	hostnameTopologyLabel = "kubernetes.io/hostname"
)

// volumeSource is what a backend contributes to a PersistentVolume spec.
type volumeSource struct {
	source       corev1.PersistentVolumeSource
	nodeAffinity *corev1.VolumeNodeAffinity
}

// volumeBackend builds the source for one storage type. It returns the names
// of required fields that are missing instead of a source when the
// configuration is incomplete.
type volumeBackend func(pv topology.PVConfig, tier string, s scope) (volumeSource, []string)

// volumeBackends holds one backend per supported type. A test keeps it in
// step with topology.SupportedVolumeTypes.
var volumeBackends = map[topology.VolumeType]volumeBackend{
	topology.VolumeHostPath:  hostPathBackend,
	topology.VolumeNFS:       nfsBackend,
	topology.VolumeLocal:     localBackend,
	topology.VolumeAWSEBS:    awsEBSBackend,
	topology.VolumeGCEPD:     gcePDBackend,
	topology.VolumeAzureDisk: azureDiskBackend,
	topology.VolumeCephRBD:   cephRBDBackend,
	topology.VolumeISCSI:     iscsiBackend,
}

// volumeSkip explains why a requested PersistentVolume was not generated.
type volumeSkip struct {
	volumeType topology.VolumeType
	unknown    bool
	missing    []string
}

func (v *volumeSkip) String() string {
	if v.unknown {
		msg := fmt.Sprintf("volume type %q is not supported (supported: %s)",
			v.volumeType, strings.Join(topology.SupportedVolumeTypesAsStrings(), ", "))
		if s, ok := topology.Suggest(string(v.volumeType), topology.SupportedVolumeTypesAsStrings()); ok {
			msg += fmt.Sprintf(", did you mean %q?", s)
		}
		return msg
	}
	return fmt.Sprintf("%s volume requires %s", v.volumeType, strings.Join(v.missing, ", "))
}

// renderPV renders the tier's PersistentVolume. It returns (nil, nil, nil)
// when no volume is requested and a volumeSkip when the backend cannot be
// built; callers decide whether a skip is fatal.
func renderPV(t topology.Tier, s scope) (*Rendered, *volumeSkip, error) {
	pv := t.PV.WithDefaults()
	if !pv.Active() {
		return nil, nil, nil
	}

	backend, ok := volumeBackends[pv.Type]
	if !ok {
		return nil, &volumeSkip{volumeType: pv.Type, unknown: true}, nil
	}

	src, missing := backend(pv, t.Name, s)
	if len(missing) > 0 {
		return nil, &volumeSkip{volumeType: pv.Type, missing: missing}, nil
	}

	name := topology.PVName(s.app, t.Name)
	obj := &corev1.PersistentVolume{
		TypeMeta: typeMeta(corev1.SchemeGroupVersion.String(), "PersistentVolume"),
		// cluster scoped
		ObjectMeta: objectMeta(name, "", s.labels(t.Name)),
		Spec: corev1.PersistentVolumeSpec{
			Capacity:                      storageRequest(pv.Size),
			AccessModes:                   []corev1.PersistentVolumeAccessMode{corev1.PersistentVolumeAccessMode(pv.AccessMode)},
			PersistentVolumeReclaimPolicy: corev1.PersistentVolumeReclaimPolicy(pv.ReclaimPolicy),
			StorageClassName:              pv.StorageClass,
			PersistentVolumeSource:        src.source,
			NodeAffinity:                  src.nodeAffinity,
		},
	}

	r, err := render(fmt.Sprintf("pv-%s.yaml", t.Name), "PersistentVolume", name, obj)
	return r, nil, err
}

type requiredField struct {
	name, value string
}

func requireFields(fields ...requiredField) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func hostPathBackend(pv topology.PVConfig, tier string, s scope) (volumeSource, []string) {
	path := orDefault(pv.HostPath, fmt.Sprintf("/mnt/data/%s-%s", s.app, tier))
	return volumeSource{source: corev1.PersistentVolumeSource{
		HostPath: &corev1.HostPathVolumeSource{Path: path},
	}}, nil
}

func nfsBackend(pv topology.PVConfig, _ string, _ scope) (volumeSource, []string) {
	if missing := requireFields(requiredField{"nfsServer", pv.NFSServer}, requiredField{"nfsPath", pv.NFSPath}); len(missing) > 0 {
		return volumeSource{}, missing
	}
	return volumeSource{source: corev1.PersistentVolumeSource{
		NFS: &corev1.NFSVolumeSource{Server: pv.NFSServer, Path: pv.NFSPath},
	}}, nil
}

// localBackend pins the volume to a node when localNodeName is set.
func localBackend(pv topology.PVConfig, tier string, s scope) (volumeSource, []string) {
	path := orDefault(pv.LocalPath, fmt.Sprintf("/mnt/local/%s-%s", s.app, tier))
	vs := volumeSource{source: corev1.PersistentVolumeSource{
		Local: &corev1.LocalVolumeSource{Path: path},
	}}

	if node := strings.TrimSpace(pv.LocalNodeName); node != "" {
		vs.nodeAffinity = &corev1.VolumeNodeAffinity{
			Required: &corev1.NodeSelector{
				NodeSelectorTerms: []corev1.NodeSelectorTerm{{
					MatchExpressions: []corev1.NodeSelectorRequirement{{
						Key:      hostnameTopologyLabel,
						Operator: corev1.NodeSelectorOpIn,
						Values:   []string{node},
					}},
				}},
			},
		}
	}
	return vs, nil
}

func awsEBSBackend(pv topology.PVConfig, _ string, _ scope) (volumeSource, []string) {
	if missing := requireFields(requiredField{"awsVolumeID", pv.AWSVolumeID}); len(missing) > 0 {
		return volumeSource{}, missing
	}
	return volumeSource{source: corev1.PersistentVolumeSource{
		AWSElasticBlockStore: &corev1.AWSElasticBlockStoreVolumeSource{
			VolumeID: pv.AWSVolumeID,
			FSType:   orDefault(pv.AWSFsType, defaultFsType),
		},
	}}, nil
}

func gcePDBackend(pv topology.PVConfig, _ string, _ scope) (volumeSource, []string) {
	if missing := requireFields(requiredField{"gcePdName", pv.GCEPDName}); len(missing) > 0 {
		return volumeSource{}, missing
	}
	return volumeSource{source: corev1.PersistentVolumeSource{
		GCEPersistentDisk: &corev1.GCEPersistentDiskVolumeSource{
			PDName: pv.GCEPDName,
			FSType: orDefault(pv.GCEFsType, defaultFsType),
		},
	}}, nil
}

func azureDiskBackend(pv topology.PVConfig, _ string, _ scope) (volumeSource, []string) {
	if missing := requireFields(requiredField{"azureDiskName", pv.AzureDiskName}, requiredField{"azureDiskURI", pv.AzureDiskURI}); len(missing) > 0 {
		return volumeSource{}, missing
	}
	return volumeSource{source: corev1.PersistentVolumeSource{
		AzureDisk: &corev1.AzureDiskVolumeSource{
			DiskName:    pv.AzureDiskName,
			DataDiskURI: pv.AzureDiskURI,
			Kind:        ptr.To(corev1.AzureDataDiskKind(orDefault(pv.AzureKind, string(defaultAzureKind)))),
			CachingMode: ptr.To(corev1.AzureDataDiskCachingMode(orDefault(pv.AzureCachingMode, string(defaultAzureCaching)))),
		},
	}}, nil
}

// cephRBDBackend reads monitors as a comma separated list.
func cephRBDBackend(pv topology.PVConfig, _ string, s scope) (volumeSource, []string) {
	monitors := splitList(pv.CephMonitors)
	if missing := requireFields(
		requiredField{"cephMonitors", strings.Join(monitors, ",")},
		requiredField{"cephPool", pv.CephPool},
		requiredField{"cephImage", pv.CephImage},
		requiredField{"cephUser", pv.CephUser},
	); len(missing) > 0 {
		return volumeSource{}, missing
	}

	return volumeSource{source: corev1.PersistentVolumeSource{
		RBD: &corev1.RBDPersistentVolumeSource{
			CephMonitors: monitors,
			RBDPool:      pv.CephPool,
			RBDImage:     pv.CephImage,
			RadosUser:    pv.CephUser,
			FSType:       orDefault(pv.CephFsType, defaultFsType),
			SecretRef: &corev1.SecretReference{
				Name:      orDefault(pv.CephSecretName, s.app+"-ceph-secret"),
				Namespace: s.namespace,
			},
		},
	}}, nil
}

func iscsiBackend(pv topology.PVConfig, _ string, _ scope) (volumeSource, []string) {
	missing := requireFields(requiredField{"iscsiTargetPortal", pv.ISCSITargetPortal}, requiredField{"iscsiIqn", pv.ISCSIIQN})
	if pv.ISCSILun == nil {
		missing = append(missing, "iscsiLun")
	}
	if len(missing) > 0 {
		return volumeSource{}, missing
	}
	return volumeSource{source: corev1.PersistentVolumeSource{
		ISCSI: &corev1.ISCSIPersistentVolumeSource{
			TargetPortal: pv.ISCSITargetPortal,
			IQN:          pv.ISCSIIQN,
			Lun:          *pv.ISCSILun,
			FSType:       orDefault(pv.ISCSIFsType, defaultFsType),
		},
	}}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
