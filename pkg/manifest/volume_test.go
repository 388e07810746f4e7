package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/Arunachalam-140897/DevEngine/pkg/topology"
)

var testScope = scope{app: "web", namespace: "dev"}

func TestVolumeBackends_CoverSupportedTypes(t *testing.T) {
	for _, vt := range topology.SupportedVolumeTypes() {
		_, ok := volumeBackends[vt]
		assert.True(t, ok, "no backend registered for %s", vt)
	}
	assert.Len(t, volumeBackends, len(topology.SupportedVolumeTypes()))
	_, ok := volumeBackends[topology.VolumeNone]
	assert.False(t, ok)
}

func pvTier(pv topology.PVConfig) topology.Tier {
	pv.Enabled = true
	return topology.Tier{Name: "api", PV: pv}
}

func renderPVObject(t *testing.T, pv topology.PVConfig) *corev1.PersistentVolume {
	t.Helper()
	r, skip, err := renderPV(pvTier(pv), testScope)
	require.NoError(t, err)
	require.Nil(t, skip, "unexpected skip: %v", skip)
	require.NotNil(t, r)
	assert.Equal(t, "pv-api.yaml", r.Filename)
	assert.Equal(t, "web-api-pv", r.Name)

	var obj corev1.PersistentVolume
	require.NoError(t, yaml.Unmarshal([]byte(r.Content), &obj))
	return &obj
}

func TestRenderPV_CommonFields(t *testing.T) {
	pv := renderPVObject(t, topology.PVConfig{Type: topology.VolumeHostPath})

	assert.Equal(t, "PersistentVolume", pv.Kind)
	assert.Empty(t, pv.Namespace)
	assert.Equal(t, map[string]string{"app": "web", "tier": "api"}, pv.Labels)
	assert.Equal(t, "5Gi", pv.Spec.Capacity.Storage().String())
	assert.Equal(t, []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce}, pv.Spec.AccessModes)
	assert.Equal(t, corev1.PersistentVolumeReclaimRetain, pv.Spec.PersistentVolumeReclaimPolicy)
	assert.Empty(t, pv.Spec.StorageClassName)

	pv = renderPVObject(t, topology.PVConfig{
		Type: topology.VolumeHostPath, Size: "20Gi", AccessMode: "ReadWriteMany",
		ReclaimPolicy: "Delete", StorageClass: "manual",
	})
	assert.Equal(t, "20Gi", pv.Spec.Capacity.Storage().String())
	assert.Equal(t, []corev1.PersistentVolumeAccessMode{corev1.ReadWriteMany}, pv.Spec.AccessModes)
	assert.Equal(t, corev1.PersistentVolumeReclaimDelete, pv.Spec.PersistentVolumeReclaimPolicy)
	assert.Equal(t, "manual", pv.Spec.StorageClassName)
}

func TestRenderPV_Backends(t *testing.T) {
	tests := []struct {
		name  string
		pv    topology.PVConfig
		check func(t *testing.T, pv *corev1.PersistentVolume)
	}{
		{
			name: "hostPath default",
			pv:   topology.PVConfig{Type: topology.VolumeHostPath},
			check: func(t *testing.T, pv *corev1.PersistentVolume) {
				require.NotNil(t, pv.Spec.HostPath)
				assert.Equal(t, "/mnt/data/web-api", pv.Spec.HostPath.Path)
			},
		},
		{
			name: "hostPath explicit",
			pv:   topology.PVConfig{Type: topology.VolumeHostPath, HostPath: "/srv"},
			check: func(t *testing.T, pv *corev1.PersistentVolume) {
				assert.Equal(t, "/srv", pv.Spec.HostPath.Path)
			},
		},
		{
			name: "nfs",
			pv:   topology.PVConfig{Type: topology.VolumeNFS, NFSServer: "10.0.0.5", NFSPath: "/exports/api"},
			check: func(t *testing.T, pv *corev1.PersistentVolume) {
				require.NotNil(t, pv.Spec.NFS)
				assert.Equal(t, "10.0.0.5", pv.Spec.NFS.Server)
				assert.Equal(t, "/exports/api", pv.Spec.NFS.Path)
			},
		},
		{
			name: "local default without node",
			pv:   topology.PVConfig{Type: topology.VolumeLocal},
			check: func(t *testing.T, pv *corev1.PersistentVolume) {
				require.NotNil(t, pv.Spec.Local)
				assert.Equal(t, "/mnt/local/web-api", pv.Spec.Local.Path)
				assert.Nil(t, pv.Spec.NodeAffinity)
			},
		},
		{
			name: "local pinned to node",
			pv:   topology.PVConfig{Type: topology.VolumeLocal, LocalNodeName: "worker-1"},
			check: func(t *testing.T, pv *corev1.PersistentVolume) {
				require.NotNil(t, pv.Spec.NodeAffinity)
				expr := pv.Spec.NodeAffinity.Required.NodeSelectorTerms[0].MatchExpressions[0]
				assert.Equal(t, "kubernetes.io/hostname", expr.Key)
				assert.Equal(t, corev1.NodeSelectorOpIn, expr.Operator)
				assert.Equal(t, []string{"worker-1"}, expr.Values)
			},
		},
		{
			name: "awsEbs",
			pv:   topology.PVConfig{Type: topology.VolumeAWSEBS, AWSVolumeID: "vol-123"},
			check: func(t *testing.T, pv *corev1.PersistentVolume) {
				require.NotNil(t, pv.Spec.AWSElasticBlockStore)
				assert.Equal(t, "vol-123", pv.Spec.AWSElasticBlockStore.VolumeID)
				assert.Equal(t, "ext4", pv.Spec.AWSElasticBlockStore.FSType)
			},
		},
		{
			name: "gcePd",
			pv:   topology.PVConfig{Type: topology.VolumeGCEPD, GCEPDName: "disk-1", GCEFsType: "xfs"},
			check: func(t *testing.T, pv *corev1.PersistentVolume) {
				require.NotNil(t, pv.Spec.GCEPersistentDisk)
				assert.Equal(t, "disk-1", pv.Spec.GCEPersistentDisk.PDName)
				assert.Equal(t, "xfs", pv.Spec.GCEPersistentDisk.FSType)
			},
		},
		{
			name: "azureDisk",
			pv:   topology.PVConfig{Type: topology.VolumeAzureDisk, AzureDiskName: "d1", AzureDiskURI: "https://disk/d1"},
			check: func(t *testing.T, pv *corev1.PersistentVolume) {
				require.NotNil(t, pv.Spec.AzureDisk)
				assert.Equal(t, "d1", pv.Spec.AzureDisk.DiskName)
				assert.Equal(t, "https://disk/d1", pv.Spec.AzureDisk.DataDiskURI)
				assert.Equal(t, ptr.To(corev1.AzureManagedDisk), pv.Spec.AzureDisk.Kind)
				assert.Equal(t, ptr.To(corev1.AzureDataDiskCachingNone), pv.Spec.AzureDisk.CachingMode)
			},
		},
		{
			name: "cephRbd",
			pv: topology.PVConfig{
				Type: topology.VolumeCephRBD, CephMonitors: "10.0.0.1:6789, 10.0.0.2:6789",
				CephPool: "rbd", CephImage: "img", CephUser: "admin",
			},
			check: func(t *testing.T, pv *corev1.PersistentVolume) {
				require.NotNil(t, pv.Spec.RBD)
				assert.Equal(t, []string{"10.0.0.1:6789", "10.0.0.2:6789"}, pv.Spec.RBD.CephMonitors)
				assert.Equal(t, "rbd", pv.Spec.RBD.RBDPool)
				assert.Equal(t, "admin", pv.Spec.RBD.RadosUser)
				assert.Equal(t, "ext4", pv.Spec.RBD.FSType)
				require.NotNil(t, pv.Spec.RBD.SecretRef)
				assert.Equal(t, "web-ceph-secret", pv.Spec.RBD.SecretRef.Name)
				assert.Equal(t, "dev", pv.Spec.RBD.SecretRef.Namespace)
			},
		},
		{
			name: "iscsi with lun zero",
			pv: topology.PVConfig{
				Type: topology.VolumeISCSI, ISCSITargetPortal: "10.0.0.9:3260",
				ISCSIIQN: "iqn.2024-01.com.example:storage", ISCSILun: ptr.To(int32(0)),
			},
			check: func(t *testing.T, pv *corev1.PersistentVolume) {
				require.NotNil(t, pv.Spec.ISCSI)
				assert.Equal(t, "10.0.0.9:3260", pv.Spec.ISCSI.TargetPortal)
				assert.Equal(t, int32(0), pv.Spec.ISCSI.Lun)
				assert.Equal(t, "ext4", pv.Spec.ISCSI.FSType)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, renderPVObject(t, tt.pv))
		})
	}
}

func TestRenderPV_Skips(t *testing.T) {
	tests := []struct {
		name    string
		pv      topology.PVConfig
		missing []string
	}{
		{"nfs without server", topology.PVConfig{Type: topology.VolumeNFS, NFSPath: "/x"}, []string{"nfsServer"}},
		{"nfs empty", topology.PVConfig{Type: topology.VolumeNFS}, []string{"nfsServer", "nfsPath"}},
		{"awsEbs", topology.PVConfig{Type: topology.VolumeAWSEBS}, []string{"awsVolumeID"}},
		{"gcePd", topology.PVConfig{Type: topology.VolumeGCEPD}, []string{"gcePdName"}},
		{"azureDisk", topology.PVConfig{Type: topology.VolumeAzureDisk, AzureDiskName: "d"}, []string{"azureDiskURI"}},
		{"cephRbd blank monitors", topology.PVConfig{Type: topology.VolumeCephRBD, CephMonitors: " , ", CephPool: "p", CephImage: "i", CephUser: "u"}, []string{"cephMonitors"}},
		{"iscsi without lun", topology.PVConfig{Type: topology.VolumeISCSI, ISCSITargetPortal: "p", ISCSIIQN: "iqn"}, []string{"iscsiLun"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, skip, err := renderPV(pvTier(tt.pv), testScope)
			require.NoError(t, err)
			assert.Nil(t, r)
			require.NotNil(t, skip)
			assert.False(t, skip.unknown)
			assert.Equal(t, tt.missing, skip.missing)
			assert.Contains(t, skip.String(), tt.missing[0])
		})
	}
}

func TestRenderPV_NotRequested(t *testing.T) {
	for _, pv := range []topology.PVConfig{
		{},
		{Type: topology.VolumeNFS},
		{Enabled: true},
		{Enabled: true, Type: topology.VolumeNone},
	} {
		r, skip, err := renderPV(topology.Tier{Name: "api", PV: pv}, testScope)
		assert.NoError(t, err)
		assert.Nil(t, r)
		assert.Nil(t, skip)
	}
}
