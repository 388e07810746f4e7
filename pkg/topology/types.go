package topology

import (
	"fmt"
	"strings"
)

// Default values applied by the WithDefaults constructors.
const (
	DefaultProbeInitialDelaySeconds int32 = 10
	DefaultProbePeriodSeconds       int32 = 10

	DefaultPVCSize       = "5Gi"
	DefaultAccessMode    = "ReadWriteOnce"
	DefaultPVCMountPath  = "/data"
	DefaultPVSize        = "5Gi"
	DefaultReclaimPolicy = "Retain"

	DefaultServiceType = "ClusterIP"
	DefaultIngressPath = "/"
)

// WorkloadType selects the pod-managing resource for a tier.
type WorkloadType string

const (
	WorkloadDeployment  WorkloadType = "Deployment"
	WorkloadStatefulSet WorkloadType = "StatefulSet"
)

// SupportedWorkloadTypes returns all workload types in display order.
func SupportedWorkloadTypes() []WorkloadType {
	return []WorkloadType{WorkloadDeployment, WorkloadStatefulSet}
}

// IsValid reports whether w is a known workload type.
func (w WorkloadType) IsValid() bool {
	return w == WorkloadDeployment || w == WorkloadStatefulSet
}

func (w WorkloadType) String() string {
	return string(w)
}

// ParseWorkloadType converts a string to a WorkloadType. The empty string
// maps to Deployment.
func ParseWorkloadType(s string) (WorkloadType, error) {
	if s == "" {
		return WorkloadDeployment, nil
	}
	w := WorkloadType(s)
	if !w.IsValid() {
		return "", fmt.Errorf("unknown workload type: %s", s)
	}
	return w, nil
}

// TopologyRequest is the root input of one compilation.
type TopologyRequest struct {
	AppName         string `json:"appName" yaml:"appName"`
	Namespace       string `json:"namespace" yaml:"namespace"`
	CreateNamespace bool   `json:"createNamespace,omitempty" yaml:"createNamespace,omitempty"`
	EnableRBAC      bool   `json:"enableRBAC,omitempty" yaml:"enableRBAC,omitempty"`
	Tiers           []Tier `json:"tiers" yaml:"tiers"`
}

// Tier is one workload unit of the application.
type Tier struct {
	Name          string       `json:"name" yaml:"name"`
	Replicas      int32        `json:"replicas" yaml:"replicas"`
	Image         string       `json:"image" yaml:"image"`
	ContainerPort int32        `json:"containerPort" yaml:"containerPort"`
	WorkloadType  WorkloadType `json:"workloadType,omitempty" yaml:"workloadType,omitempty"`

	Env           []EnvVar   `json:"env,omitempty" yaml:"env,omitempty"`
	ConfigMapData []KeyValue `json:"configMapData,omitempty" yaml:"configMapData,omitempty"`
	SecretData    []KeyValue `json:"secretData,omitempty" yaml:"secretData,omitempty"`

	Resources      Resources `json:"resources,omitempty" yaml:"resources,omitempty"`
	LivenessProbe  Probe     `json:"livenessProbe,omitempty" yaml:"livenessProbe,omitempty"`
	ReadinessProbe Probe     `json:"readinessProbe,omitempty" yaml:"readinessProbe,omitempty"`

	PVC PVCConfig `json:"pvc,omitempty" yaml:"pvc,omitempty"`
	PV  PVConfig  `json:"pv,omitempty" yaml:"pv,omitempty"`

	Service *ServiceConfig `json:"service,omitempty" yaml:"service,omitempty"`
	Ingress *IngressConfig `json:"ingress,omitempty" yaml:"ingress,omitempty"`
}

// EnvVar is one container environment entry.
type EnvVar struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// KeyValue is one ConfigMap or Secret entry.
type KeyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Resources holds container requests and limits as quantity strings.
type Resources struct {
	RequestsCPU    string `json:"requestsCpu,omitempty" yaml:"requestsCpu,omitempty"`
	RequestsMemory string `json:"requestsMemory,omitempty" yaml:"requestsMemory,omitempty"`
	LimitsCPU      string `json:"limitsCpu,omitempty" yaml:"limitsCpu,omitempty"`
	LimitsMemory   string `json:"limitsMemory,omitempty" yaml:"limitsMemory,omitempty"`
}

// HasRequests reports whether any request is set.
func (r Resources) HasRequests() bool {
	return r.RequestsCPU != "" || r.RequestsMemory != ""
}

// HasLimits reports whether any limit is set.
func (r Resources) HasLimits() bool {
	return r.LimitsCPU != "" || r.LimitsMemory != ""
}

// Probe is an HTTP GET probe. A probe without both path and port is disabled.
type Probe struct {
	Path                string `json:"path,omitempty" yaml:"path,omitempty"`
	Port                int32  `json:"port,omitempty" yaml:"port,omitempty"`
	InitialDelaySeconds int32  `json:"initialDelaySeconds,omitempty" yaml:"initialDelaySeconds,omitempty"`
	PeriodSeconds       int32  `json:"periodSeconds,omitempty" yaml:"periodSeconds,omitempty"`
}

// Enabled reports whether the probe should be rendered.
func (p Probe) Enabled() bool {
	return strings.TrimSpace(p.Path) != "" && p.Port > 0
}

// WithDefaults returns a copy with unset timings defaulted.
func (p Probe) WithDefaults() Probe {
	if p.InitialDelaySeconds <= 0 {
		p.InitialDelaySeconds = DefaultProbeInitialDelaySeconds
	}
	if p.PeriodSeconds <= 0 {
		p.PeriodSeconds = DefaultProbePeriodSeconds
	}
	return p
}

// PVCConfig describes the tier's persistent volume claim.
type PVCConfig struct {
	Enabled      bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	StorageClass string `json:"storageClass,omitempty" yaml:"storageClass,omitempty"`
	Size         string `json:"size,omitempty" yaml:"size,omitempty"`
	AccessMode   string `json:"accessMode,omitempty" yaml:"accessMode,omitempty"`
	MountPath    string `json:"mountPath,omitempty" yaml:"mountPath,omitempty"`
}

// WithDefaults returns a copy with size, access mode and mount path defaulted.
func (c PVCConfig) WithDefaults() PVCConfig {
	c.StorageClass = strings.TrimSpace(c.StorageClass)
	if c.Size == "" {
		c.Size = DefaultPVCSize
	}
	if c.AccessMode == "" {
		c.AccessMode = DefaultAccessMode
	}
	if c.MountPath == "" {
		c.MountPath = DefaultPVCMountPath
	}
	return c
}

// PVConfig describes a PersistentVolume and its storage backend. Only the
// fields of the selected Type are read.
type PVConfig struct {
	Enabled       bool       `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Type          VolumeType `json:"type,omitempty" yaml:"type,omitempty"`
	Size          string     `json:"size,omitempty" yaml:"size,omitempty"`
	AccessMode    string     `json:"accessMode,omitempty" yaml:"accessMode,omitempty"`
	ReclaimPolicy string     `json:"reclaimPolicy,omitempty" yaml:"reclaimPolicy,omitempty"`
	StorageClass  string     `json:"storageClass,omitempty" yaml:"storageClass,omitempty"`

	HostPath string `json:"hostPath,omitempty" yaml:"hostPath,omitempty"`

	NFSServer string `json:"nfsServer,omitempty" yaml:"nfsServer,omitempty"`
	NFSPath   string `json:"nfsPath,omitempty" yaml:"nfsPath,omitempty"`

	LocalPath     string `json:"localPath,omitempty" yaml:"localPath,omitempty"`
	LocalNodeName string `json:"localNodeName,omitempty" yaml:"localNodeName,omitempty"`

	AWSVolumeID string `json:"awsVolumeID,omitempty" yaml:"awsVolumeID,omitempty"`
	AWSFsType   string `json:"awsFsType,omitempty" yaml:"awsFsType,omitempty"`

	GCEPDName string `json:"gcePdName,omitempty" yaml:"gcePdName,omitempty"`
	GCEFsType string `json:"gceFsType,omitempty" yaml:"gceFsType,omitempty"`

	AzureDiskName    string `json:"azureDiskName,omitempty" yaml:"azureDiskName,omitempty"`
	AzureDiskURI     string `json:"azureDiskURI,omitempty" yaml:"azureDiskURI,omitempty"`
	AzureKind        string `json:"azureKind,omitempty" yaml:"azureKind,omitempty"`
	AzureCachingMode string `json:"azureCachingMode,omitempty" yaml:"azureCachingMode,omitempty"`

	CephMonitors   string `json:"cephMonitors,omitempty" yaml:"cephMonitors,omitempty"`
	CephPool       string `json:"cephPool,omitempty" yaml:"cephPool,omitempty"`
	CephImage      string `json:"cephImage,omitempty" yaml:"cephImage,omitempty"`
	CephUser       string `json:"cephUser,omitempty" yaml:"cephUser,omitempty"`
	CephSecretName string `json:"cephSecretName,omitempty" yaml:"cephSecretName,omitempty"`
	CephFsType     string `json:"cephFsType,omitempty" yaml:"cephFsType,omitempty"`

	ISCSITargetPortal string `json:"iscsiTargetPortal,omitempty" yaml:"iscsiTargetPortal,omitempty"`
	ISCSIIQN          string `json:"iscsiIqn,omitempty" yaml:"iscsiIqn,omitempty"`
	ISCSILun          *int32 `json:"iscsiLun,omitempty" yaml:"iscsiLun,omitempty"`
	ISCSIFsType       string `json:"iscsiFsType,omitempty" yaml:"iscsiFsType,omitempty"`
}

// Active reports whether a PersistentVolume should be attempted at all.
func (c PVConfig) Active() bool {
	return c.Enabled && c.Type != "" && c.Type != VolumeNone
}

// WithDefaults returns a copy with the backend-independent fields defaulted.
// Backend defaults depend on the app and tier names and are applied when the
// backend renders.
func (c PVConfig) WithDefaults() PVConfig {
	if c.Type == "" {
		c.Type = VolumeNone
	}
	if c.Size == "" {
		c.Size = DefaultPVSize
	}
	if c.AccessMode == "" {
		c.AccessMode = DefaultAccessMode
	}
	if c.ReclaimPolicy == "" {
		c.ReclaimPolicy = DefaultReclaimPolicy
	}
	c.StorageClass = strings.TrimSpace(c.StorageClass)
	return c
}

// ServiceConfig requests a Service in front of the tier.
type ServiceConfig struct {
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Port       int32  `json:"port,omitempty" yaml:"port,omitempty"`
	TargetPort int32  `json:"targetPort,omitempty" yaml:"targetPort,omitempty"`
}

// IngressConfig routes a host and path to the tier's Service.
type IngressConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// WithDefaults returns a copy of the tier with every sub-config defaulted.
func (t Tier) WithDefaults() Tier {
	t.Name = strings.TrimSpace(t.Name)
	t.Image = strings.TrimSpace(t.Image)
	if t.WorkloadType == "" {
		t.WorkloadType = WorkloadDeployment
	}
	t.LivenessProbe = t.LivenessProbe.WithDefaults()
	t.ReadinessProbe = t.ReadinessProbe.WithDefaults()
	t.PVC = t.PVC.WithDefaults()
	t.PV = t.PV.WithDefaults()

	if t.Service != nil {
		svc := *t.Service
		if svc.Type == "" {
			svc.Type = DefaultServiceType
		}
		if svc.Port == 0 {
			svc.Port = t.ContainerPort
		}
		if svc.TargetPort == 0 {
			svc.TargetPort = t.ContainerPort
		}
		t.Service = &svc
	}

	if t.Ingress != nil {
		ing := *t.Ingress
		ing.Host = strings.TrimSpace(ing.Host)
		if ing.Path == "" {
			ing.Path = DefaultIngressPath
		}
		t.Ingress = &ing
	}

	return t
}

// IsStatefulSet reports whether the tier renders as a StatefulSet.
func (t Tier) IsStatefulSet() bool {
	return t.WorkloadType == WorkloadStatefulSet
}

// WithDefaults returns a deep-enough copy of the request with every tier defaulted.
// The receiver is never modified.
func (r TopologyRequest) WithDefaults() TopologyRequest {
	r.AppName = strings.TrimSpace(r.AppName)
	r.Namespace = strings.TrimSpace(r.Namespace)

	tiers := make([]Tier, len(r.Tiers))
	for i, t := range r.Tiers {
		tiers[i] = t.WithDefaults()
	}
	r.Tiers = tiers
	return r
}
