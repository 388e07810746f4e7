package topology

import "fmt"

// VolumeType selects the PersistentVolume storage backend.
type VolumeType string

const (
	VolumeNone      VolumeType = "none"
	VolumeHostPath  VolumeType = "hostPath"
	VolumeNFS       VolumeType = "nfs"
	VolumeLocal     VolumeType = "local"
	VolumeAWSEBS    VolumeType = "awsEbs"
	VolumeGCEPD     VolumeType = "gcePd"
	VolumeAzureDisk VolumeType = "azureDisk"
	VolumeCephRBD   VolumeType = "cephRbd"
	VolumeISCSI     VolumeType = "iscsi"
)

// SupportedVolumeTypes returns every backend type, excluding none.
func SupportedVolumeTypes() []VolumeType {
	return []VolumeType{
		VolumeHostPath,
		VolumeNFS,
		VolumeLocal,
		VolumeAWSEBS,
		VolumeGCEPD,
		VolumeAzureDisk,
		VolumeCephRBD,
		VolumeISCSI,
	}
}

// SupportedVolumeTypesAsStrings returns supported volume types as strings.
func SupportedVolumeTypesAsStrings() []string {
	types := SupportedVolumeTypes()
	strs := make([]string, len(types))
	for i, t := range types {
		strs[i] = string(t)
	}
	return strs
}

// IsValid reports whether v is none or a supported backend type.
func (v VolumeType) IsValid() bool {
	if v == VolumeNone {
		return true
	}
	for _, t := range SupportedVolumeTypes() {
		if v == t {
			return true
		}
	}
	return false
}

func (v VolumeType) String() string {
	return string(v)
}

// ParseVolumeType converts a string to a VolumeType. The empty string maps to none.
func ParseVolumeType(s string) (VolumeType, error) {
	if s == "" {
		return VolumeNone, nil
	}
	v := VolumeType(s)
	if !v.IsValid() {
		return "", fmt.Errorf("unknown volume type: %s", s)
	}
	return v, nil
}
