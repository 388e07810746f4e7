package topology

import "fmt"

// Label keys stamped on every generated resource.
const (
	LabelApp  = "app"
	LabelTier = "tier"
)

// Labels returns the selector labels shared by all resources of a tier.
func Labels(appName, tier string) map[string]string {
	return map[string]string{
		LabelApp:  appName,
		LabelTier: tier,
	}
}

// WorkloadName is the Deployment or StatefulSet name of a tier.
func WorkloadName(appName, tier string) string {
	return fmt.Sprintf("%s-%s", appName, tier)
}

// ServiceName is the regular Service name of a tier.
func ServiceName(appName, tier string) string {
	return WorkloadName(appName, tier)
}

func ConfigMapName(appName, tier string) string {
	return WorkloadName(appName, tier) + "-config"
}

func SecretName(appName, tier string) string {
	return WorkloadName(appName, tier) + "-secret"
}

func PVCName(appName, tier string) string {
	return WorkloadName(appName, tier) + "-pvc"
}

func PVName(appName, tier string) string {
	return WorkloadName(appName, tier) + "-pv"
}

func HeadlessServiceName(appName, tier string) string {
	return WorkloadName(appName, tier) + "-headless"
}

// IngressName is the single aggregated Ingress of an application.
func IngressName(appName string) string {
	return appName + "-ingress"
}

// RBAC object names.
func ServiceAccountName(appName string) string { return appName + "-sa" }
func RoleName(appName string) string           { return appName + "-role" }
func RoleBindingName(appName string) string    { return appName + "-rolebinding" }
