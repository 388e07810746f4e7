// Package topology defines the application topology accepted by the manifest
// compiler.
//
// A TopologyRequest names an application, its namespace and an ordered list
// of tiers. Each Tier is one workload (Deployment or StatefulSet) plus its
// optional supporting resources: environment, ConfigMap and Secret data,
// resource requests and limits, probes, a PersistentVolumeClaim, a
// PersistentVolume with one of eight storage backends, a Service and an
// Ingress route.
//
// # Defaults
//
// Optional fields are defaulted in exactly one place per type through the
// WithDefaults methods:
//
//	Probe      initialDelaySeconds=10, periodSeconds=10
//	PVCConfig  size=5Gi, accessMode=ReadWriteOnce, mountPath=/data
//	PVConfig   type=none, size=5Gi, accessMode=ReadWriteOnce, reclaimPolicy=Retain
//	Tier       workloadType=Deployment, service.targetPort=containerPort
//
// # Validation
//
// Validate collects every violation rather than stopping at the first, so a
// caller can fix a request in one round trip:
//
//	if err := topology.Validate(req); err != nil {
//	    var ve *topology.ValidationError
//	    if errors.As(err, &ve) {
//	        for _, v := range ve.Violations {
//	            fmt.Println(v)
//	        }
//	    }
//	}
//
// CheckShape complements Validate for raw JSON input by checking field types
// against an embedded JSON schema before decoding.
//
// # Naming
//
// Generated resource names derive from the application and tier names, for
// example WorkloadName("web", "api") is "web-api" and ConfigMapName("web",
// "api") is "web-api-config".
package topology
