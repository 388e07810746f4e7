// Package manifest compiles a topology.TopologyRequest into Kubernetes YAML
// manifests.
//
// Every resource is built as a typed k8s.io/api object and serialized once,
// with server-populated and empty fields pruned. Compilation is pure: the
// same request always yields byte-identical files.
//
// Files are emitted in a fixed order: the Namespace, then per tier the
// ConfigMap, Secret, PersistentVolumeClaim and PersistentVolume, then per
// tier the workload and its Services, then the application Ingress and the
// RBAC objects.
//
// Usage:
//
//	b, err := manifest.New(manifest.WithStrictVolumes(true)).Compile(req)
//	if err != nil {
//	    return err
//	}
//	for _, f := range b.Files() {
//	    fmt.Println(f.Filename)
//	}
//
// PersistentVolumes with incomplete backend configuration are skipped with a
// warning on the Bundle unless strict volumes are enabled, in which case the
// compilation fails with a *topology.ValidationError.
package manifest
