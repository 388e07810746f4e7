package manifest

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Arunachalam-140897/DevEngine/pkg/topology"
)

var defaultCompiler = &Compiler{}

// Option is a functional option for configuring Compiler instances.
type Option func(*Compiler)

// WithStrictVolumes makes an incomplete or unknown PersistentVolume
// configuration fail the compilation instead of being skipped with a warning.
func WithStrictVolumes(strict bool) Option {
	return func(c *Compiler) {
		c.StrictVolumes = strict
	}
}

// New creates a Compiler with the provided functional options.
func New(opts ...Option) *Compiler {
	c := &Compiler{}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compiler turns a TopologyRequest into a Bundle of manifests.
// It holds no per-call state and is safe for concurrent use.
type Compiler struct {
	StrictVolumes bool
}

// Compile compiles req with a shared default Compiler.
func Compile(req topology.TopologyRequest) (*Bundle, error) {
	return defaultCompiler.Compile(req)
}

// Compile validates req and renders every applicable manifest.
//
// Supporting resources (ConfigMap, Secret, PVC, PV) are rendered for every
// tier before any workload, so workloads can mount them by name. Workloads
// and Services follow in tier order, then the aggregated Ingress and the
// RBAC objects. A validation failure returns *topology.ValidationError and
// no bundle.
func (c *Compiler) Compile(req topology.TopologyRequest) (*Bundle, error) {
	start := time.Now()
	defer func() {
		compileDuration.Observe(time.Since(start).Seconds())
	}()

	b, err := c.compile(req)
	if err != nil {
		var ve *topology.ValidationError
		if errors.As(err, &ve) {
			compileTotal.WithLabelValues("invalid").Inc()
		} else {
			compileTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	compileTotal.WithLabelValues("success").Inc()
	slog.Debug("manifests compiled",
		"app", req.AppName,
		"files", b.Len(),
		"warnings", len(b.Warnings),
		"duration", time.Since(start))

	return b, nil
}

func (c *Compiler) compile(req topology.TopologyRequest) (*Bundle, error) {
	if err := topology.Validate(req); err != nil {
		return nil, err
	}

	req = req.WithDefaults()
	s := scope{app: req.AppName, namespace: req.Namespace, rbac: req.EnableRBAC}
	b := newBundle(req.AppName)

	if req.CreateNamespace {
		if err := b.addResult(renderNamespace(s)); err != nil {
			return nil, err
		}
	}

	refs, err := c.supportingResources(b, req.Tiers, s)
	if err != nil {
		return nil, err
	}

	for _, t := range req.Tiers {
		if err := workloadResources(b, t, s, refs[t.Name]); err != nil {
			return nil, err
		}
	}

	for _, t := range req.Tiers {
		if t.Ingress != nil && t.Service == nil {
			b.warn("tier %q: ingress requires a service, no ingress path generated", t.Name)
			slog.Warn("ingress ignored for tier without service", "app", s.app, "tier", t.Name)
		}
	}
	if err := b.addResult(renderIngress(req.Tiers, s)); err != nil {
		return nil, err
	}

	if req.EnableRBAC {
		objs, err := renderRBAC(s)
		if err != nil {
			return nil, err
		}
		for _, r := range objs {
			if err := b.add(r); err != nil {
				return nil, err
			}
		}
	}

	return b, nil
}

// supportingResources renders the per-tier ConfigMap, Secret, PVC and PV and
// returns the generated names keyed by tier name.
func (c *Compiler) supportingResources(b *Bundle, tiers []topology.Tier, s scope) (map[string]supportRefs, error) {
	refs := make(map[string]supportRefs, len(tiers))
	var strictViolations []string

	for _, t := range tiers {
		var ref supportRefs

		cm, err := renderConfigMap(t, s)
		if err != nil {
			return nil, err
		}
		if cm != nil {
			ref.configMap = cm.Name
		}

		secret, err := renderSecret(t, s)
		if err != nil {
			return nil, err
		}
		if secret != nil {
			ref.secret = secret.Name
		}

		pvc, err := renderPVC(t, s)
		if err != nil {
			return nil, err
		}
		if pvc != nil {
			ref.pvc = pvc.Name
		}

		pv, skip, err := renderPV(t, s)
		if err != nil {
			return nil, err
		}
		if skip != nil {
			if c.StrictVolumes {
				strictViolations = append(strictViolations, fmt.Sprintf("tiers.%s.pv: %s", t.Name, skip))
			} else {
				persistentVolumesSkippedTotal.WithLabelValues(string(skip.volumeType)).Inc()
				b.warn("tier %q: %s, no PersistentVolume generated", t.Name, skip)
				slog.Warn("persistent volume skipped",
					"app", s.app, "tier", t.Name, "type", skip.volumeType, "reason", skip.String())
			}
		}

		for _, r := range []*Rendered{cm, secret, pvc, pv} {
			if err := b.add(r); err != nil {
				return nil, err
			}
		}
		refs[t.Name] = ref
	}

	if len(strictViolations) > 0 {
		return nil, &topology.ValidationError{Violations: strictViolations}
	}
	return refs, nil
}

// workloadResources renders the tier's workload and Services.
func workloadResources(b *Bundle, t topology.Tier, s scope, ref supportRefs) error {
	if t.IsStatefulSet() {
		if err := b.addResult(renderHeadlessService(t, s)); err != nil {
			return err
		}
		if err := b.addResult(renderStatefulSet(t, s, ref)); err != nil {
			return err
		}
	} else {
		if err := b.addResult(renderDeployment(t, s, ref)); err != nil {
			return err
		}
	}
	return b.addResult(renderService(t, s))
}
