package manifest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	compileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "devengine_manifest_compile_duration_seconds",
			Help:    "Duration of manifest compilation in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	compileTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devengine_manifest_compile_total",
			Help: "Total number of manifest compilations",
		},
		[]string{"status"}, // success, invalid or error
	)

	manifestsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devengine_manifests_generated_total",
			Help: "Total number of manifests generated by kind",
		},
		[]string{"kind"},
	)

	persistentVolumesSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devengine_persistent_volumes_skipped_total",
			Help: "Total number of PersistentVolumes skipped because of incomplete configuration",
		},
		[]string{"type"},
	)
)
