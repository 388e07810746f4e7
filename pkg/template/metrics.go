package template

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var templateOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "devengine_template_operations_total",
		Help: "Total number of template store operations by outcome",
	},
	[]string{"op", "status"}, // status is "success" or the error code
)
