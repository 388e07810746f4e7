package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var generateRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "devengine_generate_requests_total",
		Help: "Total number of generate requests by module and outcome",
	},
	[]string{"module", "status"}, // status is "success" or the HTTP status code
)
