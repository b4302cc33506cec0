package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var calculations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "thruster",
	Name:      "calculations_total",
	Help:      "Worksheet and tool evaluations by outcome.",
}, []string{"tool", "outcome"})

func init() {
	prometheus.MustRegister(calculations)
}

// Observe counts one evaluation of tool.
func Observe(tool string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	calculations.WithLabelValues(tool, outcome).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
