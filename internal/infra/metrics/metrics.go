package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UnitWeightCalcs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metalstock",
		Name:      "unit_weight_calculations_total",
		Help:      "Unit weight calculations by shape and result.",
	}, []string{"shape", "result"})

	LotsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metalstock",
		Name:      "lots_submitted_total",
		Help:      "Lots handed to the lot sink.",
	}, []string{"result"})

	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metalstock",
		Name:      "validation_failures_total",
		Help:      "Rejected inputs by error code.",
	}, []string{"code"})
)

// CalcResult метка результата расчёта: ok | unknown | error
func CalcResult(ok bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case ok:
		return "ok"
	default:
		return "unknown"
	}
}
