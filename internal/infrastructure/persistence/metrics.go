package persistence

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	savesTotal     *prometheus.CounterVec
	conflictsTotal *prometheus.CounterVec
	rowsAffected   prometheus.Counter
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		savesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devicedesk",
			Name:      "unit_of_work_saves_total",
			Help:      "Total number of unit of work saves by result.",
		}, []string{"result"}),
		conflictsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devicedesk",
			Name:      "write_conflicts_total",
			Help:      "Total number of writes rejected by the database or a stale version.",
		}, []string{"kind"}),
		rowsAffected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "devicedesk",
			Name:      "rows_affected_total",
			Help:      "Total number of rows written by unit of work saves.",
		}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}

func recordWriteConflict(kind string) {
	getMetrics().conflictsTotal.WithLabelValues(kind).Inc()
}

func recordSave(result string, rows int64) {
	m := getMetrics()
	m.savesTotal.WithLabelValues(result).Inc()
	if rows > 0 {
		m.rowsAffected.Add(float64(rows))
	}
}
