package asset

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var assignmentLinks = sync.OnceValue(func() *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "devicedesk",
		Name:      "assignment_links_total",
		Help:      "Total number of assignment links inserted or soft-deleted by reconciliation.",
	}, []string{"action"})
})

func recordAssignments(added, removed int) {
	if added > 0 {
		assignmentLinks().WithLabelValues("insert").Add(float64(added))
	}
	if removed > 0 {
		assignmentLinks().WithLabelValues("soft_delete").Add(float64(removed))
	}
}
