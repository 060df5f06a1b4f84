package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskflow_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)
	TasksCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "taskflow_tasks_created_total",
			Help: "Tasks created",
		},
	)
	PolicyDenials = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskflow_policy_denials_total",
			Help: "Ownership policy denials by operation",
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(Logins)
	prometheus.MustRegister(TasksCreated)
	prometheus.MustRegister(PolicyDenials)
}
