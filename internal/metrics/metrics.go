package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderboard_orders_submitted_total",
		Help: "Total number of orders submitted.",
	})

	OrdersCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderboard_orders_completed_total",
		Help: "Total number of orders marked as done.",
	})

	UsersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderboard_user_logins_total",
		Help: "Total number of successful registration/login submissions.",
	})

	StorageErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderboard_storage_errors_total",
		Help: "Total number of storage errors by operation.",
	},
		[]string{"operation"},
	)

	AnimationFetchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderboard_animation_fetch_failures_total",
		Help: "Total number of failed animation fetches by animation name.",
	},
		[]string{"animation"},
	)

	PendingOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orderboard_pending_orders",
		Help: "Number of pending orders seen by the last board render.",
	})
)
