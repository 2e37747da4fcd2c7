// Package metrics exposes Prometheus metrics for the assignment core:
// admission outcomes, reaping activity and transport health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the application's own prometheus registry, kept separate
// from the default one.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// ChatsAssigned counts chats successfully assigned to an agent.
var ChatsAssigned = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "assign",
	Name:      "chats_assigned_total",
	Help:      "Chats assigned to an agent and persisted to the store",
})

// ChatsRefused counts chats refused by the admission controller.
var ChatsRefused = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "assign",
	Name:      "chats_refused_total",
	Help:      "Chats refused because the queue ceiling was exceeded",
}, []string{"reason"})

// OverflowProvisions counts overflow pool creations. More than a handful
// over a process lifetime points at the idempotence marker not holding.
var OverflowProvisions = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "assign",
	Name:      "overflow_provisions_total",
	Help:      "Times an overflow agent pool was provisioned",
})

// SessionsReaped counts sessions the liveness monitor marked inactive.
var SessionsReaped = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "monitor",
	Name:      "sessions_reaped_total",
	Help:      "Stale sessions marked inactive by the liveness monitor",
})

// PublishFailures counts assignment notices that could not be published.
// The assignment itself is already durable when this fires.
var PublishFailures = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "assign",
	Name:      "publish_failures_total",
	Help:      "Assignment notices that failed to publish",
})

// MessagesRejected counts inbound deliveries dropped without requeue.
var MessagesRejected = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "consumer",
	Name:      "messages_rejected_total",
	Help:      "Inbound deliveries rejected without requeue",
})

// PendingChats tracks the pending-queue depth as last read from the store.
var PendingChats = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "assign",
	Name:      "pending_chats",
	Help:      "Pending chat count at the last admission decision",
})

// ShiftCapacity tracks total assignable capacity at the last decision.
var ShiftCapacity = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "assign",
	Name:      "shift_capacity",
	Help:      "Sum of concurrency ceilings over on-shift agents at the last admission decision",
})

// AssignmentDuration tracks end-to-end handler latency per delivery.
var AssignmentDuration = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "assign",
	Name:      "duration_seconds",
	Help:      "Time taken to process one chat request end to end",
	Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
})
