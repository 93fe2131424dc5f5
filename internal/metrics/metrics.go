// Package metrics defines the prometheus collectors for the bridge and
// exposes engine lifecycle hooks wired to them.
package metrics

import (
	"context"
	"time"

	"github.com/lobalabs/lobabot/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lobabot_messages_received_total",
			Help: "Total number of inbound messages accepted by the bridge",
		},
		[]string{"kind"},
	)

	Transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lobabot_transitions_total",
			Help: "Total number of conversation step transitions",
		},
		[]string{"from", "to"},
	)

	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lobabot_validation_failures_total",
			Help: "Total number of inputs rejected by step validation",
		},
		[]string{"step"},
	)

	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lobabot_submissions_total",
			Help: "Total number of completed flows forwarded to the sink",
		},
		[]string{"service"},
	)

	OutboundSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "lobabot_outbound_request_seconds",
			Help: "Duration of outbound HTTP calls",
		},
		[]string{"target"},
	)
)

func init() {
	prometheus.MustRegister(
		MessagesReceived,
		Transitions,
		ValidationFailures,
		Submissions,
		OutboundSeconds,
	)
}

// ObserveOutbound records the duration of one outbound call.
func ObserveOutbound(target string, d time.Duration) {
	OutboundSeconds.WithLabelValues(target).Observe(d.Seconds())
}

// EngineHooks returns lifecycle hooks that feed the collectors.
func EngineHooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			Transitions.WithLabelValues(string(e.From), string(e.To)).Inc()
		},
		OnValidationFailure: func(_ context.Context, e *domain.ValidationFailureEvent) {
			ValidationFailures.WithLabelValues(string(e.Step)).Inc()
		},
		OnSubmit: func(_ context.Context, e *domain.SubmitEvent) {
			Submissions.WithLabelValues(e.Service).Inc()
		},
	}
}
