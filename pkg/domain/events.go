package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTransition        EventType = "transition"
	EventValidationFailure EventType = "validation_failure"
	EventSubmit            EventType = "submit"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id"`
}

// TransitionEvent records a step change for a conversation.
type TransitionEvent struct {
	EventBase
	From Step `json:"from"`
	To   Step `json:"to"`
}

// ValidationFailureEvent records input rejected by a step's rule.
type ValidationFailureEvent struct {
	EventBase
	Step  Step   `json:"step"`
	Input string `json:"input,omitempty"`
}

// SubmitEvent records a completed flow handed to the sink.
type SubmitEvent struct {
	EventBase
	Service        string `json:"service"`
	NotifyOperator bool   `json:"notify_operator,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnTransition        func(context.Context, *TransitionEvent)
	OnValidationFailure func(context.Context, *ValidationFailureEvent)
	OnSubmit            func(context.Context, *SubmitEvent)
}
