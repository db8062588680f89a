package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter EventType = "step_enter"
	EventStepLeave EventType = "step_leave"
	EventPreview   EventType = "preview"
	EventComplete  EventType = "complete"
	EventCancel    EventType = "cancel"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// StepEvent represents entry into or exit from a step.
type StepEvent struct {
	EventBase
	Step    Step   `json:"step"`
	GuideID string `json:"guide_id,omitempty"`
}

// PreviewEvent is emitted when the visible preview changes. An empty GuideID means cleared.
type PreviewEvent struct {
	EventBase
	GuideID    string     `json:"guide_id,omitempty"`
	Capability Capability `json:"capability"`
}

// CompletionEvent is emitted when the reveal dwell time has elapsed.
type CompletionEvent struct {
	EventBase
	GuideID   string        `json:"guide_id"`
	Persisted bool          `json:"persisted"`
	StoreErr  error         `json:"-"`
	Dwell     time.Duration `json:"dwell"`
}

// LifecycleHooks defines callbacks for flow observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnStepEnter func(context.Context, *StepEvent)
	OnStepLeave func(context.Context, *StepEvent)
	OnPreview   func(context.Context, *PreviewEvent)
	OnComplete  func(context.Context, *CompletionEvent)

	// OnCancel fires when a flow is torn down while a completion is still pending.
	OnCancel func(context.Context, *StepEvent)
}

// NewEventBase stamps an event of the given type.
func NewEventBase(t EventType, sessionID string) EventBase {
	return EventBase{
		Timestamp: time.Now(),
		Type:      t,
		SessionID: sessionID,
	}
}
