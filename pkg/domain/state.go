package domain

import (
	"time"
)

// State represents the snapshot of one onboarding session.
// Everything but the final selection is transient; the snapshot exists so that a
// server host can resume a session after a restart.
type State struct {
	// SessionID identifies the onboarding session.
	SessionID string `json:"session_id"`

	// Step is the current position in the flow.
	Step Step `json:"step"`

	// Capability is the input capability probed once when the session began.
	Capability Capability `json:"capability"`

	// Order holds the guide IDs in the display order drawn for this session.
	Order []string `json:"order"`

	// Seed is the random seed the order was drawn from.
	Seed int64 `json:"seed"`

	// SelectedGuideID is set in confirm and reveal, empty otherwise.
	SelectedGuideID string `json:"selected_guide_id,omitempty"`

	// PreviewFor is the guide whose preview (philosophy and magistry overlay) is visible.
	PreviewFor string `json:"preview_for,omitempty"`

	// SelectionKey is where the selection is written on completion. Empty means SelectionKey.
	SelectionKey string `json:"selection_key,omitempty"`

	// Completed indicates that the completion side effect has fired.
	Completed bool `json:"completed,omitempty"`

	// History tracks the steps entered, in order.
	History []Step `json:"history"`

	// StartedAt is when the session began.
	StartedAt time.Time `json:"started_at"`

	// Sealed carries an encrypted snapshot. Only envelopes written by an encrypting
	// store set it; a live flow never does.
	Sealed string `json:"sealed,omitempty"`
}

// NewState creates a clean state at the welcome step.
func NewState(sessionID string, capability Capability, order []string, seed int64) *State {
	return &State{
		SessionID:  sessionID,
		Step:       StepWelcome,
		Capability: capability,
		Order:      append([]string(nil), order...),
		Seed:       seed,
		History:    []Step{StepWelcome},
		StartedAt:  time.Now().UTC(),
	}
}

// Snapshot returns a deep copy of the state.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	out := *s
	out.Order = append([]string(nil), s.Order...)
	out.History = append([]Step(nil), s.History...)
	return &out
}

// Terminal reports whether the flow has reached its sink step.
func (s *State) Terminal() bool {
	return s.Step == StepReveal
}
