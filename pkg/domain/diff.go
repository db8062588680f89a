package domain

// StateDiff represents the changes between two states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	Step *Step `json:"step,omitempty"`

	// SelectedGuideID is present when the selection changed.
	// A pointer to "" means the selection was cleared.
	SelectedGuideID *string `json:"selected_guide_id,omitempty"`

	// PreviewFor is present when the preview changed. A pointer to "" means cleared.
	PreviewFor *string `json:"preview_for,omitempty"`

	Completed *bool `json:"completed,omitempty"`

	// HistoryParams contains *new* items appended to history.
	HistoryParams *HistoryDelta `json:"history,omitempty"`
}

// HistoryDelta represents changes to the history stack.
type HistoryDelta struct {
	Appended []Step `json:"appended"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{
		SessionID: newState.SessionID,
	}

	if oldState == nil || oldState.Step != newState.Step {
		step := newState.Step
		diff.Step = &step
	}
	if oldState == nil {
		if newState.SelectedGuideID != "" {
			diff.SelectedGuideID = ptr(newState.SelectedGuideID)
		}
		if newState.PreviewFor != "" {
			diff.PreviewFor = ptr(newState.PreviewFor)
		}
		if newState.Completed {
			diff.Completed = ptr(true)
		}
	} else {
		if oldState.SelectedGuideID != newState.SelectedGuideID {
			diff.SelectedGuideID = ptr(newState.SelectedGuideID)
		}
		if oldState.PreviewFor != newState.PreviewFor {
			diff.PreviewFor = ptr(newState.PreviewFor)
		}
		if oldState.Completed != newState.Completed {
			diff.Completed = ptr(newState.Completed)
		}
	}

	diff.HistoryParams = diffHistory(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// diffHistory assumes append-only history. Return-to-choose appends, it never rewrites.
func diffHistory(old *State, new *State) *HistoryDelta {
	if len(new.History) == 0 {
		return nil
	}
	if old == nil {
		return &HistoryDelta{Appended: append([]Step(nil), new.History...)}
	}
	if len(new.History) > len(old.History) {
		return &HistoryDelta{
			Appended: append([]Step(nil), new.History[len(old.History):]...),
		}
	}
	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Step == nil &&
		d.SelectedGuideID == nil &&
		d.PreviewFor == nil &&
		d.Completed == nil &&
		d.HistoryParams == nil
}

func ptr[T any](v T) *T {
	return &v
}
