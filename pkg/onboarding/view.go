package onboarding

import (
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/welcome"
)

// Card is a guide as a host renders it.
type Card struct {
	domain.Guide
	ImageURL  string `json:"image_url"`
	Previewed bool   `json:"previewed,omitempty"`
}

// View is everything a host needs to render the current step.
type View struct {
	SessionID  string            `json:"session_id"`
	Step       domain.Step       `json:"step"`
	Capability domain.Capability `json:"capability"`

	// Intro is set on the welcome step.
	Intro *domain.Message `json:"intro,omitempty"`

	// Hint explains the preview/selection gesture on the choose step.
	Hint string `json:"hint,omitempty"`

	// Guides is the roster in display order, set on choose and confirm.
	Guides []Card `json:"guides,omitempty"`

	// Preview is the guide whose philosophy and magistry overlay is visible.
	Preview *Card `json:"preview,omitempty"`

	// Selected is set on confirm and reveal.
	Selected *Card `json:"selected,omitempty"`

	// Message is the welcome message, set on reveal.
	Message *domain.Message `json:"message,omitempty"`

	Completed bool `json:"completed"`
}

// View renders the current state.
func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := f.state
	v := View{
		SessionID:  f.sessionID,
		Step:       st.Step,
		Capability: f.capability,
		Completed:  st.Completed,
	}

	switch st.Step {
	case domain.StepWelcome:
		intro := welcome.Intro
		v.Intro = &intro
	case domain.StepChoose, domain.StepConfirm:
		if st.Step == domain.StepChoose {
			v.Hint = welcome.Hint(f.capability)
		}
		v.Guides = make([]Card, 0, len(f.guides))
		for _, g := range f.guides {
			v.Guides = append(v.Guides, f.card(g, g.ID == st.PreviewFor))
		}
	}

	if st.Step == domain.StepChoose && st.PreviewFor != "" {
		if g, ok := f.guide(st.PreviewFor); ok {
			c := f.card(g, true)
			v.Preview = &c
		}
	}
	if st.SelectedGuideID != "" {
		if g, ok := f.guide(st.SelectedGuideID); ok {
			c := f.card(g, false)
			v.Selected = &c
		}
	}
	if st.Step == domain.StepReveal && f.message != nil {
		msg := *f.message
		v.Message = &msg
	}
	return v
}

func (f *Flow) card(g domain.Guide, previewed bool) Card {
	url := g.Image
	if f.resolver != nil {
		url = f.resolver.Resolve(g.Image)
	}
	return Card{Guide: g, ImageURL: url, Previewed: previewed}
}
