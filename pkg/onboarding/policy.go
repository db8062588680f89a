package onboarding

import "github.com/aretw0/vestibule/pkg/domain"

type activation int

const (
	activateNone activation = iota
	activatePreview
	activateSelect
)

// inputPolicy decides what hover and activation mean for a capability.
type inputPolicy interface {
	// hover reports whether the preview should move to the hovered guide.
	hover(st *domain.State, id string) bool
	activate(st *domain.State, id string) activation
}

func policyFor(c domain.Capability) inputPolicy {
	if c == domain.CapabilityTouch {
		return touchPolicy{}
	}
	return pointerPolicy{}
}

// pointerPolicy: hover previews, click selects.
type pointerPolicy struct{}

func (pointerPolicy) hover(st *domain.State, id string) bool {
	return st.PreviewFor != id
}

func (pointerPolicy) activate(st *domain.State, id string) activation {
	return activateSelect
}

// touchPolicy: synthesized hover is ignored, the first tap previews and a
// second tap on the same guide selects.
type touchPolicy struct{}

func (touchPolicy) hover(st *domain.State, id string) bool {
	return false
}

func (touchPolicy) activate(st *domain.State, id string) activation {
	if st.PreviewFor == id {
		return activateSelect
	}
	return activatePreview
}
