package domain

import (
	"fmt"
	"strings"
)

// Step is a position in the onboarding flow.
type Step string

const (
	StepWelcome Step = "welcome" // Introductory text
	StepChoose  Step = "choose"  // Guide roster, preview allowed
	StepConfirm Step = "confirm" // A guide is selected, waiting for confirmation
	StepReveal  Step = "reveal"  // Sink state: welcome message and completion
)

// Capability is the input capability of the visitor's device.
// It is resolved once per session and decides the preview/selection contract.
type Capability string

const (
	// CapabilityPointer means hover previews a guide and a single click selects it.
	CapabilityPointer Capability = "pointer"
	// CapabilityTouch means a first tap previews a guide and a second tap selects it.
	CapabilityTouch Capability = "touch"
)

// ParseCapability converts a textual capability. Empty input resolves to pointer.
func ParseCapability(s string) (Capability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(CapabilityPointer), "mouse":
		return CapabilityPointer, nil
	case string(CapabilityTouch), "coarse":
		return CapabilityTouch, nil
	default:
		return "", fmt.Errorf("unknown input capability %q", s)
	}
}
