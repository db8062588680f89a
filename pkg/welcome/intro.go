package welcome

import "github.com/aretw0/vestibule/pkg/domain"

// Intro is the copy shown on the welcome step.
var Intro = domain.Message{
	Title: "Before you begin",
	Body: "Every traveler who passes this threshold walks with a guide. " +
		"Each of them has seen a different part of the world and will show it to you their own way. " +
		"Take a moment to meet them, then choose the one you want at your side.",
}

// Hint returns the instruction shown on the choose step for a capability.
func Hint(c domain.Capability) string {
	if c == domain.CapabilityTouch {
		return "Tap a guide to learn more. Tap again to choose."
	}
	return "Hover over a guide to learn more. Click to choose."
}
