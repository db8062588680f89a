package roster

import (
	"context"

	"github.com/aretw0/vestibule/pkg/domain"
)

var builtin = []domain.Guide{
	{
		ID:         "Vela",
		Name:       "Vela",
		Title:      "Keeper of the Lantern",
		Philosophy: "A small light, carried far, is worth more than a bonfire left behind.",
		Magistry:   "Magistry of Hearths",
		Image:      "portrait:vela",
		Tone:       domain.ToneWarm,
	},
	{
		ID:         "Orin",
		Name:       "Orin",
		Title:      "Cartographer of Verse",
		Philosophy: "Every map is a poem that agreed to be useful.",
		Magistry:   "Magistry of Ink",
		Image:      "/guides/orin.webp",
		Tone:       domain.TonePoetic,
	},
	{
		ID:         "Sable",
		Name:       "Sable",
		Title:      "Warden of the Long Road",
		Philosophy: "What you cannot change, you can still carry well.",
		Magistry:   "Magistry of Stone",
		Image:      "portrait:sable",
		Tone:       domain.ToneStoic,
	},
	{
		ID:         "Pip",
		Name:       "Pip",
		Title:      "Apprentice of Small Mischiefs",
		Philosophy: "If the door is locked, try the window. If the window is locked, try knocking.",
		Magistry:   "Magistry of Bells",
		Image:      "/guides/pip.webp",
		Tone:       domain.TonePlayful,
	},
	{
		ID:         "Nyx",
		Name:       "Nyx",
		Title:      "Archivist of Unsaid Things",
		Philosophy: "The question you did not ask is the one that follows you home.",
		Magistry:   "Magistry of Veils",
		Image:      "portrait:nyx",
		Tone:       domain.ToneMysterious,
	},
}

// Builtin returns a copy of the roster shipped with the module.
func Builtin() []domain.Guide {
	out := make([]domain.Guide, len(builtin))
	copy(out, builtin)
	return out
}

// Static implements ports.RosterLoader over a fixed slice.
type Static struct {
	guides []domain.Guide
}

// NewStatic creates a loader that always returns a copy of guides.
func NewStatic(guides ...domain.Guide) *Static {
	return &Static{guides: append([]domain.Guide(nil), guides...)}
}

// Load returns the roster.
func (s *Static) Load(ctx context.Context) ([]domain.Guide, error) {
	return append([]domain.Guide(nil), s.guides...), nil
}
