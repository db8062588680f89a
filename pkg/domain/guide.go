package domain

// Guide represents a selectable character persona.
// Guides are loaded once per session and treated as immutable afterwards.
type Guide struct {
	ID         string `json:"id" yaml:"id" mapstructure:"id"`
	Name       string `json:"name" yaml:"name" mapstructure:"name"`
	Title      string `json:"title" yaml:"title" mapstructure:"title"`
	Philosophy string `json:"philosophy" yaml:"philosophy" mapstructure:"philosophy"`
	Magistry   string `json:"magistry" yaml:"magistry" mapstructure:"magistry"`

	// Image is the stored image reference. It is either a direct path or a legacy
	// indirect key; hosts resolve it before rendering.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Tone selects the welcome message shown when this guide is revealed.
	Tone Tone `json:"tone" yaml:"tone" mapstructure:"tone"`
}

// FindGuide returns the guide with the given ID.
func FindGuide(guides []Guide, id string) (Guide, bool) {
	for _, g := range guides {
		if g.ID == id {
			return g, true
		}
	}
	return Guide{}, false
}
