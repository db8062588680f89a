package roster

import (
	"errors"
	"fmt"

	"github.com/aretw0/vestibule/pkg/domain"
)

// Validate checks a roster for structural problems and returns all of them joined.
// Tones are not checked here: a tone without a welcome message falls back, and
// welcome.Table.Missing reports it.
func Validate(guides []domain.Guide) error {
	if len(guides) == 0 {
		return domain.ErrEmptyRoster
	}

	var errs []error
	seen := make(map[string]bool, len(guides))
	for i, g := range guides {
		if g.ID == "" {
			errs = append(errs, fmt.Errorf("guide #%d: missing id", i))
			continue
		}
		if seen[g.ID] {
			errs = append(errs, fmt.Errorf("guide %s: duplicate id", g.ID))
		}
		seen[g.ID] = true

		if g.Name == "" {
			errs = append(errs, fmt.Errorf("guide %s: missing name", g.ID))
		}
		if g.Image == "" {
			errs = append(errs, fmt.Errorf("guide %s: missing image", g.ID))
		}
	}
	return errors.Join(errs...)
}
