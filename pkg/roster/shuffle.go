package roster

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/aretw0/vestibule/pkg/domain"
)

// NewSeed returns a cryptographically random seed for a session shuffle.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Shuffle returns a uniformly random permutation of guides.
// The input slice is left untouched.
func Shuffle(guides []domain.Guide, rng *rand.Rand) []domain.Guide {
	out := make([]domain.Guide, len(guides))
	copy(out, guides)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Order shuffles guides with a source seeded by seed and returns the guides
// together with their IDs in display order.
func Order(guides []domain.Guide, seed int64) ([]domain.Guide, []string) {
	shuffled := Shuffle(guides, rand.New(rand.NewSource(seed)))
	return shuffled, IDs(shuffled)
}

// Arrange returns the guides listed in ids, in that order.
// IDs that are not part of the roster are skipped.
func Arrange(guides []domain.Guide, ids []string) []domain.Guide {
	out := make([]domain.Guide, 0, len(ids))
	for _, id := range ids {
		if g, ok := domain.FindGuide(guides, id); ok {
			out = append(out, g)
		}
	}
	return out
}

// IDs extracts guide IDs preserving order.
func IDs(guides []domain.Guide) []string {
	ids := make([]string, len(guides))
	for i, g := range guides {
		ids[i] = g.ID
	}
	return ids
}
