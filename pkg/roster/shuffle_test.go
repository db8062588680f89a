package roster_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func guidesFromIDs(ids []string) []domain.Guide {
	out := make([]domain.Guide, len(ids))
	for i, id := range ids {
		out[i] = domain.Guide{ID: id, Name: id, Tone: domain.ToneWarm}
	}
	return out
}

func TestShuffle_IsPermutation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Z][a-z]{2,6}`), 0, 24, rapid.ID[string]).Draw(t, "ids")
		seed := rapid.Int64().Draw(t, "seed")

		input := guidesFromIDs(ids)
		before := roster.IDs(input)

		out := roster.Shuffle(input, rand.New(rand.NewSource(seed)))

		if len(out) != len(input) {
			t.Fatalf("length changed: %d -> %d", len(input), len(out))
		}
		got := roster.IDs(out)
		want := append([]string(nil), before...)
		sort.Strings(got)
		sort.Strings(want)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("not a permutation: %v vs %v", got, want)
			}
		}
		for i, id := range roster.IDs(input) {
			if id != before[i] {
				t.Fatalf("input mutated at %d", i)
			}
		}
	})
}

func TestOrder_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		_, a := roster.Order(roster.Builtin(), seed)
		_, b := roster.Order(roster.Builtin(), seed)
		if fmt.Sprint(a) != fmt.Sprint(b) {
			t.Fatalf("same seed gave %v and %v", a, b)
		}
	})
}

func TestShuffle_Unbiased(t *testing.T) {
	// Each of the 3! orderings should show up roughly equally often.
	input := guidesFromIDs([]string{"a", "b", "c"})
	rng := rand.New(rand.NewSource(1))
	counts := make(map[string]int)
	const n = 60000
	for i := 0; i < n; i++ {
		counts[fmt.Sprint(roster.IDs(roster.Shuffle(input, rng)))]++
	}

	require.Len(t, counts, 6)
	for perm, c := range counts {
		assert.InDelta(t, n/6, c, n/6*0.1, "ordering %s", perm)
	}
}

func TestArrange(t *testing.T) {
	guides := roster.Builtin()
	got := roster.Arrange(guides, []string{"Orin", "missing", "Vela"})
	assert.Equal(t, []string{"Orin", "Vela"}, roster.IDs(got))
}

func TestNewSeed(t *testing.T) {
	a, err := roster.NewSeed()
	require.NoError(t, err)
	b, err := roster.NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
