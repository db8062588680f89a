package tests

import (
	"context"
	"testing"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/ports"
)

// RosterLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.RosterLoader.
func RosterLoaderContractTest(t *testing.T, loader ports.RosterLoader, expected []domain.Guide) {
	t.Helper()
	ctx := context.Background()

	// 1. Load returns every expected guide
	t.Run("Load_Complete", func(t *testing.T) {
		guides, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading roster: %v", err)
		}

		if len(guides) != len(expected) {
			t.Errorf("expected %d guides, got %d", len(expected), len(guides))
		}

		for _, want := range expected {
			got, ok := domain.FindGuide(guides, want.ID)
			if !ok {
				t.Errorf("guide %s missing from roster", want.ID)
				continue
			}
			if got != want {
				t.Errorf("guide mismatch for %s. got %+v, want %+v", want.ID, got, want)
			}
		}
	})

	// 2. Load hands out a fresh slice each call
	t.Run("Load_Isolated", func(t *testing.T) {
		first, err := loader.Load(ctx)
		if err != nil || len(first) == 0 {
			t.Skip("roster empty")
		}
		first[0].Name = "mutated"

		second, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading roster: %v", err)
		}
		if second[0].Name == "mutated" {
			t.Error("loader must not share its backing slice with callers")
		}
	})
}
