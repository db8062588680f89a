package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/vestibule/pkg/adapters/memory"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
)

func TestManager_LockMapDoesNotLeak(t *testing.T) {
	mgr := NewManager(memory.NewStore(), func(snap *domain.State, opts ...onboarding.Option) (*onboarding.Flow, error) {
		return nil, fmt.Errorf("unused")
	})
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.WithLock(ctx, sid, func(ctx context.Context) error { return nil })
		_ = mgr.End(ctx, sid)
	}

	lockCount := len(mgr.locks)
	if lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after End", lockCount)
	}
}
