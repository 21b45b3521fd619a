package game

import (
	"context"
	"testing"
)

func TestSeedDemoData(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	fixClock(svc, checkDay)

	if err := svc.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData: %v", err)
	}

	history := svc.LoginHistory()
	if len(history) == 0 || len(history) > 60 {
		t.Fatalf("login history has %d entries, want 1-60", len(history))
	}
	if svc.Stats().Streak != 7 {
		t.Fatalf("streak=%d, want 7", svc.Stats().Streak)
	}

	// Seeded data survives a reload.
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(svc.LoginHistory()); got != len(history) {
		t.Fatalf("login history shrank on reload: %d -> %d", len(history), got)
	}
}
