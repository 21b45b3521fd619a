package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	local, err := OpenLocal(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	t.Cleanup(func() { _ = local.Close() })
	return local
}

func TestLocalRoundTrip(t *testing.T) {
	local := newTestLocal(t)
	ctx := context.Background()

	in := Stats{Level: 3, XP: 40, MaxXP: 144, Coins: -20, Rank: "D", Streak: 5}
	if err := local.Set(ctx, KeyStats, in); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out Stats
	if err := local.Get(ctx, KeyStats, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}

	// Overwrite replaces the value.
	in.Coins = 100
	if err := local.Set(ctx, KeyStats, in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := local.Get(ctx, KeyStats, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Coins != 100 {
		t.Fatalf("coins=%d after overwrite, want 100", out.Coins)
	}
}

func TestLocalGetMissingKey(t *testing.T) {
	local := newTestLocal(t)

	var s Stats
	if err := local.Get(context.Background(), "never_set", &s); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing key = %v, want ErrNotFound", err)
	}
}

func TestLocalRemoveAndClear(t *testing.T) {
	local := newTestLocal(t)
	ctx := context.Background()

	if err := local.Set(ctx, KeyProfile, Profile{Name: "Jin"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := local.Set(ctx, KeyStats, Stats{Level: 1}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := local.Remove(ctx, KeyProfile); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	var p Profile
	if err := local.Get(ctx, KeyProfile, &p); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Remove = %v, want ErrNotFound", err)
	}
	// Removing an absent key is fine.
	if err := local.Remove(ctx, KeyProfile); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}

	if err := local.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	var s Stats
	if err := local.Get(ctx, KeyStats, &s); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Clear = %v, want ErrNotFound", err)
	}
}
