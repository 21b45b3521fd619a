package store

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Karthikeyasharma979/fitness/internal/api"
)

// newSyncServer starts an httptest sync backend. Migration is up to the
// caller; an unmigrated server answers SCHEMA_MISSING on every data
// route, which is exactly what the fallback path needs.
func newSyncServer(t *testing.T, migrate bool) *httptest.Server {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "sync.db"))
	if err != nil {
		t.Fatalf("open sync db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	srv := api.New(db)
	if migrate {
		if err := srv.Migrate(context.Background()); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestAdapterRemoteRoundTrip(t *testing.T) {
	ctx := context.Background()
	ts := newSyncServer(t, true)
	local := newTestLocal(t)
	adapter := NewAdapter(local, NewRemote(ts.URL))

	sess, err := adapter.Login(ctx)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Demo || sess.PlayerID == "" {
		t.Fatalf("want an authenticated session, got %+v", sess)
	}
	if adapter.LocalOnly() {
		t.Fatal("adapter must use the remote backend")
	}

	in := Stats{Level: 2, XP: 40, MaxXP: 120, Coins: 77, Rank: "E"}
	if err := adapter.SaveStats(ctx, in); err != nil {
		t.Fatalf("SaveStats: %v", err)
	}
	out, err := adapter.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if out == nil || *out != in {
		t.Fatalf("stats round trip mismatch: %+v != %+v", out, in)
	}

	// Remote mode does not shadow-write to local storage.
	var shadow Stats
	if err := local.Get(ctx, KeyStats, &shadow); err != ErrNotFound {
		t.Fatalf("local Get = %v, want ErrNotFound", err)
	}
}

func TestAdapterQuestSlotRemote(t *testing.T) {
	ctx := context.Background()
	ts := newSyncServer(t, true)
	adapter := NewAdapter(newTestLocal(t), NewRemote(ts.URL))
	if _, err := adapter.Login(ctx); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Empty slot reads as nil, not an error.
	q, err := adapter.Quest(ctx)
	if err != nil || q != nil {
		t.Fatalf("empty slot = (%+v, %v), want (nil, nil)", q, err)
	}

	in := Quest{ID: "q1", Kind: "SUDDEN", Title: "SUDDEN QUEST", Deadline: time.Now().Add(time.Hour).UTC()}
	if err := adapter.SaveQuest(ctx, in); err != nil {
		t.Fatalf("SaveQuest: %v", err)
	}
	q, err = adapter.Quest(ctx)
	if err != nil {
		t.Fatalf("Quest: %v", err)
	}
	if q == nil || q.ID != "q1" || q.Kind != "SUDDEN" {
		t.Fatalf("quest = %+v", q)
	}

	if err := adapter.ClearQuest(ctx); err != nil {
		t.Fatalf("ClearQuest: %v", err)
	}
	q, err = adapter.Quest(ctx)
	if err != nil || q != nil {
		t.Fatalf("cleared slot = (%+v, %v), want (nil, nil)", q, err)
	}
}

func TestAdapterWeightLogRemote(t *testing.T) {
	ctx := context.Background()
	ts := newSyncServer(t, true)
	adapter := NewAdapter(newTestLocal(t), NewRemote(ts.URL))
	if _, err := adapter.Login(ctx); err != nil {
		t.Fatalf("Login: %v", err)
	}

	for _, w := range []float64{80.0, 79.5, 79.1} {
		if err := adapter.AppendWeight(ctx, WeightEntry{Date: "2026-08-29", Weight: w}); err != nil {
			t.Fatalf("AppendWeight(%v): %v", w, err)
		}
	}
	hist, err := adapter.WeightHistory(ctx)
	if err != nil {
		t.Fatalf("WeightHistory: %v", err)
	}
	if len(hist) != 3 {
		t.Fatalf("len=%d, want 3", len(hist))
	}
	if hist[0].Weight != 80.0 || hist[2].Weight != 79.1 {
		t.Fatalf("history out of order: %+v", hist)
	}
}

func TestAdapterSchemaMissingFallsBackForGood(t *testing.T) {
	ctx := context.Background()
	ts := newSyncServer(t, false)
	local := newTestLocal(t)

	// A stored remote session: the server answered once and then lost its
	// schema.
	if err := local.Set(ctx, KeySession, Session{PlayerID: "hunter-1"}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	adapter := NewAdapter(local, NewRemote(ts.URL))
	fallbacks := 0
	adapter.OnFallback(func() { fallbacks++ })

	sess, err := adapter.Login(ctx)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Demo || sess.PlayerID != "hunter-1" {
		t.Fatalf("session = %+v, want resumed hunter-1", sess)
	}
	if adapter.LocalOnly() {
		t.Fatal("fallback must not trigger before the first failing call")
	}

	if err := adapter.SaveStats(ctx, Stats{Level: 4, Coins: 10}); err != nil {
		t.Fatalf("SaveStats through fallback: %v", err)
	}
	if !adapter.LocalOnly() {
		t.Fatal("adapter must be local-only after a SCHEMA_MISSING response")
	}
	if fallbacks != 1 {
		t.Fatalf("fallback hook fired %d times, want 1", fallbacks)
	}

	// The write landed locally and later reads stay local.
	out, err := adapter.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if out == nil || out.Level != 4 {
		t.Fatalf("stats = %+v, want the locally persisted value", out)
	}
	if fallbacks != 1 {
		t.Fatalf("fallback hook re-fired: %d", fallbacks)
	}
}

func TestAdapterDemoSessionWhenAuthUnavailable(t *testing.T) {
	ctx := context.Background()
	ts := newSyncServer(t, false)
	adapter := NewAdapter(newTestLocal(t), NewRemote(ts.URL))

	sess, err := adapter.Login(ctx)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !sess.Demo {
		t.Fatalf("session = %+v, want a demo session when auth is unavailable", sess)
	}
	if !adapter.LocalOnly() {
		t.Fatal("demo sessions only ever touch local storage")
	}
}

func TestAdapterLoginResumesStoredSession(t *testing.T) {
	ctx := context.Background()
	local := newTestLocal(t)
	adapter := NewAdapter(local, nil)

	first, err := adapter.Login(ctx)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !first.Demo {
		t.Fatalf("no remote configured, want a demo session: %+v", first)
	}

	again := NewAdapter(local, nil)
	second, err := again.Login(ctx)
	if err != nil {
		t.Fatalf("second Login: %v", err)
	}
	if second.PlayerID != first.PlayerID {
		t.Fatalf("session not resumed: %q != %q", second.PlayerID, first.PlayerID)
	}
}

func TestAdapterSessionChangeCallbacks(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(newTestLocal(t), nil)

	var seen []string
	adapter.OnSessionChange(func(s Session) { seen = append(seen, s.PlayerID) })
	adapter.OnSessionChange(func(s Session) { seen = append(seen, s.PlayerID) })

	sess, err := adapter.Login(ctx)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("callbacks fired %d times, want 2 (one per registration)", len(seen))
	}
	for _, id := range seen {
		if id != sess.PlayerID {
			t.Fatalf("callback saw %q, want %q", id, sess.PlayerID)
		}
	}
	if got := adapter.Session(); got.PlayerID != sess.PlayerID {
		t.Fatalf("Session() = %+v, want %+v", got, sess)
	}
}

func TestAdapterMarkerDefaultsEmpty(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(newTestLocal(t), nil)

	v, err := adapter.Marker(ctx, KeyLastLogin)
	if err != nil || v != "" {
		t.Fatalf("unset marker = (%q, %v), want empty", v, err)
	}
	if err := adapter.SetMarker(ctx, KeyLastLogin, "2026-08-29"); err != nil {
		t.Fatalf("SetMarker: %v", err)
	}
	v, err = adapter.Marker(ctx, KeyLastLogin)
	if err != nil || v != "2026-08-29" {
		t.Fatalf("marker = (%q, %v)", v, err)
	}
}

func TestAdapterResetWipesBothStores(t *testing.T) {
	ctx := context.Background()
	ts := newSyncServer(t, true)
	local := newTestLocal(t)
	adapter := NewAdapter(local, NewRemote(ts.URL))
	if _, err := adapter.Login(ctx); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := adapter.SaveStats(ctx, Stats{Coins: 99}); err != nil {
		t.Fatalf("SaveStats: %v", err)
	}
	if err := local.Set(ctx, KeyLastLogin, "2026-08-29"); err != nil {
		t.Fatalf("local Set: %v", err)
	}

	if err := adapter.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	out, err := adapter.Stats(ctx)
	if err != nil || out != nil {
		t.Fatalf("stats after reset = (%+v, %v), want (nil, nil)", out, err)
	}
	var marker string
	if err := local.Get(ctx, KeyLastLogin, &marker); err != ErrNotFound {
		t.Fatalf("local marker survived reset: %v", err)
	}
}
