package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Adapter is the uniform persistence facade. Every mutating game operation
// persists its entity through here, immediately and independently; there is
// no cross-entity transaction. One write can succeed while a related one
// fails, leaving the two stores drifted. The adapter does not detect or
// repair that; it is a documented limitation.
//
// Backend selection: the remote backend is used only when one is
// configured AND the session is not a demo session. A remote failure
// classified as ErrSchemaMissing switches the adapter to local mode for
// the rest of the session (one-way) and fires the fallback hook so the
// caller can rehydrate from local storage.
type Adapter struct {
	mu        sync.Mutex
	local     *Local
	remote    *Remote
	session   Session
	localOnly bool

	onFallback func()
	onSession  []func(Session)
}

func NewAdapter(local *Local, remote *Remote) *Adapter {
	return &Adapter{local: local, remote: remote}
}

// OnFallback registers the hook fired once when the adapter permanently
// drops to local mode.
func (a *Adapter) OnFallback(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onFallback = fn
}

// OnSessionChange registers a callback invoked whenever the session
// changes.
func (a *Adapter) OnSessionChange(fn func(Session)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onSession = append(a.onSession, fn)
}

func (a *Adapter) Session() Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// LocalOnly reports whether the adapter has dropped (or started) in
// local-only mode.
func (a *Adapter) LocalOnly() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.remote == nil || a.localOnly || a.session.Demo
}

// Login resumes the stored session or authenticates a new one. When no
// remote backend is configured, or anonymous auth fails, it falls back to
// a synthetic demo session that only ever touches local storage.
func (a *Adapter) Login(ctx context.Context) (Session, error) {
	var stored Session
	err := a.local.Get(ctx, KeySession, &stored)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}
	if err == nil && stored.PlayerID != "" {
		a.setSession(stored)
		return stored, nil
	}

	var sess Session
	if a.remote != nil {
		sess, err = a.remote.AuthenticateAnonymously(ctx)
		if err != nil {
			sess = Session{PlayerID: "demo-user-" + uuid.NewString(), Demo: true}
		}
	} else {
		sess = Session{PlayerID: "demo-user-" + uuid.NewString(), Demo: true}
	}
	if err := a.local.Set(ctx, KeySession, sess); err != nil {
		return Session{}, err
	}
	a.setSession(sess)
	return sess, nil
}

func (a *Adapter) setSession(s Session) {
	a.mu.Lock()
	a.session = s
	callbacks := append([]func(Session){}, a.onSession...)
	a.mu.Unlock()
	for _, fn := range callbacks {
		fn(s)
	}
}

func (a *Adapter) useRemote() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.remote != nil && !a.localOnly && !a.session.Demo
}

// fallback permanently switches to local mode. Idempotent.
func (a *Adapter) fallback() {
	a.mu.Lock()
	already := a.localOnly
	a.localOnly = true
	hook := a.onFallback
	a.mu.Unlock()
	if !already && hook != nil {
		hook()
	}
}

func (a *Adapter) read(ctx context.Context, key string, v any) error {
	if a.useRemote() {
		err := a.remote.ReadRecord(ctx, a.Session().PlayerID, key, v)
		if !errors.Is(err, ErrSchemaMissing) {
			return err
		}
		a.fallback()
	}
	return a.local.Get(ctx, key, v)
}

func (a *Adapter) write(ctx context.Context, key string, v any) error {
	if a.useRemote() {
		err := a.remote.WriteRecord(ctx, a.Session().PlayerID, key, v)
		if !errors.Is(err, ErrSchemaMissing) {
			return err
		}
		a.fallback()
	}
	return a.local.Set(ctx, key, v)
}

func (a *Adapter) remove(ctx context.Context, key string) error {
	if a.useRemote() {
		err := a.remote.DeleteRecord(ctx, a.Session().PlayerID, key)
		if err != nil && !errors.Is(err, ErrSchemaMissing) {
			return err
		}
		if errors.Is(err, ErrSchemaMissing) {
			a.fallback()
		}
	}
	return a.local.Remove(ctx, key)
}

// Profile returns nil (not an error) when no profile exists yet.
func (a *Adapter) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := a.read(ctx, KeyProfile, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile read: %w", err)
	}
	return &p, nil
}

func (a *Adapter) SaveProfile(ctx context.Context, p Profile) error {
	return a.write(ctx, KeyProfile, p)
}

func (a *Adapter) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := a.read(ctx, KeyStats, &s); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats read: %w", err)
	}
	return &s, nil
}

func (a *Adapter) SaveStats(ctx context.Context, s Stats) error {
	return a.write(ctx, KeyStats, s)
}

func (a *Adapter) Penalties(ctx context.Context) (*Penalties, error) {
	var p Penalties
	if err := a.read(ctx, KeyPenalties, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("penalties read: %w", err)
	}
	return &p, nil
}

func (a *Adapter) SavePenalties(ctx context.Context, p Penalties) error {
	return a.write(ctx, KeyPenalties, p)
}

func (a *Adapter) Quest(ctx context.Context) (*Quest, error) {
	var q Quest
	if err := a.read(ctx, KeyQuest, &q); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("quest read: %w", err)
	}
	if q.ID == "" {
		return nil, nil
	}
	return &q, nil
}

func (a *Adapter) SaveQuest(ctx context.Context, q Quest) error {
	return a.write(ctx, KeyQuest, q)
}

func (a *Adapter) ClearQuest(ctx context.Context) error {
	return a.remove(ctx, KeyQuest)
}

func (a *Adapter) DailyProgress(ctx context.Context) (*DailyProgress, error) {
	var d DailyProgress
	if err := a.read(ctx, KeyDaily, &d); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("daily progress read: %w", err)
	}
	return &d, nil
}

func (a *Adapter) SaveDailyProgress(ctx context.Context, d DailyProgress) error {
	return a.write(ctx, KeyDaily, d)
}

func (a *Adapter) LoginHistory(ctx context.Context) ([]string, error) {
	var h []string
	if err := a.read(ctx, KeyLoginHistory, &h); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("login history read: %w", err)
	}
	return h, nil
}

func (a *Adapter) SaveLoginHistory(ctx context.Context, h []string) error {
	return a.write(ctx, KeyLoginHistory, h)
}

func (a *Adapter) Inventory(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := a.read(ctx, KeyInventory, &items); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("inventory read: %w", err)
	}
	return items, nil
}

func (a *Adapter) SaveInventory(ctx context.Context, items []Item) error {
	return a.write(ctx, KeyInventory, items)
}

// WeightHistory reads the weight log. In remote mode the log lives in its
// own append-only table on the server.
func (a *Adapter) WeightHistory(ctx context.Context) ([]WeightEntry, error) {
	if a.useRemote() {
		entries, err := a.remote.ReadWeightLogs(ctx, a.Session().PlayerID)
		if !errors.Is(err, ErrSchemaMissing) {
			if errors.Is(err, ErrNotFound) {
				return nil, nil
			}
			return entries, err
		}
		a.fallback()
	}
	var h []WeightEntry
	if err := a.local.Get(ctx, KeyWeightHistory, &h); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("weight history read: %w", err)
	}
	return h, nil
}

// AppendWeight appends one entry to the weight log.
func (a *Adapter) AppendWeight(ctx context.Context, entry WeightEntry) error {
	if a.useRemote() {
		err := a.remote.AppendWeightLog(ctx, a.Session().PlayerID, entry.Weight)
		if !errors.Is(err, ErrSchemaMissing) {
			return err
		}
		a.fallback()
	}
	var h []WeightEntry
	if err := a.local.Get(ctx, KeyWeightHistory, &h); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("weight history read: %w", err)
	}
	h = append(h, entry)
	return a.local.Set(ctx, KeyWeightHistory, h)
}

// Marker reads a small string record (last login, last workout day, last
// gift day). Empty string when unset.
func (a *Adapter) Marker(ctx context.Context, key string) (string, error) {
	var v string
	if err := a.read(ctx, key, &v); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("marker read %q: %w", key, err)
	}
	return v, nil
}

func (a *Adapter) SetMarker(ctx context.Context, key, value string) error {
	return a.write(ctx, key, value)
}

// Reset wipes all persisted state for the player, remote and local.
func (a *Adapter) Reset(ctx context.Context) error {
	if a.useRemote() {
		if err := a.remote.ClearRecords(ctx, a.Session().PlayerID); err != nil && !errors.Is(err, ErrSchemaMissing) {
			return err
		}
	}
	return a.local.Clear(ctx)
}
