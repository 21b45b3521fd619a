package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Karthikeyasharma979/fitness/internal/store"
)

// Timer purposes. Every named timer is uniquely owned by the condition
// that armed it; arming a purpose cancels its previous timer.
const (
	purposeQuestIssue = "quest-issue"
	purposeExpiryPoll = "expiry-poll"
)

const dateLayout = "2006-01-02"

// State is the single shared player aggregate. It is mutated only through
// Service operations, each of which persists the entities it touched
// immediately and independently.
type State struct {
	Profile       store.Profile
	Stats         store.Stats
	Penalties     store.Penalties
	Quest         *store.Quest
	Daily         store.DailyProgress
	LoginHistory  []string
	WeightHistory []store.WeightEntry
	Inventory     []store.Item
}

// Service owns the aggregate and drives every state transition. Timers
// fire on their own goroutines, so the aggregate is guarded by a mutex.
type Service struct {
	mu      sync.Mutex
	adapter *store.Adapter
	state   State
	log     *SystemLog
	sched   *Scheduler

	// Injectable for deterministic tests.
	now func() time.Time
	rng *rand.Rand
}

func NewService(adapter *store.Adapter) *Service {
	s := &Service{
		adapter: adapter,
		log:     NewSystemLog(),
		sched:   NewScheduler(),
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.state.Stats = defaultStats()
	s.state.Penalties = defaultPenalties()
	s.state.Daily = store.DailyProgress{Date: s.today()}
	adapter.OnFallback(func() {
		// Remote schema is gone for good; rebuild the aggregate from
		// whatever local storage has.
		_ = s.Load(context.Background())
		s.log.Add("SYNC UNAVAILABLE: LOCAL MODE ENGAGED")
	})
	return s
}

func defaultStats() store.Stats {
	return store.Stats{Level: 1, XP: 0, MaxXP: 100, STR: 10, AGI: 10, Endurance: 10, Rank: "E"}
}

func defaultPenalties() store.Penalties {
	return store.Penalties{XPPenalty: 1.0}
}

func (s *Service) today() string {
	return s.now().Format(dateLayout)
}

// Load hydrates the aggregate from the active backend. Missing records
// hydrate to defaults; a first-time player simply has no profile yet.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Service) loadLocked(ctx context.Context) error {
	profile, err := s.adapter.Profile(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if profile != nil {
		s.state.Profile = *profile
	} else {
		s.state.Profile = store.Profile{Goal: store.GoalWeightLoss}
	}

	stats, err := s.adapter.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	if stats != nil {
		s.state.Stats = *stats
	} else {
		s.state.Stats = defaultStats()
	}

	penalties, err := s.adapter.Penalties(ctx)
	if err != nil {
		return fmt.Errorf("load penalties: %w", err)
	}
	if penalties != nil {
		s.state.Penalties = *penalties
	} else {
		s.state.Penalties = defaultPenalties()
	}

	quest, err := s.adapter.Quest(ctx)
	if err != nil {
		return fmt.Errorf("load quest: %w", err)
	}
	s.state.Quest = quest

	daily, err := s.adapter.DailyProgress(ctx)
	if err != nil {
		return fmt.Errorf("load daily progress: %w", err)
	}
	// A stale daily record is treated as empty.
	if daily != nil && daily.Date == s.today() {
		s.state.Daily = *daily
	} else {
		s.state.Daily = store.DailyProgress{Date: s.today()}
	}

	logins, err := s.adapter.LoginHistory(ctx)
	if err != nil {
		return fmt.Errorf("load login history: %w", err)
	}
	s.state.LoginHistory = logins

	weights, err := s.adapter.WeightHistory(ctx)
	if err != nil {
		return fmt.Errorf("load weight history: %w", err)
	}
	s.state.WeightHistory = weights

	inventory, err := s.adapter.Inventory(ctx)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	s.state.Inventory = inventory

	return nil
}

// StartSession logs in, hydrates, runs the daily checks to completion,
// and only then arms the recurring expiry poll and the randomized quest
// issuance timer.
func (s *Service) StartSession(ctx context.Context) error {
	if _, err := s.adapter.Login(ctx); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := s.Load(ctx); err != nil {
		return err
	}
	if err := s.PerformDailyChecks(ctx); err != nil {
		return err
	}
	s.sched.Every(purposeExpiryPoll, time.Minute, func() {
		_ = s.CheckExpiry(context.Background())
	})
	s.ScheduleIssue()
	return nil
}

// EndSession cancels every timer the session owns.
func (s *Service) EndSession() {
	s.sched.StopAll()
	s.log.Stop()
}

// Snapshots. All return copies; external collaborators never hold a
// reference into the aggregate.

func (s *Service) Profile() store.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Profile
}

func (s *Service) Stats() store.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Stats
}

func (s *Service) Penalties() store.Penalties {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Penalties
}

// ActiveQuest returns nil when the quest slot is empty.
func (s *Service) ActiveQuest() *store.Quest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Quest == nil {
		return nil
	}
	q := *s.state.Quest
	return &q
}

func (s *Service) DailyProgress() store.DailyProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.state.Daily
	if d.Date != s.today() {
		return store.DailyProgress{Date: s.today()}
	}
	out := d
	out.CompletedIDs = append([]int(nil), d.CompletedIDs...)
	return out
}

func (s *Service) LoginHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.state.LoginHistory...)
}

func (s *Service) WeightHistory() []store.WeightEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]store.WeightEntry(nil), s.state.WeightHistory...)
}

func (s *Service) Inventory() []store.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]store.Item(nil), s.state.Inventory...)
}

// SystemLog returns the notification queue for display.
func (s *Service) SystemLog() *SystemLog { return s.log }

// Adapter exposes the persistence facade (session info, local-only flag).
func (s *Service) Adapter() *store.Adapter { return s.adapter }
