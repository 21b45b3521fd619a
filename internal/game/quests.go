package game

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Karthikeyasharma979/fitness/internal/store"
)

// questTemplate is one entry of the fixed issuance catalog.
type questTemplate struct {
	kind         QuestKind
	title        string
	description  string
	target       int
	rewardCoins  int
	penaltyCoins int
	duration     time.Duration
}

var questCatalog = []questTemplate{
	{KindEmergency, "PENALTY QUEST", "[EMERGENCY] Complete 20 Pushups to survive.", 20, 500, 1000, 10 * time.Minute},
	{KindDaily, "DAILY QUEST", "[DAILY] Run 2km today.", 2000, 300, 0, 24 * time.Hour},
	{KindSudden, "SUDDEN QUEST", "[SURVIVAL] Hold Plank for 60 seconds.", 60, 800, 500, 5 * time.Minute},
	{KindBoss, "BOSS QUEST", "[BOSS] Defeat the Shadow Monarch.", 1, 5000, 0, time.Hour},
	{KindSecret, "SECRET QUEST", "[HIDDEN] Meditate for 5 minutes.", 300, 1000, 0, 20 * time.Minute},
}

// questRewardXP is the flat XP reward on every catalog quest.
const questRewardXP = 100

// Issuance delay bounds for the randomized background trigger.
const (
	issueDelayMin = 2 * time.Minute
	issueDelayMax = 15 * time.Minute
)

// Issue fills the active quest slot with a random catalog quest. Rejected
// while a quest is active.
func (s *Service) Issue(ctx context.Context) (*store.Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(ctx)
}

func (s *Service) issueLocked(ctx context.Context) (*store.Quest, error) {
	if s.state.Quest != nil {
		return nil, ErrQuestActive
	}
	tpl := questCatalog[s.rng.Intn(len(questCatalog))]
	q := store.Quest{
		ID:           uuid.NewString(),
		Kind:         string(tpl.kind),
		Title:        tpl.title,
		Description:  tpl.description,
		Target:       tpl.target,
		Deadline:     s.now().Add(tpl.duration),
		RewardCoins:  tpl.rewardCoins,
		RewardXP:     questRewardXP,
		PenaltyCoins: tpl.penaltyCoins,
	}
	if err := s.adapter.SaveQuest(ctx, q); err != nil {
		return nil, fmt.Errorf("save quest: %w", err)
	}
	s.state.Quest = &q
	// The slot is occupied; the issuance timer no longer applies.
	s.sched.Cancel(purposeQuestIssue)
	s.log.Add(fmt.Sprintf("%s ISSUED", q.Title))
	out := q
	return &out, nil
}

// ScheduleIssue arms the randomized one-shot issuance timer, active only
// while no quest is active and warning mode is off. Arming replaces any
// previously armed issuance timer.
func (s *Service) ScheduleIssue() {
	s.mu.Lock()
	armable := s.state.Quest == nil && !s.state.Penalties.WarningMode && s.state.Profile.Awakened
	var delay time.Duration
	if armable {
		// rng is shared with the locked operations; draw under the lock.
		delay = issueDelayMin + time.Duration(s.rng.Int63n(int64(issueDelayMax-issueDelayMin+1)))
	}
	s.mu.Unlock()
	if !armable {
		s.sched.Cancel(purposeQuestIssue)
		return
	}
	s.sched.After(purposeQuestIssue, delay, func() {
		_, _ = s.Issue(context.Background())
	})
}

// Complete resolves the active quest. On success, rewards are granted; a
// successful REDEMPTION quest additionally clears the penalty state. On
// failure it delegates to Fail. Either way the quest slot ends empty.
func (s *Service) Complete(ctx context.Context, success bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.state.Quest
	if q == nil {
		return ErrNoQuest
	}
	if !success {
		return s.failLocked(ctx, q)
	}

	if err := s.addCoinsLocked(ctx, q.RewardCoins); err != nil {
		return err
	}
	if err := s.addXPLocked(ctx, q.RewardXP); err != nil {
		return err
	}
	s.log.Add("QUEST COMPLETE: REWARDS CLAIMED")

	if ParseQuestKind(q.Kind) == KindRedemption {
		s.state.Penalties.WarningMode = false
		s.state.Penalties.ConsecutiveMisses = 0
		s.state.Penalties.XPPenalty = 1.0
		s.state.Penalties.Active = s.state.Penalties.StreakFrozen
		if err := s.adapter.SavePenalties(ctx, s.state.Penalties); err != nil {
			return fmt.Errorf("save penalties: %w", err)
		}
		s.log.Add("SYSTEM RESTORED: PENALTIES CLEARED")
	}

	return s.clearQuestLocked(ctx)
}

// Fail resolves the active quest as failed.
func (s *Service) Fail(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Quest == nil {
		return ErrNoQuest
	}
	return s.failLocked(ctx, s.state.Quest)
}

func (s *Service) failLocked(ctx context.Context, q *store.Quest) error {
	switch ParseQuestKind(q.Kind) {
	case KindEmergency, KindSudden:
		// Lose a random 10-20% of the balance; allowed to go negative.
		lossPercent := 0.10 + s.rng.Float64()*0.10
		penaltyCoins := int(math.Floor(float64(s.state.Stats.Coins) * lossPercent))

		s.state.Penalties.StreakFrozen = true
		s.state.Penalties.XPPenalty = 0.8
		s.state.Penalties.Active = true
		if err := s.adapter.SavePenalties(ctx, s.state.Penalties); err != nil {
			return fmt.Errorf("save penalties: %w", err)
		}
		if err := s.addCoinsLocked(ctx, -penaltyCoins); err != nil {
			return err
		}
		s.log.Add(fmt.Sprintf("EMERGENCY FAILURE: -%d COINS | STREAK FROZEN", penaltyCoins))
	case KindBoss:
		s.log.Add("BOSS RAID FAILED: REWARDS FORFEITED")
	default:
		s.log.Add("QUEST FAILED")
	}
	return s.clearQuestLocked(ctx)
}

func (s *Service) clearQuestLocked(ctx context.Context) error {
	s.state.Quest = nil
	if err := s.adapter.ClearQuest(ctx); err != nil {
		return fmt.Errorf("clear quest: %w", err)
	}
	// Preconditions changed; re-arm (or cancel) the issuance timer.
	go s.ScheduleIssue()
	return nil
}

// CheckExpiry fails the active quest automatically once its deadline has
// passed.
func (s *Service) CheckExpiry(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkExpiryLocked(ctx)
}

func (s *Service) checkExpiryLocked(ctx context.Context) error {
	q := s.state.Quest
	if q == nil || !s.now().After(q.Deadline) {
		return nil
	}
	return s.failLocked(ctx, q)
}

// IssueRedemption creates the fixed 24-hour recovery quest. Only
// reachable in warning mode with an empty quest slot; completing it is
// the deliberate way out of warning mode.
func (s *Service) IssueRedemption(ctx context.Context) (*store.Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Penalties.WarningMode {
		return nil, ErrNotInWarning
	}
	if s.state.Quest != nil {
		return nil, ErrQuestActive
	}

	q := store.Quest{
		ID:          uuid.NewString(),
		Kind:        string(KindRedemption),
		Title:       "REDEMPTION ARC",
		Description: "[RECOVERY] Complete a full 20min workout to restore status.",
		Target:      1,
		Deadline:    s.now().Add(24 * time.Hour),
		RewardCoins: 500,
		RewardXP:    200,
	}
	if err := s.adapter.SaveQuest(ctx, q); err != nil {
		return nil, fmt.Errorf("save quest: %w", err)
	}
	s.state.Quest = &q
	s.sched.Cancel(purposeQuestIssue)
	s.log.Add("REDEMPTION ARC ISSUED: 24 HOURS")
	out := q
	return &out, nil
}
