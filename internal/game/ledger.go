package game

import (
	"context"
	"fmt"
	"math"
)

// maxXPGrowth is the per-level threshold multiplier.
const maxXPGrowth = 1.2

// AddXP applies the penalty multiplier, adds the adjusted amount, and
// rolls the level over at most once per call. An oversized award banks
// its surplus XP toward the next threshold instead of skipping levels.
func (s *Service) AddXP(ctx context.Context, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addXPLocked(ctx, amount)
}

func (s *Service) addXPLocked(ctx context.Context, amount int) error {
	adjusted := int(math.Floor(float64(amount) * s.state.Penalties.XPPenalty))
	st := &s.state.Stats
	st.XP += adjusted

	if st.XP >= st.MaxXP {
		st.Level++
		st.XP -= st.MaxXP
		st.MaxXP = int(math.Floor(float64(st.MaxXP) * maxXPGrowth))
		s.log.Add(fmt.Sprintf("LEVEL UP! HUNTER LEVEL %d", st.Level))
	}

	if err := s.adapter.SaveStats(ctx, *st); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// AddCoins adjusts the balance by amount, which may be negative. The
// balance is never clamped; penalties can push it below zero.
func (s *Service) AddCoins(ctx context.Context, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCoinsLocked(ctx, amount)
}

func (s *Service) addCoinsLocked(ctx context.Context, amount int) error {
	s.state.Stats.Coins += amount
	if err := s.adapter.SaveStats(ctx, s.state.Stats); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}
