package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/Karthikeyasharma979/fitness/internal/store"
)

// warningThreshold is the consecutive-miss count that activates warning
// mode.
const warningThreshold = 2

// PerformDailyChecks runs the once-per-calendar-day streak and penalty
// evaluation. Calling it again on the same date changes nothing except
// the unconditional quest expiry check, so a quest can still expire
// mid-day.
func (s *Service) PerformDailyChecks(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()

	// Record the login day.
	if !slices.Contains(s.state.LoginHistory, today) {
		s.state.LoginHistory = append(s.state.LoginHistory, today)
		if err := s.adapter.SaveLoginHistory(ctx, s.state.LoginHistory); err != nil {
			return fmt.Errorf("save login history: %w", err)
		}
	}

	lastLogin, err := s.adapter.Marker(ctx, store.KeyLastLogin)
	if err != nil {
		return err
	}
	if lastLogin == today {
		// Already processed today; only the expiry check runs.
		return s.checkExpiryLocked(ctx)
	}

	lastWorkout, err := s.adapter.Marker(ctx, store.KeyLastWorkout)
	if err != nil {
		return err
	}

	pen := &s.state.Penalties
	st := &s.state.Stats
	if pen.StreakFrozen {
		pen.XPPenalty = 0.8
	} else {
		pen.XPPenalty = 1.0
	}

	yesterday := s.now().AddDate(0, 0, -1).Format(dateLayout)
	// No workout ever recorded means a first run; treated as no miss.
	missedYesterday := lastWorkout != "" && lastWorkout != yesterday && lastWorkout != today

	if missedYesterday && st.Streak > 0 {
		if pen.StreakFrozen {
			pen.StreakFrozen = false
			s.log.Add("STREAK FROZEN: PROTECTION ACTIVE")
		} else {
			st.Streak = 0
			pen.ConsecutiveMisses++
			s.log.Add("DAILY QUEST MISSED: STREAK RESET")
			if pen.ConsecutiveMisses >= warningThreshold {
				if !pen.WarningMode {
					s.log.Add("WARNING MODE ACTIVATED: REDUCED REWARDS")
				}
				pen.WarningMode = true
				pen.XPPenalty = 0.5
			}
		}
	} else if !missedYesterday {
		// A clean day clears the whole miss cycle, warning mode included.
		pen.ConsecutiveMisses = 0
		pen.WarningMode = false
		pen.XPPenalty = 1.0
	}

	pen.Active = pen.WarningMode || pen.StreakFrozen || pen.XPPenalty != 1.0

	if err := s.checkExpiryLocked(ctx); err != nil {
		return err
	}

	if err := s.adapter.SaveStats(ctx, *st); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	if err := s.adapter.SavePenalties(ctx, *pen); err != nil {
		return fmt.Errorf("save penalties: %w", err)
	}
	if err := s.adapter.SetMarker(ctx, store.KeyLastLogin, today); err != nil {
		return fmt.Errorf("save last login: %w", err)
	}
	return nil
}

// Train completes a catalog workout: grants its XP (through the penalty
// multiplier) and its rank's coin payout, then records daily progress.
func (s *Service) Train(ctx context.Context, workoutID int) (*Workout, error) {
	w := WorkoutByID(workoutID)
	if w == nil {
		return nil, fmt.Errorf("workout %d not in catalog", workoutID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Profile.Awakened {
		return nil, ErrNotAwakened
	}

	if err := s.addXPLocked(ctx, w.XP); err != nil {
		return nil, err
	}
	coins := workoutCoinRewards[w.Rank]
	if coins == 0 {
		coins = 20
	}
	if err := s.addCoinsLocked(ctx, coins); err != nil {
		return nil, err
	}
	if err := s.completeDailyWorkoutLocked(ctx, workoutID); err != nil {
		return nil, err
	}
	return w, nil
}

// CompleteDailyWorkout records a mandatory workout for today. When all
// mandatory ids are present and today's workout day was not already
// recorded, the streak advances and today becomes the last workout date.
func (s *Service) CompleteDailyWorkout(ctx context.Context, workoutID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completeDailyWorkoutLocked(ctx, workoutID)
}

func (s *Service) completeDailyWorkoutLocked(ctx context.Context, workoutID int) error {
	today := s.today()
	progress := s.state.Daily
	if progress.Date != today {
		progress = store.DailyProgress{Date: today}
	}

	if workoutID > 0 && !slices.Contains(progress.CompletedIDs, workoutID) {
		progress.CompletedIDs = append(progress.CompletedIDs, workoutID)
		s.state.Daily = progress
		if err := s.adapter.SaveDailyProgress(ctx, progress); err != nil {
			return fmt.Errorf("save daily progress: %w", err)
		}
		s.log.Add("QUEST PHASE COMPLETE")
	}

	allDone := true
	for _, id := range MandatoryWorkoutIDs {
		if !slices.Contains(progress.CompletedIDs, id) {
			allDone = false
			break
		}
	}

	lastWorkout, err := s.adapter.Marker(ctx, store.KeyLastWorkout)
	if err != nil {
		return err
	}
	if allDone && lastWorkout != today {
		if err := s.adapter.SetMarker(ctx, store.KeyLastWorkout, today); err != nil {
			return fmt.Errorf("save last workout: %w", err)
		}
		s.state.Stats.Streak++
		if err := s.adapter.SaveStats(ctx, s.state.Stats); err != nil {
			return fmt.Errorf("save stats: %w", err)
		}
		s.log.Add("ALL DAILY QUESTS CLEARED! STREAK +1")
	}
	return nil
}
