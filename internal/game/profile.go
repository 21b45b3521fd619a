package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/Karthikeyasharma979/fitness/internal/store"
)

// AwakenInput is the onboarding form.
type AwakenInput struct {
	Name         string
	Age          int
	Height       float64
	Weight       float64
	TargetWeight float64
	Goal         store.Goal
}

func (in AwakenInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ValidationError{Field: "name", Msg: "required"}
	}
	if in.Age <= 0 {
		return ValidationError{Field: "age", Msg: "must be positive"}
	}
	if in.Height <= 0 {
		return ValidationError{Field: "height", Msg: "must be positive"}
	}
	if in.Weight <= 0 {
		return ValidationError{Field: "weight", Msg: "must be positive"}
	}
	if !in.Goal.IsValid() {
		return ValidationError{Field: "goal", Msg: "must be weight_loss, muscle_gain or endurance"}
	}
	return nil
}

// Awaken completes onboarding: validates input, builds base stats biased
// by the chosen goal, and logs the initial weight. Nothing is written if
// validation fails.
func (s *Service) Awaken(ctx context.Context, in AwakenInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := defaultStats()
	switch in.Goal {
	case store.GoalMuscleGain:
		stats.STR += 5
	case store.GoalWeightLoss:
		stats.AGI += 5
	case store.GoalEndurance:
		stats.Endurance += 5
	}

	profile := store.Profile{
		Name:         strings.TrimSpace(in.Name),
		Age:          in.Age,
		Height:       in.Height,
		Weight:       in.Weight,
		TargetWeight: in.TargetWeight,
		Goal:         in.Goal,
		Awakened:     true,
	}

	if err := s.adapter.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err := s.adapter.SaveStats(ctx, stats); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	s.state.Profile = profile
	s.state.Stats = stats
	s.state.Penalties = defaultPenalties()
	if err := s.adapter.SavePenalties(ctx, s.state.Penalties); err != nil {
		return fmt.Errorf("save penalties: %w", err)
	}

	if err := s.updateWeightLocked(ctx, in.Weight); err != nil {
		return err
	}
	s.log.Add("AWAKENING COMPLETE: WELCOME, HUNTER")
	return nil
}

// UpdateWeight appends to the weight history, updates the profile, and
// grants 20 XP for logging.
func (s *Service) UpdateWeight(ctx context.Context, weight float64) error {
	if weight <= 0 {
		return ValidationError{Field: "weight", Msg: "must be positive"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateWeightLocked(ctx, weight)
}

func (s *Service) updateWeightLocked(ctx context.Context, weight float64) error {
	entry := store.WeightEntry{Date: s.today(), Weight: weight}
	if err := s.adapter.AppendWeight(ctx, entry); err != nil {
		return fmt.Errorf("append weight: %w", err)
	}
	s.state.WeightHistory = append(s.state.WeightHistory, entry)

	s.state.Profile.Weight = weight
	if err := s.adapter.SaveProfile(ctx, s.state.Profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return s.addXPLocked(ctx, 20)
}

// ProfilePatch carries optional profile updates. Weight goes through the
// weight-log path so history stays in sync.
type ProfilePatch struct {
	Name         *string
	Height       *float64
	Weight       *float64
	TargetWeight *float64
	Goal         *store.Goal
}

// UpdateProfile applies a partial profile update.
func (s *Service) UpdateProfile(ctx context.Context, patch ProfilePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Weight != nil {
		if err := s.updateWeightLocked(ctx, *patch.Weight); err != nil {
			return err
		}
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return ValidationError{Field: "name", Msg: "required"}
		}
		s.state.Profile.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Height != nil {
		if *patch.Height <= 0 {
			return ValidationError{Field: "height", Msg: "must be positive"}
		}
		s.state.Profile.Height = *patch.Height
	}
	if patch.TargetWeight != nil {
		s.state.Profile.TargetWeight = *patch.TargetWeight
	}
	if patch.Goal != nil {
		if !patch.Goal.IsValid() {
			return ValidationError{Field: "goal", Msg: "must be weight_loss, muscle_gain or endurance"}
		}
		s.state.Profile.Goal = *patch.Goal
	}
	if err := s.adapter.SaveProfile(ctx, s.state.Profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// ResetAll is the factory reset: wipes every persisted record and
// reinitializes the aggregate.
func (s *Service) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sched.StopAll()
	if err := s.adapter.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.state = State{
		Profile:   store.Profile{Goal: store.GoalWeightLoss},
		Stats:     defaultStats(),
		Penalties: defaultPenalties(),
		Daily:     store.DailyProgress{Date: s.today()},
	}
	return nil
}
