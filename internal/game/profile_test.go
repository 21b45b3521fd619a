package game

import (
	"context"
	"errors"
	"testing"

	"github.com/Karthikeyasharma979/fitness/internal/store"
)

func TestAwakenValidation(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	fixClock(svc, checkDay)

	cases := []struct {
		name  string
		in    AwakenInput
		field string
	}{
		{"empty name", AwakenInput{Name: "  ", Age: 30, Height: 180, Weight: 80, Goal: store.GoalMuscleGain}, "name"},
		{"bad age", AwakenInput{Name: "Jin", Age: 0, Height: 180, Weight: 80, Goal: store.GoalMuscleGain}, "age"},
		{"bad goal", AwakenInput{Name: "Jin", Age: 30, Height: 180, Weight: 80, Goal: "cardio"}, "goal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Awaken(ctx, tc.in)
			var verr ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("Awaken = %v, want ValidationError on %q", err, tc.field)
			}
		})
	}
	if svc.Profile().Awakened {
		t.Fatal("failed validation must not write the profile")
	}
}

func TestAwakenBiasesStatsByGoal(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	fixClock(svc, checkDay)

	in := AwakenInput{Name: "Jin", Age: 24, Height: 178, Weight: 72, TargetWeight: 75, Goal: store.GoalMuscleGain}
	if err := svc.Awaken(ctx, in); err != nil {
		t.Fatalf("Awaken: %v", err)
	}

	p := svc.Profile()
	if !p.Awakened || p.Name != "Jin" {
		t.Fatalf("profile = %+v", p)
	}
	st := svc.Stats()
	if st.STR != 15 || st.AGI != 10 || st.Endurance != 10 {
		t.Fatalf("muscle_gain must bias STR: %+v", st)
	}
	// Initial weight is also logged, which grants 20 XP.
	if st.XP != 20 {
		t.Fatalf("xp=%d, want 20 from the initial weight log", st.XP)
	}
	hist := svc.WeightHistory()
	if len(hist) != 1 || hist[0].Weight != 72 {
		t.Fatalf("weight history = %+v, want one 72kg entry", hist)
	}
}

func TestUpdateWeight(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	fixClock(svc, checkDay)

	if err := svc.UpdateWeight(ctx, -3); err == nil {
		t.Fatal("negative weight must be rejected")
	}

	if err := svc.UpdateWeight(ctx, 71.5); err != nil {
		t.Fatalf("UpdateWeight: %v", err)
	}
	if got := svc.Profile().Weight; got != 71.5 {
		t.Fatalf("profile weight=%v, want 71.5", got)
	}
	if got := svc.Stats().XP; got != 20 {
		t.Fatalf("xp=%d, want 20", got)
	}
}

func TestResetAllReturnsToDefaults(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	fixClock(svc, checkDay)

	in := AwakenInput{Name: "Jin", Age: 24, Height: 178, Weight: 72, Goal: store.GoalEndurance}
	if err := svc.Awaken(ctx, in); err != nil {
		t.Fatalf("Awaken: %v", err)
	}
	if err := svc.AddCoins(ctx, 300); err != nil {
		t.Fatalf("AddCoins: %v", err)
	}

	if err := svc.ResetAll(ctx); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}
	if svc.Profile().Awakened {
		t.Fatal("profile survived the reset")
	}
	if st := svc.Stats(); st != defaultStats() {
		t.Fatalf("stats = %+v, want defaults", st)
	}

	// The store is empty too.
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if svc.Stats().Coins != 0 {
		t.Fatalf("persisted coins survived the reset: %d", svc.Stats().Coins)
	}
}

func TestUnlockedSkills(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	fixClock(svc, checkDay)

	svc.state.Stats.Level = 1
	if got := len(svc.UnlockedSkills()); got != 1 {
		t.Fatalf("level 1 unlocks %d skills, want 1", got)
	}

	svc.state.Stats.Level = 25
	unlocked := svc.UnlockedSkills()
	if got := len(unlocked); got != 5 {
		t.Fatalf("level 25 unlocks %d skills, want 5", got)
	}
	for _, sk := range unlocked {
		if sk.Level > 25 {
			t.Fatalf("skill %q requires level %d", sk.Name, sk.Level)
		}
	}
}
