package store

import "time"

// Goal is the training goal chosen at awakening.
type Goal string

const (
	GoalWeightLoss Goal = "weight_loss"
	GoalMuscleGain Goal = "muscle_gain"
	GoalEndurance  Goal = "endurance"
)

func (g Goal) IsValid() bool {
	switch g {
	case GoalWeightLoss, GoalMuscleGain, GoalEndurance:
		return true
	default:
		return false
	}
}

// Profile is the hunter's persistent profile. Created once at awakening,
// never deleted except by a full reset.
type Profile struct {
	Name         string  `json:"name"`
	Age          int     `json:"age"`
	Height       float64 `json:"height"`
	Weight       float64 `json:"current_weight"`
	TargetWeight float64 `json:"target_weight"`
	Goal         Goal    `json:"goal"`
	Awakened     bool    `json:"is_awakened"`
}

type Stats struct {
	Level     int    `json:"level"`
	XP        int    `json:"xp"`
	MaxXP     int    `json:"max_xp"`
	STR       int    `json:"str"`
	AGI       int    `json:"agi"`
	Endurance int    `json:"endurance"`
	Rank      string `json:"rank"`
	Streak    int    `json:"streak"`
	// Coins is signed; failed quests may push the balance below zero.
	Coins int `json:"coins"`
}

type Penalties struct {
	Active            bool    `json:"active"`
	WarningMode       bool    `json:"warning_mode"`
	StreakFrozen      bool    `json:"streak_frozen"`
	XPPenalty         float64 `json:"xp_penalty"`
	ConsecutiveMisses int     `json:"consecutive_misses"`
}

// Quest is the single active quest slot. Kind is stored as an explicit tag
// at creation time; behavior is never derived from the display title.
type Quest struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Target       int       `json:"target"`
	Deadline     time.Time `json:"deadline"`
	RewardCoins  int       `json:"reward_coins"`
	RewardXP     int       `json:"reward_xp"`
	PenaltyCoins int       `json:"penalty_coins"`
}

// DailyProgress tracks which mandatory workouts were completed today.
// CompletedIDs is only meaningful while Date equals the current date; a
// stale record is treated as empty on read.
type DailyProgress struct {
	Date         string `json:"date"`
	CompletedIDs []int  `json:"completed_ids"`
}

type WeightEntry struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// Item is an inventory stack, keyed by ID. Quantity increments on repeat
// acquisition.
type Item struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Desc       string    `json:"desc"`
	Type       string    `json:"type"`
	Rank       string    `json:"rank"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// Session identifies the current player. Demo sessions never touch the
// remote backend.
type Session struct {
	PlayerID string `json:"player_id"`
	Demo     bool   `json:"demo"`
}

// Record keys, one per persisted entity.
const (
	KeyProfile       = "profile"
	KeyStats         = "stats"
	KeyPenalties     = "penalties"
	KeyQuest         = "quest"
	KeyDaily         = "daily_progress"
	KeyLoginHistory  = "login_history"
	KeyInventory     = "inventory"
	KeyWeightHistory = "weight_history"
	KeySession       = "session"
	KeyLastLogin     = "last_login"
	KeyLastWorkout   = "last_workout_date"
	KeyLastGift      = "last_gift_date"
)
