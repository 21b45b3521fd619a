package game

import "strings"

// QuestKind is the explicit quest tag stored on the quest record at
// creation time. Behavior is classified by kind only, never by parsing
// the display title.
type QuestKind string

const (
	KindDaily      QuestKind = "DAILY"
	KindEmergency  QuestKind = "EMERGENCY"
	KindSudden     QuestKind = "SUDDEN"
	KindBoss       QuestKind = "BOSS"
	KindSecret     QuestKind = "SECRET"
	KindRedemption QuestKind = "REDEMPTION"
)

func (k QuestKind) IsValid() bool {
	switch k {
	case KindDaily, KindEmergency, KindSudden, KindBoss, KindSecret, KindRedemption:
		return true
	default:
		return false
	}
}

func ParseQuestKind(s string) QuestKind {
	k := QuestKind(strings.TrimSpace(strings.ToUpper(s)))
	if k.IsValid() {
		return k
	}
	return KindDaily
}

// Workout is one entry of the training catalog. IDs 1..4 are the
// mandatory daily quests; completing all four advances the streak.
type Workout struct {
	ID    int
	Title string
	Rank  string
	Time  string
	XP    int
	Type  string
}

// Workouts is the fixed training catalog.
var Workouts = []Workout{
	{ID: 1, Title: "Shadow Boxing", Rank: "E", Time: "10 min", XP: 50, Type: "AGI"},
	{ID: 2, Title: "Push-up Barrage", Rank: "D", Time: "15 min", XP: 100, Type: "STR"},
	{ID: 3, Title: "Core Crusher", Rank: "C", Time: "20 min", XP: 150, Type: "END"},
	{ID: 4, Title: "Bicycle Burn", Rank: "B", Time: "15 min", XP: 120, Type: "END"},
	{ID: 5, Title: "Limit Break HIIT", Rank: "S", Time: "45 min", XP: 500, Type: "ALL"},
}

// MandatoryWorkoutIDs are the daily quests that must all be completed for
// a day to count toward the streak.
var MandatoryWorkoutIDs = []int{1, 2, 3, 4}

// workoutCoinRewards maps workout rank to the coin payout.
var workoutCoinRewards = map[string]int{"E": 20, "D": 40, "C": 70, "B": 100, "S": 250}

// WorkoutByID returns nil when the id is not in the catalog.
func WorkoutByID(id int) *Workout {
	for i := range Workouts {
		if Workouts[i].ID == id {
			return &Workouts[i]
		}
	}
	return nil
}
