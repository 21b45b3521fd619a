package game

import (
	"errors"
	"fmt"
)

var (
	// ErrQuestActive is returned when issuing a quest while one occupies
	// the active slot.
	ErrQuestActive = errors.New("a quest is already active")

	// ErrNoQuest is returned by complete/fail when nothing is active.
	ErrNoQuest = errors.New("no active quest")

	// ErrNotInWarning guards the redemption path.
	ErrNotInWarning = errors.New("redemption requires warning mode")

	// ErrNotAwakened is returned by operations that need a completed
	// onboarding.
	ErrNotAwakened = errors.New("hunter is not awakened yet")

	// ErrGiftClaimed means the mystery gift was already opened today.
	ErrGiftClaimed = errors.New("gift already claimed today")
)

// ValidationError reports incomplete or invalid onboarding input. It is
// surfaced to the caller before any write happens.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// InsufficientCoinsError is returned by shop purchases the balance cannot
// cover.
type InsufficientCoinsError struct {
	Cost    int
	Balance int
}

func (e InsufficientCoinsError) Error() string {
	return fmt.Sprintf("need %d coins, have %d", e.Cost, e.Balance)
}
