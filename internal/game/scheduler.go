package game

import (
	"sync"
	"time"
)

// Scheduler owns every named timer in the session. Each purpose has at
// most one live timer: arming a purpose cancels whatever was armed under
// it before. Purposes in use: "quest-issue" (randomized one-shot) and
// "expiry-poll" (per-minute recurring).
type Scheduler struct {
	mu      sync.Mutex
	cancels map[string]func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{cancels: make(map[string]func())}
}

// After arms a one-shot timer under purpose, replacing any live timer for
// the same purpose.
func (s *Scheduler) After(purpose string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(purpose)

	t := time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.cancels, purpose)
		s.mu.Unlock()
		fn()
	})
	s.cancels[purpose] = func() { t.Stop() }
}

// Every arms a recurring timer under purpose, replacing any live timer
// for the same purpose.
func (s *Scheduler) Every(purpose string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(purpose)

	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	s.cancels[purpose] = func() {
		ticker.Stop()
		once.Do(func() { close(done) })
	}
}

// Cancel stops the live timer for purpose, if any.
func (s *Scheduler) Cancel(purpose string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(purpose)
}

func (s *Scheduler) cancelLocked(purpose string) {
	if cancel, ok := s.cancels[purpose]; ok {
		cancel()
		delete(s.cancels, purpose)
	}
}

// Armed reports whether a live timer exists for purpose.
func (s *Scheduler) Armed(purpose string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cancels[purpose]
	return ok
}

// StopAll cancels every live timer. Called when the session ends.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for purpose, cancel := range s.cancels {
		cancel()
		delete(s.cancels, purpose)
	}
}
