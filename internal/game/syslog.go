package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	systemLogCap = 5
	systemLogTTL = 5 * time.Second
)

// LogEntry is a transient system notification. Not persisted.
type LogEntry struct {
	ID        string
	Text      string
	Timestamp string
}

// SystemLog is the capacity-bounded notification queue shown on the
// dashboard. Entries self-remove after a fixed delay; each entry owns its
// own dismissal timer, cancelled if the entry is evicted early.
type SystemLog struct {
	mu      sync.Mutex
	entries []LogEntry
	timers  map[string]*time.Timer
	cap     int
	ttl     time.Duration
	now     func() time.Time
}

func NewSystemLog() *SystemLog {
	return newSystemLog(systemLogCap, systemLogTTL)
}

func newSystemLog(capacity int, ttl time.Duration) *SystemLog {
	return &SystemLog{
		timers: make(map[string]*time.Timer),
		cap:    capacity,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Add prepends a new entry, dropping the oldest beyond capacity, and
// schedules the entry's own removal.
func (l *SystemLog) Add(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.NewString()
	entry := LogEntry{ID: id, Text: text, Timestamp: l.now().Format("15:04:05")}
	l.entries = append([]LogEntry{entry}, l.entries...)

	for len(l.entries) > l.cap {
		evicted := l.entries[len(l.entries)-1]
		l.entries = l.entries[:len(l.entries)-1]
		if t, ok := l.timers[evicted.ID]; ok {
			t.Stop()
			delete(l.timers, evicted.ID)
		}
	}

	l.timers[id] = time.AfterFunc(l.ttl, func() { l.remove(id) })
}

func (l *SystemLog) remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			break
		}
	}
	delete(l.timers, id)
}

// Entries returns a snapshot, newest first.
func (l *SystemLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Stop cancels every pending dismissal timer.
func (l *SystemLog) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, t := range l.timers {
		t.Stop()
		delete(l.timers, id)
	}
}
