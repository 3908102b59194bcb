package mentalhealth

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// affirmations rotate through check-ins to keep the closing note varied.
var affirmations = []string{
	"You are stronger than you think.",
	"Like a batsman facing fast balls, you can handle today's challenges calmly.",
	"Even the best songs have pauses - take yours when needed.",
	"Every sunrise is a new start. Today is yours.",
	"Keep going! Your effort matters more than perfection.",
	"Your feelings are valid - it's okay to express them.",
}

// CheckinEntry is one day's emotional check-in.
type CheckinEntry struct {
	Date  string `json:"date"`
	Mood  int    `json:"mood"`
	Emoji string `json:"emoji"`
	Note  string `json:"note"`
}

// CheckinResult reports the outcome of a check-in attempt.
type CheckinResult struct {
	Entry       CheckinEntry `json:"entry"`
	Streak      int          `json:"streak"`
	Affirmation string       `json:"affirmation"`
	AlreadyDone bool         `json:"already_done"`
}

// CheckinTracker keeps daily check-in entries keyed by ISO date and a
// consecutive-day streak. Safe for concurrent use.
type CheckinTracker struct {
	mu       sync.Mutex
	entries  map[string]CheckinEntry
	streak   int
	lastDate string
	rotation int
	now      func() time.Time
}

// NewCheckinTracker creates an empty tracker.
func NewCheckinTracker() *CheckinTracker {
	return &CheckinTracker{
		entries: make(map[string]CheckinEntry),
		now:     time.Now,
	}
}

// CheckIn records today's mood. Checking in twice on the same day keeps the
// first entry and reports AlreadyDone. A check-in on the day after the last
// one extends the streak; any gap resets it to 1.
func (t *CheckinTracker) CheckIn(mood int, emoji, note string) (CheckinResult, error) {
	if mood < 0 || mood > 10 {
		return CheckinResult{}, fmt.Errorf("mood must be between 0 and 10, got %d", mood)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.now().Format(time.DateOnly)
	affirmation := affirmations[t.rotation%len(affirmations)]
	t.rotation++

	if t.lastDate == today {
		return CheckinResult{
			Entry:       t.entries[today],
			Streak:      t.streak,
			Affirmation: affirmation,
			AlreadyDone: true,
		}, nil
	}

	if t.lastDate != "" && consecutive(t.lastDate, today) {
		t.streak++
	} else {
		t.streak = 1
	}

	entry := CheckinEntry{Date: today, Mood: mood, Emoji: emoji, Note: note}
	t.entries[today] = entry
	t.lastDate = today

	return CheckinResult{
		Entry:       entry,
		Streak:      t.streak,
		Affirmation: affirmation,
	}, nil
}

// Streak returns the current consecutive-day streak.
func (t *CheckinTracker) Streak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.streak
}

// History returns all entries, most recent first.
func (t *CheckinTracker) History() []CheckinEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]CheckinEntry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func consecutive(prev, next string) bool {
	p, err := time.Parse(time.DateOnly, prev)
	if err != nil {
		return false
	}
	n, err := time.Parse(time.DateOnly, next)
	if err != nil {
		return false
	}
	return n.Sub(p) == 24*time.Hour
}
