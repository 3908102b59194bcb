package mentalhealth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackerAt returns a tracker whose clock is controllable from the test.
func trackerAt(start time.Time) (*CheckinTracker, *time.Time) {
	now := start
	t := NewCheckinTracker()
	t.now = func() time.Time { return now }
	return t, &now
}

func TestCheckinTracker_FirstCheckIn(t *testing.T) {
	tracker, _ := trackerAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	result, err := tracker.CheckIn(7, "happy", "good day")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Streak)
	assert.False(t, result.AlreadyDone)
	assert.Equal(t, "2026-03-01", result.Entry.Date)
	assert.Equal(t, 7, result.Entry.Mood)
	assert.NotEmpty(t, result.Affirmation)
}

func TestCheckinTracker_ConsecutiveDaysExtendStreak(t *testing.T) {
	tracker, now := trackerAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	for day := 0; day < 3; day++ {
		*now = time.Date(2026, 3, 1+day, 9, 0, 0, 0, time.UTC)
		result, err := tracker.CheckIn(5, "calm", "")
		require.NoError(t, err)
		assert.Equal(t, day+1, result.Streak)
	}
}

func TestCheckinTracker_GapResetsStreak(t *testing.T) {
	tracker, now := trackerAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	_, err := tracker.CheckIn(5, "calm", "")
	require.NoError(t, err)
	*now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err = tracker.CheckIn(5, "calm", "")
	require.NoError(t, err)

	// Skip March 3rd entirely.
	*now = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	result, err := tracker.CheckIn(5, "calm", "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
}

func TestCheckinTracker_SameDayKeepsFirstEntry(t *testing.T) {
	tracker, now := trackerAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	_, err := tracker.CheckIn(3, "sad", "rough morning")
	require.NoError(t, err)

	*now = now.Add(4 * time.Hour)
	result, err := tracker.CheckIn(9, "happy", "much better now")
	require.NoError(t, err)

	assert.True(t, result.AlreadyDone)
	assert.Equal(t, 3, result.Entry.Mood, "the first entry of the day wins")
	assert.Equal(t, 1, result.Streak)
}

func TestCheckinTracker_AffirmationsRotate(t *testing.T) {
	tracker, now := trackerAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	seen := make(map[string]bool)
	for day := 0; day < len(affirmations); day++ {
		*now = time.Date(2026, 3, 1+day, 9, 0, 0, 0, time.UTC)
		result, err := tracker.CheckIn(5, "calm", "")
		require.NoError(t, err)
		seen[result.Affirmation] = true
	}
	assert.Len(t, seen, len(affirmations))
}

func TestCheckinTracker_History(t *testing.T) {
	tracker, now := trackerAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	for day := 0; day < 3; day++ {
		*now = time.Date(2026, 3, 1+day, 9, 0, 0, 0, time.UTC)
		_, err := tracker.CheckIn(day, "calm", "")
		require.NoError(t, err)
	}

	history := tracker.History()
	require.Len(t, history, 3)
	assert.Equal(t, "2026-03-03", history[0].Date, "most recent first")
	assert.Equal(t, "2026-03-01", history[2].Date)
}

func TestCheckinTracker_RejectsOutOfRangeMood(t *testing.T) {
	tracker := NewCheckinTracker()

	_, err := tracker.CheckIn(11, "", "")
	require.Error(t, err)
	_, err = tracker.CheckIn(-1, "", "")
	require.Error(t, err)
	assert.Zero(t, tracker.Streak())
}
