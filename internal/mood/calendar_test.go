package mood_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/limbo/moodtrack/internal/mood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	now := time.Date(2025, 11, 25, 15, 4, 5, 0, time.UTC)
	days := mood.Window(now)
	require.Len(t, days, mood.WindowDays)
	wantKeys := []string{"11-19", "11-20", "11-21", "11-22", "11-23", "11-24", "11-25"}
	wantNames := []string{"Wed", "Thu", "Fri", "Sat", "Sun", "Mon", "Tue"}
	for i, day := range days {
		assert.Equal(t, wantKeys[i], day.DateKey)
		assert.Equal(t, wantNames[i], day.WeekdayName)
	}
	assert.Equal(t, time.Date(2025, 11, 25, 0, 0, 0, 0, time.UTC), days[6].FullDate)
}

func TestWindowCrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, 1, 3, 8, 0, 0, 0, time.UTC)
	days := mood.Window(now)
	require.Len(t, days, mood.WindowDays)
	assert.Equal(t, "12-28", days[0].DateKey)
	assert.Equal(t, 2025, days[0].FullDate.Year())
	assert.Equal(t, "01-03", days[6].DateKey)
}

func TestWindowStrictlyConsecutive(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	testCases := []struct {
		Desc string
		Now  time.Time
	}{
		{Desc: "spring forward", Now: time.Date(2025, 3, 12, 0, 30, 0, 0, ny)},
		{Desc: "fall back", Now: time.Date(2025, 11, 4, 23, 59, 0, 0, ny)},
		{Desc: "leap day", Now: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			days := mood.Window(tc.Now)
			require.Len(t, days, mood.WindowDays)
			seen := make(map[string]struct{})
			for i, day := range days {
				_, dup := seen[day.DateKey]
				assert.False(t, dup, "duplicate key %s", day.DateKey)
				seen[day.DateKey] = struct{}{}
				if i == 0 {
					continue
				}
				prev := days[i-1].FullDate
				y, m, d := prev.AddDate(0, 0, 1).Date()
				cy, cm, cd := day.FullDate.Date()
				assert.Equal(t, []int{y, int(m), d}, []int{cy, int(cm), cd})
			}
			ty, tm, td := tc.Now.Date()
			ly, lm, ld := days[len(days)-1].FullDate.Date()
			assert.Equal(t, []int{ty, int(tm), td}, []int{ly, int(lm), ld})
		})
	}
}

func TestDateKeyOf(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	ts := time.Date(2025, 11, 24, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "11-24", mood.DateKeyOf(ts, time.UTC))
	assert.Equal(t, "11-25", mood.DateKeyOf(ts, tokyo))
	assert.Equal(t, "11-24", mood.DateKeyOf(ts, nil))
}
