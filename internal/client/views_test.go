package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/limbo/moodtrack/internal/client"
	errorvalues "github.com/limbo/moodtrack/internal/error_values"
	"github.com/limbo/moodtrack/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHome(t *testing.T) {
	store := &fakeStore{moods: []entity.MoodEntry{{Note: "a"}, {Note: "b"}, {Note: "c"}, {Note: "d"}}}

	entries, err := client.LoadHome(context.Background(), store, session, client.HomeRecentCount)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Note)
}

func TestLoadTrendsLegacyDates(t *testing.T) {
	store := &fakeStore{moods: []entity.MoodEntry{
		{Date: "11/25/2025, 9:15:00 AM", Mood: 2},
		{Date: "11/23/2025, 8:00:00 PM", Mood: 5},
	}}
	now := time.Date(2025, time.November, 25, 12, 0, 0, 0, time.UTC)

	points, err := client.LoadTrends(context.Background(), store, session, now)
	require.NoError(t, err)
	require.Len(t, points, 7)

	got := map[string]int{}
	for _, p := range points {
		if p.HasData {
			got[p.DateKey] = *p.MoodValue
		}
	}
	assert.Equal(t, map[string]int{"11-23": 5, "11-25": 2}, got)
	assert.Equal(t, "11-19", points[0].DateKey)
}

func TestLoadTrendsStoreError(t *testing.T) {
	store := &fakeStore{err: &client.StoreError{Status: 401, Message: "expired"}}
	_, err := client.LoadTrends(context.Background(), store, session, time.Now())
	assert.ErrorIs(t, err, errorvalues.ErrAuthRequired)
}
