package client

import (
	"context"
	"time"

	"github.com/limbo/moodtrack/internal/mood"
	"github.com/limbo/moodtrack/pkg/entity"
)

// LoadHome fetches the n most recent entries for the home view.
func LoadHome(ctx context.Context, store MoodStore, s *Session, n int) ([]entity.MoodEntry, error) {
	entries, err := store.GetMoods(ctx, s, n)
	if err != nil {
		return nil, err
	}
	return truncate(entries, n), nil
}

// LoadTrends reads one window's worth of entries and reconciles them against
// the seven days ending at now.
func LoadTrends(ctx context.Context, store MoodStore, s *Session, now time.Time) ([]mood.TrendPoint, error) {
	entries, err := store.GetMoods(ctx, s, mood.WindowDays)
	if err != nil {
		return nil, err
	}
	return mood.BuildTrend(now, entries), nil
}
