package mood

import (
	"log/slog"
	"time"

	"github.com/limbo/moodtrack/pkg/entity"
)

// KeyedMood is a stored mood value already aligned to a canonical date key.
type KeyedMood struct {
	DateKey string
	Value   int
}

type TrendPoint struct {
	DateKey     string `json:"dateKey"`
	WeekdayName string `json:"weekdayName"`
	MoodValue   *int   `json:"moodValue"`
	HasData     bool   `json:"hasData"`
}

// Reconcile emits one point per calendar day, in the days' order. When
// several records share a key the last one in records wins. Days without a
// record are gaps: HasData is false and MoodValue is nil, never zero.
func Reconcile(days []CalendarDay, records []KeyedMood) []TrendPoint {
	byKey := make(map[string]int, len(records))
	for _, rec := range records {
		byKey[rec.DateKey] = rec.Value
	}
	points := make([]TrendPoint, 0, len(days))
	for _, day := range days {
		point := TrendPoint{
			DateKey:     day.DateKey,
			WeekdayName: day.WeekdayName,
		}
		if value, ok := byKey[day.DateKey]; ok {
			v := value
			point.MoodValue = &v
			point.HasData = true
		}
		points = append(points, point)
	}
	return points
}

// DateKeyFor derives the calendar key of a stored entry. The epoch
// timestamp is authoritative; the display string is only parsed for legacy
// rows written without one.
func DateKeyFor(entry entity.MoodEntry, loc *time.Location) string {
	if entry.Timestamp > 0 {
		return DateKeyOf(time.UnixMilli(entry.Timestamp), loc)
	}
	return NormalizeDateKey(entry.Date)
}

// BuildTrend reconciles entries, as returned by the store (most recent
// first), against the window ending at now. Entries are fed oldest first so
// the latest entry of a day is the one charted. Timestamped entries must fall
// inside the window by full calendar date; only legacy rows are matched by
// key alone.
func BuildTrend(now time.Time, entries []entity.MoodEntry) []TrendPoint {
	days := Window(now)
	start := days[0].FullDate
	end := days[len(days)-1].FullDate.AddDate(0, 0, 1)
	records := make([]KeyedMood, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if entry.Timestamp > 0 {
			at := time.UnixMilli(entry.Timestamp).In(now.Location())
			if at.Before(start) || !at.Before(end) {
				slog.Debug("mood entry outside trend window",
					slog.String("date", entry.Date),
					slog.Time("at", at),
				)
				continue
			}
		}
		records = append(records, KeyedMood{DateKey: DateKeyFor(entry, now.Location()), Value: entry.Mood})
	}
	return Reconcile(days, records)
}
