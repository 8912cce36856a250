package mood

import "time"

const (
	WindowDays = 7
	keyLayout  = "01-02"

	// DisplayDateLayout renders the legacy date field of an entry
	// ("11/25/2025, 10:00:00 AM").
	DisplayDateLayout = "1/2/2006, 3:04:05 PM"
)

type CalendarDay struct {
	DateKey     string    `json:"dateKey"`
	WeekdayName string    `json:"weekdayName"`
	FullDate    time.Time `json:"fullDate"`
}

// Window returns the WindowDays calendar days ending with the day of now,
// oldest first, in now's location.
func Window(now time.Time) []CalendarDay {
	days := make([]CalendarDay, 0, WindowDays)
	for i := WindowDays - 1; i >= 0; i-- {
		// time.Date normalizes day underflow across month and year boundaries
		day := time.Date(now.Year(), now.Month(), now.Day()-i, 0, 0, 0, 0, now.Location())
		days = append(days, CalendarDay{
			DateKey:     day.Format(keyLayout),
			WeekdayName: day.Weekday().String()[:3],
			FullDate:    day,
		})
	}
	return days
}

// DateKeyOf formats t as a canonical "MM-DD" key in loc.
func DateKeyOf(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(keyLayout)
}
