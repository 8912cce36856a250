package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/limbo/moodtrack/internal/mood"
	"github.com/limbo/moodtrack/pkg/entity"
)

const noRecord = "No record"

func renderRecent(w io.Writer, entries []entity.MoodEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No entries yet. Add one with 'moodctl submit'.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tMOOD\tNOTE")
	for _, e := range entries {
		v := mood.Lookup(e.Mood)
		fmt.Fprintf(tw, "%s\t%s %s\t%s\n", entryWhen(e), v.Emoji, v.Label, oneLine(e.Note))
	}
	return tw.Flush()
}

func renderTrend(w io.Writer, points []mood.TrendPoint) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tDATE\tMOOD")
	for _, p := range points {
		cell := noRecord
		if p.HasData && p.MoodValue != nil {
			v := mood.Lookup(*p.MoodValue)
			cell = fmt.Sprintf("%s %s (%d)", v.Emoji, v.Label, *p.MoodValue)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.WeekdayName, p.DateKey, cell)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return renderLegend(w)
}

func renderLegend(w io.Writer) error {
	parts := make([]string, 0, 5)
	for _, v := range mood.Scales() {
		parts = append(parts, fmt.Sprintf("%d %s %s", v.Value, v.Emoji, v.Label))
	}
	_, err := fmt.Fprintln(w, "\nScale: "+strings.Join(parts, " | "))
	return err
}

func entryWhen(e entity.MoodEntry) string {
	if e.Timestamp > 0 {
		return time.UnixMilli(e.Timestamp).Local().Format("Mon Jan 2 15:04")
	}
	return e.Date
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
