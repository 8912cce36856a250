package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/limbo/moodtrack/internal/client"
	"github.com/limbo/moodtrack/internal/mood"
)

func newSubmitCmd(app *App) *cobra.Command {
	var (
		value int
		note  string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record how you feel right now",
		Long: `Record a mood on the 1-5 scale with a short note:
  5 Happy, 4 Calm, 3 Anxious, 2 Angry, 1 Sad`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session()
			if err != nil {
				return err
			}
			sub := client.Submission{Note: note}
			if cmd.Flags().Changed("mood") {
				sub.MoodValue = &value
			}
			pipeline := client.NewPipeline(app.Store, client.HomeRecentCount, client.DefaultDisplayDelay)
			if app.Now != nil {
				pipeline.WithClock(app.Now)
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			recent, err := client.LoadHome(ctx, app.Store, s, client.HomeRecentCount)
			if err != nil {
				return describe(err)
			}
			pipeline.SetRecent(recent)
			entry, err := pipeline.Submit(ctx, s, sub)
			if err != nil {
				return describe(err)
			}
			v := mood.Lookup(entry.Mood)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s %s: %s\n\n", v.Emoji, v.Label, entry.Note)
			return renderRecent(cmd.OutOrStdout(), pipeline.Recent())
		},
	}
	cmd.Flags().IntVarP(&value, "mood", "m", 0, "mood 1-5")
	cmd.Flags().StringVarP(&note, "note", "n", "", "what is on your mind")
	return cmd
}

func newHomeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show your latest entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			entries, err := client.LoadHome(ctx, app.Store, s, client.HomeRecentCount)
			if err != nil {
				return describe(err)
			}
			return renderRecent(cmd.OutOrStdout(), entries)
		},
	}
}

func newTrendsCmd(app *App) *cobra.Command {
	var fromServer bool
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Show the last seven days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			var points []mood.TrendPoint
			if fromServer {
				points, err = app.Store.GetTrends(ctx, s)
			} else {
				points, err = client.LoadTrends(ctx, app.Store, s, app.now())
			}
			if err != nil {
				return describe(err)
			}
			return renderTrend(cmd.OutOrStdout(), points)
		},
	}
	cmd.Flags().BoolVar(&fromServer, "server", false, "let the server build the week in its time zone")
	return cmd
}
