package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/limbo/moodtrack/internal/cli"
	"github.com/limbo/moodtrack/internal/client"
	"github.com/limbo/moodtrack/pkg/config"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	cfg := config.New()
	home, err := client.HomeDir()
	if err != nil {
		slog.Error("resolving home directory", slog.String("error", err.Error()))
		os.Exit(2)
	}
	cli.Execute(&cli.App{
		Store: client.NewAPIClient(
			cfg.GetStringOr("MOODTRACK_API_URL", "http://localhost:8080"),
			cfg.GetDuration("HTTP_TIMEOUT", 10*time.Second),
		),
		Sessions: client.NewFileSessionStore(home),
	})
}
