// @title MoodTrack API
// @description API for the MoodTrack mood journal
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/limbo/moodtrack/docs"
	"github.com/limbo/moodtrack/internal/api"
	"github.com/limbo/moodtrack/internal/repository"
	"github.com/limbo/moodtrack/internal/service"
	"github.com/limbo/moodtrack/pkg/cleanup"
	"github.com/limbo/moodtrack/pkg/config"
	jwtservice "github.com/limbo/moodtrack/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	setupLogger(cfg.GetStringOr("LOG_LEVEL", "info"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer cleanup.CleanUp()

	loc, err := time.LoadLocation(cfg.GetStringOr("TIMEZONE", "UTC"))
	if err != nil {
		log.Fatal("loading timezone error: ", err)
	}
	secret := cfg.GetString("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	pool, err := repository.Connect(ctx, &dbCfg)
	if err != nil {
		log.Fatal("connecting database error: ", err)
	}
	if err = repository.MigratePool(ctx, pool); err != nil {
		log.Fatal("applying migrations error: ", err)
	}

	userService := service.NewUserService(repository.NewUsersRepoWithConn(pool))
	moodService := service.NewMoodService(repository.NewMoodsRepoWithConn(pool), loc)
	serv := api.New(&api.ServicesList{
		UserService: userService,
		MoodService: moodService,
		JwtService:  jwtservice.New(secret, cfg.GetDuration("JWT_TTL", time.Hour)),
	},
		api.WithRateLimit(cfg.GetFloat("RATE_LIMIT_RPS", 5), cfg.GetInt("RATE_LIMIT_BURST", 20)),
		api.WithAllowedOrigins(splitList(cfg.GetString("ALLOWED_ORIGINS"))),
	)
	err = serv.Run(ctx, cfg.GetStringOr("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
