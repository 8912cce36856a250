package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/limbo/moodtrack/migrations"
	"github.com/limbo/moodtrack/pkg/cleanup"
)

// Connect opens a pool, checks it is alive and schedules its closing on
// shutdown.
func Connect(ctx context.Context, cfg DBConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, errors.New("creating pgxpool error: " + err.Error())
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.New("pinging pgxpool error: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return pool, nil
}

// MigratePool applies the embedded migrations through a database/sql handle
// backed by the pool. The handle holds no idle connections of its own, so it
// is left for the pool's cleanup job.
func MigratePool(ctx context.Context, pool *pgxpool.Pool) error {
	return RunMigrations(ctx, stdlib.OpenDBFromPool(pool))
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.New("setting migrations dialect error: " + err.Error())
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.New("applying migrations error: " + err.Error())
	}
	return nil
}
