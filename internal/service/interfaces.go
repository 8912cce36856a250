package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/limbo/moodtrack/internal/mood"
	"github.com/limbo/moodtrack/pkg/entity"
)

const (
	DefaultMoodsLimit = 7
	MaxMoodsLimit     = 50
)

type RegisterRequest struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6,max=72"`
}

type SubmitMoodRequest struct {
	Mood int    `validate:"required,min=1,max=5"`
	Note string `validate:"required,notblank,max=2000"`
}

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type MoodServiceI interface {
	// Validates and stores a mood entry stamped with the current time
	Submit(ctx context.Context, uid uuid.UUID, req SubmitMoodRequest) (*entity.MoodEntry, error)
	// Lists latest entries, most recent first. Limit is clamped to [1, MaxMoodsLimit]
	GetRecent(ctx context.Context, uid uuid.UUID, limit int) ([]entity.MoodEntry, error)
	// Builds the trailing week of trend points ending today
	GetTrend(ctx context.Context, uid uuid.UUID) ([]mood.TrendPoint, error)
}
