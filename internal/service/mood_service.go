package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/moodtrack/internal/error_values"
	"github.com/limbo/moodtrack/internal/mood"
	"github.com/limbo/moodtrack/internal/repository"
	"github.com/limbo/moodtrack/pkg/entity"
)

type MoodService struct {
	repo repository.MoodsRepositoryI
	loc  *time.Location
	now  func() time.Time
}

func NewMoodService(moodsRepo repository.MoodsRepositoryI, loc *time.Location) *MoodService {
	if moodsRepo == nil {
		log.Fatal("on mood service provided nil repo")
	}
	if loc == nil {
		loc = time.Local
	}
	return &MoodService{
		repo: moodsRepo,
		loc:  loc,
		now:  time.Now,
	}
}

// WithClock replaces the time source, used to pin "today" in tests.
func (serv *MoodService) WithClock(now func() time.Time) *MoodService {
	serv.now = now
	return serv
}

func (serv *MoodService) Submit(ctx context.Context, uid uuid.UUID, req SubmitMoodRequest) (*entity.MoodEntry, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	now := serv.now().In(serv.loc)
	entry, err := serv.repo.Create(ctx, &entity.MoodEntry{
		UserID:    uid,
		Timestamp: now.UnixMilli(),
		Date:      now.Format(mood.DisplayDateLayout),
		Mood:      req.Mood,
		MoodText:  mood.Lookup(req.Mood).Label,
		Note:      req.Note,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) || errors.Is(err, errorvalues.ErrValidation) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	return entry, nil
}

// GetRecent returns the newest entries first. limit is clamped to
// [1, MaxMoodsLimit]; callers pick DefaultMoodsLimit when none was asked for.
func (serv *MoodService) GetRecent(ctx context.Context, uid uuid.UUID, limit int) ([]entity.MoodEntry, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxMoodsLimit {
		limit = MaxMoodsLimit
	}
	entries, err := serv.repo.GetRecent(ctx, uid, limit)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return entries, nil
}

func (serv *MoodService) GetTrend(ctx context.Context, uid uuid.UUID) ([]mood.TrendPoint, error) {
	entries, err := serv.repo.GetRecent(ctx, uid, mood.WindowDays)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return mood.BuildTrend(serv.now().In(serv.loc), entries), nil
}
