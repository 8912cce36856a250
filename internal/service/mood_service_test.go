package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/moodtrack/internal/error_values"
	"github.com/limbo/moodtrack/internal/repository/mocks"
	"github.com/limbo/moodtrack/internal/service"
	"github.com/limbo/moodtrack/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.November, 25, 10, 0, 0, 0, time.UTC)

func newMoodService(t *testing.T) (*service.MoodService, *mocks.MockMoodsRepositoryI) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMoodsRepositoryI(ctrl)
	ms := service.NewMoodService(repo, time.UTC).WithClock(func() time.Time { return fixedNow })
	return ms, repo
}

func TestMoodServiceSubmit(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	cases := []struct {
		Desc         string
		Req          service.SubmitMoodRequest
		Error        error
		AnyError     bool
		MockPrepFunc func(repo *mocks.MockMoodsRepositoryI)
	}{
		{
			Desc: "Stored with server side label and time",
			Req:  service.SubmitMoodRequest{Mood: 5, Note: "great day"},
			MockPrepFunc: func(repo *mocks.MockMoodsRepositoryI) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, entry *entity.MoodEntry) (*entity.MoodEntry, error) {
						assert.Equal(t, uid, entry.UserID)
						assert.Equal(t, "Happy", entry.MoodText)
						assert.Equal(t, fixedNow.UnixMilli(), entry.Timestamp)
						assert.Equal(t, "11/25/2025, 10:00:00 AM", entry.Date)
						stored := *entry
						stored.ID = uuid.New()
						return &stored, nil
					})
			},
		},
		{
			Desc:         "Missing mood",
			Req:          service.SubmitMoodRequest{Note: "forgot to pick"},
			Error:        errorvalues.ErrValidation,
			MockPrepFunc: func(repo *mocks.MockMoodsRepositoryI) {},
		},
		{
			Desc:         "Mood off the scale",
			Req:          service.SubmitMoodRequest{Mood: 6, Note: "over the moon"},
			Error:        errorvalues.ErrValidation,
			MockPrepFunc: func(repo *mocks.MockMoodsRepositoryI) {},
		},
		{
			Desc:         "Whitespace note",
			Req:          service.SubmitMoodRequest{Mood: 3, Note: "   \t"},
			Error:        errorvalues.ErrValidation,
			MockPrepFunc: func(repo *mocks.MockMoodsRepositoryI) {},
		},
		{
			Desc:  "Owner gone",
			Req:   service.SubmitMoodRequest{Mood: 3, Note: "hm"},
			Error: errorvalues.ErrUserNotFound,
			MockPrepFunc: func(repo *mocks.MockMoodsRepositoryI) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errorvalues.ErrUserNotFound)
			},
		},
		{
			Desc:     "Repository failure",
			Req:      service.SubmitMoodRequest{Mood: 3, Note: "hm"},
			AnyError: true,
			MockPrepFunc: func(repo *mocks.MockMoodsRepositoryI) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.Desc, func(t *testing.T) {
			ms, repo := newMoodService(t)
			tc.MockPrepFunc(repo)

			entry, err := ms.Submit(ctx, uid, tc.Req)
			switch {
			case tc.Error != nil:
				assert.ErrorIs(t, err, tc.Error)
			case tc.AnyError:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, entry.ID)
				assert.Equal(t, tc.Req.Note, entry.Note)
			}
		})
	}
}

func TestMoodServiceGetRecentClampsLimit(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	cases := []struct {
		Desc     string
		Limit    int
		Expected int
	}{
		{Desc: "Zero raised to one", Limit: 0, Expected: 1},
		{Desc: "Negative raised to one", Limit: -4, Expected: 1},
		{Desc: "Lower bound kept", Limit: 1, Expected: 1},
		{Desc: "Upper bound kept", Limit: service.MaxMoodsLimit, Expected: service.MaxMoodsLimit},
		{Desc: "In range kept", Limit: 3, Expected: 3},
		{Desc: "Too large capped", Limit: 500, Expected: service.MaxMoodsLimit},
	}
	for _, tc := range cases {
		t.Run(tc.Desc, func(t *testing.T) {
			ms, repo := newMoodService(t)
			repo.EXPECT().GetRecent(gomock.Any(), uid, tc.Expected).Return([]entity.MoodEntry{}, nil)

			entries, err := ms.GetRecent(ctx, uid, tc.Limit)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestMoodServiceGetTrend(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	ms, repo := newMoodService(t)
	monday := time.Date(2025, time.November, 24, 9, 0, 0, 0, time.UTC)
	repo.EXPECT().GetRecent(gomock.Any(), uid, 7).Return([]entity.MoodEntry{
		{Timestamp: fixedNow.UnixMilli(), Mood: 2},
		{Timestamp: monday.Add(5 * time.Hour).UnixMilli(), Mood: 4},
		{Timestamp: monday.UnixMilli(), Mood: 1},
		{Date: "11/20/2025, 8:00:00 PM", Mood: 5},
	}, nil)

	points, err := ms.GetTrend(ctx, uid)
	require.NoError(t, err)
	require.Len(t, points, 7)

	values := map[string]int{}
	for _, p := range points {
		if p.HasData {
			values[p.DateKey] = *p.MoodValue
		} else {
			assert.Nil(t, p.MoodValue)
		}
	}
	assert.Equal(t, map[string]int{"11-20": 5, "11-24": 4, "11-25": 2}, values)
	assert.Equal(t, "11-25", points[6].DateKey)
	assert.Equal(t, "Tue", points[6].WeekdayName)
}

func TestMoodServiceGetTrendRepositoryError(t *testing.T) {
	ms, repo := newMoodService(t)
	repo.EXPECT().GetRecent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	_, err := ms.GetTrend(context.Background(), uuid.New())
	assert.Error(t, err)
}
