package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/moodtrack/internal/error_values"
	"github.com/limbo/moodtrack/internal/repository"
	"github.com/limbo/moodtrack/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMood(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	moodsRepo := repository.NewMoodsRepoWithConn(mock)
	query := regexp.QuoteMeta(`INSERT INTO moods (user_id, ts, date_text, mood, mood_text, note) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`)
	entry := entity.MoodEntry{
		UserID:    uuid.New(),
		Timestamp: 1764064800000,
		Date:      "11/25/2025, 10:00:00 AM",
		Mood:      5,
		MoodText:  "Happy",
		Note:      "Promoted!",
	}
	entryID := uuid.New()
	args := []any{entry.UserID, entry.Timestamp, entry.Date, entry.Mood, entry.MoodText, entry.Note}
	testCases := []struct {
		Desc         string
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:  "successful",
			Error: nil,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(args...).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(entryID))
			},
		},
		{
			Desc:  "fk violation",
			Error: errorvalues.ErrUserNotFound,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(args...).WillReturnError(&pgconn.PgError{
					Code: "23503",
				})
			},
		},
		{
			Desc:  "check violation",
			Error: errorvalues.ErrValidation,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(args...).WillReturnError(&pgconn.PgError{
					Code: "23514",
				})
			},
		},
		{
			Desc:  "db error",
			Error: errors.New("creating mood entry error: db error"),
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(args...).WillReturnError(errors.New("db error"))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			created, err := moodsRepo.Create(ctx, &entry)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entryID, created.ID)
			assert.Equal(t, entry.Note, created.Note)
			assert.Equal(t, uuid.Nil, entry.ID)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentMoods(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	moodsRepo := repository.NewMoodsRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT id, user_id, ts, date_text, mood, mood_text, note FROM moods WHERE user_id = $1 ORDER BY ts DESC LIMIT $2;`)
	columns := []string{"id", "user_id", "ts", "date_text", "mood", "mood_text", "note"}
	uid := uuid.New()
	newer := entity.MoodEntry{ID: uuid.New(), UserID: uid, Timestamp: 1764064800000, Date: "11/25/2025, 10:00:00 AM", Mood: 2, MoodText: "Angry", Note: "Bad traffic"}
	older := entity.MoodEntry{ID: uuid.New(), UserID: uid, Timestamp: 1763892000000, Date: "11/23/2025, 10:00:00 AM", Mood: 5, MoodText: "Happy", Note: "Great day!"}
	testCases := []struct {
		Desc         string
		Error        bool
		Result       []entity.MoodEntry
		MockPrepFunc func()
	}{
		{
			Desc:   "successful",
			Result: []entity.MoodEntry{newer, older},
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(uid, 7).WillReturnRows(pgxmock.NewRows(columns).
					AddRow(newer.ID, newer.UserID, newer.Timestamp, newer.Date, newer.Mood, newer.MoodText, newer.Note).
					AddRow(older.ID, older.UserID, older.Timestamp, older.Date, older.Mood, older.MoodText, older.Note))
			},
		},
		{
			Desc:   "no entries",
			Result: []entity.MoodEntry{},
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(uid, 7).WillReturnRows(pgxmock.NewRows(columns))
			},
		},
		{
			Desc:  "query error",
			Error: true,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(uid, 7).WillReturnError(errors.New("db error"))
			},
		},
		{
			Desc:  "rows error",
			Error: true,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(uid, 7).WillReturnRows(pgxmock.NewRows(columns).
					AddRow(newer.ID, newer.UserID, newer.Timestamp, newer.Date, newer.Mood, newer.MoodText, newer.Note).
					RowError(0, errors.New("broken row")))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			result, err := moodsRepo.GetRecent(ctx, uid, 7)
			if tc.Error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Result, result)
		})
	}
}
