package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/moodtrack/internal/error_values"
	"github.com/limbo/moodtrack/pkg/entity"
)

type MoodsRepository struct {
	conn PgConnection
}

func NewMoodsRepoWithConn(conn PgConnection) *MoodsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for moodsRepo: " + err.Error())
	}
	return &MoodsRepository{
		conn: conn,
	}
}

func (mr *MoodsRepository) Create(ctx context.Context, entry *entity.MoodEntry) (*entity.MoodEntry, error) {
	if entry == nil {
		return nil, errors.New("mood entry is nil")
	}
	row := mr.conn.QueryRow(
		ctx,
		`INSERT INTO moods (user_id, ts, date_text, mood, mood_text, note) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		entry.UserID,
		entry.Timestamp,
		entry.Date,
		entry.Mood,
		entry.MoodText,
		entry.Note,
	)
	created := *entry
	if err := row.Scan(&created.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrUserNotFound
			// Check violation
			case "23514":
				return nil, errorvalues.ErrValidation
			}
		}
		return nil, errors.New("creating mood entry error: " + err.Error())
	}
	return &created, nil
}

func (mr *MoodsRepository) GetRecent(ctx context.Context, uid uuid.UUID, limit int) ([]entity.MoodEntry, error) {
	rows, err := mr.conn.Query(
		ctx,
		`SELECT id, user_id, ts, date_text, mood, mood_text, note FROM moods WHERE user_id = $1 ORDER BY ts DESC LIMIT $2;`,
		uid,
		limit,
	)
	if err != nil {
		return nil, errors.New("getting recent moods error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.MoodEntry, 0, max(limit, 0))
	for rows.Next() {
		entry := entity.MoodEntry{}
		err = rows.Scan(&entry.ID, &entry.UserID, &entry.Timestamp, &entry.Date, &entry.Mood, &entry.MoodText, &entry.Note)
		if err != nil {
			return nil, errors.New("mood row parsing error: " + err.Error())
		}
		result = append(result, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected mood rows error: " + err.Error())
	}
	return result, nil
}
