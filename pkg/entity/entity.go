package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// MoodEntry is a persisted mood submission. Date is the display string
// written at creation time and is kept for older clients only; Timestamp
// (epoch milliseconds) identifies the day.
type MoodEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Timestamp int64     `json:"timestamp"`
	Date      string    `json:"date"`
	Mood      int       `json:"mood"`
	MoodText  string    `json:"moodText"`
	Note      string    `json:"note"`
}
