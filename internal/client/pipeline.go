package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/moodtrack/internal/error_values"
	"github.com/limbo/moodtrack/internal/mood"
	"github.com/limbo/moodtrack/pkg/entity"
)

const (
	HomeRecentCount     = 3
	DefaultDisplayDelay = 2 * time.Second
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	default:
		return "idle"
	}
}

// Submission is the user's pending entry. MoodValue is nil until a mood is
// picked.
type Submission struct {
	MoodValue *int
	Note      string
}

// Pipeline submits entries one at a time and keeps the short list of recent
// entries shown on the home view. After a success the state returns to idle
// once the display delay passes.
type Pipeline struct {
	mu           sync.Mutex
	store        MoodStore
	state        State
	recent       []entity.MoodEntry
	capacity     int
	displayDelay time.Duration
	timer        *time.Timer
	now          func() time.Time
}

func NewPipeline(store MoodStore, capacity int, displayDelay time.Duration) *Pipeline {
	if capacity < 1 {
		capacity = HomeRecentCount
	}
	return &Pipeline{
		store:        store,
		capacity:     capacity,
		displayDelay: displayDelay,
		now:          time.Now,
	}
}

// WithClock replaces the time source used to stamp entries.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) Recent() []entity.MoodEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]entity.MoodEntry, len(p.recent))
	copy(out, p.recent)
	return out
}

// SetRecent seeds the list, usually from LoadHome.
func (p *Pipeline) SetRecent(entries []entity.MoodEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recent = truncate(append([]entity.MoodEntry(nil), entries...), p.capacity)
}

// Submit validates the entry, hands it to the store and, on success, puts the
// confirmed entry at the head of the recent list. A validation error leaves
// the state untouched and never reaches the store. A store error returns the
// pipeline to idle with the list unchanged.
func (p *Pipeline) Submit(ctx context.Context, s *Session, sub Submission) (*entity.MoodEntry, error) {
	if s == nil {
		return nil, errorvalues.ErrAuthRequired
	}
	p.mu.Lock()
	if p.state == StateSubmitting {
		p.mu.Unlock()
		return nil, errorvalues.ErrSubmissionInProgress
	}
	if err := mood.ValidateSubmission(sub.MoodValue, sub.Note); err != nil {
		p.mu.Unlock()
		return nil, err
	}
	p.stopTimer()
	p.state = StateSubmitting
	now := p.now()
	p.mu.Unlock()

	local := &entity.MoodEntry{
		UserID:    s.UserID,
		Timestamp: now.UnixMilli(),
		Date:      now.Format(mood.DisplayDateLayout),
		Mood:      *sub.MoodValue,
		MoodText:  mood.Lookup(*sub.MoodValue).Label,
		Note:      sub.Note,
	}
	stored, err := p.store.SubmitMood(ctx, s, local)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = StateIdle
		slog.Debug("mood submission failed", slog.String("error", err.Error()))
		return nil, err
	}
	confirmed := mergeConfirmed(stored, local)
	p.recent = truncate(append([]entity.MoodEntry{confirmed}, p.recent...), p.capacity)
	p.state = StateSuccess
	p.timer = time.AfterFunc(p.displayDelay, p.resetAfterSuccess)
	return &confirmed, nil
}

func (p *Pipeline) resetAfterSuccess() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateSuccess {
		p.state = StateIdle
	}
}

func (p *Pipeline) stopTimer() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// mergeConfirmed prefers what the store returned, field by field, and falls
// back to the locally built entry.
func mergeConfirmed(stored, local *entity.MoodEntry) entity.MoodEntry {
	if stored == nil {
		return *local
	}
	out := *stored
	if out.ID == uuid.Nil {
		out.ID = local.ID
	}
	if out.UserID == uuid.Nil {
		out.UserID = local.UserID
	}
	if out.Timestamp == 0 {
		out.Timestamp = local.Timestamp
	}
	if out.Date == "" {
		out.Date = local.Date
	}
	if out.Mood == 0 {
		out.Mood = local.Mood
	}
	if out.MoodText == "" {
		out.MoodText = local.MoodText
	}
	if out.Note == "" {
		out.Note = local.Note
	}
	return out
}

func truncate(entries []entity.MoodEntry, n int) []entity.MoodEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}
