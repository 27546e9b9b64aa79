package history

import (
	"context"
	"time"
)

// Outcome of a recorded match.
const (
	OutcomeWin       = "win"
	OutcomeAbandoned = "abandoned"
)

// Match is one finished (or abandoned) game, ready for the /matches feed.
type Match struct {
	ID         string    `json:"id"`
	RoomID     uint64    `json:"room_id"`
	Winner     string    `json:"winner"`
	Loser      string    `json:"loser"`
	Outcome    string    `json:"outcome"`
	FinishedAt time.Time `json:"finished_at"`
}

// Recorder archives finished matches. Recording is best-effort: a failure is
// logged by the caller and never affects a running game.
type Recorder interface {
	Record(ctx context.Context, m Match) error
	Recent(ctx context.Context, n int) ([]Match, error)
}

// NopRecorder is used when no redis address is configured.
type NopRecorder struct{}

func NewNopRecorder() NopRecorder { return NopRecorder{} }

func (NopRecorder) Record(ctx context.Context, m Match) error { return nil }

func (NopRecorder) Recent(ctx context.Context, n int) ([]Match, error) { return nil, nil }
