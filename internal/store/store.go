// Package store keeps the authoritative game records that positions are
// re-derived from.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/justinabrahms/chessrules/internal/chess"
)

var ErrGameNotFound = errors.New("game not found")

type Game struct {
	ID        string            `json:"id"`
	Status    chess.GameStatus  `json:"status"`
	FEN       string            `json:"fen"`
	LastMove  *chess.MoveResult `json:"lastMove,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewGame returns an active game at fen with a fresh id. An empty fen means
// the standard start position.
func NewGame(fen string) *Game {
	if fen == "" {
		fen = chess.StartFEN
	}
	now := time.Now().UTC()
	return &Game{
		ID:        uuid.NewString(),
		Status:    chess.StatusActive,
		FEN:       fen,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type Store interface {
	Create(ctx context.Context, game *Game) error
	Get(ctx context.Context, id string) (*Game, error)
	Update(ctx context.Context, game *Game) error
	Close() error
}

// Open builds the store named by driver ("memory" or "badger").
func Open(driver, path string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "badger":
		return OpenBadger(path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
