package store

import (
	"context"
	"testing"

	"github.com/justinabrahms/chessrules/internal/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	b, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"badger": b,
	}
}

func TestStoreLifecycle(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			game := NewGame("")
			require.NotEmpty(t, game.ID)
			assert.Equal(t, chess.StartFEN, game.FEN)
			assert.Equal(t, chess.StatusActive, game.Status)

			require.NoError(t, s.Create(ctx, game))
			assert.Error(t, s.Create(ctx, game), "duplicate create")

			got, err := s.Get(ctx, game.ID)
			require.NoError(t, err)
			assert.Equal(t, game.FEN, got.FEN)
			assert.Nil(t, got.LastMove)

			got.FEN = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
			got.LastMove = &chess.MoveResult{From: "e2", To: "e4", SAN: "e4"}
			require.NoError(t, s.Update(ctx, got))

			again, err := s.Get(ctx, game.ID)
			require.NoError(t, err)
			assert.Equal(t, got.FEN, again.FEN)
			require.NotNil(t, again.LastMove)
			assert.Equal(t, "e4", again.LastMove.SAN)
		})
	}
}

func TestStoreMissingGame(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, "nope")
			assert.ErrorIs(t, err, ErrGameNotFound)

			err = s.Update(ctx, &Game{ID: "nope"})
			assert.ErrorIs(t, err, ErrGameNotFound)
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	game := NewGame("")
	require.NoError(t, s.Create(ctx, game))

	got, err := s.Get(ctx, game.ID)
	require.NoError(t, err)
	got.FEN = "changed"

	again, err := s.Get(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, chess.StartFEN, again.FEN)
}

func TestOpen(t *testing.T) {
	s, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open("postgres", "")
	assert.Error(t, err)
}
