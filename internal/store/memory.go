package store

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]Game
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]Game),
	}
}

func (s *MemoryStore) Create(_ context.Context, game *Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[game.ID]; ok {
		return fmt.Errorf("game %s already exists", game.ID)
	}
	s.games[game.ID] = *game
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return &game, nil
}

func (s *MemoryStore) Update(_ context.Context, game *Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[game.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, game.ID)
	}
	game.UpdatedAt = time.Now().UTC()
	s.games[game.ID] = *game
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
