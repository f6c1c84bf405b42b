package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const gameKeyPrefix = "game/"

// BadgerStore persists games as JSON values keyed by "game/<id>".
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens a badger database at path. An empty path keeps the data in
// memory only.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

func gameKey(id string) []byte {
	return []byte(gameKeyPrefix + id)
}

func (s *BadgerStore) Create(_ context.Context, game *Game) error {
	value, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to encode game: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(gameKey(game.ID))
		if err == nil {
			return fmt.Errorf("game %s already exists", game.ID)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(gameKey(game.ID), value)
	})
}

func (s *BadgerStore) Get(_ context.Context, id string) (*Game, error) {
	var game Game
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrGameNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &game)
		})
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *BadgerStore) Update(_ context.Context, game *Game) error {
	game.UpdatedAt = time.Now().UTC()
	value, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to encode game: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(game.ID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrGameNotFound, game.ID)
			}
			return err
		}
		return txn.Set(gameKey(game.ID), value)
	})
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
