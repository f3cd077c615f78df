// service/game_manager.go
package service

import (
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games map[string]*Table
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*Table),
	}
}

// NewGameID returns a fresh random game id.
func NewGameID() string {
	return uuid.New().String()
}

func (gm *GameManager) CreateGame(gameID string) (*Table, error) {
	if _, err := uuid.Parse(gameID); err != nil {
		return nil, errors.Wrapf(err, "game id %q", gameID)
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, errors.Wrapf(ErrGameExists, "%s", gameID)
	}

	table := NewTable(gameID)
	gm.games[gameID] = table
	log.Infow("game created", "table", gameID)
	return table, nil
}

func (gm *GameManager) GetGame(gameID string) (*Table, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	table, exists := gm.games[gameID]
	if !exists {
		return nil, errors.Wrapf(ErrGameNotFound, "%s", gameID)
	}
	return table, nil
}

// DeleteGame forgets the game and closes its connections.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	table, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()

	if !exists {
		return errors.Wrapf(ErrGameNotFound, "%s", gameID)
	}
	log.Infow("game deleted", "table", gameID)
	return table.Close()
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// Shutdown closes every table and returns all failures together.
func (gm *GameManager) Shutdown() error {
	gm.mu.Lock()
	games := gm.games
	gm.games = make(map[string]*Table)
	gm.mu.Unlock()

	var result error
	for id, table := range games {
		if err := table.Close(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "table %s", id))
		}
	}
	return result
}
