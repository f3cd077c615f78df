package service

import (
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/pkg/errors"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := NewGameID()

	if _, err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", errors.Wrap(err, "failed to create game")
	}

	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return table.State(), nil
}

// LegalMoves lists the legal moves from (row, col). Invalid selections come
// back as an empty list so a UI can simply show nothing; out of range
// coordinates are still an error.
func (gs *GameService) LegalMoves(gameID string, row, col int) (ws.LegalMovesPayload, error) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return ws.LegalMovesPayload{}, err
	}
	moves, err := table.LegalMoves(row, col)
	if err != nil && !errors.Is(err, model.ErrInvalidSelection) && !errors.Is(err, model.ErrGameOver) {
		return ws.LegalMovesPayload{}, err
	}
	return ws.LegalMovesPayload{
		From:  model.Position{Row: row, Col: col},
		Moves: moves,
	}, nil
}

func (gs *GameService) HandleMove(gameID string, move ws.MovePayload) (ws.MoveResult, error) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return ws.MoveResult{}, err
	}
	return table.MakeMove(move.Move())
}

func (gs *GameService) ResetGame(gameID string) (model.GameState, error) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return table.Reset(), nil
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn Conn) error {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return table.RegisterConnection(clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string, conn Conn) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	table.UnregisterConnection(clientID, conn)
}

// SendTo writes msg to one client of a game.
func (gs *GameService) SendTo(gameID string, clientID string, msg ws.Message) error {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return table.Send(clientID, msg)
}
