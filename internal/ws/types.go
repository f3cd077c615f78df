package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chess-backend/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeReset      MessageType = "reset"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage marshals payload into a Message of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

// MovePayload is a proposed move as sent by a board UI.
type MovePayload struct {
	From      model.Position  `json:"from"`
	To        model.Position  `json:"to"`
	Promotion model.PieceType `json:"promotion"`
}

func (p MovePayload) Move() model.Move {
	return model.Move{From: p.From, To: p.To, Promotion: p.Promotion}
}

// SelectPayload asks for the legal moves of the piece on a square.
type SelectPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type LegalMovesPayload struct {
	From  model.Position `json:"from"`
	Moves model.MoveList `json:"moves"`
}

// MoveResult is returned after a committed move.
type MoveResult struct {
	Outcome model.MoveOutcome `json:"outcome"`
	State   model.GameState   `json:"state"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
