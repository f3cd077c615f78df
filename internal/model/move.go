package model

import "fmt"

// Move is identified by its From/To pair; the remaining fields are metadata
// filled in by move generation.
type Move struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Capture   bool      `json:"capture"`
	Castling  bool      `json:"castling"`
	EnPassant bool      `json:"enPassant"`
	Promotion PieceType `json:"promotion,omitempty"`
}

// Equal compares coordinates only.
func (m Move) Equal(other Move) bool {
	return m.From == other.From && m.To == other.To
}

func (m Move) String() string {
	return fmt.Sprintf("%s-%s", m.From, m.To)
}

type MoveList []Move

// Find returns the listed move with the same coordinates as m.
func (l MoveList) Find(m Move) (Move, bool) {
	for _, candidate := range l {
		if candidate.Equal(m) {
			return candidate, true
		}
	}
	return Move{}, false
}

func (l MoveList) Contains(m Move) bool {
	_, ok := l.Find(m)
	return ok
}

// Destinations lists the target squares, the shape a board UI highlights.
func (l MoveList) Destinations() []Position {
	out := make([]Position, 0, len(l))
	for _, m := range l {
		out = append(out, m.To)
	}
	return out
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply is one committed half-move as shown in the move list.
type Ply struct {
	Piece          Piece           `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceType       `json:"promotion"`
	Notation       string          `json:"notation"`
}

// MoveOutcome is what Commit reports back to the caller.
type MoveOutcome struct {
	Move        Move   `json:"move"`
	Captured    *Piece `json:"captured"`
	IsCheck     bool   `json:"isCheck"`
	IsCheckmate bool   `json:"isCheckmate"`
	IsStalemate bool   `json:"isStalemate"`
	NextPlayer  Color  `json:"nextPlayer"`
	Notation    string `json:"notation"`
}
