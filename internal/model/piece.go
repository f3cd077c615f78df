package model

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the row delta of a pawn push for this color.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// pawnRow is the row pawns of this color start on.
func (c Color) pawnRow() int {
	if c == White {
		return 6
	}
	return 1
}

// doubleStepRow is the row a pawn of this color lands on after its two row
// advance.
func (c Color) doubleStepRow() int {
	return c.pawnRow() + 2*c.forward()
}

// backRow is the row the king and rooks of this color start on.
func (c Color) backRow() int {
	if c == White {
		return 7
	}
	return 0
}

// lastRow is the row a pawn of this color promotes on.
func (c Color) lastRow() int {
	return c.Opponent().backRow()
}

type PieceType string

const (
	NoPiece PieceType = ""
	King    PieceType = "king"
	Queen   PieceType = "queen"
	Rook    PieceType = "rook"
	Bishop  PieceType = "bishop"
	Knight  PieceType = "knight"
	Pawn    PieceType = "pawn"
)

func (p PieceType) notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// canPromoteTo reports whether a pawn may turn into this type.
func (p PieceType) canPromoteTo() bool {
	switch p {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// Piece is stored by value in its square. The zero Piece is "no piece".
type Piece struct {
	Type      PieceType `json:"type"`
	Color     Color     `json:"color"`
	Moved     bool      `json:"hasMoved"`
	EnPassant bool      `json:"enPassant"`
}

func NewPiece(t PieceType, c Color) Piece {
	return Piece{Type: t, Color: c}
}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}
