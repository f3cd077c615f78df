package model

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Position is a board coordinate. Row 0 is black's back rank, column 0 is the a-file.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InRange() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

func (p Position) add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

func (p Position) squareNotation() string {
	return fmt.Sprintf("%c%d", p.Col+'a', 8-p.Row)
}

func (p Position) fileNotation() string {
	return fmt.Sprintf("%c", p.Col+'a')
}

func (p Position) String() string {
	if !p.InRange() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return p.squareNotation()
}

type Square struct {
	Position Position `json:"position"`
	Piece    Piece    `json:"piece"`
}

func (s Square) HasPiece() bool {
	return !s.Piece.IsEmpty()
}

// Board is a plain value: assigning it copies every square and piece.
type Board struct {
	squares [8][8]Square
}

func NewBoard() Board {
	var b Board
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			b.squares[row][col].Position = Position{Row: row, Col: col}
		}
	}
	return b
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewStandardBoard() Board {
	b := NewBoard()
	for col, t := range backRank {
		b.squares[0][col].Piece = NewPiece(t, Black)
		b.squares[7][col].Piece = NewPiece(t, White)
		b.squares[1][col].Piece = NewPiece(Pawn, Black)
		b.squares[6][col].Piece = NewPiece(Pawn, White)
	}
	return b
}

func checkRange(row, col int) error {
	if !(Position{Row: row, Col: col}).InRange() {
		return errors.Wrapf(ErrOutOfRange, "row %d col %d", row, col)
	}
	return nil
}

func (b *Board) SquareAt(row, col int) (Square, error) {
	if err := checkRange(row, col); err != nil {
		return Square{}, err
	}
	return b.squares[row][col], nil
}

func (b *Board) PlacePiece(piece Piece, row, col int) error {
	if err := checkRange(row, col); err != nil {
		return err
	}
	b.squares[row][col].Piece = piece
	return nil
}

func (b *Board) RemovePiece(row, col int) (Piece, error) {
	if err := checkRange(row, col); err != nil {
		return Piece{}, err
	}
	piece := b.squares[row][col].Piece
	b.squares[row][col].Piece = Piece{}
	return piece, nil
}

// MovePiece relocates whatever stands on the source square, replacing any
// occupant of the target. It performs no legality checks; simulation and
// commit both relocate pieces through it.
func (b *Board) MovePiece(fromRow, fromCol, toRow, toCol int) error {
	if err := checkRange(fromRow, fromCol); err != nil {
		return err
	}
	if err := checkRange(toRow, toCol); err != nil {
		return err
	}
	piece := b.squares[fromRow][fromCol].Piece
	if piece.IsEmpty() {
		return errors.Wrapf(ErrEmptySquare, "%s", Position{Row: fromRow, Col: fromCol})
	}
	b.squares[fromRow][fromCol].Piece = Piece{}
	b.squares[toRow][toCol].Piece = piece
	return nil
}

// at is the unchecked accessor used by move generation on positions already known to be in range.
func (b *Board) at(p Position) Piece {
	return b.squares[p.Row][p.Col].Piece
}

func (b *Board) set(p Position, piece Piece) {
	b.squares[p.Row][p.Col].Piece = piece
}

func (b *Board) KingPosition(color Color) (Position, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.squares[row][col].Piece
			if p.Type == King && p.Color == color {
				return Position{Row: row, Col: col}, true
			}
		}
	}
	return Position{}, false
}

// Pieces returns the positions of every piece of the given color.
func (b *Board) Pieces(color Color) []Position {
	positions := make([]Position, 0, 16)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.squares[row][col].Piece; !p.IsEmpty() && p.Color == color {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

// Validate reports every placement invariant the board breaks.
func (b *Board) Validate() error {
	var result error
	kings := map[Color]int{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.squares[row][col].Piece
			if p.IsEmpty() {
				continue
			}
			pos := Position{Row: row, Col: col}
			if p.Color != White && p.Color != Black {
				result = multierror.Append(result, errors.Wrapf(ErrInvalidPosition, "%s: unknown color %q", pos, p.Color))
				continue
			}
			if p.EnPassant && (p.Type != Pawn || row != p.Color.doubleStepRow()) {
				result = multierror.Append(result, errors.Wrapf(ErrInvalidPosition, "%s: %s %s cannot be taken en passant", pos, p.Color, p.Type))
			}
			switch p.Type {
			case King:
				kings[p.Color]++
			case Pawn:
				if row == 0 || row == 7 {
					result = multierror.Append(result, errors.Wrapf(ErrInvalidPosition, "%s: %s pawn on back rank", pos, p.Color))
				}
			case Queen, Rook, Bishop, Knight:
			default:
				result = multierror.Append(result, errors.Wrapf(ErrInvalidPosition, "%s: unknown piece type %q", pos, p.Type))
			}
		}
	}
	for _, c := range []Color{White, Black} {
		if kings[c] != 1 {
			result = multierror.Append(result, errors.Wrapf(ErrInvalidPosition, "%s has %d kings", c, kings[c]))
		}
	}
	return result
}

// Grid returns the board as rows of pieces, nil for empty squares.
func (b *Board) Grid() [][]*Piece {
	grid := make([][]*Piece, 8)
	for row := 0; row < 8; row++ {
		grid[row] = make([]*Piece, 8)
		for col := 0; col < 8; col++ {
			if p := b.squares[row][col].Piece; !p.IsEmpty() {
				grid[row][col] = &p
			}
		}
	}
	return grid
}
