package model

import (
	"github.com/pkg/errors"
)

type Outcome string

const (
	Ongoing   Outcome = "ongoing"
	Checkmate Outcome = "checkmate"
	Stalemate Outcome = "stalemate"
)

// Status is AwaitingMove while Outcome is Ongoing, GameOver otherwise.
// Loser is only set for checkmate.
type Status struct {
	Outcome Outcome `json:"outcome"`
	Loser   Color   `json:"loser,omitempty"`
}

func (s Status) IsOver() bool {
	return s.Outcome != Ongoing
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

// Game is one chess game: the board, whose turn it is and how it ended.
// A Game is not safe for concurrent use.
type Game struct {
	board    Board
	next     Color
	status   Status
	inCheck  bool
	lastMove *Move
	history  []Ply
	captured CapturedPieces
}

// NewGame returns a game at the standard starting position with white to move.
func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

// NewGameFromBoard starts a game from an arbitrary placement. The placement
// must hold exactly one king per color; terminal positions are reported as
// such right away.
func NewGameFromBoard(b Board, next Color) (*Game, error) {
	if next != White && next != Black {
		return nil, errors.Wrapf(ErrInvalidPosition, "unknown color %q to move", next)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if IsInCheck(&b, next.Opponent()) {
		return nil, errors.Wrapf(ErrInvalidPosition, "%s is in check with %s to move", next.Opponent(), next)
	}
	g := &Game{
		board:    b,
		next:     next,
		history:  make([]Ply, 0),
		captured: newCapturedPieces(),
	}
	g.refreshStatus()
	return g, nil
}

// Reset puts the game back at the standard starting position.
func (g *Game) Reset() {
	g.board = NewStandardBoard()
	g.next = White
	g.status = Status{Outcome: Ongoing}
	g.inCheck = false
	g.lastMove = nil
	g.history = make([]Ply, 0)
	g.captured = newCapturedPieces()
}

func (g *Game) Clone() *Game {
	c := *g
	if g.lastMove != nil {
		m := *g.lastMove
		c.lastMove = &m
	}
	c.history = append(make([]Ply, 0, len(g.history)), g.history...)
	c.captured = CapturedPieces{
		White: append(make([]Piece, 0, len(g.captured.White)), g.captured.White...),
		Black: append(make([]Piece, 0, len(g.captured.Black)), g.captured.Black...),
	}
	return &c
}

func (g *Game) NextPlayer() Color {
	return g.next
}

func (g *Game) Status() Status {
	return g.status
}

// Board returns a copy of the current placement.
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) PieceAt(row, col int) (Piece, error) {
	sq, err := g.board.SquareAt(row, col)
	if err != nil {
		return Piece{}, err
	}
	if !sq.HasPiece() {
		return Piece{}, errors.Wrapf(ErrEmptySquare, "%s", sq.Position)
	}
	return sq.Piece, nil
}

func (g *Game) IsInCheck(color Color) bool {
	return IsInCheck(&g.board, color)
}

func (g *Game) LastMove() (Move, bool) {
	if g.lastMove == nil {
		return Move{}, false
	}
	return *g.lastMove, true
}

func (g *Game) History() []Ply {
	return append([]Ply(nil), g.history...)
}

// LegalMovesFor lists the legal moves of the piece on (row, col). The list is
// empty, never nil, when nothing there can move; the error says why.
func (g *Game) LegalMovesFor(row, col int) (MoveList, error) {
	sq, err := g.board.SquareAt(row, col)
	if err != nil {
		return MoveList{}, err
	}
	if g.status.IsOver() {
		return MoveList{}, ErrGameOver
	}
	if !sq.HasPiece() {
		return MoveList{}, errors.Wrapf(ErrInvalidSelection, "%s is empty", sq.Position)
	}
	if sq.Piece.Color != g.next {
		return MoveList{}, errors.Wrapf(ErrInvalidSelection, "%s holds a %s piece, %s to move", sq.Position, sq.Piece.Color, g.next)
	}
	return LegalMoves(&g.board, sq.Position), nil
}

// Commit plays m if its From/To pair is one of the legal moves of the piece
// on m.From. The only metadata read from m is Promotion, which picks the
// piece a pawn turns into and defaults to a queen. On error nothing changes.
func (g *Game) Commit(m Move) (MoveOutcome, error) {
	if g.status.IsOver() {
		return MoveOutcome{}, ErrGameOver
	}
	if err := checkRange(m.To.Row, m.To.Col); err != nil {
		return MoveOutcome{}, err
	}
	legal, err := g.LegalMovesFor(m.From.Row, m.From.Col)
	if err != nil {
		if errors.Is(err, ErrInvalidSelection) {
			return MoveOutcome{}, errors.Wrapf(ErrIllegalMove, "%s: %v", m, err)
		}
		return MoveOutcome{}, err
	}
	chosen, ok := legal.Find(m)
	if !ok {
		return MoveOutcome{}, errors.Wrapf(ErrIllegalMove, "%s", m)
	}
	if m.Promotion != NoPiece {
		if chosen.Promotion == NoPiece || !m.Promotion.canPromoteTo() {
			return MoveOutcome{}, errors.Wrapf(ErrInvalidPromotion, "%s=%s", m, m.Promotion)
		}
		chosen.Promotion = m.Promotion
	}

	before := g.board
	mover := g.next
	applied := applyMove(&g.board, chosen)
	g.next = mover.Opponent()
	g.lastMove = &chosen
	g.refreshStatus()

	outcome := MoveOutcome{
		Move:        chosen,
		IsCheck:     g.inCheck,
		IsCheckmate: g.status.Outcome == Checkmate,
		IsStalemate: g.status.Outcome == Stalemate,
		NextPlayer:  g.next,
		Notation:    notate(&before, chosen, applied, g.inCheck, g.status.Outcome == Checkmate),
	}
	ply := Ply{
		Piece:          applied.piece,
		From:           chosen.From,
		To:             chosen.To,
		CastleRookMove: applied.rookMove,
		Promotion:      chosen.Promotion,
		Notation:       outcome.Notation,
	}
	if !applied.captured.IsEmpty() {
		captured := applied.captured
		outcome.Captured = &captured
		ply.CapturedPiece = &captured
		switch mover {
		case White:
			g.captured.White = append(g.captured.White, captured)
		case Black:
			g.captured.Black = append(g.captured.Black, captured)
		}
	}
	g.history = append(g.history, ply)
	return outcome, nil
}

// refreshStatus evaluates check and the terminal state for the side to move.
func (g *Game) refreshStatus() {
	g.inCheck = IsInCheck(&g.board, g.next)
	g.status = Status{Outcome: Ongoing}
	if hasLegalMove(&g.board, g.next) {
		return
	}
	if g.inCheck {
		g.status = Status{Outcome: Checkmate, Loser: g.next}
		return
	}
	g.status = Status{Outcome: Stalemate}
}
