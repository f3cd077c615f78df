package model

// GameState is the snapshot handed to clients after every change.
type GameState struct {
	Sound          string         `json:"sound"`
	Board          [][]*Piece     `json:"board"`
	ToMove         Color          `json:"toMove"`
	MoveHistory    []Ply          `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	Status         Status         `json:"status"`
	Resolve        *string        `json:"resolve"`
	Winner         *Color         `json:"winner"`
	LastMove       *Move          `json:"lastMove"`
}

func (g *Game) State() GameState {
	c := g.Clone()
	state := GameState{
		Sound:          c.sound(),
		Board:          c.board.Grid(),
		ToMove:         c.next,
		MoveHistory:    c.history,
		CapturedPieces: c.captured,
		IsCheck:        c.inCheck,
		Status:         c.status,
		LastMove:       c.lastMove,
	}
	if c.status.IsOver() {
		resolve := string(c.status.Outcome)
		state.Resolve = &resolve
	}
	if c.status.Outcome == Checkmate {
		winner := c.status.Loser.Opponent()
		state.Winner = &winner
	}
	return state
}

// sound names the effect the board UI plays for the last ply.
func (g *Game) sound() string {
	if len(g.history) == 0 {
		return ""
	}
	last := g.history[len(g.history)-1]
	switch {
	case g.inCheck:
		return "check"
	case last.CapturedPiece != nil:
		return "capture"
	default:
		return "move"
	}
}
