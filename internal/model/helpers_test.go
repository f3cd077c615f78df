package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sq converts algebraic notation such as "e4" to a Position.
func sq(t *testing.T, name string) Position {
	t.Helper()
	require.Len(t, name, 2, "square %q", name)
	p := Position{Row: 8 - int(name[1]-'0'), Col: int(name[0] - 'a')}
	require.True(t, p.InRange(), "square %q", name)
	return p
}

func mv(t *testing.T, from, to string) Move {
	t.Helper()
	return Move{From: sq(t, from), To: sq(t, to)}
}

var letterTypes = map[byte]PieceType{
	'k': King, 'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight, 'p': Pawn,
}

// boardFromRows builds a board from eight rows of eight characters, rank 8
// first. Upper case is white, lower case black, '.' is empty.
func boardFromRows(t *testing.T, rows ...string) Board {
	t.Helper()
	require.Len(t, rows, 8)
	b := NewBoard()
	for row, line := range rows {
		require.Len(t, line, 8, "row %d", row)
		for col := 0; col < 8; col++ {
			c := line[col]
			if c == '.' {
				continue
			}
			color := Black
			if c >= 'A' && c <= 'Z' {
				color = White
				c += 'a' - 'A'
			}
			pt, ok := letterTypes[c]
			require.True(t, ok, "unknown piece %q", line[col])
			require.NoError(t, b.PlacePiece(NewPiece(pt, color), row, col))
		}
	}
	return b
}

func gameFromRows(t *testing.T, next Color, rows ...string) *Game {
	t.Helper()
	g, err := NewGameFromBoard(boardFromRows(t, rows...), next)
	require.NoError(t, err)
	return g
}

func play(t *testing.T, g *Game, moves ...[2]string) MoveOutcome {
	t.Helper()
	var out MoveOutcome
	for _, m := range moves {
		var err error
		out, err = g.Commit(mv(t, m[0], m[1]))
		require.NoError(t, err, "%s-%s", m[0], m[1])
	}
	return out
}

func destinations(moves MoveList) map[Position]bool {
	set := map[Position]bool{}
	for _, m := range moves {
		set[m.To] = true
	}
	return set
}
