package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpeningMoves(t *testing.T) {
	g := NewGame()

	knight, err := g.LegalMovesFor(7, 1)
	require.NoError(t, err)
	assert.Equal(t, map[Position]bool{sq(t, "a3"): true, sq(t, "c3"): true}, destinations(knight))

	pawn, err := g.LegalMovesFor(6, 4)
	require.NoError(t, err)
	assert.Equal(t, map[Position]bool{sq(t, "e3"): true, sq(t, "e4"): true}, destinations(pawn))

	b := g.Board()
	assert.Len(t, LegalMovesForColor(&b, White), 20)
	assert.Len(t, LegalMovesForColor(&b, Black), 20)

	rook, err := g.LegalMovesFor(7, 0)
	require.NoError(t, err)
	assert.Empty(t, rook)
}

func TestSlidersStopAtFirstPiece(t *testing.T) {
	g := gameFromRows(t, White,
		"....k...",
		"........",
		"........",
		"...p....",
		"........",
		"...R..P.",
		"........",
		"....K...",
	)
	moves, err := g.LegalMovesFor(sq(t, "d3").Row, sq(t, "d3").Col)
	require.NoError(t, err)
	got := destinations(moves)
	for _, name := range []string{"d4", "d5", "d2", "d1", "a3", "b3", "c3", "e3", "f3"} {
		assert.True(t, got[sq(t, name)], name)
	}
	assert.False(t, got[sq(t, "d6")], "ray continues past capture")
	assert.False(t, got[sq(t, "g3")], "own piece")
	assert.Len(t, moves, 9)

	capture, ok := moves.Find(mv(t, "d3", "d5"))
	require.True(t, ok)
	assert.True(t, capture.Capture)
}

func TestQueenOnEmptyBoard(t *testing.T) {
	b := boardFromRows(t,
		"k.......",
		"........",
		"........",
		"........",
		"...Q....",
		"........",
		"........",
		".......K",
	)
	assert.Len(t, PseudoLegalMoves(&b, sq(t, "d4")), 27)
	assert.Len(t, PseudoLegalMoves(&b, sq(t, "a1")), 0)
	assert.Nil(t, PseudoLegalMoves(&b, Position{Row: -1, Col: 0}))
}

func TestPinnedPieceCannotMove(t *testing.T) {
	g := gameFromRows(t, White,
		"k...r...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....B...",
		"....K...",
	)
	moves, err := g.LegalMovesFor(sq(t, "e2").Row, sq(t, "e2").Col)
	require.NoError(t, err)
	assert.Empty(t, moves)

	b := g.Board()
	assert.NotEmpty(t, PseudoLegalMoves(&b, sq(t, "e2")))
}

func TestKingCannotStepIntoAttack(t *testing.T) {
	g := gameFromRows(t, White,
		"k.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		".....r..",
		"....K...",
	)
	moves, err := g.LegalMovesFor(7, 4)
	require.NoError(t, err)
	got := destinations(moves)
	assert.True(t, got[sq(t, "f2")], "capturing the undefended rook")
	assert.False(t, got[sq(t, "e2")], "rank attacked by rook")
	assert.False(t, got[sq(t, "f1")], "file attacked by rook")
	assert.True(t, got[sq(t, "d1")])
}

func TestCastlingAvailability(t *testing.T) {
	tests := []struct {
		name      string
		rows      []string
		kingside  bool
		queenside bool
	}{
		{
			name: "both sides open",
			rows: []string{
				"....k...", "........", "........", "........",
				"........", "........", "........", "R...K..R",
			},
			kingside:  true,
			queenside: true,
		},
		{
			name: "transit square attacked",
			rows: []string{
				"....kr..", "........", "........", "........",
				"........", "........", "........", "R...K..R",
			},
			kingside:  false,
			queenside: true,
		},
		{
			name: "rook passage attacked only",
			rows: []string{
				".r..k...", "........", "........", "........",
				"........", "........", "........", "R...K..R",
			},
			kingside:  true,
			queenside: true,
		},
		{
			name: "destination attacked",
			rows: []string{
				"..r.k...", "........", "........", "........",
				"........", "........", "........", "R...K..R",
			},
			kingside:  true,
			queenside: false,
		},
		{
			name: "king in check",
			rows: []string{
				".k......", "........", "........", "....r...",
				"........", "........", "........", "R...K..R",
			},
			kingside:  false,
			queenside: false,
		},
		{
			name: "path blocked",
			rows: []string{
				"....k...", "........", "........", "........",
				"........", "........", "........", "RN..K.NR",
			},
			kingside:  false,
			queenside: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gameFromRows(t, White, tt.rows...)
			moves, err := g.LegalMovesFor(7, 4)
			require.NoError(t, err)
			ks, ok := moves.Find(mv(t, "e1", "g1"))
			assert.Equal(t, tt.kingside, ok)
			if ok {
				assert.True(t, ks.Castling)
			}
			assert.Equal(t, tt.queenside, moves.Contains(mv(t, "e1", "c1")))
		})
	}
}

func TestCastlingNeedsUnmovedPieces(t *testing.T) {
	b := boardFromRows(t,
		"....k...", "........", "........", "........",
		"........", "........", "........", "R...K..R",
	)
	rook := NewPiece(Rook, White)
	rook.Moved = true
	require.NoError(t, b.PlacePiece(rook, 7, 7))
	g, err := NewGameFromBoard(b, White)
	require.NoError(t, err)
	moves, err := g.LegalMovesFor(7, 4)
	require.NoError(t, err)
	assert.False(t, moves.Contains(mv(t, "e1", "g1")))
	assert.True(t, moves.Contains(mv(t, "e1", "c1")))

	king := NewPiece(King, White)
	king.Moved = true
	require.NoError(t, b.PlacePiece(king, 7, 4))
	g, err = NewGameFromBoard(b, White)
	require.NoError(t, err)
	moves, err = g.LegalMovesFor(7, 4)
	require.NoError(t, err)
	assert.False(t, moves.Contains(mv(t, "e1", "c1")))
}

func TestPawnPromotionMetadata(t *testing.T) {
	g := gameFromRows(t, White,
		".r.....k",
		"P.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	)
	moves, err := g.LegalMovesFor(1, 0)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	for _, m := range moves {
		assert.Equal(t, Queen, m.Promotion, m.String())
	}
	capture, ok := moves.Find(mv(t, "a7", "b8"))
	require.True(t, ok)
	assert.True(t, capture.Capture)
}

func TestAttackedSquares(t *testing.T) {
	b := NewStandardBoard()
	white := AttackedSquares(&b, White)
	for col := 0; col < 8; col++ {
		assert.True(t, white.Has(Position{Row: 5, Col: col}), "pawn diagonal col %d", col)
	}
	assert.False(t, white.Has(sq(t, "e4")), "pushes are not attacks")
	assert.False(t, white.Has(sq(t, "e2")), "own pieces are not destinations")
	assert.Equal(t, 8, white.Len())
	assert.False(t, white.Has(Position{Row: 9, Col: 0}))
}

func TestSquareAttackAgreesWithAttackedSquares(t *testing.T) {
	boards := []Board{
		NewStandardBoard(),
		boardFromRows(t,
			"r...k..r",
			"p.ppqpb.",
			"bn..pnp.",
			"...PN...",
			".p..P...",
			"..N..Q.p",
			"PPPBBPPP",
			"R...K..R",
		),
	}
	for i := range boards {
		b := &boards[i]
		for _, color := range []Color{White, Black} {
			set := AttackedSquares(b, color)
			for row := 0; row < 8; row++ {
				for col := 0; col < 8; col++ {
					p := Position{Row: row, Col: col}
					if occ := b.at(p); !occ.IsEmpty() && occ.Color == color {
						continue
					}
					assert.Equal(t, set.Has(p), IsSquareAttacked(b, p, color), "board %d %s %s", i, color, p)
				}
			}
		}
	}
}
