package model

import (
	"math/rand"
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perft counts leaf nodes of the legal move tree. Promotions count once per
// From/To pair, so it is only exact for trees without promotions.
func perft(t *testing.T, g *Game, depth int) int {
	t.Helper()
	if g.Status().IsOver() {
		return 0
	}
	b := g.Board()
	moves := LegalMovesForColor(&b, g.NextPlayer())
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		child := g.Clone()
		_, err := child.Commit(m)
		require.NoError(t, err, m.String())
		nodes += perft(t, child, depth-1)
	}
	return nodes
}

func TestPerftStartPosition(t *testing.T) {
	for depth, want := range map[int]int{1: 20, 2: 400, 3: 8902} {
		assert.Equal(t, want, perft(t, NewGame(), depth), "depth %d", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	g := gameFromRows(t, White,
		"r...k..r",
		"p.ppqpb.",
		"bn..pnp.",
		"...PN...",
		".p..P...",
		"..N..Q.p",
		"PPPBBPPP",
		"R...K..R",
	)
	assert.Equal(t, 48, perft(t, g, 1))
	assert.Equal(t, 2039, perft(t, g, 2))
}

func toPosition(s chess.Square) Position {
	return Position{Row: 7 - int(s.Rank()), Col: int(s.File())}
}

func oracleMoves(g *chess.Game) map[Move]*chess.Move {
	out := map[Move]*chess.Move{}
	for _, m := range g.ValidMoves() {
		key := Move{From: toPosition(m.S1()), To: toPosition(m.S2())}
		if m.Promo() != chess.NoPieceType && m.Promo() != chess.Queen {
			continue
		}
		out[key] = m
	}
	return out
}

// TestLegalMovesMatchReferenceEngine plays seeded random games and compares
// the legal From/To pairs with github.com/notnil/chess at every ply. It also
// checks the invariants that must hold in every reachable position.
func TestLegalMovesMatchReferenceEngine(t *testing.T) {
	rng := rand.New(rand.NewSource(20261017))
	for game := 0; game < 12; game++ {
		g := NewGame()
		ref := chess.NewGame()
		for ply := 0; ply < 160; ply++ {
			if ref.Outcome() != chess.NoOutcome {
				break
			}
			b := g.Board()
			ours := LegalMovesForColor(&b, g.NextPlayer())
			theirs := oracleMoves(ref)

			require.Len(t, ours, len(theirs), "game %d ply %d", game, ply)
			for _, m := range ours {
				_, ok := theirs[Move{From: m.From, To: m.To}]
				require.True(t, ok, "game %d ply %d: %s not legal in reference", game, ply, m)

				scratch := b
				applyMove(&scratch, m)
				require.False(t, IsInCheck(&scratch, g.NextPlayer()), "game %d ply %d: %s leaves king in check", game, ply, m)
			}

			for _, color := range []Color{White, Black} {
				kings := 0
				for _, pos := range b.Pieces(color) {
					if b.at(pos).Type == King {
						kings++
					}
				}
				require.Equal(t, 1, kings, "game %d ply %d: %s kings", game, ply, color)
			}

			if len(ours) == 0 {
				switch g.Status().Outcome {
				case Checkmate:
					assert.True(t, g.IsInCheck(g.NextPlayer()))
					assert.Equal(t, g.NextPlayer(), g.Status().Loser)
				case Stalemate:
					assert.False(t, g.IsInCheck(g.NextPlayer()))
				default:
					t.Fatalf("game %d ply %d: no legal moves but status %s", game, ply, g.Status().Outcome)
				}
				break
			}
			require.Equal(t, Ongoing, g.Status().Outcome)

			m := ours[rng.Intn(len(ours))]
			_, err := g.Commit(m)
			require.NoError(t, err)
			require.NoError(t, ref.Move(theirs[Move{From: m.From, To: m.To}]))
		}
	}
}
