package model

import "fmt"

// notate renders m in short algebraic notation. before is the board as it
// stood before m was played.
func notate(before *Board, m Move, applied appliedMove, check, mate bool) string {
	piece := applied.piece
	suffix := ""
	switch {
	case mate:
		suffix = "#"
	case check:
		suffix = "+"
	}

	if applied.rookMove != nil {
		if m.To.Col == 6 {
			return "O-O" + suffix
		}
		return "O-O-O" + suffix
	}

	prefix := piece.Type.notation()
	if piece.Type == Pawn {
		if m.From.Col != m.To.Col {
			prefix = m.From.fileNotation()
		}
	} else {
		prefix += disambiguation(before, m, piece)
	}
	capture := ""
	if !applied.captured.IsEmpty() {
		capture = "x"
	}
	promotion := ""
	if piece.Type == Pawn && m.Promotion != NoPiece {
		promotion = "=" + m.Promotion.notation()
	}
	return fmt.Sprintf("%s%s%s%s%s", prefix, capture, m.To.squareNotation(), promotion, suffix)
}

// disambiguation returns the file, rank or square needed to tell m apart from
// a move of another piece of the same kind to the same square.
func disambiguation(before *Board, m Move, piece Piece) string {
	sameFile, sameRank, rivals := false, false, false
	for _, pos := range before.Pieces(piece.Color) {
		if pos == m.From || before.at(pos).Type != piece.Type {
			continue
		}
		if !LegalMoves(before, pos).Contains(Move{From: pos, To: m.To}) {
			continue
		}
		rivals = true
		if pos.Col == m.From.Col {
			sameFile = true
		}
		if pos.Row == m.From.Row {
			sameRank = true
		}
	}
	switch {
	case !rivals:
		return ""
	case !sameFile:
		return m.From.fileNotation()
	case !sameRank:
		return fmt.Sprintf("%d", 8-m.From.Row)
	default:
		return m.From.squareNotation()
	}
}
