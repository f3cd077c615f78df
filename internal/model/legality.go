package model

// SquareSet is a membership table over the 64 squares.
type SquareSet [8][8]bool

func (s *SquareSet) Add(p Position) {
	s[p.Row][p.Col] = true
}

func (s SquareSet) Has(p Position) bool {
	return p.InRange() && s[p.Row][p.Col]
}

func (s SquareSet) Len() int {
	n := 0
	for row := range s {
		for col := range s[row] {
			if s[row][col] {
				n++
			}
		}
	}
	return n
}

// AttackedSquares is the union of the attack squares of every piece of color.
func AttackedSquares(b *Board, color Color) SquareSet {
	var set SquareSet
	for _, pos := range b.Pieces(color) {
		for _, target := range attackSquares(b, pos) {
			set.Add(target)
		}
	}
	return set
}

// IsSquareAttacked reports whether a piece of color by could capture on pos.
// It casts outward from pos instead of generating every enemy move, and agrees
// with AttackedSquares on any square not held by a piece of color by.
func IsSquareAttacked(b *Board, pos Position, by Color) bool {
	for _, dir := range rookDirs {
		if sliderAttacks(b, pos, dir, by, Rook) {
			return true
		}
	}
	for _, dir := range bishopDirs {
		if sliderAttacks(b, pos, dir, by, Bishop) {
			return true
		}
	}
	for _, dir := range knightDirs {
		if pieceAt(b, pos.add(dir), by, Knight) {
			return true
		}
	}
	for _, dir := range kingDirs {
		if pieceAt(b, pos.add(dir), by, King) {
			return true
		}
	}
	pawnRow := pos.Row - by.forward()
	for _, dc := range []int{-1, 1} {
		if pieceAt(b, Position{Row: pawnRow, Col: pos.Col + dc}, by, Pawn) {
			return true
		}
	}
	return false
}

func sliderAttacks(b *Board, pos, dir Position, by Color, slider PieceType) bool {
	for target := pos.add(dir); target.InRange(); target = target.add(dir) {
		occupant := b.at(target)
		if occupant.IsEmpty() {
			continue
		}
		return occupant.Color == by && (occupant.Type == slider || occupant.Type == Queen)
	}
	return false
}

func pieceAt(b *Board, pos Position, color Color, t PieceType) bool {
	if !pos.InRange() {
		return false
	}
	p := b.at(pos)
	return p.Type == t && p.Color == color
}

// IsInCheck reports whether the king of color is attacked by the opponent.
func IsInCheck(b *Board, color Color) bool {
	king, ok := b.KingPosition(color)
	if !ok {
		return false
	}
	return IsSquareAttacked(b, king, color.Opponent())
}

// LegalMoves filters the pseudo-legal moves of the piece on pos, playing each
// one on a copy of the board and dropping those that leave its own king in check.
func LegalMoves(b *Board, pos Position) MoveList {
	legal := MoveList{}
	if !pos.InRange() {
		return legal
	}
	color := b.at(pos).Color
	for _, m := range PseudoLegalMoves(b, pos) {
		scratch := *b
		applyMove(&scratch, m)
		if !IsInCheck(&scratch, color) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalMovesForColor collects the legal moves of every piece of color.
func LegalMovesForColor(b *Board, color Color) MoveList {
	var all MoveList
	for _, pos := range b.Pieces(color) {
		all = append(all, LegalMoves(b, pos)...)
	}
	return all
}

func hasLegalMove(b *Board, color Color) bool {
	for _, pos := range b.Pieces(color) {
		if len(LegalMoves(b, pos)) > 0 {
			return true
		}
	}
	return false
}

type appliedMove struct {
	piece    Piece
	captured Piece
	rookMove *CastleRookMove
}

// applyMove performs m on b, including the side effects of en passant,
// castling and promotion, and refreshes the moved and en passant flags.
// It trusts m to be at least pseudo-legal; an empty source square leaves b
// untouched.
func applyMove(b *Board, m Move) appliedMove {
	piece := b.at(m.From)
	result := appliedMove{piece: piece, captured: b.at(m.To)}

	if err := b.MovePiece(m.From.Row, m.From.Col, m.To.Row, m.To.Col); err != nil {
		return result
	}

	if piece.Type == Pawn && m.From.Col != m.To.Col && result.captured.IsEmpty() {
		if victim, err := b.RemovePiece(m.From.Row, m.To.Col); err == nil {
			result.captured = victim
		}
	}

	if piece.Type == King && abs(m.To.Col-m.From.Col) == 2 {
		if side, ok := castleSideFor(m.To.Col); ok {
			rookFrom := Position{Row: m.From.Row, Col: side.rookCol}
			rookTo := Position{Row: m.From.Row, Col: side.rookTo}
			if err := b.MovePiece(rookFrom.Row, rookFrom.Col, rookTo.Row, rookTo.Col); err == nil {
				rook := b.at(rookTo)
				rook.Moved = true
				b.set(rookTo, rook)
				result.rookMove = &CastleRookMove{From: rookFrom, To: rookTo}
			}
		}
	}

	clearEnPassant(b)

	piece.Moved = true
	piece.EnPassant = piece.Type == Pawn && abs(m.To.Row-m.From.Row) == 2
	if piece.Type == Pawn && m.To.Row == piece.Color.lastRow() {
		piece.Type = Queen
		if m.Promotion.canPromoteTo() {
			piece.Type = m.Promotion
		}
	}
	b.set(m.To, piece)
	return result
}

// clearEnPassant drops the en passant flag from every pawn of both colors.
func clearEnPassant(b *Board) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			b.squares[row][col].Piece.EnPassant = false
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
