package model

var (
	rookDirs   = []Position{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}
	bishopDirs = []Position{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	kingDirs   = queenDirs
	knightDirs = []Position{{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1}, {Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2}}
)

// PseudoLegalMoves lists the moves of the piece on pos that follow its movement
// pattern, without checking whether the mover's king is left attacked.
// An empty or out-of-range square yields nil.
func PseudoLegalMoves(b *Board, pos Position) []Move {
	if !pos.InRange() {
		return nil
	}
	piece := b.at(pos)
	switch piece.Type {
	case Pawn:
		return pawnMoves(b, pos, piece)
	case Knight:
		return stepMoves(b, pos, piece, knightDirs)
	case Bishop:
		return slideMoves(b, pos, piece, bishopDirs)
	case Rook:
		return slideMoves(b, pos, piece, rookDirs)
	case Queen:
		return slideMoves(b, pos, piece, queenDirs)
	case King:
		return append(stepMoves(b, pos, piece, kingDirs), castleMoves(b, pos, piece)...)
	default:
		return nil
	}
}

func pawnMoves(b *Board, pos Position, piece Piece) []Move {
	moves := []Move{}
	fwd := piece.Color.forward()
	promote := func(m Move) Move {
		if m.To.Row == piece.Color.lastRow() {
			m.Promotion = Queen
		}
		return m
	}

	one := Position{Row: pos.Row + fwd, Col: pos.Col}
	if one.InRange() && b.at(one).IsEmpty() {
		moves = append(moves, promote(Move{From: pos, To: one}))
		two := Position{Row: pos.Row + 2*fwd, Col: pos.Col}
		if pos.Row == piece.Color.pawnRow() && b.at(two).IsEmpty() {
			moves = append(moves, Move{From: pos, To: two})
		}
	}

	for _, dc := range []int{-1, 1} {
		target := Position{Row: pos.Row + fwd, Col: pos.Col + dc}
		if !target.InRange() {
			continue
		}
		occupant := b.at(target)
		if !occupant.IsEmpty() {
			if occupant.Color != piece.Color {
				moves = append(moves, promote(Move{From: pos, To: target, Capture: true}))
			}
			continue
		}
		beside := b.at(Position{Row: pos.Row, Col: target.Col})
		if beside.Type == Pawn && beside.Color != piece.Color && beside.EnPassant {
			moves = append(moves, Move{From: pos, To: target, Capture: true, EnPassant: true})
		}
	}
	return moves
}

func stepMoves(b *Board, pos Position, piece Piece, dirs []Position) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		target := pos.add(dir)
		if !target.InRange() {
			continue
		}
		occupant := b.at(target)
		if occupant.IsEmpty() {
			moves = append(moves, Move{From: pos, To: target})
		} else if occupant.Color != piece.Color {
			moves = append(moves, Move{From: pos, To: target, Capture: true})
		}
	}
	return moves
}

func slideMoves(b *Board, pos Position, piece Piece, dirs []Position) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		for target := pos.add(dir); target.InRange(); target = target.add(dir) {
			occupant := b.at(target)
			if occupant.IsEmpty() {
				moves = append(moves, Move{From: pos, To: target})
				continue
			}
			if occupant.Color != piece.Color {
				moves = append(moves, Move{From: pos, To: target, Capture: true})
			}
			break
		}
	}
	return moves
}

type castleSide struct {
	rookCol     int
	rookTo      int
	kingTo      int
	emptyCols   []int
	kingPassage []int
}

var castleSides = []castleSide{
	{rookCol: 7, rookTo: 5, kingTo: 6, emptyCols: []int{5, 6}, kingPassage: []int{4, 5, 6}},
	{rookCol: 0, rookTo: 3, kingTo: 2, emptyCols: []int{1, 2, 3}, kingPassage: []int{4, 3, 2}},
}

func castleSideFor(kingTo int) (castleSide, bool) {
	for _, side := range castleSides {
		if side.kingTo == kingTo {
			return side, true
		}
	}
	return castleSide{}, false
}

func castleMoves(b *Board, pos Position, king Piece) []Move {
	row := king.Color.backRow()
	if king.Moved || pos.Row != row || pos.Col != 4 {
		return nil
	}
	var moves []Move
	enemy := king.Color.Opponent()
	for _, side := range castleSides {
		rook := b.at(Position{Row: row, Col: side.rookCol})
		if rook.Type != Rook || rook.Color != king.Color || rook.Moved {
			continue
		}
		blocked := false
		for _, col := range side.emptyCols {
			if !b.at(Position{Row: row, Col: col}).IsEmpty() {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		attacked := false
		for _, col := range side.kingPassage {
			if IsSquareAttacked(b, Position{Row: row, Col: col}, enemy) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}
		moves = append(moves, Move{From: pos, To: Position{Row: row, Col: side.kingTo}, Castling: true})
	}
	return moves
}

// attackSquares lists the squares the piece on pos attacks. Pawns attack
// diagonally only; kings attack their neighbours only.
func attackSquares(b *Board, pos Position) []Position {
	piece := b.at(pos)
	var out []Position
	collect := func(moves []Move) {
		for _, m := range moves {
			out = append(out, m.To)
		}
	}
	switch piece.Type {
	case Pawn:
		for _, dc := range []int{-1, 1} {
			target := Position{Row: pos.Row + piece.Color.forward(), Col: pos.Col + dc}
			if target.InRange() {
				out = append(out, target)
			}
		}
	case Knight:
		collect(stepMoves(b, pos, piece, knightDirs))
	case Bishop:
		collect(slideMoves(b, pos, piece, bishopDirs))
	case Rook:
		collect(slideMoves(b, pos, piece, rookDirs))
	case Queen:
		collect(slideMoves(b, pos, piece, queenDirs))
	case King:
		collect(stepMoves(b, pos, piece, kingDirs))
	}
	return out
}
