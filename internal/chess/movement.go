package chess

// CanMove reports whether piece may travel from -> to on board by its own
// movement pattern. It ignores ownership of the destination and check; those
// are IsLegal's concern.
func CanMove(board *Board, from, to Square, piece Piece) bool {
	switch piece.Type {
	case Pawn:
		return canMovePawn(board, from, to, piece)
	case Knight:
		return canMoveKnight(board, from, to, piece)
	case Bishop:
		return canMoveBishop(board, from, to, piece)
	case Rook:
		return canMoveRook(board, from, to, piece)
	case Queen:
		return canMoveQueen(board, from, to, piece)
	case King:
		return canMoveKing(board, from, to, piece)
	default:
		return false
	}
}

func pawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func pawnStartRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

func canMovePawn(board *Board, from, to Square, piece Piece) bool {
	dir := pawnDirection(piece.Color)
	df := to.File - from.File
	dr := to.Rank - from.Rank

	switch {
	case df == 0 && dr == dir:
		return !board.occupied(to.File, to.Rank)
	case df == 0 && dr == 2*dir:
		return from.Rank == pawnStartRank(piece.Color) &&
			!board.occupied(from.File, from.Rank+dir) &&
			!board.occupied(to.File, to.Rank)
	case abs(df) == 1 && dr == dir:
		// captures only; no en passant
		return board.occupied(to.File, to.Rank)
	}
	return false
}

func canMoveKnight(_ *Board, from, to Square, _ Piece) bool {
	df, dr := abs(to.File-from.File), abs(to.Rank-from.Rank)
	return (df == 2 && dr == 1) || (df == 1 && dr == 2)
}

func canMoveBishop(board *Board, from, to Square, _ Piece) bool {
	df, dr := abs(to.File-from.File), abs(to.Rank-from.Rank)
	if df != dr || df == 0 {
		return false
	}
	return pathClear(board, from, to)
}

func canMoveRook(board *Board, from, to Square, _ Piece) bool {
	if from.File != to.File && from.Rank != to.Rank {
		return false
	}
	if from == to {
		return false
	}
	return pathClear(board, from, to)
}

func canMoveQueen(board *Board, from, to Square, piece Piece) bool {
	return canMoveBishop(board, from, to, piece) || canMoveRook(board, from, to, piece)
}

func canMoveKing(_ *Board, from, to Square, _ Piece) bool {
	return max(abs(to.File-from.File), abs(to.Rank-from.Rank)) == 1
}

// pathClear walks the squares strictly between from and to in unit steps.
// Callers guarantee the two squares share a line or diagonal.
func pathClear(board *Board, from, to Square) bool {
	sf, sr := sign(to.File-from.File), sign(to.Rank-from.Rank)
	f, r := from.File+sf, from.Rank+sr
	for f != to.File || r != to.Rank {
		if board.occupied(f, r) {
			return false
		}
		f += sf
		r += sr
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
