package chess

// FindKing scans the board for color's king. The second result is false if
// there is none.
func FindKing(board *Board, color Color) (Square, bool) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := board[rank][file]
			if p.Type == King && p.Color == color {
				return Sq(file, rank), true
			}
		}
	}
	return Square{}, false
}

// IsAttacked reports whether any piece of color by can move onto sq. sq is
// expected to be occupied; on an empty square a pawn push counts too.
func IsAttacked(board *Board, sq Square, by Color) bool {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := board[rank][file]
			if p.Empty() || p.Color != by {
				continue
			}
			from := Sq(file, rank)
			if from == sq {
				continue
			}
			if CanMove(board, from, sq, p) {
				return true
			}
		}
	}
	return false
}

// IsInCheck reports whether color's king is attacked. A board without that
// king is outside the contract and reports false.
func IsInCheck(board *Board, color Color) bool {
	king, ok := FindKing(board, color)
	if !ok {
		return false
	}
	return IsAttacked(board, king, color.Opposite())
}
