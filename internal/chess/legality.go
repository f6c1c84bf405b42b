package chess

// IsLegal validates a single move for piece: movement pattern, no capture of
// an own piece, and the resulting position must not leave piece's king in
// check. That last rule covers both pins and check resolution.
func IsLegal(board *Board, from, to Square, piece Piece) bool {
	if from == to || !from.Valid() || !to.Valid() {
		return false
	}

	if target, ok := board.At(to); ok && target.Color == piece.Color {
		return false
	}

	if !CanMove(board, from, to, piece) {
		return false
	}

	next := board.With(from, to)
	return !IsInCheck(&next, piece.Color)
}

// IsLegalMove is IsLegal for a MoveIntention.
func IsLegalMove(board *Board, m MoveIntention) bool {
	return IsLegal(board, m.From, m.To, m.Piece)
}

// LegalTargets lists every square the piece on from may legally move to, in
// rank-major order. An empty square yields nil.
func LegalTargets(board *Board, from Square) []Square {
	piece, ok := board.At(from)
	if !ok {
		return nil
	}

	var targets []Square
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			to := Sq(file, rank)
			if IsLegal(board, from, to, piece) {
				targets = append(targets, to)
			}
		}
	}
	return targets
}

// HasLegalMoves reports whether any piece of color has a legal move.
// Castling and en passant are not considered.
func HasLegalMoves(board *Board, color Color) bool {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := Sq(file, rank)
			if p, ok := board.At(from); ok && p.Color == color && len(LegalTargets(board, from)) > 0 {
				return true
			}
		}
	}
	return false
}

// IsCheckmate reports whether color is in check with no legal move out of it.
func IsCheckmate(board *Board, color Color) bool {
	return IsInCheck(board, color) && !HasLegalMoves(board, color)
}

// IsStalemate reports whether color is not in check but cannot move.
func IsStalemate(board *Board, color Color) bool {
	return !IsInCheck(board, color) && !HasLegalMoves(board, color)
}
