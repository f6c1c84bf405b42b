package chess

// Material sums StandardPieceValues for each side.
func Material(board *Board) MaterialCount {
	var count MaterialCount
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := board[rank][file]
			if p.Empty() {
				continue
			}
			if p.Color == White {
				count.White += StandardPieceValues[p.Type]
			} else {
				count.Black += StandardPieceValues[p.Type]
			}
		}
	}
	return count
}

// Balance is White's material minus Black's.
func (m MaterialCount) Balance() int {
	return m.White - m.Black
}
