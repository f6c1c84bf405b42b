package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type movementCase struct {
	name     string
	position string
	from     string
	to       string
	expected bool
}

func runMovementCases(t *testing.T, tests []movementCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := Decode(tt.position)
			from := MustParseSquare(tt.from)
			piece, ok := board.At(from)
			if !ok {
				t.Fatalf("no piece on %s", tt.from)
			}
			got := CanMove(&board, from, MustParseSquare(tt.to), piece)
			assert.Equal(t, tt.expected, got, "%s %s-%s", piece.Type, tt.from, tt.to)
		})
	}
}

func TestCanMovePawn(t *testing.T) {
	runMovementCases(t, []movementCase{
		{"white single push", "8/8/8/8/8/8/4P3/8", "e2", "e3", true},
		{"white double push from start", "8/8/8/8/8/8/4P3/8", "e2", "e4", true},
		{"white triple push", "8/8/8/8/8/8/4P3/8", "e2", "e5", false},
		{"white double push off start rank", "8/8/8/8/8/4P3/8/8", "e3", "e5", false},
		{"white backwards", "8/8/8/8/8/4P3/8/8", "e3", "e2", false},
		{"white sideways", "8/8/8/8/8/4P3/8/8", "e3", "d3", false},
		{"single push blocked", "8/8/8/8/8/4p3/4P3/8", "e2", "e3", false},
		{"double push blocked on intermediate", "8/8/8/8/8/4n3/4P3/8", "e2", "e4", false},
		{"double push blocked on destination", "8/8/8/8/4n3/8/4P3/8", "e2", "e4", false},
		{"diagonal onto empty square", "8/8/8/8/8/8/4P3/8", "e2", "d3", false},
		{"diagonal capture", "8/8/8/8/8/3p4/4P3/8", "e2", "d3", true},
		{"diagonal capture right", "8/8/8/8/8/5r2/4P3/8", "e2", "f3", true},
		{"diagonal two squares", "8/8/8/8/2p5/8/4P3/8", "e2", "c4", false},
		{"black single push", "8/4p3/8/8/8/8/8/8", "e7", "e6", true},
		{"black double push from start", "8/4p3/8/8/8/8/8/8", "e7", "e5", true},
		{"black moving up the board", "8/8/4p3/8/8/8/8/8", "e6", "e7", false},
		{"black capture", "8/4p3/5N2/8/8/8/8/8", "e7", "f6", true},
	})
}

func TestCanMoveKnight(t *testing.T) {
	runMovementCases(t, []movementCase{
		{"two up one right", "8/8/8/8/3N4/8/8/8", "d4", "e6", true},
		{"one up two left", "8/8/8/8/3N4/8/8/8", "d4", "b5", true},
		{"two down one left", "8/8/8/8/3N4/8/8/8", "d4", "c2", true},
		{"jumps over pieces", "8/8/8/2ppp3/2pNp3/2ppp3/8/8", "d4", "f5", true},
		{"straight line", "8/8/8/8/3N4/8/8/8", "d4", "d6", false},
		{"diagonal", "8/8/8/8/3N4/8/8/8", "d4", "f6", false},
		{"three by one", "8/8/8/8/3N4/8/8/8", "d4", "g5", false},
	})
}

func TestCanMoveBishop(t *testing.T) {
	runMovementCases(t, []movementCase{
		{"long diagonal", "8/8/8/8/8/8/8/B7", "a1", "h8", true},
		{"short diagonal", "8/8/8/8/3B4/8/8/8", "d4", "c3", true},
		{"capture at end of clear path", "8/8/5p2/8/3B4/8/8/8", "d4", "f6", true},
		{"own piece at destination still geometric", "8/8/5P2/8/3B4/8/8/8", "d4", "f6", true},
		{"blocked path", "8/8/8/8/8/2p5/8/B7", "a1", "e5", false},
		{"straight line", "8/8/8/8/3B4/8/8/8", "d4", "d7", false},
		{"uneven diagonal", "8/8/8/8/3B4/8/8/8", "d4", "f7", false},
	})
}

func TestCanMoveRook(t *testing.T) {
	runMovementCases(t, []movementCase{
		{"along file", "8/8/8/8/3R4/8/8/8", "d4", "d8", true},
		{"along rank", "8/8/8/8/3R4/8/8/8", "d4", "a4", true},
		{"adjacent", "8/8/8/8/3R4/8/8/8", "d4", "e4", true},
		{"capture at end of file", "3q4/8/8/8/3R4/8/8/8", "d4", "d8", true},
		{"blocked file", "8/8/3p4/8/3R4/8/8/8", "d4", "d8", false},
		{"blocked rank", "8/8/8/8/1n1R4/8/8/8", "d4", "a4", false},
		{"diagonal", "8/8/8/8/3R4/8/8/8", "d4", "f6", false},
	})
}

func TestCanMoveQueen(t *testing.T) {
	runMovementCases(t, []movementCase{
		{"as rook", "8/8/8/8/3Q4/8/8/8", "d4", "d1", true},
		{"as bishop", "8/8/8/8/3Q4/8/8/8", "d4", "h8", true},
		{"blocked diagonal", "8/8/8/4p3/3Q4/8/8/8", "d4", "g7", false},
		{"blocked file", "8/8/8/8/3Q4/3P4/8/8", "d4", "d1", false},
		{"knight shape", "8/8/8/8/3Q4/8/8/8", "d4", "e6", false},
	})
}

func TestCanMoveKing(t *testing.T) {
	runMovementCases(t, []movementCase{
		{"forward", "8/8/8/8/3K4/8/8/8", "d4", "d5", true},
		{"diagonal", "8/8/8/8/3K4/8/8/8", "d4", "c3", true},
		{"sideways", "8/8/8/8/3K4/8/8/8", "d4", "e4", true},
		{"two squares", "8/8/8/8/3K4/8/8/8", "d4", "d6", false},
		{"no castling", "8/8/8/8/8/8/8/4K2R", "e1", "g1", false},
	})
}

func TestCanMoveUnknownPiece(t *testing.T) {
	var board Board
	assert.False(t, CanMove(&board, Sq(0, 0), Sq(0, 1), NoPiece))
}
