package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type legalityCase struct {
	name     string
	position string
	from     string
	to       string
	expected bool
}

func runLegalityCases(t *testing.T, tests []legalityCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := Decode(tt.position)
			from := MustParseSquare(tt.from)
			piece, ok := board.At(from)
			if !ok {
				t.Fatalf("no piece on %s", tt.from)
			}
			got := IsLegal(&board, from, MustParseSquare(tt.to), piece)
			assert.Equal(t, tt.expected, got, "%s %s-%s", piece.Type, tt.from, tt.to)
		})
	}
}

func TestIsLegalBasics(t *testing.T) {
	runLegalityCases(t, []legalityCase{
		{"opening pawn push", StartPlacement, "e2", "e4", true},
		{"knight development", StartPlacement, "g1", "f3", true},
		{"pawn too far", StartPlacement, "e2", "e5", false},
		{"knight onto own pawn", StartPlacement, "g1", "e2", false},
		{"bishop blocked by own pawns", StartPlacement, "f1", "c4", false},
		{"zero length", StartPlacement, "e2", "e2", false},
		{"capture enemy piece", "4k3/8/8/3p4/4P3/8/8/4K3", "e4", "d5", true},
		{"rook onto own queen", "4k3/8/8/8/8/8/8/Q2RK3", "d1", "a1", false},
	})
}

func TestIsLegalPin(t *testing.T) {
	pinned := "k3r3/8/8/8/8/8/4B3/4K3"
	runLegalityCases(t, []legalityCase{
		{"pinned bishop leaves file", pinned, "e2", "d3", false},
		{"pinned bishop leaves file other way", pinned, "e2", "f3", false},
		{"king steps aside", pinned, "e1", "d1", true},
		{"king stays on file", pinned, "e1", "f2", true},
		{"unpinned after block", "k3r3/8/8/8/4N3/8/4B3/4K3", "e2", "d3", true},
		{"pinned knight", "k7/8/8/8/8/8/8/r2NK3", "d1", "c3", false},
	})
}

func TestIsLegalCheckResolution(t *testing.T) {
	// white king on e1 is in check from the rook on e8
	runLegalityCases(t, []legalityCase{
		{"unrelated knight move", "k3r3/8/8/8/8/8/8/1N2K3", "b1", "c3", false},
		{"unrelated pawn push", "k3r3/8/8/8/8/8/P7/4K3", "a2", "a3", false},
		{"block with bishop", "k3r3/8/8/8/8/8/8/4KB2", "f1", "e2", true},
		{"capture the checker", "k3r2R/8/8/8/8/8/8/4K3", "h8", "e8", true},
		{"king steps off the file", "k3r3/8/8/8/8/8/8/4K3", "e1", "d1", true},
		{"king stays on the file", "k3r3/8/8/8/8/8/8/4K3", "e1", "e2", false},
		{"king captures protected piece", "k7/8/8/8/8/8/3r4/3rK3", "e1", "d1", false},
		{"king captures unprotected checker", "k7/8/8/8/8/8/8/3rK3", "e1", "d1", true},
		{"king walks into pawn attack", "k7/8/8/8/8/5p2/8/4K3", "e1", "e2", false},
	})
}

func TestIsLegalRejectsOffBoard(t *testing.T) {
	board := Decode(StartPlacement)
	piece, _ := board.At(MustParseSquare("a1"))
	assert.False(t, IsLegal(&board, Sq(0, 0), Sq(-1, 0), piece))
	assert.False(t, IsLegal(&board, Sq(0, 0), Sq(0, 8), piece))
}

func TestIsLegalMove(t *testing.T) {
	board := Decode(StartPlacement)
	m := MoveIntention{
		From:  MustParseSquare("b1"),
		To:    MustParseSquare("c3"),
		Piece: Piece{Type: Knight, Color: White},
	}
	assert.True(t, IsLegalMove(&board, m))
}

func TestIsLegalDoesNotMutateBoard(t *testing.T) {
	board := Decode("k3r3/8/8/8/8/8/4B3/4K3")
	before := board

	IsLegal(&board, MustParseSquare("e2"), MustParseSquare("d3"), Piece{Type: Bishop, Color: White})
	IsLegal(&board, MustParseSquare("e1"), MustParseSquare("d1"), Piece{Type: King, Color: White})

	assert.Equal(t, before, board)
}

func TestLegalTargets(t *testing.T) {
	tests := []struct {
		name     string
		position string
		from     string
		expected []string
	}{
		{"knight from start", StartPlacement, "b1", []string{"a3", "c3"}},
		{"pawn from start", StartPlacement, "e2", []string{"e3", "e4"}},
		{"blocked rook", StartPlacement, "a1", nil},
		{"pinned bishop", "k3r3/8/8/8/8/8/4B3/4K3", "e2", nil},
		{"empty square", StartPlacement, "e4", nil},
		{"king in check", "k3r3/8/8/8/8/8/8/4K3", "e1", []string{"d1", "f1", "d2", "f2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := Decode(tt.position)
			var got []string
			for _, sq := range LegalTargets(&board, MustParseSquare(tt.from)) {
				got = append(got, sq.String())
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMateDetection(t *testing.T) {
	tests := []struct {
		name      string
		position  string
		color     Color
		hasMoves  bool
		checkmate bool
		stalemate bool
	}{
		{"start position", StartPlacement, White, true, false, false},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR", White, false, true, false},
		{"back rank mate", "4k3/8/8/8/8/8/3PPP2/r3K3", White, false, true, false},
		{"back rank check blockable", "4k3/8/8/8/8/2N5/3PPP2/r3K3", White, true, false, false},
		{"check with king escape", "4k3/8/8/8/8/8/8/4K2r", White, true, false, false},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8", Black, false, false, true},
		{"no king", "8/8/8/8/8/8/4P3/8", White, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := Decode(tt.position)
			assert.Equal(t, tt.hasMoves, HasLegalMoves(&board, tt.color), "HasLegalMoves")
			assert.Equal(t, tt.checkmate, IsCheckmate(&board, tt.color), "IsCheckmate")
			assert.Equal(t, tt.stalemate, IsStalemate(&board, tt.color), "IsStalemate")
		})
	}
}
