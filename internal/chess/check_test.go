package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInCheck(t *testing.T) {
	tests := []struct {
		name     string
		position string
		color    Color
		expected bool
	}{
		{"rook on open file", "k3r3/8/8/8/8/8/8/4K3", White, true},
		{"rook removed", "k7/8/8/8/8/8/8/4K3", White, false},
		{"file blocked by own pawn", "k3r3/8/8/8/4P3/8/8/4K3", White, false},
		{"file blocked by enemy piece", "k3r3/8/8/4n3/8/8/8/4K3", White, false},
		{"bishop diagonal", "k7/8/8/8/7b/8/8/4K3", White, true},
		{"knight", "k7/8/8/8/8/3n4/8/4K3", White, true},
		{"pawn attacks diagonally", "k7/8/8/8/8/8/3p4/4K3", White, true},
		{"pawn does not attack forward", "k7/8/8/8/8/8/4p3/4K3", White, false},
		{"white pawn checks black king", "8/8/8/3k4/4P3/8/8/4K3", Black, true},
		{"queen not aligned", "k7/8/8/8/8/8/8/1Q5K", Black, false},
		{"queen on file", "k7/8/8/8/8/8/8/Q6K", Black, true},
		{"adjacent king", "8/8/8/8/8/8/3k4/4K3", White, true},
		{"start position", StartPlacement, White, false},
		{"own pieces never check", "k7/8/8/8/8/8/8/R3K3", White, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := Decode(tt.position)
			assert.Equal(t, tt.expected, IsInCheck(&board, tt.color))
		})
	}
}

func TestIsInCheckWithoutKing(t *testing.T) {
	board := Decode("8/8/8/8/8/8/8/4r3")
	assert.False(t, IsInCheck(&board, White))
}

func TestFindKing(t *testing.T) {
	board := Decode(StartPlacement)

	sq, ok := FindKing(&board, White)
	assert.True(t, ok)
	assert.Equal(t, "e1", sq.String())

	sq, ok = FindKing(&board, Black)
	assert.True(t, ok)
	assert.Equal(t, "e8", sq.String())
}

func TestIsAttacked(t *testing.T) {
	board := Decode("4k3/8/8/3p4/4P3/8/8/4K3")

	assert.True(t, IsAttacked(&board, MustParseSquare("d5"), White), "e4 pawn takes d5")
	assert.True(t, IsAttacked(&board, MustParseSquare("e4"), Black), "d5 pawn takes e4")
	assert.False(t, IsAttacked(&board, MustParseSquare("e8"), White))
	assert.False(t, IsAttacked(&board, MustParseSquare("e1"), Black))
}
