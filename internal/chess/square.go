package chess

import (
	"errors"
	"fmt"
)

var ErrInvalidSquare = errors.New("invalid square notation")

// Square is a zero-based (file, rank) coordinate. File 0 is "a", rank 0 is "1".
type Square struct {
	File int
	Rank int
}

func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// Valid reports whether both coordinates are on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

// String returns the algebraic name, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File), byte('1' + s.Rank)})
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(sq string) (Square, error) {
	if len(sq) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, sq)
	}

	s := Square{File: int(sq[0]) - 'a', Rank: int(sq[1]) - '1'}
	if !s.Valid() {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, sq)
	}
	return s, nil
}

// MustParseSquare is ParseSquare for literals; it panics on bad input.
func MustParseSquare(sq string) Square {
	s, err := ParseSquare(sq)
	if err != nil {
		panic(err)
	}
	return s
}

// MarshalText encodes the square in algebraic notation.
func (s Square) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrInvalidSquare, s.File, s.Rank)
	}
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}
