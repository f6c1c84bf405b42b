package chess

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPlacement = errors.New("invalid piece placement")

// StartPlacement is the standard initial position.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

var letterPieces = map[byte]PieceType{
	'k': King,
	'q': Queen,
	'r': Rook,
	'b': Bishop,
	'n': Knight,
	'p': Pawn,
}

// Decode builds a fresh board from the piece-placement field of a FEN string.
// Trailing FEN fields are ignored. Input is not validated; malformed strings
// yield a partial board. Run ValidatePlacement first if the source is untrusted.
func Decode(position string) Board {
	var board Board

	placement, _, _ := strings.Cut(strings.TrimSpace(position), " ")
	for i, row := range strings.Split(placement, "/") {
		rank := 7 - i
		if rank < 0 {
			break
		}
		file := 0
		for j := 0; j < len(row) && file < 8; j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			color := Black
			lower := c
			if c >= 'A' && c <= 'Z' {
				color = White
				lower = c - 'A' + 'a'
			}
			if t, ok := letterPieces[lower]; ok {
				board[rank][file] = Piece{Type: t, Color: color}
			}
			file++
		}
	}

	return board
}

// Encode renders the piece-placement field for board.
func Encode(board Board) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := board[rank][file]
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ValidatePlacement checks the placement field for eight ranks of eight files,
// known piece letters and exactly one king per side.
func ValidatePlacement(position string) error {
	placement, _, _ := strings.Cut(strings.TrimSpace(position), " ")
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidPlacement, len(rows))
	}

	kings := map[Color]int{}
	for i, row := range rows {
		files := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			switch {
			case c >= '1' && c <= '8':
				files += int(c - '0')
			case letterPieces[c] != NoPieceType:
				if c == 'k' {
					kings[Black]++
				}
				files++
			case c >= 'A' && c <= 'Z' && letterPieces[c-'A'+'a'] != NoPieceType:
				if c == 'K' {
					kings[White]++
				}
				files++
			default:
				return fmt.Errorf("%w: unexpected %q in rank %d", ErrInvalidPlacement, c, 8-i)
			}
		}
		if files != 8 {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidPlacement, 8-i, files)
		}
	}

	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("%w: need one king per side, got %d white and %d black",
			ErrInvalidPlacement, kings[White], kings[Black])
	}
	return nil
}
