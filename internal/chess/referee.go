package chess

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
)

var ErrIllegalMove = errors.New("illegal move")

// StartFEN is the full FEN of the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Referee applies moves under the complete rules of chess, including the
// castling, en passant and promotion cases the local validator leaves out. It
// is the authority submitted moves are reconciled against.
type Referee struct {
	game *chess.Game
}

func NewReferee() *Referee {
	return &Referee{
		game: chess.NewGame(),
	}
}

func NewRefereeFromFEN(fen string) (*Referee, error) {
	fenFunc, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN: %w", err)
	}

	return &Referee{
		game: chess.NewGame(fenFunc),
	}, nil
}

// Apply plays from -> to. promotion is "", "q", "r", "b" or "n"; an omitted
// promotion on the last rank defaults to a queen.
func (r *Referee) Apply(from, to, promotion string) (*MoveResult, error) {
	fromSquare, err := ParseSquare(from)
	if err != nil {
		return nil, err
	}
	toSquare, err := ParseSquare(to)
	if err != nil {
		return nil, err
	}

	s1, s2 := toExternalSquare(fromSquare), toExternalSquare(toSquare)
	promo := ParsePromotion(promotion)

	before := r.game.Position()
	var validMove *chess.Move
	for _, vm := range r.game.ValidMoves() {
		if vm.S1() != s1 || vm.S2() != s2 {
			continue
		}
		if vm.Promo() == promo || (promo == chess.NoPieceType && vm.Promo() == chess.Queen) {
			validMove = vm
			break
		}
	}

	if validMove == nil {
		return nil, fmt.Errorf("%w: %s to %s", ErrIllegalMove, from, to)
	}

	san := chess.AlgebraicNotation{}.Encode(before, validMove)
	if err := r.game.Move(validMove); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	result := &MoveResult{
		From:      from,
		To:        to,
		SAN:       san,
		FEN:       r.FEN(),
		Check:     validMove.HasTag(chess.Check),
		Checkmate: r.game.Method() == chess.Checkmate,
		Draw:      r.game.Outcome() == chess.Draw,
		GameOver:  r.game.Outcome() != chess.NoOutcome,
	}

	if r.game.Outcome() != chess.NoOutcome {
		result.Result = r.game.Outcome().String()
	}

	return result, nil
}

func (r *Referee) FEN() string {
	return r.game.Position().String()
}

func (r *Referee) Status() GameStatus {
	switch r.game.Outcome() {
	case chess.WhiteWon:
		return StatusWhiteWon
	case chess.BlackWon:
		return StatusBlackWon
	case chess.Draw:
		return StatusDraw
	default:
		return StatusActive
	}
}

// Turn is the side to move.
func (r *Referee) Turn() Color {
	if r.game.Position().Turn() == chess.White {
		return White
	}
	return Black
}

// SideToMove reads the active-color field of a full FEN. Placement-only
// strings default to White.
func SideToMove(fen string) Color {
	fenFunc, err := chess.FEN(fen)
	if err != nil {
		return White
	}
	if chess.NewGame(fenFunc).Position().Turn() == chess.Black {
		return Black
	}
	return White
}

func toExternalSquare(s Square) chess.Square {
	return chess.Square(s.Rank*8 + s.File)
}

func ParsePromotion(p string) chess.PieceType {
	switch p {
	case "q":
		return chess.Queen
	case "r":
		return chess.Rook
	case "b":
		return chess.Bishop
	case "n":
		return chess.Knight
	default:
		return chess.NoPieceType
	}
}
