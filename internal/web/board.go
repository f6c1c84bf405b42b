package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/justinabrahms/chessrules/internal/chess"
	"github.com/justinabrahms/chessrules/internal/store"
	"github.com/rs/zerolog/log"
)

// BoardView is a game as a client renders it.
type BoardView struct {
	Game           *store.Game         `json:"game"`
	Placement      string              `json:"placement"`
	Rows           []string            `json:"rows"` // rank 8 first, "." for empty
	SideToMove     string              `json:"sideToMove"`
	Check          CheckFlags          `json:"check"`
	Checkmate      CheckFlags          `json:"checkmate"`
	MaterialCount  chess.MaterialCount `json:"materialCount"`
	Balance        int                 `json:"materialBalance"` // white minus black
	SpectatorCount int                 `json:"spectatorCount"`
}

type CheckFlags struct {
	White bool `json:"white"`
	Black bool `json:"black"`
}

func newBoardView(game *store.Game, spectators int) BoardView {
	board := chess.Decode(game.FEN)
	material := chess.Material(&board)

	rows := make([]string, 0, 8)
	for rank := 7; rank >= 0; rank-- {
		var sb strings.Builder
		for file := 0; file < 8; file++ {
			if p := board[rank][file]; p.Empty() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(p.Letter())
			}
		}
		rows = append(rows, sb.String())
	}

	return BoardView{
		Game:       game,
		Placement:  chess.Encode(board),
		Rows:       rows,
		SideToMove: chess.SideToMove(game.FEN).String(),
		Check: CheckFlags{
			White: chess.IsInCheck(&board, chess.White),
			Black: chess.IsInCheck(&board, chess.Black),
		},
		Checkmate: CheckFlags{
			White: chess.IsCheckmate(&board, chess.White),
			Black: chess.IsCheckmate(&board, chess.Black),
		},
		MaterialCount:  material,
		Balance:        material.Balance(),
		SpectatorCount: spectators,
	}
}

// GetGameHandler returns the stored game with its board re-derived from the FEN.
func (s *Service) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	game, err := s.store.Get(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, store.ErrGameNotFound) {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("gameID", gameID).Msg("Failed to fetch game")
		http.Error(w, "Failed to fetch game", http.StatusInternalServerError)
		return
	}

	writeJSON(w, newBoardView(game, s.hub.SpectatorCount(gameID)))
}
