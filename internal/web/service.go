package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/justinabrahms/chessrules/internal/chess"
	"github.com/justinabrahms/chessrules/internal/config"
	"github.com/justinabrahms/chessrules/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

var ErrGameOver = errors.New("game is over")

type Service struct {
	store  store.Store
	hub    *Hub
	config *config.Config

	// moves are applied one at a time so a game's FEN is never written from a
	// stale read
	moveMu sync.Mutex

	sessionsMu sync.RWMutex
	sessions   map[string]*Session

	// submissions from every session controller
	inflight conc.WaitGroup
}

func NewService(st store.Store, hub *Hub, cfg *config.Config) *Service {
	return &Service{
		store:    st,
		hub:      hub,
		config:   cfg,
		sessions: make(map[string]*Session),
	}
}

// Router wires every handler under /api plus the websocket endpoint.
func (s *Service) Router() *mux.Router {
	router := mux.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// mux only runs middleware for matched routes, so preflights need a route
	// of their own.
	router.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.HealthHandler).Methods("GET")
	api.HandleFunc("/games", s.CreateGameHandler).Methods("POST")
	api.HandleFunc("/games/{id}", s.GetGameHandler).Methods("GET")
	api.HandleFunc("/games/{id}/moves", s.MakeMoveHandler).Methods("POST")
	api.HandleFunc("/games/{id}/sessions", s.CreateSessionHandler).Methods("POST")
	api.HandleFunc("/sessions/{sid}", s.GetSessionHandler).Methods("GET")
	api.HandleFunc("/sessions/{sid}/taps", s.TapHandler).Methods("POST")
	api.HandleFunc("/sessions/{sid}/selection", s.ClearSelectionHandler).Methods("DELETE")
	api.HandleFunc("/legality", s.LegalityHandler).Methods("POST")
	api.HandleFunc("/check", s.CheckHandler).Methods("POST")
	api.HandleFunc("/targets", s.TargetsHandler).Methods("GET")
	router.HandleFunc("/ws", s.WebSocketHandler)

	return router
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status": "ok",
	})
}

type CreateGameRequest struct {
	FEN string `json:"fen,omitempty"`
}

func (s *Service) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	game := store.NewGame(req.FEN)
	if err := chess.ValidatePlacement(game.FEN); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := chess.NewRefereeFromFEN(game.FEN); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.Create(r.Context(), game); err != nil {
		log.Error().Err(err).Msg("Failed to create game")
		http.Error(w, "Failed to create game", http.StatusInternalServerError)
		return
	}

	log.Info().Str("gameID", game.ID).Str("fen", game.FEN).Msg("Game created")
	writeJSON(w, game)
}

type MakeMoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

func (s *Service) MakeMoveHandler(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var req MakeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.ApplyMove(r.Context(), gameID, req.From, req.To, req.Promotion)
	if err != nil {
		writeMoveError(w, err)
		return
	}

	writeJSON(w, result)
}

func writeMoveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrGameNotFound):
		http.Error(w, "Game not found", http.StatusNotFound)
	case errors.Is(err, chess.ErrIllegalMove), errors.Is(err, chess.ErrInvalidSquare), errors.Is(err, ErrGameOver):
		http.Error(w, fmt.Sprintf("Invalid move: %s", err.Error()), http.StatusBadRequest)
	default:
		http.Error(w, "Failed to record move", http.StatusInternalServerError)
	}
}

// ApplyMove plays a move on the stored game through the referee, saves the new
// position and broadcasts it.
func (s *Service) ApplyMove(ctx context.Context, gameID, from, to, promotion string) (*chess.MoveResult, error) {
	s.moveMu.Lock()
	defer s.moveMu.Unlock()

	game, err := s.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Status != chess.StatusActive {
		return nil, fmt.Errorf("%w: %s", ErrGameOver, game.Status)
	}

	referee, err := chess.NewRefereeFromFEN(game.FEN)
	if err != nil {
		return nil, fmt.Errorf("stored position for %s: %w", gameID, err)
	}

	result, err := referee.Apply(from, to, promotion)
	if err != nil {
		log.Info().Err(err).Str("gameID", gameID).Str("from", from).Str("to", to).Msg("Move rejected")
		return nil, err
	}

	game.FEN = result.FEN
	game.Status = referee.Status()
	game.LastMove = result
	if err := s.store.Update(ctx, game); err != nil {
		log.Error().Err(err).Str("gameID", gameID).Msg("Failed to record move")
		return nil, fmt.Errorf("failed to record move: %w", err)
	}

	if game.Status != chess.StatusActive {
		s.endSessions(gameID)
	}

	log.Info().
		Str("gameID", gameID).
		Str("san", result.SAN).
		Str("next", referee.Turn().String()).
		Str("status", string(game.Status)).
		Str("fen", result.FEN).
		Bool("check", result.Check).
		Bool("checkmate", result.Checkmate).
		Msg("Move executed successfully")

	s.hub.BroadcastGameUpdate(GameUpdate{
		GameID: gameID,
		Type:   "move",
		Data:   result,
	})

	return result, nil
}

type LegalityRequest struct {
	FEN  string `json:"fen"`
	From string `json:"from"`
	To   string `json:"to"`
}

// LegalityHandler answers whether the piece on from may move to to under the
// local rules (no castling, en passant or promotion handling).
func (s *Service) LegalityHandler(w http.ResponseWriter, r *http.Request) {
	var req LegalityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	board, ok := decodeChecked(w, req.FEN)
	if !ok {
		return
	}
	from, err := chess.ParseSquare(req.From)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := chess.ParseSquare(req.To)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	piece, occupied := board.At(from)
	move := chess.MoveIntention{From: from, To: to, Piece: piece}
	response := map[string]interface{}{
		"from":  from.String(),
		"to":    to.String(),
		"legal": occupied && chess.IsLegalMove(&board, move),
	}
	if occupied {
		response["piece"] = piece.Type.String()
		response["color"] = piece.Color.String()
	}

	writeJSON(w, response)
}

type CheckRequest struct {
	FEN   string `json:"fen"`
	Color string `json:"color"`
}

func (s *Service) CheckHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	color, ok := chess.ParseColor(req.Color)
	if !ok {
		http.Error(w, "color must be white or black", http.StatusBadRequest)
		return
	}
	board, ok := decodeChecked(w, req.FEN)
	if !ok {
		return
	}

	writeJSON(w, map[string]interface{}{
		"color":     color.String(),
		"inCheck":   chess.IsInCheck(&board, color),
		"checkmate": chess.IsCheckmate(&board, color),
		"stalemate": chess.IsStalemate(&board, color),
	})
}

func (s *Service) TargetsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	board, ok := decodeChecked(w, query.Get("fen"))
	if !ok {
		return
	}
	from, err := chess.ParseSquare(query.Get("square"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	targets := []string{}
	for _, sq := range chess.LegalTargets(&board, from) {
		targets = append(targets, sq.String())
	}

	writeJSON(w, map[string]interface{}{
		"square":  from.String(),
		"targets": targets,
	})
}

// decodeChecked validates the placement before decoding and writes a 400 if
// it is malformed.
func decodeChecked(w http.ResponseWriter, fen string) (chess.Board, bool) {
	if err := chess.ValidatePlacement(fen); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return chess.Board{}, false
	}
	return chess.Decode(fen), true
}
