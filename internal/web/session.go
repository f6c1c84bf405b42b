package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/justinabrahms/chessrules/internal/chess"
	"github.com/justinabrahms/chessrules/internal/selection"
	"github.com/justinabrahms/chessrules/internal/store"
	"github.com/rs/zerolog/log"
)

// Session is one player's tap-driven view of a game. Its controller submits
// accepted moves back through ApplyMove.
type Session struct {
	ID     string
	GameID string
	Color  chess.Color

	controller *selection.Controller
}

type SessionResponse struct {
	SessionID string             `json:"sessionId"`
	GameID    string             `json:"gameId"`
	Color     string             `json:"color"`
	Event     string             `json:"event,omitempty"`
	State     selection.Snapshot `json:"state"`
}

type CreateSessionRequest struct {
	Color string `json:"color"`
}

func (s *Service) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	color, ok := chess.ParseColor(req.Color)
	if !ok {
		http.Error(w, "color must be white or black", http.StatusBadRequest)
		return
	}

	game, err := s.store.Get(r.Context(), gameID)
	if err != nil {
		s.writeStoreError(w, err, gameID)
		return
	}
	if game.Status != chess.StatusActive {
		http.Error(w, fmt.Sprintf("%s: %s", ErrGameOver.Error(), game.Status), http.StatusConflict)
		return
	}

	session := s.newSession(game.ID, color)
	session.sync(game, s.config.Rules.LocalGames)

	log.Info().Str("gameID", gameID).Str("sessionID", session.ID).Str("color", color.String()).Msg("Session opened")
	writeJSON(w, session.response(""))
}

func (s *Service) newSession(gameID string, color chess.Color) *Session {
	session := &Session{
		ID:     uuid.NewString(),
		GameID: gameID,
		Color:  color,
	}
	session.controller = selection.New(
		func(ctx context.Context, from, to, promotion string) error {
			_, err := s.ApplyMove(ctx, gameID, from, to, promotion)
			return err
		},
		selection.WithPrevalidation(s.config.Rules.Prevalidate),
		selection.WithWaitGroup(&s.inflight),
		selection.WithLogger(log.With().Str("sessionID", session.ID).Logger()),
	)

	s.sessionsMu.Lock()
	s.sessions[session.ID] = session
	s.sessionsMu.Unlock()

	return session
}

func (s *Service) session(r *http.Request) (*Session, bool) {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()
	session, ok := s.sessions[mux.Vars(r)["sid"]]
	return session, ok
}

func (s *Service) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(r)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	game, err := s.store.Get(r.Context(), session.GameID)
	if err != nil {
		s.writeStoreError(w, err, session.GameID)
		return
	}
	session.sync(game, s.config.Rules.LocalGames)

	writeJSON(w, session.response(""))
}

type TapRequest struct {
	Square string `json:"square"`
}

// TapHandler feeds one tap into the session's controller against the latest
// stored position.
func (s *Service) TapHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(r)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	var req TapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sq, err := chess.ParseSquare(req.Square)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	game, err := s.store.Get(r.Context(), session.GameID)
	if err != nil {
		s.writeStoreError(w, err, session.GameID)
		return
	}
	session.sync(game, s.config.Rules.LocalGames)

	event := session.controller.Tap(sq)
	log.Debug().Str("sessionID", session.ID).Str("square", sq.String()).Str("event", event.String()).Msg("Tap")

	writeJSON(w, session.response(event.String()))
}

func (s *Service) writeStoreError(w http.ResponseWriter, err error, gameID string) {
	if errors.Is(err, store.ErrGameNotFound) {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	log.Error().Err(err).Str("gameID", gameID).Msg("Failed to fetch game")
	http.Error(w, "Failed to fetch game", http.StatusInternalServerError)
}

// ClearSelectionHandler drops the session's selected square, if any.
func (s *Service) ClearSelectionHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(r)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	session.controller.Clear()
	writeJSON(w, session.response(""))
}

// endSessions forgets every session on gameID. Their in-flight submissions
// still count towards Wait.
func (s *Service) endSessions(gameID string) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	for id, session := range s.sessions {
		if session.GameID == gameID {
			delete(s.sessions, id)
		}
	}
	log.Debug().Str("gameID", gameID).Msg("Sessions closed")
}

// Wait blocks until every in-flight session submission has finished.
func (s *Service) Wait() {
	s.inflight.Wait()
}

func (sess *Session) sync(game *store.Game, local bool) {
	sess.controller.Sync(selection.View{
		Position:    game.FEN,
		SideToMove:  chess.SideToMove(game.FEN),
		Player:      sess.Color,
		Interactive: game.Status == chess.StatusActive,
		Local:       local,
	})
}

func (sess *Session) response(event string) SessionResponse {
	return SessionResponse{
		SessionID: sess.ID,
		GameID:    sess.GameID,
		Color:     sess.Color.String(),
		Event:     event,
		State:     sess.controller.State(),
	}
}
