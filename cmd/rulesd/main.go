package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinabrahms/chessrules/internal/config"
	"github.com/justinabrahms/chessrules/internal/store"
	"github.com/justinabrahms/chessrules/internal/web"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Parse command line flags
	var showHelp bool
	var configPath string
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&showHelp, "h", false, "Show help information")
	flag.StringVar(&configPath, "config", "", "Path to a config file (default: ./config.yaml)")
	flag.Parse()

	if showHelp {
		showHelpMessage()
		return
	}

	// Load config
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Setup logging
	level, err := zerolog.ParseLevel(cfg.Development.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Development.Debug {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger().Level(level)
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	}

	st, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("Failed to open game store")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	hub := web.NewHub()
	go hub.Run(ctx)

	service := web.NewService(st, hub, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      service.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("store", cfg.Store.Driver).
			Bool("prevalidate", cfg.Rules.Prevalidate).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Let submissions started by taps finish before the store goes away.
	service.Wait()
	stop()

	if err := st.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close game store")
	}

	log.Info().Msg("Server exited")
}

func showHelpMessage() {
	fmt.Println(`Chess Rules Service

DESCRIPTION:
    Rules service for tap-driven chess clients. Decodes board placements,
    answers move legality and check questions, and runs per-player
    selection sessions that turn two taps into a move submission.
    Moves are refereed by the notnil/chess engine and stored in memory
    or in a Badger database.

USAGE:
    rulesd [OPTIONS]

OPTIONS:
    -h, --help       Show this help message
    -config PATH     Read configuration from PATH instead of ./config.yaml

CONFIGURATION:
    The service is configured via config.yaml in the current directory.
    Every key can be overridden with a CHESSRULES_ environment variable,
    e.g. CHESSRULES_SERVER_PORT=9090.

    Example config.yaml:
        server:
          host: localhost
          port: 8080

        rules:
          prevalidate: true   # check taps locally before submitting
          local_games: false  # one session may move both colors

        store:
          driver: badger      # memory or badger
          path: ./data/games

        development:
          debug: true
          log_level: debug

API ENDPOINTS:
    GET  /api/health                  - Service health check
    POST /api/games                   - Create a game, optionally from a FEN
    GET  /api/games/{id}              - Board view of a game
    POST /api/games/{id}/moves        - Submit a move to a game
    POST /api/games/{id}/sessions     - Open a selection session for a color
    GET  /api/sessions/{sid}          - Selection state of a session
    POST /api/sessions/{sid}/taps     - Tap a square in a session
    DELETE /api/sessions/{sid}/selection - Drop the selected square
    POST /api/legality                - Is a move legal in a placement
    POST /api/check                   - Check, mate and stalemate for a color
    GET  /api/targets?fen=&square=    - Legal destinations of a piece
    GET  /ws?gameId={id}              - Live move updates for a game

BEHAVIOR:
    - Local legality checks are advisory; the referee decides
    - Failed tap submissions are logged and never surface to the client
    - Sessions are closed when their game ends
    - Graceful shutdown on SIGINT/SIGTERM

EXAMPLES:
    # Start with default configuration
    rulesd

    # Ask whether e2-e4 is legal from the start position
    curl -X POST http://localhost:8080/api/legality \
      -H "Content-Type: application/json" \
      -d '{"fen": "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", "from": "e2", "to": "e4"}'

SEE ALSO:
    rulecheck(1), config.yaml(5)`)
}
