package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/justinabrahms/chessrules/internal/chess"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		fen      string
		colorArg string
		showHelp bool
	)
	flag.StringVar(&fen, "fen", chess.StartPlacement, "Piece placement (the first FEN field is enough)")
	flag.StringVar(&colorArg, "color", "", "Color to report check for (w or b); defaults to the side to move")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&showHelp, "h", false, "Show help information")
	flag.Parse()

	if showHelp {
		showHelpMessage()
		return
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := chess.ValidatePlacement(fen); err != nil {
		log.Fatal().Err(err).Str("fen", fen).Msg("Bad placement")
	}
	board := chess.Decode(fen)

	color := chess.SideToMove(fen)
	if colorArg != "" {
		c, ok := chess.ParseColor(colorArg)
		if !ok {
			log.Fatal().Str("color", colorArg).Msg("Color must be w or b")
		}
		color = c
	}

	printBoard(&board)
	fmt.Printf("%s in check: %t\n", color, chess.IsInCheck(&board, color))
	switch {
	case chess.IsCheckmate(&board, color):
		fmt.Printf("%s is checkmated\n", color)
	case chess.IsStalemate(&board, color):
		fmt.Printf("%s is stalemated\n", color)
	}

	args := flag.Args()
	switch len(args) {
	case 0:
		return
	case 1:
		from := parseSquare(args[0])
		targets := chess.LegalTargets(&board, from)
		names := make([]string, len(targets))
		for i, sq := range targets {
			names[i] = sq.String()
		}
		fmt.Printf("%s: %s\n", from, strings.Join(names, " "))
	case 2:
		from, to := parseSquare(args[0]), parseSquare(args[1])
		piece, ok := board.At(from)
		if !ok {
			fmt.Printf("%s-%s: illegal (no piece on %s)\n", from, to, from)
			os.Exit(1)
		}
		if !chess.IsLegal(&board, from, to, piece) {
			fmt.Printf("%s %s %s-%s: illegal\n", piece.Color, piece.Type, from, to)
			os.Exit(1)
		}
		fmt.Printf("%s %s %s-%s: legal\n", piece.Color, piece.Type, from, to)
	default:
		log.Fatal().Strs("args", args).Msg("Expected at most two squares")
	}
}

func parseSquare(arg string) chess.Square {
	sq, err := chess.ParseSquare(arg)
	if err != nil {
		log.Fatal().Err(err).Msg("Bad square")
	}
	return sq
}

func printBoard(board *chess.Board) {
	for rank := 7; rank >= 0; rank-- {
		var row strings.Builder
		fmt.Fprintf(&row, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			if piece, ok := board.At(chess.Sq(file, rank)); ok {
				row.WriteByte(piece.Letter())
			} else {
				row.WriteByte('.')
			}
		}
		fmt.Println(row.String())
	}
	fmt.Println("  abcdefgh")
}

func showHelpMessage() {
	fmt.Println(`rulecheck - one-shot chess rule queries

USAGE:
    rulecheck [-fen PLACEMENT] [-color w|b] [FROM [TO]]

OPTIONS:
    -fen PLACEMENT   Board to inspect (default: the start position)
    -color w|b       Color to report check for (default: side to move)
    -h, --help       Show this help message

With FROM only, lists the legal destinations of the piece on FROM.
With FROM and TO, reports whether the move is legal and exits 1 if not.
Castling, en passant and promotion are not considered.

EXAMPLES:
    rulecheck -fen "4k3/8/8/8/8/8/8/R3K3" a1 a8
    rulecheck -fen "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR" -color w`)
}
