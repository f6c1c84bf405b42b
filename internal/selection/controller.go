// Package selection sequences two-tap move entry on top of the rules engine.
//
// A Controller is either idle or holds one selected square. The first tap on
// one of the acting player's pieces selects it; the next tap either switches
// to another own piece or is taken as a move attempt from the selected square.
// Legal attempts are handed to a Submitter on a separate goroutine and the
// controller returns to idle without waiting for the result.
package selection

import (
	"context"
	"sync"

	"github.com/justinabrahms/chessrules/internal/chess"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// Submitter forwards an accepted move to the authority that owns the game.
// Squares are algebraic; promotion is always empty.
type Submitter func(ctx context.Context, from, to, promotion string) error

// View is the externally owned input the controller reacts to.
type View struct {
	// Position is a FEN string or just its piece-placement field.
	Position    string
	SideToMove  chess.Color
	Player      chess.Color
	Interactive bool
	// Local lets one player act for whichever side is to move.
	Local bool
}

// Event describes what a tap did.
type Event int

const (
	Ignored Event = iota
	Selected
	Reselected
	Deselected
	Submitted
)

func (e Event) String() string {
	switch e {
	case Selected:
		return "selected"
	case Reselected:
		return "reselected"
	case Deselected:
		return "deselected"
	case Submitted:
		return "submitted"
	default:
		return "ignored"
	}
}

// Snapshot is a read-only view of the controller for rendering.
type Snapshot struct {
	Selected *chess.Square  `json:"selected,omitempty"`
	Targets  []chess.Square `json:"targets,omitempty"`
	InCheck  bool           `json:"inCheck"`
}

type Controller struct {
	mu       sync.Mutex
	view     View
	board    chess.Board
	selected chess.Square
	active   bool

	submit      Submitter
	prevalidate bool
	ctx         context.Context
	logger      zerolog.Logger
	inflight    *conc.WaitGroup
}

type Option func(*Controller)

// WithLogger sets the logger used for swallowed submission failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithContext sets the context passed to every submission.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

// WithPrevalidation toggles local legality checking before submission. When
// off, every attempt from a selected piece is forwarded and the authority
// alone decides.
func WithPrevalidation(enabled bool) Option {
	return func(c *Controller) {
		c.prevalidate = enabled
	}
}

// WithWaitGroup runs submissions on wg so several controllers can be waited
// on together.
func WithWaitGroup(wg *conc.WaitGroup) Option {
	return func(c *Controller) {
		c.inflight = wg
	}
}

// New returns an idle controller. A nil submit leaves it able to select but
// never to submit: every attempt deselects.
func New(submit Submitter, opts ...Option) *Controller {
	c := &Controller{
		submit:      submit,
		prevalidate: true,
		ctx:         context.Background(),
		logger:      log.Logger,
		inflight:    &conc.WaitGroup{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sync replaces the view and re-derives the board from its position. The
// current selection is kept.
func (c *Controller) Sync(v View) {
	board := chess.Decode(v.Position)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
	c.board = board
}

// Tap handles one tap on sq.
func (c *Controller) Tap(sq chess.Square) Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !sq.Valid() || !c.enabled() {
		return Ignored
	}

	acting := c.actingColor()
	if p, ok := c.board.At(sq); ok && p.Color == acting {
		event := Selected
		if c.active {
			event = Reselected
		}
		c.selected, c.active = sq, true
		return event
	}

	if !c.active {
		return Ignored
	}

	from := c.selected
	c.active = false

	piece, ok := c.board.At(from)
	if !ok || piece.Color != acting {
		return Deselected
	}
	if c.prevalidate && !chess.IsLegalMove(&c.board, chess.MoveIntention{From: from, To: sq, Piece: piece}) {
		return Deselected
	}
	if c.submit == nil {
		return Deselected
	}

	c.dispatch(from.String(), sq.String())
	return Submitted
}

// Clear drops any selection.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
}

// Selected returns the selected square, if any.
func (c *Controller) Selected() (chess.Square, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.active
}

func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		InCheck: chess.IsInCheck(&c.board, c.actingColor()),
	}
	if c.active {
		sq := c.selected
		snap.Selected = &sq
		if c.prevalidate {
			snap.Targets = chess.LegalTargets(&c.board, sq)
		}
	}
	return snap
}

// Wait blocks until every submission started so far has returned.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) enabled() bool {
	if !c.view.Interactive {
		return false
	}
	return c.view.Local || c.view.SideToMove == c.view.Player
}

func (c *Controller) actingColor() chess.Color {
	if c.view.Local {
		return c.view.SideToMove
	}
	return c.view.Player
}

func (c *Controller) dispatch(from, to string) {
	ctx, submit, logger := c.ctx, c.submit, c.logger

	c.inflight.Go(func() {
		var err error
		var pc panics.Catcher
		pc.Try(func() {
			err = submit(ctx, from, to, "")
		})
		if r := pc.Recovered(); r != nil {
			err = r.AsError()
		}
		if err != nil {
			logger.Warn().Err(err).Str("from", from).Str("to", to).Msg("Move submission failed")
		}
	})
}
