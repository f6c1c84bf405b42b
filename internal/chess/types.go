package chess

type Color int

const (
	White Color = iota
	Black
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// ParseColor accepts "w"/"white" and "b"/"black".
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w", "white":
		return White, true
	case "b", "black":
		return Black, true
	default:
		return White, false
	}
}

type PieceType int

const (
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

var pieceLetters = map[PieceType]byte{
	King:   'k',
	Queen:  'q',
	Rook:   'r',
	Bishop: 'b',
	Knight: 'n',
	Pawn:   'p',
}

func (t PieceType) String() string {
	switch t {
	case King:
		return "king"
	case Queen:
		return "queen"
	case Rook:
		return "rook"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Pawn:
		return "pawn"
	default:
		return "none"
	}
}

// Piece is compared structurally; two pieces of the same type and color are
// indistinguishable.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

// Letter returns the placement letter, uppercase for White.
func (p Piece) Letter() byte {
	l := pieceLetters[p.Type]
	if p.Color == White {
		return l - 'a' + 'A'
	}
	return l
}

// NoPiece is the zero Piece and marks an empty cell.
var NoPiece = Piece{}

// Empty reports whether p is NoPiece.
func (p Piece) Empty() bool {
	return p.Type == NoPieceType
}

// Board is indexed [rank][file]. Rank 0 is rank "1". Board is a value: plain
// assignment yields an independent copy.
type Board [8][8]Piece

// At returns the piece on sq and whether the square is occupied.
func (b *Board) At(sq Square) (Piece, bool) {
	p := b[sq.Rank][sq.File]
	return p, !p.Empty()
}

func (b *Board) occupied(file, rank int) bool {
	return !b[rank][file].Empty()
}

// With returns an independent copy of the board with the piece on from moved
// to to. Anything on to is removed.
func (b *Board) With(from, to Square) Board {
	next := *b
	next[to.Rank][to.File] = next[from.Rank][from.File]
	next[from.Rank][from.File] = NoPiece
	return next
}

// MoveIntention is a single proposed move; From never equals To.
type MoveIntention struct {
	From  Square `json:"from"`
	To    Square `json:"to"`
	Piece Piece  `json:"piece"`
}

type GameStatus string

const (
	StatusActive   GameStatus = "active"
	StatusDraw     GameStatus = "draw"
	StatusWhiteWon GameStatus = "white_won"
	StatusBlackWon GameStatus = "black_won"
)

type MoveResult struct {
	From      string `json:"from"`
	To        string `json:"to"`
	SAN       string `json:"san"`
	FEN       string `json:"fen"`
	Check     bool   `json:"check"`
	Checkmate bool   `json:"checkmate"`
	Draw      bool   `json:"draw"`
	GameOver  bool   `json:"gameOver"`
	Result    string `json:"result"`
}

// MaterialCount represents the material count for both sides
type MaterialCount struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// StandardPieceValues maps piece types to their standard values
var StandardPieceValues = map[PieceType]int{
	Pawn:   1,
	Knight: 3,
	Bishop: 3,
	Rook:   5,
	Queen:  9,
	King:   0, // King has no material value
}
