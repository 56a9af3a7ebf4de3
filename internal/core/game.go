package core

import "strings"

// Color names a side. The values double as wire strings.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// BoardSize is the fixed board dimension.
const BoardSize = 8

// Board holds single-character piece codes; "" marks an empty cell.
// Uppercase pieces are white, lowercase black. Row 0 is black's back rank.
type Board [BoardSize][BoardSize]string

// Square addresses a board cell.
type Square struct {
	Row int
	Col int
}

// OnBoard reports whether s lies inside the board.
func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Move is a client-declared relocation. Promotion is relayed, never applied.
type Move struct {
	From      Square
	To        Square
	Promotion string
}

// Game is the per-room state. GameOver is owned by an external validator;
// the hub never sets it.
type Game struct {
	Board    Board
	Turn     Color
	GameOver bool
}

var startPosition = Board{
	{"r", "n", "b", "q", "k", "b", "n", "r"},
	{"p", "p", "p", "p", "p", "p", "p", "p"},
	{},
	{},
	{},
	{},
	{"P", "P", "P", "P", "P", "P", "P", "P"},
	{"R", "N", "B", "Q", "K", "B", "N", "R"},
}

// NewGame returns the standard starting position with white to move.
func NewGame() *Game {
	return &Game{
		Board: startPosition,
		Turn:  White,
	}
}

// PieceColor derives the owning side from a piece code's case.
func PieceColor(piece string) (Color, bool) {
	if piece == "" {
		return "", false
	}
	if piece == strings.ToUpper(piece) {
		return White, true
	}
	return Black, true
}

// Owner returns the side owning the piece on s. Empty and off-board squares
// have no owner.
func (g *Game) Owner(s Square) (Color, bool) {
	if !s.OnBoard() {
		return "", false
	}
	return PieceColor(g.Board[s.Row][s.Col])
}

// Apply relocates the piece on mv.From to mv.To, overwriting whatever was
// there, and hands the turn to the other side. No legality checks.
func (g *Game) Apply(mv Move) error {
	if !mv.From.OnBoard() || !mv.To.OnBoard() {
		return ErrOffBoard
	}
	piece := g.Board[mv.From.Row][mv.From.Col]
	if piece == "" {
		return ErrEmptySquare
	}
	g.Board[mv.To.Row][mv.To.Col] = piece
	g.Board[mv.From.Row][mv.From.Col] = ""
	g.Turn = g.Turn.Opponent()
	return nil
}

// Snapshot returns an independent copy safe to hand to other goroutines.
func (g *Game) Snapshot() *Game {
	cp := *g
	return &cp
}

// MoveValidator checks a move against game rules before it is applied.
// The hub relays every ownership-checked move when no validator is set.
type MoveValidator interface {
	ValidateMove(g Game, mv Move) error
}

// MoveValidatorFunc adapts a function to MoveValidator.
type MoveValidatorFunc func(g Game, mv Move) error

func (f MoveValidatorFunc) ValidateMove(g Game, mv Move) error {
	return f(g, mv)
}
