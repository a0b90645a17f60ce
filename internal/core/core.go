// FILE: internal/core/core.go
package core

import "fmt"

type Color byte

const (
	ColorWhite Color = 'w'
	ColorBlack Color = 'b'
)

func (c Color) String() string {
	if c == ColorWhite {
		return "White"
	}
	return "Black"
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

type PieceKind byte

// NoPiece is the zero value so an empty square is the zero Piece.
const (
	NoPiece PieceKind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

func (k PieceKind) String() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	default:
		return "."
	}
}

// Piece is a value type; pieces carry no state beyond kind and owner.
type Piece struct {
	Kind  PieceKind
	Owner Color
}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoPiece
}

// Symbol returns the one-letter piece code, uppercase for White and
// lowercase for Black, or "." for an empty square.
func (p Piece) Symbol() string {
	if p.IsEmpty() {
		return "."
	}
	s := p.Kind.String()
	if p.Owner == ColorBlack {
		return string(s[0] | 0x20)
	}
	return s
}

// Coord addresses a board square. y=0 is the top row (Black's back rank
// at game start) and grows downward; x=0 is the left file.
type Coord struct {
	X int
	Y int
}

func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < 8 && c.Y >= 0 && c.Y < 8
}

// Index returns the row-major cell index y*8+x.
func (c Coord) Index() int {
	return c.Y*8 + c.X
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}
