// FILE: internal/board/board.go

// Package board owns the 8x8 occupancy grid, the active player, the
// two-click selection state and the game-over flag. It is the only
// place that mutates the position; views hold read-only references.
package board

import (
	"fmt"
	"strings"

	"clickchess/internal/core"
	"clickchess/internal/rules"
)

// Move records one completed move for observers (archive, views).
type Move struct {
	From     core.Coord
	To       core.Coord
	Piece    core.Piece
	Captured core.Piece // zero value if the destination was empty
}

// Model is single-threaded: callers serialize access (the terminal
// loop runs on one goroutine, the service wraps it in a lock).
type Model struct {
	squares   [64]core.Piece
	turn      core.Color
	selection core.Coord
	selected  bool
	gameOver  bool

	lastMove  Move
	moveCount int
}

// New returns a board in the standard initial position with White to
// move, no selection and the game in progress.
func New() *Model {
	m := &Model{turn: core.ColorWhite}

	backRank := [8]core.PieceKind{
		core.Rook, core.Knight, core.Bishop, core.Queen,
		core.King, core.Bishop, core.Knight, core.Rook,
	}
	for x := 0; x < 8; x++ {
		m.squares[0*8+x] = core.Piece{Kind: backRank[x], Owner: core.ColorBlack}
		m.squares[1*8+x] = core.Piece{Kind: core.Pawn, Owner: core.ColorBlack}
		m.squares[6*8+x] = core.Piece{Kind: core.Pawn, Owner: core.ColorWhite}
		m.squares[7*8+x] = core.Piece{Kind: backRank[x], Owner: core.ColorWhite}
	}
	return m
}

// PieceAt reports the piece on c; ok is false for an empty square.
// Out-of-bounds coordinates are a caller error and read as empty.
func (m *Model) PieceAt(c core.Coord) (core.Piece, bool) {
	if !c.InBounds() {
		return core.Piece{}, false
	}
	p := m.squares[c.Index()]
	return p, !p.IsEmpty()
}

func (m *Model) Turn() core.Color {
	return m.turn
}

// Selection reports the armed source square, if any.
func (m *Model) Selection() (core.Coord, bool) {
	return m.selection, m.selected
}

func (m *Model) GameOver() bool {
	return m.gameOver
}

// Winner names the side that captured the opposing king. The ending
// move toggles the turn like any other, so the loser is the side left
// to move and the winner is its opposite.
func (m *Model) Winner() (core.Color, bool) {
	if !m.gameOver {
		return 0, false
	}
	return core.OppositeColor(m.turn), true
}

// LastMove reports the most recently completed move.
func (m *Model) LastMove() (Move, bool) {
	return m.lastMove, m.moveCount > 0
}

// MoveCount reports how many moves have completed.
func (m *Model) MoveCount() int {
	return m.moveCount
}

// Status renders the turn or outcome for status displays.
func (m *Model) Status() string {
	if winner, over := m.Winner(); over {
		return fmt.Sprintf("Game Finished - %s Wins!", winner)
	}
	return fmt.Sprintf("%s's Move", m.turn)
}

// SelectSquare drives the two-click protocol. The first click on a
// piece of the side to move arms the selection; the second click
// attempts the move and always disarms, whether or not it succeeded.
// A successful move toggles the turn. Inert after game over.
func (m *Model) SelectSquare(c core.Coord) {
	if m.gameOver {
		return
	}

	if m.selected {
		src := m.selection
		m.selected = false
		if m.tryMove(m.turn, src, c) {
			m.turn = core.OppositeColor(m.turn)
		}
		return
	}

	p, ok := m.PieceAt(c)
	if !ok {
		return
	}
	if p.Owner != m.turn {
		return
	}

	m.selection = c
	m.selected = true
}

// tryMove applies from->to for player if legal. The game-over flag is
// raised before the grid mutation and before the caller toggles the
// turn, so a finished game still names the loser as the side to move.
func (m *Model) tryMove(player core.Color, from, to core.Coord) bool {
	// The protocol guarantees an owned piece at from; checked anyway.
	attacker, ok := m.PieceAt(from)
	if !ok {
		return false
	}

	if !rules.IsLegalShape(m, attacker, from, to) {
		return false
	}

	if defender, occupied := m.PieceAt(to); occupied {
		if defender.Owner == player {
			return false
		}
		if defender.Kind == core.King {
			m.gameOver = true
		}
		m.lastMove = Move{From: from, To: to, Piece: attacker, Captured: defender}
	} else {
		m.lastMove = Move{From: from, To: to, Piece: attacker}
	}

	m.squares[to.Index()] = attacker
	m.squares[from.Index()] = core.Piece{}
	m.moveCount++
	return true
}

// ToASCII creates an ASCII representation of the board. Ranks print
// top to bottom (y=0 is rank 8), matching the on-screen orientation.
func (m *Model) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for y := 0; y < 8; y++ {
		sb.WriteString(fmt.Sprintf("%d ", 8-y))
		for x := 0; x < 8; x++ {
			sb.WriteString(m.squares[y*8+x].Symbol())
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-y))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
