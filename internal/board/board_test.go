// FILE: internal/board/board_test.go
package board

import (
	"testing"

	"clickchess/internal/core"

	"github.com/google/go-cmp/cmp"
)

func coord(x, y int) core.Coord { return core.Coord{X: x, Y: y} }

func countPieces(m *Model) (white, black, kings int) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p, ok := m.PieceAt(coord(x, y))
			if !ok {
				continue
			}
			if p.Owner == core.ColorWhite {
				white++
			} else {
				black++
			}
			if p.Kind == core.King {
				kings++
			}
		}
	}
	return
}

func TestInitialPosition(t *testing.T) {
	m := New()

	if m.Turn() != core.ColorWhite {
		t.Errorf("initial turn = %v, want White", m.Turn())
	}
	if _, selected := m.Selection(); selected {
		t.Error("new board should have no selection")
	}
	if m.GameOver() {
		t.Error("new board should not be game over")
	}

	white, black, kings := countPieces(m)
	if white != 16 || black != 16 {
		t.Errorf("piece counts = %d white, %d black, want 16/16", white, black)
	}
	if kings != 2 {
		t.Errorf("king count = %d, want 2", kings)
	}

	backRank := []core.PieceKind{
		core.Rook, core.Knight, core.Bishop, core.Queen,
		core.King, core.Bishop, core.Knight, core.Rook,
	}
	for x, kind := range backRank {
		if p, _ := m.PieceAt(coord(x, 0)); p.Kind != kind || p.Owner != core.ColorBlack {
			t.Errorf("square (%d,0) = %+v, want Black %v", x, p, kind)
		}
		if p, _ := m.PieceAt(coord(x, 7)); p.Kind != kind || p.Owner != core.ColorWhite {
			t.Errorf("square (%d,7) = %+v, want White %v", x, p, kind)
		}
	}
	for x := 0; x < 8; x++ {
		if p, _ := m.PieceAt(coord(x, 1)); p.Kind != core.Pawn || p.Owner != core.ColorBlack {
			t.Errorf("square (%d,1) = %+v, want Black pawn", x, p)
		}
		if p, _ := m.PieceAt(coord(x, 6)); p.Kind != core.Pawn || p.Owner != core.ColorWhite {
			t.Errorf("square (%d,6) = %+v, want White pawn", x, p)
		}
	}
	for y := 2; y <= 5; y++ {
		for x := 0; x < 8; x++ {
			if _, ok := m.PieceAt(coord(x, y)); ok {
				t.Errorf("square (%d,%d) should be empty", x, y)
			}
		}
	}
}

func TestSelectionProtocol(t *testing.T) {
	m := New()

	// Clicking an empty square from Idle stays Idle
	m.SelectSquare(coord(4, 4))
	if _, selected := m.Selection(); selected {
		t.Error("empty-square click should not arm a selection")
	}

	// Clicking the opponent's piece from Idle stays Idle
	m.SelectSquare(coord(4, 1))
	if _, selected := m.Selection(); selected {
		t.Error("opponent-piece click should not arm a selection")
	}

	// Clicking an own piece arms the selection
	m.SelectSquare(coord(4, 6))
	sel, selected := m.Selection()
	if !selected || sel != coord(4, 6) {
		t.Errorf("selection = %v %v, want (4, 6) armed", sel, selected)
	}
	if m.Turn() != core.ColorWhite {
		t.Errorf("arming a selection must not change the turn")
	}
}

// A failed second click leaves the position identical, clears the
// selection, and does not advance the turn.
func TestFailedMoveClearsSelectionOnly(t *testing.T) {
	m := New()
	before := m.squares

	m.SelectSquare(coord(4, 6)) // White pawn
	m.SelectSquare(coord(4, 3)) // three squares forward: illegal

	if diff := cmp.Diff(before, m.squares); diff != "" {
		t.Errorf("board changed after failed move (-before +after):\n%s", diff)
	}
	if _, selected := m.Selection(); selected {
		t.Error("failed move should clear the selection")
	}
	if m.Turn() != core.ColorWhite {
		t.Errorf("failed move must not toggle the turn, got %v", m.Turn())
	}
}

// Picking a piece and "moving" it onto its own square never changes
// the position: for the King the shape accepts the null move but the
// board rejects it as an own-piece capture.
func TestNullMoveRejected(t *testing.T) {
	for _, src := range []core.Coord{coord(4, 7), coord(1, 7)} { // King, Knight
		m := New()
		before := m.squares

		m.SelectSquare(src)
		m.SelectSquare(src)

		if diff := cmp.Diff(before, m.squares); diff != "" {
			t.Errorf("null move on %v changed the board:\n%s", src, diff)
		}
		if _, selected := m.Selection(); selected {
			t.Error("null move should return to Idle")
		}
		if m.Turn() != core.ColorWhite {
			t.Errorf("null move must not toggle the turn")
		}
	}
}

func TestPawnPlies(t *testing.T) {
	m := New()

	// White pawn one step forward succeeds
	m.SelectSquare(coord(4, 6))
	m.SelectSquare(coord(4, 5))
	if p, _ := m.PieceAt(coord(4, 5)); p.Kind != core.Pawn || p.Owner != core.ColorWhite {
		t.Fatalf("white pawn should be on (4,5), got %+v", p)
	}
	if m.Turn() != core.ColorBlack {
		t.Fatalf("turn should be Black after White's move")
	}

	// Black pawn two steps forward must fail
	m.SelectSquare(coord(4, 1))
	m.SelectSquare(coord(4, 3))
	if _, ok := m.PieceAt(coord(4, 3)); ok {
		t.Error("two-square pawn push should fail")
	}
	if p, _ := m.PieceAt(coord(4, 1)); p.Kind != core.Pawn {
		t.Error("black pawn should remain on (4,1)")
	}
	if _, selected := m.Selection(); selected {
		t.Error("failed ply should return to Idle")
	}
	if m.Turn() != core.ColorBlack {
		t.Errorf("turn should remain Black after failed ply, got %v", m.Turn())
	}
}

func TestSameColorCaptureIllegal(t *testing.T) {
	m := New()

	m.SelectSquare(coord(1, 7)) // White knight
	m.SelectSquare(coord(3, 6)) // White pawn

	if p, _ := m.PieceAt(coord(1, 7)); p.Kind != core.Knight {
		t.Error("knight should remain on (1,7)")
	}
	if p, _ := m.PieceAt(coord(3, 6)); p.Kind != core.Pawn {
		t.Error("pawn should remain on (3,6)")
	}
	if m.Turn() != core.ColorWhite {
		t.Errorf("turn should remain White, got %v", m.Turn())
	}
}

func TestKnightLeapsOverOwnPawns(t *testing.T) {
	m := New()

	m.SelectSquare(coord(1, 7))
	m.SelectSquare(coord(2, 5))

	if p, _ := m.PieceAt(coord(2, 5)); p.Kind != core.Knight || p.Owner != core.ColorWhite {
		t.Errorf("knight should land on (2,5), got %+v", p)
	}
	if _, ok := m.PieceAt(coord(1, 7)); ok {
		t.Error("knight source square should be empty")
	}
	if p, _ := m.PieceAt(coord(2, 6)); p.Kind != core.Pawn {
		t.Error("pawn at (2,6) should be untouched")
	}
	if m.Turn() != core.ColorBlack {
		t.Errorf("turn should be Black after the leap, got %v", m.Turn())
	}
}

func TestPawnDiagonalRequiresTarget(t *testing.T) {
	m := New()

	// White opens so it is Black's turn
	m.SelectSquare(coord(4, 6))
	m.SelectSquare(coord(4, 5))

	// Black pawn diagonal onto an empty square fails
	m.SelectSquare(coord(3, 1))
	m.SelectSquare(coord(4, 2))
	if _, ok := m.PieceAt(coord(4, 2)); ok {
		t.Error("diagonal step onto empty square should fail")
	}
	if m.Turn() != core.ColorBlack {
		t.Errorf("turn should remain Black after failed diagonal")
	}

	// Black pawn single forward step to an empty square succeeds
	m.SelectSquare(coord(3, 1))
	m.SelectSquare(coord(3, 2))
	if p, _ := m.PieceAt(coord(3, 2)); p.Kind != core.Pawn || p.Owner != core.ColorBlack {
		t.Errorf("black pawn should be on (3,2), got %+v", p)
	}
	if m.Turn() != core.ColorWhite {
		t.Errorf("turn should be White after Black's move")
	}
}

func TestPawnCaptureDecrementsPieceCount(t *testing.T) {
	m := New()

	// March the e-pawn into capture range of the d7 pawn:
	// e2-e3, d7-d6, e3-e4, d6-d5, e4xd5
	plies := [][2]core.Coord{
		{coord(4, 6), coord(4, 5)},
		{coord(3, 1), coord(3, 2)},
		{coord(4, 5), coord(4, 4)},
		{coord(3, 2), coord(3, 3)},
		{coord(4, 4), coord(3, 3)},
	}
	for i, ply := range plies {
		turnBefore := m.Turn()
		m.SelectSquare(ply[0])
		m.SelectSquare(ply[1])
		if m.Turn() == turnBefore {
			t.Fatalf("ply %d (%v -> %v) should have succeeded", i, ply[0], ply[1])
		}
	}

	white, black, _ := countPieces(m)
	if white != 16 || black != 15 {
		t.Errorf("piece counts after capture = %d/%d, want 16/15", white, black)
	}
	if p, _ := m.PieceAt(coord(3, 3)); p.Owner != core.ColorWhite || p.Kind != core.Pawn {
		t.Errorf("capturing pawn should occupy (3,3), got %+v", p)
	}

	mv, ok := m.LastMove()
	if !ok {
		t.Fatal("expected a last move")
	}
	if mv.Captured.Kind != core.Pawn || mv.Captured.Owner != core.ColorBlack {
		t.Errorf("last move capture = %+v, want Black pawn", mv.Captured)
	}
}

// A rook on its starting corner is blocked on both axes by its own
// pieces: zero legal destinations.
func TestCornerRookHasNoMoves(t *testing.T) {
	m := New()

	from := coord(0, 7)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			to := coord(x, y)
			if to == from {
				continue
			}
			if m.tryMove(core.ColorWhite, from, to) {
				t.Fatalf("rook move %v -> %v should be blocked", from, to)
			}
		}
	}
}

// King capture ends the game: the winner is the capturing side, and
// the side left to move is the loser.
func TestKingCaptureEndsGame(t *testing.T) {
	m := &Model{turn: core.ColorWhite}
	m.squares[coord(4, 4).Index()] = core.Piece{Kind: core.Rook, Owner: core.ColorWhite}
	m.squares[coord(4, 0).Index()] = core.Piece{Kind: core.King, Owner: core.ColorBlack}
	m.squares[coord(0, 7).Index()] = core.Piece{Kind: core.King, Owner: core.ColorWhite}

	m.SelectSquare(coord(4, 4))
	m.SelectSquare(coord(4, 0))

	if !m.GameOver() {
		t.Fatal("capturing the king should end the game")
	}
	if m.Turn() != core.ColorBlack {
		t.Errorf("side to move after the capture = %v, want Black (the loser)", m.Turn())
	}
	winner, ok := m.Winner()
	if !ok || winner != core.ColorWhite {
		t.Errorf("winner = %v %v, want White", winner, ok)
	}
	if p, _ := m.PieceAt(coord(4, 0)); p.Kind != core.Rook || p.Owner != core.ColorWhite {
		t.Errorf("rook should occupy the king's square, got %+v", p)
	}
}

// Clicks after game over are inert.
func TestClicksAfterGameOverAreInert(t *testing.T) {
	m := &Model{turn: core.ColorWhite}
	m.squares[coord(4, 4).Index()] = core.Piece{Kind: core.Rook, Owner: core.ColorWhite}
	m.squares[coord(4, 0).Index()] = core.Piece{Kind: core.King, Owner: core.ColorBlack}

	m.SelectSquare(coord(4, 4))
	m.SelectSquare(coord(4, 0))
	if !m.GameOver() {
		t.Fatal("setup: game should be over")
	}

	before := m.squares
	turnBefore := m.Turn()

	clicks := []core.Coord{coord(4, 0), coord(3, 3), coord(0, 0), coord(7, 7)}
	for _, c := range clicks {
		m.SelectSquare(c)
	}

	if !m.GameOver() {
		t.Error("game over must be monotonic")
	}
	if diff := cmp.Diff(before, m.squares); diff != "" {
		t.Errorf("board changed after game over:\n%s", diff)
	}
	if m.Turn() != turnBefore {
		t.Errorf("turn changed after game over: %v -> %v", turnBefore, m.Turn())
	}
	if _, selected := m.Selection(); selected {
		t.Error("no selection should arm after game over")
	}
}

func TestStatusText(t *testing.T) {
	m := New()
	if got := m.Status(); got != "White's Move" {
		t.Errorf("status = %q, want \"White's Move\"", got)
	}

	m.SelectSquare(coord(4, 6))
	m.SelectSquare(coord(4, 5))
	if got := m.Status(); got != "Black's Move" {
		t.Errorf("status = %q, want \"Black's Move\"", got)
	}

	over := &Model{turn: core.ColorWhite}
	over.squares[coord(4, 4).Index()] = core.Piece{Kind: core.Rook, Owner: core.ColorWhite}
	over.squares[coord(4, 0).Index()] = core.Piece{Kind: core.King, Owner: core.ColorBlack}
	over.SelectSquare(coord(4, 4))
	over.SelectSquare(coord(4, 0))
	if got := over.Status(); got != "Game Finished - White Wins!" {
		t.Errorf("status = %q, want \"Game Finished - White Wins!\"", got)
	}
}

func TestToASCII(t *testing.T) {
	m := New()
	got := m.ToASCII()

	want := "  a b c d e f g h\n" +
		"8 r n b q k b n r  8\n" +
		"7 p p p p p p p p  7\n" +
		"6 . . . . . . . .  6\n" +
		"5 . . . . . . . .  5\n" +
		"4 . . . . . . . .  4\n" +
		"3 . . . . . . . .  3\n" +
		"2 P P P P P P P P  2\n" +
		"1 R N B Q K B N R  1\n" +
		"  a b c d e f g h"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ASCII board mismatch (-want +got):\n%s", diff)
	}
}
