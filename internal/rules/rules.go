// FILE: internal/rules/rules.go

// Package rules holds the per-kind move-shape predicates. A predicate
// answers whether a move is geometrically legal given occupancy for
// blocking purposes; it never looks at the destination occupant's
// colour (the board layer rejects same-colour captures) and never
// mutates the grid.
package rules

import "clickchess/internal/core"

// Grid is the read-only occupancy view the predicates consume.
type Grid interface {
	// PieceAt reports the piece on c; ok is false for an empty square.
	PieceAt(c core.Coord) (core.Piece, bool)
}

// IsLegalShape dispatches on the piece kind. The set of kinds is closed,
// so a switch replaces virtual dispatch.
func IsLegalShape(g Grid, p core.Piece, from, to core.Coord) bool {
	if !to.InBounds() {
		return false
	}

	switch p.Kind {
	case core.King:
		return kingShape(from, to)
	case core.Queen:
		return queenShape(g, from, to)
	case core.Rook:
		return rookShape(g, from, to)
	case core.Bishop:
		return bishopShape(g, from, to)
	case core.Knight:
		return knightShape(from, to)
	case core.Pawn:
		return pawnShape(g, p.Owner, from, to)
	default:
		return false
	}
}

// kingShape allows any step of at most one square. The null move
// from == to passes here; the board rejects it as an own-piece capture.
func kingShape(from, to core.Coord) bool {
	return abs(to.X-from.X) <= 1 && abs(to.Y-from.Y) <= 1
}

func queenShape(g Grid, from, to core.Coord) bool {
	if from == to {
		return false
	}
	dx, dy := to.X-from.X, to.Y-from.Y
	diagonal := abs(dx) == abs(dy)
	straight := (dx == 0) != (dy == 0)
	if !diagonal && !straight {
		return false
	}
	return pathClear(g, from, to)
}

func rookShape(g Grid, from, to core.Coord) bool {
	if from == to {
		return false
	}
	if (to.X-from.X) != 0 && (to.Y-from.Y) != 0 {
		return false
	}
	return pathClear(g, from, to)
}

func bishopShape(g Grid, from, to core.Coord) bool {
	if from == to {
		return false
	}
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx == 0 || abs(dx) != abs(dy) {
		return false
	}
	return pathClear(g, from, to)
}

func knightShape(from, to core.Coord) bool {
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	return (dx == 1 && dy == 2) || (dx == 2 && dy == 1)
}

// pawnShape is the only colour-asymmetric predicate: White advances
// toward smaller y, Black toward larger y. A straight push needs an
// empty destination; a diagonal step needs an occupied one.
func pawnShape(g Grid, owner core.Color, from, to core.Coord) bool {
	forward := to.Y - from.Y
	if owner == core.ColorWhite {
		if forward != -1 {
			return false
		}
	} else if forward != 1 {
		return false
	}

	dx := abs(to.X - from.X)
	if dx > 1 {
		return false
	}

	_, occupied := g.PieceAt(to)
	if dx == 1 {
		return occupied
	}
	return !occupied
}

// pathClear walks the squares strictly between from and to along
// step = (sign(dx), sign(dy)) and fails on the first occupied one.
// Valid for orthogonal and diagonal lines.
func pathClear(g Grid, from, to core.Coord) bool {
	step := core.Coord{X: sign(to.X - from.X), Y: sign(to.Y - from.Y)}
	for cur := (core.Coord{X: from.X + step.X, Y: from.Y + step.Y}); cur != to; cur.X, cur.Y = cur.X+step.X, cur.Y+step.Y {
		if _, occupied := g.PieceAt(cur); occupied {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
