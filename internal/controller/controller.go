// FILE: internal/controller/controller.go

// Package controller translates device coordinates into board squares.
// It is the only component that sees pixels; the board never does.
package controller

import (
	"clickchess/internal/board"
	"clickchess/internal/core"
)

// DefaultSquareSize is the pixel size of one square; the window is
// 8*S x 8*S pixels.
const DefaultSquareSize = 100.0

type Controller struct {
	model      *board.Model
	squareSize float64
}

func New(model *board.Model, squareSize float64) *Controller {
	if squareSize <= 0 {
		squareSize = DefaultSquareSize
	}
	return &Controller{model: model, squareSize: squareSize}
}

func (c *Controller) SquareSize() float64 {
	return c.squareSize
}

// OnClick converts a window click to a square and forwards it to the
// board. Clicks outside the 8x8 grid (window chrome, negative
// coordinates) are dropped silently.
func (c *Controller) OnClick(px, py float64) {
	coord := core.Coord{X: int(px / c.squareSize), Y: int(py / c.squareSize)}
	if px < 0 || py < 0 || !coord.InBounds() {
		return
	}
	c.model.SelectSquare(coord)
}
