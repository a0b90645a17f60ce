// FILE: internal/transport/http/game_handler.go
package http

import (
	"strings"

	"clickchess/internal/controller"
	"clickchess/internal/core"
	"clickchess/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateGame starts a new hot-seat game in the initial position
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	var req core.CreateGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err.Error())
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, "validation failed", validationDetails(err))
		}
	}

	squareSize := float64(req.SquareSize)
	if squareSize == 0 {
		squareSize = controller.DefaultSquareSize
	}

	gameID, err := h.svc.CreateGame(squareSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error:   "failed to create game",
			Code:    core.ErrInternalError,
			Details: err.Error(),
		})
	}

	snap, _ := h.svc.GetSnapshot(gameID)
	return c.Status(fiber.StatusCreated).JSON(buildGameResponse(gameID, snap))
}

// GetGame retrieves current game state
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	snap, err := h.svc.GetSnapshot(gameID)
	if err != nil {
		return gameNotFound(c)
	}

	return c.JSON(buildGameResponse(gameID, snap))
}

// Click submits one square selection. Illegal clicks are a non-event:
// the response carries the unchanged state, not an error.
func (h *HTTPHandler) Click(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	var req core.ClickRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "validation failed", validationDetails(err))
	}

	snap, err := h.svc.Click(gameID, core.Coord{X: req.X, Y: req.Y})
	if err != nil {
		return gameNotFound(c)
	}

	return c.JSON(buildGameResponse(gameID, snap))
}

// PixelClick submits one raw window click; out-of-board pixels are
// dropped silently by the controller.
func (h *HTTPHandler) PixelClick(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	var req core.PixelClickRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "validation failed", validationDetails(err))
	}

	snap, err := h.svc.PixelClick(gameID, req.PX, req.PY)
	if err != nil {
		return gameNotFound(c)
	}

	return c.JSON(buildGameResponse(gameID, snap))
}

// DeleteGame ends and cleans up a game
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	if err := h.svc.DeleteGame(gameID); err != nil {
		return gameNotFound(c)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetBoard returns the position as ASCII art plus a piece list
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	ascii, err := h.svc.BoardASCII(gameID)
	if err != nil {
		return gameNotFound(c)
	}
	pieces, err := h.svc.Pieces(gameID)
	if err != nil {
		return gameNotFound(c)
	}

	return c.JSON(core.BoardResponse{Board: ascii, Pieces: pieces})
}

// Helpers

func buildGameResponse(gameID string, snap service.Snapshot) core.GameResponse {
	resp := core.GameResponse{
		GameID:   gameID,
		Turn:     string(snap.Turn),
		Status:   snap.Status,
		GameOver: snap.GameOver,
		Moves:    snap.MoveCount,
	}
	if snap.HasWinner {
		resp.Winner = string(snap.Winner)
	}
	if snap.Selected {
		resp.Selection = &core.ClickReq{X: snap.Selection.X, Y: snap.Selection.Y}
	}
	return resp
}

func badRequest(c *fiber.Ctx, msg, details string) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   msg,
		Code:    core.ErrInvalidRequest,
		Details: details,
	})
}

func gameNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
		Error: "game not found",
		Code:  core.ErrGameNotFound,
	})
}

// validationDetails flattens validator errors into one message
func validationDetails(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	var details strings.Builder
	for _, e := range errs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch e.Tag() {
		case "required":
			details.WriteString(e.Field() + " is required")
		case "min":
			details.WriteString(e.Field() + " must be at least " + e.Param())
		case "max":
			details.WriteString(e.Field() + " must be at most " + e.Param())
		default:
			details.WriteString(e.Field() + " failed " + e.Tag() + " validation")
		}
	}
	return details.String()
}
