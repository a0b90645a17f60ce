// FILE: internal/core/api.go
package core

// Request types

type CreateGameRequest struct {
	SquareSize int `json:"squareSize,omitempty" validate:"omitempty,min=8,max=512"` // Pixel size of one square, default 100
}

type ClickRequest struct {
	X int `json:"x" validate:"min=0,max=7"`
	Y int `json:"y" validate:"min=0,max=7"`
}

// PixelClickRequest carries raw window coordinates; the controller
// converts them to a square or drops them if outside the board.
type PixelClickRequest struct {
	PX float64 `json:"px" validate:"min=0"`
	PY float64 `json:"py" validate:"min=0"`
}

// Response types

// SquareInfo names one occupied square for the board endpoint.
type SquareInfo struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Piece string `json:"piece"` // "K","q" etc (uppercase White, lowercase Black)
}

type GameResponse struct {
	GameID    string    `json:"gameId"`
	Turn      string    `json:"turn"`   // "w" or "b"
	Status    string    `json:"status"` // "White's move", "Black wins", etc
	GameOver  bool      `json:"gameOver"`
	Winner    string    `json:"winner,omitempty"` // set only when gameOver
	Selection *ClickReq `json:"selection,omitempty"`
	Moves     int       `json:"moves"`
}

// ClickReq mirrors ClickRequest for response embedding.
type ClickReq struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type BoardResponse struct {
	Board  string       `json:"board"` // ASCII representation
	Pieces []SquareInfo `json:"pieces"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Error codes
const (
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrGameOver          = "GAME_OVER"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInternalError     = "INTERNAL_ERROR"
)
