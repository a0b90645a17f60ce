// FILE: internal/service/service.go
package service

import (
	"fmt"
	"sync"
	"time"

	"clickchess/internal/board"
	"clickchess/internal/controller"
	"clickchess/internal/core"
	"clickchess/internal/storage"

	"github.com/google/uuid"
)

// session pairs one board with its pixel controller. The board itself
// is single-threaded; the session lock serializes clicks so multiple
// transport requests never interleave inside a move.
type session struct {
	mu    sync.Mutex
	model *board.Model
	ctrl  *controller.Controller
}

// Snapshot is a read-only view of one game for transports and views.
type Snapshot struct {
	Turn      core.Color
	Status    string
	GameOver  bool
	Winner    core.Color
	HasWinner bool
	Selection core.Coord
	Selected  bool
	MoveCount int
}

// Service is a pure state manager for hot-seat games with optional
// write-behind persistence.
type Service struct {
	games map[string]*session
	mu    sync.RWMutex
	store *storage.Store // nil if persistence disabled
}

// New creates a new service instance with optional storage
func New(store *storage.Store) *Service {
	return &Service{
		games: make(map[string]*session),
		store: store,
	}
}

// CreateGame starts a new game in the initial position and returns its ID.
func (s *Service) CreateGame(squareSize float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure UUID uniqueness (handle potential conflicts)
	var id string
	for {
		id = uuid.New().String()
		if _, exists := s.games[id]; !exists {
			break
		}
	}

	model := board.New()
	s.games[id] = &session{
		model: model,
		ctrl:  controller.New(model, squareSize),
	}

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       id,
			SquareSize:   squareSize,
			StartTimeUTC: time.Now().UTC(),
		})
	}

	return id, nil
}

func (s *Service) get(gameID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}
	return sess, nil
}

// Click feeds one square selection to a game. Illegal clicks are a
// non-event: the board absorbs them and no error is returned.
func (s *Service) Click(gameID string, c core.Coord) (Snapshot, error) {
	sess, err := s.get(gameID)
	if err != nil {
		return Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	before := sess.model.MoveCount()
	sess.model.SelectSquare(c)
	s.archive(gameID, sess.model, before)

	return snapshotLocked(sess.model), nil
}

// PixelClick feeds one raw window click through the controller facade.
func (s *Service) PixelClick(gameID string, px, py float64) (Snapshot, error) {
	sess, err := s.get(gameID)
	if err != nil {
		return Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	before := sess.model.MoveCount()
	sess.ctrl.OnClick(px, py)
	s.archive(gameID, sess.model, before)

	return snapshotLocked(sess.model), nil
}

// archive records a newly completed move, and the winner when the
// move ended the game. Caller holds the session lock.
func (s *Service) archive(gameID string, m *board.Model, movesBefore int) {
	if s.store == nil || m.MoveCount() == movesBefore {
		return
	}

	mv, _ := m.LastMove()
	s.store.RecordMove(storage.MoveRecord{
		GameID:      gameID,
		MoveNumber:  m.MoveCount(),
		FromX:       mv.From.X,
		FromY:       mv.From.Y,
		ToX:         mv.To.X,
		ToY:         mv.To.Y,
		Piece:       mv.Piece.Symbol(),
		Captured:    capturedSymbol(mv.Captured),
		PlayerColor: string(mv.Piece.Owner),
		MoveTimeUTC: time.Now().UTC(),
	})

	if winner, over := m.Winner(); over {
		s.store.RecordWinner(gameID, string(winner))
	}
}

func capturedSymbol(p core.Piece) string {
	if p.IsEmpty() {
		return ""
	}
	return p.Symbol()
}

// GetSnapshot returns the current view of a game.
func (s *Service) GetSnapshot(gameID string) (Snapshot, error) {
	sess, err := s.get(gameID)
	if err != nil {
		return Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return snapshotLocked(sess.model), nil
}

func snapshotLocked(m *board.Model) Snapshot {
	snap := Snapshot{
		Turn:      m.Turn(),
		Status:    m.Status(),
		GameOver:  m.GameOver(),
		MoveCount: m.MoveCount(),
	}
	snap.Winner, snap.HasWinner = m.Winner()
	snap.Selection, snap.Selected = m.Selection()
	return snap
}

// BoardASCII returns the printable position of a game.
func (s *Service) BoardASCII(gameID string) (string, error) {
	sess, err := s.get(gameID)
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.model.ToASCII(), nil
}

// Pieces lists the occupied squares in row-major order.
func (s *Service) Pieces(gameID string) ([]core.SquareInfo, error) {
	sess, err := s.get(gameID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	var pieces []core.SquareInfo
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := core.Coord{X: x, Y: y}
			if p, occupied := sess.model.PieceAt(c); occupied {
				pieces = append(pieces, core.SquareInfo{X: x, Y: y, Piece: p.Symbol()})
			}
		}
	}
	return pieces, nil
}

// PieceAt exposes the read-only square lookup for views.
func (s *Service) PieceAt(gameID string, c core.Coord) (core.Piece, bool, error) {
	sess, err := s.get(gameID)
	if err != nil {
		return core.Piece{}, false, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	p, occupied := sess.model.PieceAt(c)
	return p, occupied, nil
}

// DeleteGame removes a game from memory
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("game not found: %s", gameID)
	}

	delete(s.games, gameID)
	return nil
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close cleans up resources
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*session)

	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
