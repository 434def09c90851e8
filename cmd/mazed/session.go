package main

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tescande/maze-server/internal/maze"
)

// MazeSession binds one engine (and therefore one grid) to an id. Session
// state lives only in process memory; postgres receives finished solve
// results, never mazes.
type MazeSession struct {
	SessionId uuid.UUID
	PlayerId  *int64
	Username  *string
	Engine    *maze.Engine
	CreatedAt time.Time
}

type SolveResultJSON struct {
	PathLength     int     `json:"path_length"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

type MazeSessionJSON struct {
	SessionId string           `json:"session_id"`
	Rows      int              `json:"rows"`
	Cols      int              `json:"cols"`
	Difficult bool             `json:"difficult"`
	Strategy  string           `json:"strategy"`
	Start     maze.Point       `json:"start"`
	End       maze.Point       `json:"end"`
	Cells     []string         `json:"cells"`
	Busy      bool             `json:"busy"`
	Result    *SolveResultJSON `json:"result,omitempty"`
	CreatedAt int64            `json:"created_at"`
}

func (s *MazeSession) MarshalJSON() ([]byte, error) {
	snap, err := s.Engine.Snapshot()
	if err != nil {
		return nil, err
	}
	cfg := s.Engine.Config()
	strategy := cfg.Strategy
	if strategy == "" {
		strategy = maze.StrategyAStar
	}
	var result *SolveResultJSON
	if res := s.Engine.Result(); res != nil {
		result = &SolveResultJSON{
			PathLength:     res.Length,
			ElapsedSeconds: res.Elapsed.Seconds(),
		}
	}
	return json.Marshal(MazeSessionJSON{
		SessionId: s.SessionId.String(),
		Rows:      snap.Rows,
		Cols:      snap.Cols,
		Difficult: cfg.Difficult,
		Strategy:  string(strategy),
		Start:     snap.Start,
		End:       snap.End,
		Cells:     snap.Cells,
		Busy:      s.Engine.Busy(),
		Result:    result,
		CreatedAt: s.CreatedAt.UnixMilli(),
	})
}

var ErrNotFound = errors.New("session not found")

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*MazeSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[uuid.UUID]*MazeSession)}
}

func (st *sessionStore) Get(id uuid.UUID) (*MazeSession, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (st *sessionStore) Put(s *MazeSession) {
	st.mu.Lock()
	st.sessions[s.SessionId] = s
	st.mu.Unlock()
}

func (st *sessionStore) Delete(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
