package main

import (
	"context"
	"errors"
	"image/png"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/schema"

	"github.com/tescande/maze-server/internal/maze"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type NewMazeParams struct {
	Rows      int     `schema:"rows,required"`
	Cols      int     `schema:"cols,required"`
	Difficult bool    `schema:"difficult"`
	Strategy  string  `schema:"strategy"`
	Seed      *uint64 `schema:"seed"`
}

type SolveParams struct {
	DelayMs int `schema:"delay_ms"`
}

// RegenerateParams are all optional; absent values fall back to the
// session's current configuration.
type RegenerateParams struct {
	Rows      int     `schema:"rows"`
	Cols      int     `schema:"cols"`
	Difficult bool    `schema:"difficult"`
	Seed      *uint64 `schema:"seed"`
}

// requestSession resolves the {id} path value to a live session, writing the
// error status itself and returning nil when there is none.
func requestSession(w http.ResponseWriter, r *http.Request) *MazeSession {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}
	session, err := sessions.Get(id)
	if errors.Is(err, ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return nil
	}
	return session
}

func handleNewMaze(w http.ResponseWriter, r *http.Request) {
	var params NewMazeParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	engine, err := maze.NewEngine(maze.Config{
		Rows:      params.Rows,
		Cols:      params.Cols,
		Difficult: params.Difficult,
		Strategy:  maze.Strategy(params.Strategy),
	})
	if errors.Is(err, maze.ErrUnknownStrategy) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("strategy must be astar or label"))
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if params.Seed != nil {
		engine.Reseed(*params.Seed)
	}
	if _, err := engine.Regenerate(
		params.Rows, params.Cols, params.Difficult,
	); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	session := &MazeSession{
		SessionId: uuid.New(),
		Engine:    engine,
		CreatedAt: time.Now().UTC(),
	}
	if claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims); ok {
		log.Debug("creating session for player ", claims.Username)
		session.PlayerId = &claims.PlayerId
		session.Username = &claims.Username
		refreshPlayerCookies(w, *claims)
	} else {
		log.Debug("creating anonymous session")
	}
	sessions.Put(session)
	if err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleGetMaze(w http.ResponseWriter, r *http.Request) {
	session := requestSession(w, r)
	if session == nil {
		return
	}
	if err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleSolve(w http.ResponseWriter, r *http.Request) {
	session := requestSession(w, r)
	if session == nil {
		return
	}
	var params SolveParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	delay := time.Duration(params.DelayMs) * time.Millisecond

	if delay > 0 {
		// animated: run on a worker, let the caller poll or watch
		if session.Engine.Busy() {
			w.WriteHeader(http.StatusConflict)
			return
		}
		go runSolve(session, delay)
		w.WriteHeader(http.StatusAccepted)
		if err := sendJSON(w, session); err != nil {
			log.Error(err)
		}
		return
	}

	result, err := session.Engine.Solve(0)
	switch {
	case errors.Is(err, maze.ErrBusy):
		w.WriteHeader(http.StatusConflict)
		return
	case errors.Is(err, maze.ErrStrategyDifficult):
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	recordSolve(r.Context(), session, result)
	if err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

// runSolve is the background worker for animated solves.
func runSolve(session *MazeSession, delay time.Duration) {
	result, err := session.Engine.Solve(delay)
	if errors.Is(err, maze.ErrBusy) {
		return
	} else if err != nil {
		log.Error("background solve: ", err)
		return
	}
	recordSolve(context.Background(), session, result)
}

func recordSolve(ctx context.Context, session *MazeSession, result *maze.Result) {
	cfg := session.Engine.Config()
	strategy := cfg.Strategy
	if strategy == "" {
		strategy = maze.StrategyAStar
	}
	err := pg.InsertSolveRecord(ctx, &SolveRecord{
		SessionId:  session.SessionId.String(),
		Username:   session.Username,
		Rows:       cfg.Rows,
		Cols:       cfg.Cols,
		Difficult:  cfg.Difficult,
		Strategy:   string(strategy),
		PathLength: result.Length,
		ElapsedMs:  float64(result.Elapsed) / float64(time.Millisecond),
	}, session.PlayerId)
	if err != nil {
		log.Error("unable to record solve: ", err)
	}
}

func handleRegenerate(w http.ResponseWriter, r *http.Request) {
	session := requestSession(w, r)
	if session == nil {
		return
	}
	cfg := session.Engine.Config()
	params := RegenerateParams{
		Rows:      cfg.Rows,
		Cols:      cfg.Cols,
		Difficult: cfg.Difficult,
	}
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if params.Seed != nil {
		engine := session.Engine
		if engine.Busy() {
			w.WriteHeader(http.StatusConflict)
			return
		}
		engine.Reseed(*params.Seed)
	}
	_, err := session.Engine.Regenerate(
		params.Rows, params.Cols, params.Difficult,
	)
	if errors.Is(err, maze.ErrBusy) {
		w.WriteHeader(http.StatusConflict)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleReset(w http.ResponseWriter, r *http.Request) {
	session := requestSession(w, r)
	if session == nil {
		return
	}
	err := session.Engine.ResetAnnotations()
	if errors.Is(err, maze.ErrBusy) {
		w.WriteHeader(http.StatusConflict)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleDeleteMaze(w http.ResponseWriter, r *http.Request) {
	session := requestSession(w, r)
	if session == nil {
		return
	}
	sessions.Delete(session.SessionId)
	w.WriteHeader(http.StatusNoContent)
}

func handleMazeImage(w http.ResponseWriter, r *http.Request) {
	session := requestSession(w, r)
	if session == nil {
		return
	}
	snap, err := session.Engine.Snapshot()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, snap.Image()); err != nil {
		log.Error("unable to encode maze image: ", err)
	}
}
