package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tescande/maze-server/internal/maze"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		log.Debug("\tws origin: ", r.Host)
		return true
	},
}

// Cadence at which watch sockets sample solver progress. The render side
// polls; the solver never signals it.
const watchFrameInterval = 100 * time.Millisecond

func handleWatchWs(w http.ResponseWriter, r *http.Request) {
	session := requestSession(w, r)
	if session == nil {
		return
	}
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)
		for _, line := range strings.Split(text, "\n") {
			if err := executeCommand(session, c, line); err != nil {
				log.Error("command: ", err)
				return
			}
		}
		log.Debug("\t< <session frame>")
	}
}

func executeCommand(session *MazeSession, c *websocket.Conn, text string) error {
	cmd, err := parseCommand(text)
	if err != nil {
		return err
	}
	switch cmd.kind {
	case 'g':
		if _, err := session.Engine.Regenerate(
			cmd.rows, cmd.cols, cmd.difficult,
		); err != nil {
			return err
		}
		return writeFrame(c, session)
	case 's':
		return streamSolve(session, c, cmd.delay)
	case 'r':
		if err := session.Engine.ResetAnnotations(); err != nil {
			return err
		}
		return writeFrame(c, session)
	}
	return errors.New("invalid command")
}

// streamSolve runs the solve on a worker goroutine and, when a delay makes it
// animated, writes snapshot frames at a fixed cadence until it completes,
// then a final frame.
func streamSolve(session *MazeSession, c *websocket.Conn, delay time.Duration) error {
	if session.Engine.Busy() {
		return maze.ErrBusy
	}
	done := make(chan error, 1)
	go func() {
		result, err := session.Engine.Solve(delay)
		if err == nil {
			recordSolve(context.Background(), session, result)
		}
		done <- err
	}()

	if delay > 0 {
		ticker := time.NewTicker(watchFrameInterval)
		defer ticker.Stop()
		for {
			select {
			case err := <-done:
				if err != nil {
					return err
				}
				return writeFrame(c, session)
			case <-ticker.C:
				if err := writeFrame(c, session); err != nil {
					return err
				}
			}
		}
	}

	if err := <-done; err != nil {
		return err
	}
	return writeFrame(c, session)
}

func writeFrame(c *websocket.Conn, session *MazeSession) error {
	return c.WriteJSON(session)
}
