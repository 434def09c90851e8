package main

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Watch sockets accept the same text commands the CLI flags map to:
//
//	g rows cols [difficult]  regenerate the maze
//	s [delay_ms]             solve, streaming frames while delayed
//	r                        reset solve annotations
type wsCommand struct {
	kind      byte
	rows      int
	cols      int
	difficult bool
	delay     time.Duration
}

// Maps known commands to the allowed range of arguments
var commandArity = map[string][2]int{
	"g": {2, 3},
	"s": {0, 1},
	"r": {0, 0},
}

func parseCommand(text string) (*wsCommand, error) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return nil, errors.New("empty command")
	}
	arity, ok := commandArity[parts[0]]
	if !ok {
		return nil, errors.New("unknown command")
	}
	nargs := len(parts) - 1
	if nargs < arity[0] || nargs > arity[1] {
		return nil, errors.New("invalid number of arguments")
	}
	cmd := &wsCommand{kind: parts[0][0]}
	switch parts[0] {
	case "g":
		var err error
		if cmd.rows, err = strconv.Atoi(parts[1]); err != nil {
			return nil, errors.New("rows must be an int")
		}
		if cmd.cols, err = strconv.Atoi(parts[2]); err != nil {
			return nil, errors.New("cols must be an int")
		}
		if nargs == 3 {
			if cmd.difficult, err = strconv.ParseBool(parts[3]); err != nil {
				return nil, errors.New("difficult must be a bool")
			}
		}
	case "s":
		if nargs == 1 {
			ms, err := strconv.Atoi(parts[1])
			if err != nil || ms < 0 {
				return nil, errors.New("delay must be a non-negative int of milliseconds")
			}
			cmd.delay = time.Duration(ms) * time.Millisecond
		}
	}
	return cmd, nil
}
