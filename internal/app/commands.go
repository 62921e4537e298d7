package app

import (
	"fmt"
	"strconv"
	"strings"
)

type commandKind int

const (
	commandNone commandKind = iota
	commandRefresh
	commandOpen
	commandPrint
	commandQuit
)

type command struct {
	kind     commandKind
	position int
}

// parseCommand understands r[efresh], o[pen] <n>, p[rint] and q[uit].
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{kind: commandNone}, nil
	}

	switch fields[0] {
	case "r", "refresh":
		return command{kind: commandRefresh}, nil
	case "p", "print":
		return command{kind: commandPrint}, nil
	case "q", "quit", "exit":
		return command{kind: commandQuit}, nil
	case "o", "open":
		if len(fields) != 2 {
			return command{}, fmt.Errorf("usage: open <n>")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return command{}, fmt.Errorf("invalid position %q", fields[1])
		}
		return command{kind: commandOpen, position: n}, nil
	default:
		return command{}, fmt.Errorf("unknown command %q", fields[0])
	}
}
