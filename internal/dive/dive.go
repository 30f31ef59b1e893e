// Package dive follows the submarine through a list of piloting commands.
//
// Two interpretations exist. In plain mode "up" and "down" change the depth
// directly. In aim mode they tilt the submarine instead and "forward" dives
// by aim × distance.
package dive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"sonar/internal/source"
)

// Direction is the verb of a piloting command.
type Direction uint8

const (
	Forward Direction = iota + 1
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Command is one parsed piloting instruction.
type Command struct {
	Dir    Direction
	Amount int32
}

func (c Command) String() string {
	return c.Dir.String() + " " + strconv.FormatInt(int64(c.Amount), 10)
}

// CommandError reports a line that is not a valid command.
type CommandError struct {
	Line   uint32 // 0 when parsed outside a file
	Span   source.Span
	Text   string
	Reason string
}

func (e *CommandError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

// ParseCommand parses "forward|up|down <n>".
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Command{}, &CommandError{Text: line, Reason: "expected a direction and a distance"}
	}

	var cmd Command
	switch fields[0] {
	case "forward":
		cmd.Dir = Forward
	case "up":
		cmd.Dir = Up
	case "down":
		cmd.Dir = Down
	default:
		return Command{}, &CommandError{Text: line, Reason: "unknown direction " + fields[0]}
	}

	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return Command{}, &CommandError{Text: line, Reason: "distance is not an integer"}
	}
	if cmd.Amount, err = safecast.Conv[int32](n); err != nil {
		return Command{}, &CommandError{Text: line, Reason: "distance out of range"}
	}
	return cmd, nil
}

// ParseCommands reads one command per non-blank line of f.
func ParseCommands(f *source.File) ([]Command, error) {
	var cmds []Command
	for _, ln := range f.Lines() {
		if strings.TrimSpace(ln.Text) == "" {
			continue
		}
		cmd, err := ParseCommand(ln.Text)
		if err != nil {
			width, convErr := safecast.Conv[uint32](len(ln.Text))
			if convErr != nil {
				return nil, convErr
			}
			var ce *CommandError
			if !errors.As(err, &ce) {
				return nil, err
			}
			ce.Line = ln.Number
			ce.Span = source.Span{File: f.ID, Start: ln.Start, End: ln.Start + width}
			return nil, ce
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
