package dive

import "fmt"

// Mode selects how up and down are interpreted.
type Mode uint8

const (
	ModePlain Mode = iota
	ModeAim
)

func (m Mode) String() string {
	if m == ModeAim {
		return "aim"
	}
	return "plain"
}

// Submarine is the position of the submarine. The zero value is the start.
type Submarine struct {
	Horizontal int64
	Depth      int64
	Aim        int64
}

// Apply moves the submarine by one command.
func (s *Submarine) Apply(cmd Command, mode Mode) {
	n := int64(cmd.Amount)
	switch mode {
	case ModeAim:
		switch cmd.Dir {
		case Forward:
			s.Horizontal += n
			s.Depth += s.Aim * n
		case Up:
			s.Aim -= n
		case Down:
			s.Aim += n
		}
	default:
		switch cmd.Dir {
		case Forward:
			s.Horizontal += n
		case Up:
			s.Depth -= n
		case Down:
			s.Depth += n
		}
	}
}

// Product returns horizontal position × depth.
func (s Submarine) Product() int64 {
	return s.Horizontal * s.Depth
}

func (s Submarine) String() string {
	return fmt.Sprintf("horizontal=%d depth=%d aim=%d product=%d", s.Horizontal, s.Depth, s.Aim, s.Product())
}

// Run replays cmds from the starting position.
func Run(cmds []Command, mode Mode) Submarine {
	var s Submarine
	for _, c := range cmds {
		s.Apply(c, mode)
	}
	return s
}
