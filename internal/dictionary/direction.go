package dictionary

import (
	"fmt"
	"strings"
)

// Direction selects which side of the glossary is treated as the source language.
type Direction int

const (
	// Forward translates glossary sources to targets (A→B).
	Forward Direction = iota
	// Reverse translates glossary targets back to sources (B→A).
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Reverse {
		return Forward
	}
	return Reverse
}

// ParseDirection accepts "forward"/"a2b" and "reverse"/"b2a".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "a2b", "":
		return Forward, nil
	case "reverse", "b2a":
		return Reverse, nil
	default:
		return Forward, fmt.Errorf("unknown direction %q", s)
	}
}
