package splitter

import (
	"fmt"
	"strings"
)

// Strategy selects how a line sequence is cut into parts.
type Strategy int

const (
	// Markdown keeps fenced blocks and heading sections intact.
	Markdown Strategy = iota
	// FixedLines cuts every N lines.
	FixedLines
	// FixedChars packs lines into N-character chunks.
	FixedChars
)

func (s Strategy) String() string {
	switch s {
	case Markdown:
		return "markdown"
	case FixedLines:
		return "lines"
	case FixedChars:
		return "chars"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a user-facing name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md":
		return Markdown, nil
	case "lines", "line":
		return FixedLines, nil
	case "chars", "characters", "char":
		return FixedChars, nil
	}
	return 0, fmt.Errorf("unknown split strategy %q", name)
}

// Bodies splits lines with the given strategy and returns the text of each
// part, ready for a sink.
func Bodies(strategy Strategy, lines []string, threshold int) ([]string, error) {
	var (
		parts []Part
		err   error
	)
	switch strategy {
	case Markdown:
		parts, err = Split(lines, threshold)
	case FixedLines:
		parts, err = Lines(lines, threshold)
	case FixedChars:
		chunks, err := Chars(lines, threshold)
		if err != nil {
			return nil, err
		}
		bodies := make([]string, len(chunks))
		for i, c := range chunks {
			bodies[i] = c.Text
		}
		return bodies, nil
	default:
		return nil, fmt.Errorf("unknown split strategy %v", strategy)
	}
	if err != nil {
		return nil, err
	}

	bodies := make([]string, len(parts))
	for i, p := range parts {
		bodies[i] = p.Text()
	}
	return bodies, nil
}
