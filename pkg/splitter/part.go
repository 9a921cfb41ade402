package splitter

import "strings"

// Part is a contiguous run of input lines emitted as one output unit.
type Part struct {
	Index int      // 1-based position in emission order
	Start int      // 0-based offset of the first line in the input
	Lines []string // lines in input order
}

// Len returns the number of lines in the part.
func (p Part) Len() int {
	return len(p.Lines)
}

// End returns the exclusive input offset just past the part's last line.
func (p Part) End() int {
	return p.Start + len(p.Lines)
}

// Text joins the part's lines with newlines, the inverse of the line source.
func (p Part) Text() string {
	return strings.Join(p.Lines, "\n")
}

// Chunk is a character-bounded piece of text produced by Chars.
type Chunk struct {
	Index int
	Text  string
}

// Join concatenates the lines of parts in order. For any input,
// Join(Split(lines, n)) equals lines.
func Join(parts []Part) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p.Lines...)
	}
	return out
}
