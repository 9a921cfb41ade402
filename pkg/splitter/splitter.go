// Package splitter partitions line sequences into ordered parts.
//
// Split is the boundary-aware variant used for markdown and documentation:
// once a part reaches its line budget it is only closed at a point that
// does not cut through a fenced code block or separate a heading from the
// text directly below it. Lines and Chars are the plain fixed-size variants.
package splitter

import (
	"fmt"
	"slices"
	"strings"

	errs "splitkit/pkg/errors"
)

const (
	// FenceMarker opens and closes a fenced code block.
	FenceMarker = "```"
	// HeadingMarker starts a heading line.
	HeadingMarker = "#"

	// DefaultMaxLines is the line budget used when none is configured.
	DefaultMaxLines = 700
)

// fenceState is the two-state fence tracker. It flips on every fence line
// and is not a matched-pair parser: an odd number of fences leaves the
// scanner inside a fence until end of input.
type fenceState int

const (
	outsideFence fenceState = iota
	insideFence
)

func (s fenceState) toggle() fenceState {
	if s == insideFence {
		return outsideFence
	}
	return insideFence
}

func (s fenceState) String() string {
	if s == insideFence {
		return "inside"
	}
	return "outside"
}

// IsFence reports whether the trimmed line begins with the fence marker.
func IsFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), FenceMarker)
}

// IsHeading reports whether the trimmed line begins with the heading marker.
func IsHeading(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), HeadingMarker)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// scanState is owned by a single Split call.
type scanState struct {
	lines []string
	fence fenceState
	start int // offset of the first line of the part under construction
	parts []Part
}

// Split partitions lines into parts of roughly maxLinesPerPart lines.
//
// When the running count reaches maxLinesPerPart the part is normally closed
// right there. If the scanner is inside a fenced block, the part is extended
// through the closing fence. If the line that reached the budget is a
// heading, the part is extended past the heading's body: through the first
// blank line, or up to (not including) the next heading that follows body
// text. Extensions stop at end of input. Any residual lines form the final
// part.
//
// Empty input yields zero parts. A non-positive budget is rejected with
// ErrInvalidThreshold.
func Split(lines []string, maxLinesPerPart int) ([]Part, error) {
	if maxLinesPerPart <= 0 {
		return nil, fmt.Errorf("split with %d lines per part: %w", maxLinesPerPart, errs.ErrInvalidThreshold)
	}
	if len(lines) == 0 {
		return nil, nil
	}

	s := &scanState{lines: lines}
	count := 0
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		count++
		if IsFence(line) {
			s.fence = s.fence.toggle()
		}
		if count < maxLinesPerPart {
			continue
		}

		end := i + 1
		switch {
		case s.fence == insideFence:
			end = s.extendFence(i + 1)
		case IsHeading(line):
			end = s.extendHeading(i + 1)
		}
		s.emit(end)
		i = end - 1
		count = 0
	}

	if s.start < len(lines) {
		s.emit(len(lines))
	}
	return s.parts, nil
}

// extendFence returns the exclusive end of a part that runs through the
// next fence line at or after from, clearing the fence state when found.
func (s *scanState) extendFence(from int) int {
	for j := from; j < len(s.lines); j++ {
		if IsFence(s.lines[j]) {
			s.fence = outsideFence
			return j + 1
		}
	}
	return len(s.lines)
}

// extendHeading returns the exclusive end of a part whose budget was reached
// on a heading line. Blank lines close after themselves, a heading that
// follows body text closes before itself, and a fence hands off to
// extendFence.
func (s *scanState) extendHeading(from int) int {
	inBody := false
	for j := from; j < len(s.lines); j++ {
		line := s.lines[j]
		switch {
		case IsFence(line):
			s.fence = insideFence
			return s.extendFence(j + 1)
		case isBlank(line):
			return j + 1
		case IsHeading(line):
			if inBody {
				return j
			}
		default:
			inBody = true
		}
	}
	return len(s.lines)
}

func (s *scanState) emit(end int) {
	s.parts = append(s.parts, Part{
		Index: len(s.parts) + 1,
		Start: s.start,
		Lines: slices.Clone(s.lines[s.start:end]),
	})
	s.start = end
}
