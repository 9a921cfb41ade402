package splitter

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	errs "splitkit/pkg/errors"
)

// DefaultMaxChars is the character budget used when none is configured.
const DefaultMaxChars = 2500

// Lines cuts lines into consecutive parts of exactly maxLines lines; only
// the last part may be shorter.
func Lines(lines []string, maxLines int) ([]Part, error) {
	if maxLines <= 0 {
		return nil, fmt.Errorf("split with %d lines per part: %w", maxLines, errs.ErrInvalidThreshold)
	}

	var parts []Part
	for start := 0; start < len(lines); start += maxLines {
		end := min(start+maxLines, len(lines))
		parts = append(parts, Part{
			Index: len(parts) + 1,
			Start: start,
			Lines: slices.Clone(lines[start:end]),
		})
	}
	return parts, nil
}

// Chars packs newline-terminated lines into chunks of at most maxChars
// characters (runes). A chunk is closed before the line that would push it
// over the budget, so a single line longer than maxChars becomes its own
// oversized chunk. A trailing chunk holding only whitespace is dropped.
func Chars(lines []string, maxChars int) ([]Chunk, error) {
	if maxChars <= 0 {
		return nil, fmt.Errorf("split with %d characters per part: %w", maxChars, errs.ErrInvalidThreshold)
	}

	var (
		chunks []Chunk
		buf    strings.Builder
		size   int
	)
	flush := func() {
		chunks = append(chunks, Chunk{Index: len(chunks) + 1, Text: buf.String()})
		buf.Reset()
		size = 0
	}

	for _, line := range lines {
		n := utf8.RuneCountInString(line) + 1
		if size > 0 && size+n > maxChars {
			flush()
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
		size += n
	}
	if strings.TrimSpace(buf.String()) != "" {
		flush()
	}
	return chunks, nil
}
