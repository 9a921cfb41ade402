// Package source reads files into the newline-normalized line sequences the
// splitters consume.
package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	errs "splitkit/pkg/errors"
)

// ReadLines reads the file at path and returns its lines. See SplitLines.
func ReadLines(path string) ([]string, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}

// ReadText reads the file at path, decodes it and normalizes CRLF to LF.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", classify(path, err)
	}
	text, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w: %w", path, errs.ErrSourceRead, err)
	}
	return Normalize(text), nil
}

// FromReader reads r to the end and returns its lines.
func FromReader(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w: %w", errs.ErrSourceRead, err)
	}
	text, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding input: %w: %w", errs.ErrSourceRead, err)
	}
	return SplitLines(Normalize(text)), nil
}

// Decode strips a leading byte order mark. UTF-16 input carrying a BOM is
// transcoded to UTF-8; everything else passes through untouched.
func Decode(data []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Normalize converts Windows line endings to LF.
func Normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// SplitLines splits normalized text on LF. Empty text yields no lines; text
// ending in a newline yields a trailing empty line, so joining the result
// with "\n" gives back text exactly.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("reading %s: %w", path, errs.ErrSourceNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("reading %s: %w", path, errs.ErrSourcePermission)
	default:
		return fmt.Errorf("reading %s: %w: %w", path, errs.ErrSourceRead, err)
	}
}
