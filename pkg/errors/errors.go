// Package errors defines the named failure kinds shared by splitkit packages.
//
// Callers match them with errors.Is; producers wrap them with context:
//
//	return fmt.Errorf("reading %s: %w", path, errors.ErrSourceNotFound)
package errors

import "errors"

// Configuration errors are caller-side contract violations.
var (
	// ErrInvalidThreshold indicates a non-positive lines or characters per part.
	ErrInvalidThreshold = errors.New("threshold must be a positive integer")

	// ErrInvalidConfig indicates the loaded configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidPattern indicates an ignore pattern is not a valid glob.
	ErrInvalidPattern = errors.New("invalid ignore pattern")
)

// Source errors come from reading inputs.
var (
	// ErrSourceNotFound indicates the input file or directory does not exist.
	ErrSourceNotFound = errors.New("source not found")

	// ErrSourcePermission indicates the input exists but cannot be read.
	ErrSourcePermission = errors.New("source permission denied")

	// ErrSourceRead indicates any other failure while reading an input.
	ErrSourceRead = errors.New("source read failed")

	// ErrUnsupportedFile indicates the file extension is not in the configured map.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrIgnoredPath indicates the input matched an ignore rule.
	ErrIgnoredPath = errors.New("path is ignored")

	// ErrNoFilesFound indicates nothing was left to process after filtering.
	ErrNoFilesFound = errors.New("no supported files found")
)

// Sink errors come from writing outputs.
var (
	// ErrSinkWrite indicates an output artifact could not be written.
	ErrSinkWrite = errors.New("sink write failed")

	// ErrPathEscape indicates an output name resolved outside the output directory.
	ErrPathEscape = errors.New("output path escapes output directory")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
