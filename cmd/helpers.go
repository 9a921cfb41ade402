package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"

	errs "splitkit/pkg/errors"
	"splitkit/pkg/ignore"
	"splitkit/pkg/ui"
)

// Exit statuses returned by ExitCode.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errs.ErrInvalidConfig), errors.Is(err, errs.ErrInvalidThreshold):
		return ExitUsage
	}
	return ExitFailure
}

// Hint returns a suggestion for the failure kind of err, or "".
func Hint(err error) string {
	switch {
	case errors.Is(err, errs.ErrSourceNotFound):
		return "Check that the input path exists"
	case errors.Is(err, errs.ErrUnsupportedFile):
		return "Add the extension to files.extensions in the config"
	case errors.Is(err, errs.ErrIgnoredPath):
		return "The file matches an ignore rule; adjust files.ignore_names or " + ignore.DefaultFileName
	case errors.Is(err, errs.ErrNoFilesFound):
		return "Nothing matched the configured extensions"
	case errors.Is(err, errs.ErrInvalidConfig):
		return "Run 'splitkit config init' to write a valid default config"
	}
	return ""
}

// startSpinner shows message with a spinner on stderr and returns the
// function that stops it. Verbose runs and non-terminals get no spinner.
func startSpinner(message string) func() {
	if verbose || debug || !term.IsTerminal(int(os.Stderr.Fd())) {
		logger.Debug("Running without spinner", zap.String("message", message))
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")
	s.Start()
	return s.Stop
}

// loadIgnoreRules compiles names, then the ignore files from the working
// directory upwards, which may re-include names with "!" rules.
func loadIgnoreRules(names []string) (*ignore.Rules, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	rules := ignore.NewRules(logger)
	rules.CompileNames(names...)
	if err := rules.LoadFiles(cwd, cfg.Files.GlobalIgnoreFile, cfg.Files.IgnoreFile); err != nil {
		return nil, err
	}
	return rules, nil
}

// outputDir returns flagValue when set, else subdir below the configured
// output root.
func outputDir(flagValue, subdir string) string {
	if flagValue != "" {
		return flagValue
	}
	return filepath.Join(cfg.OutputDir, subdir)
}

// withoutOutputs drops files that are, or live below, one of outputs so
// a rerun never reads its own results.
func withoutOutputs(files []string, outputs ...string) []string {
	abs := make([]string, 0, len(outputs))
	for _, o := range outputs {
		if a, err := filepath.Abs(o); err == nil {
			abs = append(abs, a)
		}
	}
	kept := files[:0:0]
	for _, f := range files {
		inside := false
		for _, o := range abs {
			if f == o || strings.HasPrefix(f, o+string(filepath.Separator)) {
				inside = true
				break
			}
		}
		if !inside {
			kept = append(kept, f)
		}
	}
	return kept
}

// reportErrors prints one line per aggregated error and returns err.
func reportErrors(w io.Writer, err error) error {
	list := multierr.Errors(err)
	if len(list) <= 1 {
		return err
	}
	for _, e := range list {
		fmt.Fprintln(w, ui.Failed("%v", e))
	}
	return fmt.Errorf("%d operations failed: %w", len(list), err)
}
