// File: pkg/tree/tree.go

// Package tree renders directory structures with box-drawing connectors.
package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	errs "splitkit/pkg/errors"
	"splitkit/pkg/ignore"
)

const (
	connectorMid  = "├── "
	connectorLast = "└── "
	indentMid     = "│   "
	indentLast    = "    "
)

// Options controls what Render includes.
type Options struct {
	MaxDepth int  // levels below each root to show; 0 means unlimited
	DirsOnly bool // omit files
	Fence    bool // wrap the output in a ``` block
	ShowRoot bool // print each root directory as its own line
}

// Result is a rendered tree and what it contains.
type Result struct {
	Text  string
	Dirs  int
	Files int
}

// Render builds one tree for all input paths. Paths that cannot be read are
// reported together after the others have been rendered.
func Render(paths []string, opts Options, gi ignore.IgnoreParser, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &walker{opts: opts, ignore: gi, logger: logger}
	var errList error

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			errList = multierr.Append(errList, fmt.Errorf("resolving %s: %w: %w", path, errs.ErrSourceRead, err))
			continue
		}

		info, err := os.Stat(absPath)
		if err != nil {
			logger.Warn("Cannot stat path for tree generation", zap.String("path", absPath), zap.Error(err))
			if os.IsNotExist(err) {
				errList = multierr.Append(errList, fmt.Errorf("%s: %w", absPath, errs.ErrSourceNotFound))
			} else {
				errList = multierr.Append(errList, fmt.Errorf("%s: %w: %w", absPath, errs.ErrSourceRead, err))
			}
			continue
		}

		if !info.IsDir() {
			if !opts.DirsOnly {
				w.lines = append(w.lines, info.Name())
				w.files++
			}
			continue
		}

		prefix := ""
		if opts.ShowRoot {
			w.lines = append(w.lines, info.Name()+"/")
		}
		if err := w.walk(absPath, absPath, prefix, 1); err != nil {
			errList = multierr.Append(errList, err)
		}
	}

	var b strings.Builder
	if opts.Fence {
		b.WriteString("```\n")
	}
	for _, line := range w.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if opts.Fence {
		b.WriteString("```")
	}
	logger.Debug("Rendered tree", zap.Int("dirs", w.dirs), zap.Int("files", w.files))
	return Result{Text: b.String(), Dirs: w.dirs, Files: w.files}, errList
}

type walker struct {
	opts   Options
	ignore ignore.IgnoreParser
	logger *zap.Logger
	lines  []string
	dirs   int
	files  int
}

// walk appends the entries of directory, which sits depth-1 levels below root.
func (w *walker) walk(directory, root, prefix string, depth int) error {
	if w.opts.MaxDepth > 0 && depth > w.opts.MaxDepth {
		return nil
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		w.logger.Warn("Failed to read directory for tree structure", zap.String("directory", directory), zap.Error(err))
		return fmt.Errorf("reading directory %s: %w: %w", directory, errs.ErrSourceRead, err)
	}

	visible := entries[:0]
	for _, entry := range entries {
		if w.opts.DirsOnly && !entry.IsDir() {
			continue
		}
		rel, _ := filepath.Rel(root, filepath.Join(directory, entry.Name()))
		if w.ignore != nil && w.ignore.MatchesPath(filepath.ToSlash(rel), entry.IsDir()) {
			w.logger.Debug("Skipping ignored entry in tree", zap.String("path", rel))
			continue
		}
		visible = append(visible, entry)
	}

	// Directories first, then files, alphabetically
	sort.Slice(visible, func(i, j int) bool {
		if visible[i].IsDir() != visible[j].IsDir() {
			return visible[i].IsDir()
		}
		return strings.ToLower(visible[i].Name()) < strings.ToLower(visible[j].Name())
	})

	var errList error
	for i, entry := range visible {
		connector, extension := connectorMid, indentMid
		if i == len(visible)-1 {
			connector, extension = connectorLast, indentLast
		}

		if !entry.IsDir() {
			w.lines = append(w.lines, prefix+connector+entry.Name())
			w.files++
			continue
		}
		w.lines = append(w.lines, prefix+connector+entry.Name()+"/")
		w.dirs++
		if err := w.walk(filepath.Join(directory, entry.Name()), root, prefix+extension, depth+1); err != nil {
			errList = multierr.Append(errList, err)
		}
	}
	return errList
}
