// Package ignore matches slash-separated relative paths against
// gitignore-style rules.
package ignore

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	errs "splitkit/pkg/errors"
)

// DefaultFileName is the per-directory ignore file looked up by LoadIgnoreFiles.
const DefaultFileName = ".splitignore"

// IgnoreParser defines the interface for matching paths against ignore patterns.
type IgnoreParser interface {
	MatchesPath(path string, isDir bool) bool
	MatchesPathWithPattern(path string, isDir bool) (bool, *IgnorePattern)
}

// IgnorePattern is one compiled rule together with where it came from.
type IgnorePattern struct {
	Glob    string // doublestar glob matched against the relative path
	Negate  bool   // rule started with '!'
	DirOnly bool   // rule ended with '/'
	LineNo  int    // 1-based line number in the source
	Line    string // original rule text
}

// Rules is an ordered rule list; the last matching rule wins.
type Rules struct {
	patterns []*IgnorePattern
	logger   *zap.Logger
}

var _ IgnoreParser = (*Rules)(nil)

// NewRules returns an empty rule list.
func NewRules(logger *zap.Logger) *Rules {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rules{logger: logger}
}

// Len returns the number of compiled rules.
func (r *Rules) Len() int {
	return len(r.patterns)
}

// LoadIgnoreFiles builds rules from the optional global file, then every
// ignore file named name found from the filesystem root down to startDir.
func LoadIgnoreFiles(startDir, globalPath, name string, logger *zap.Logger) (*Rules, error) {
	r := NewRules(logger)
	if err := r.LoadFiles(startDir, globalPath, name); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadFiles appends the rules of the optional global file and of every
// ignore file named name from the filesystem root down to startDir, so
// they can override rules compiled earlier.
func (r *Rules) LoadFiles(startDir, globalPath, name string) error {
	if name == "" {
		name = DefaultFileName
	}

	if globalPath != "" {
		if err := r.CompileIgnoreFile(globalPath); err != nil {
			r.logger.Warn("Failed to load global ignore file", zap.String("file", globalPath), zap.Error(err))
		}
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	var files []string
	for {
		candidate := filepath.Join(currentDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			// Prepend so rules closer to the root load first.
			files = append([]string{candidate}, files...)
		}
		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	for _, file := range files {
		if err := r.CompileIgnoreFile(file); err != nil {
			r.logger.Warn("Failed to compile ignore file", zap.String("file", file), zap.Error(err))
			continue
		}
		r.logger.Debug("Loaded ignore file", zap.String("file", file))
	}

	r.logger.Debug("Finished loading ignore files", zap.Int("totalPatterns", len(r.patterns)))
	return nil
}

// CompileIgnoreFile reads an ignore file and appends its rules. A missing
// file is not an error.
func (r *Rules) CompileIgnoreFile(file string) error {
	content, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", file))
			return nil
		}
		return err
	}
	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	r.compile(lines)
	return nil
}

// CompileIgnoreLines appends rules given as gitignore lines.
func (r *Rules) CompileIgnoreLines(lines ...string) {
	r.compile(lines)
}

// CompileNames appends rules that ignore entries with exactly these names at
// any depth. Glob metacharacters in names are matched literally.
func (r *Rules) CompileNames(names ...string) {
	lines := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		lines = append(lines, escapeName(name))
	}
	r.compile(lines)
}

func (r *Rules) compile(lines []string) {
	for i, line := range lines {
		p, err := CompilePattern(line)
		if err != nil {
			r.logger.Error("Invalid ignore pattern", zap.String("pattern", line), zap.Int("lineNo", i+1), zap.Error(err))
			continue
		}
		if p == nil {
			continue
		}
		p.LineNo = i + 1
		r.patterns = append(r.patterns, p)
		r.logger.Debug("Compiled ignore pattern",
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", p.Line),
			zap.String("glob", p.Glob),
			zap.Bool("negate", p.Negate))
	}
}

// CompilePattern turns one gitignore line into a pattern. Blank lines and
// comments yield a nil pattern and nil error.
func CompilePattern(line string) (*IgnorePattern, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	p := &IgnorePattern{Line: line}
	if strings.HasPrefix(trimmed, "!") {
		p.Negate = true
		trimmed = trimmed[1:]
	}
	// "\#" and "\!" escape a leading marker.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}
	if strings.HasSuffix(trimmed, "/") {
		p.DirOnly = true
		trimmed = strings.TrimRight(trimmed, "/")
	}
	if trimmed == "" {
		return nil, nil
	}

	// A slash at the start or in the middle anchors the rule at the root.
	if strings.Contains(trimmed, "/") {
		p.Glob = strings.TrimPrefix(trimmed, "/")
	} else {
		p.Glob = "**/" + trimmed
	}

	if !doublestar.ValidatePattern(p.Glob) {
		return nil, fmt.Errorf("%q: %w", line, errs.ErrInvalidPattern)
	}
	return p, nil
}

// MatchesPath reports whether path is ignored.
func (r *Rules) MatchesPath(rel string, isDir bool) bool {
	matched, _ := r.MatchesPathWithPattern(rel, isDir)
	return matched
}

// MatchesPathWithPattern reports whether path is ignored and returns the
// rule that decided it. Entries below an ignored directory are ignored too.
func (r *Rules) MatchesPathWithPattern(name string, isDir bool) (bool, *IgnorePattern) {
	rel := normalizePath(name)
	if rel == "" {
		return false, nil
	}

	matched := false
	var decided *IgnorePattern
	for _, p := range r.patterns {
		if !p.matches(rel, isDir) {
			continue
		}
		matched = !p.Negate
		decided = p
	}
	return matched, decided
}

func (p *IgnorePattern) matches(rel string, isDir bool) bool {
	if (isDir || !p.DirOnly) && match(p.Glob, rel) {
		return true
	}
	// Any ancestor directory matching the rule hides rel as well.
	for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if match(p.Glob, dir) {
			return true
		}
	}
	return false
}

func match(glob, rel string) bool {
	ok, err := doublestar.Match(glob, rel)
	return err == nil && ok
}

// normalizePath converts OS separators to slashes and strips "./" and
// trailing slashes.
func normalizePath(name string) string {
	name = filepath.ToSlash(name)
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimRight(name, "/")
	if name == "." {
		return ""
	}
	return name
}

func escapeName(name string) string {
	var b strings.Builder
	for _, c := range name {
		switch c {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	out := b.String()
	if strings.HasPrefix(out, "#") || strings.HasPrefix(out, "!") {
		out = `\` + out
	}
	return out
}
