// Package bundle groups source files into per-language markdown documents
// and sorts files into per-extension folders.
package bundle

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"splitkit/pkg/collect"
	"splitkit/pkg/sink"
)

// NoExtension names the folder for files without an extension.
const NoExtension = "no_ext"

// Bundle is one generated language document.
type Bundle struct {
	Language string
	Name     string // output file name, <lang>_files.md
	Files    int
	Content  string
}

// ParseExclude splits a comma separated list of extensions or language
// names into lower-case entries without a leading dot.
func ParseExclude(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(item)), ".")
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ByLanguage groups contents by the language their extension maps to.
// Files with an unmapped extension, or whose extension or language is in
// exclude, are left out. Sections keep the order of contents; bundles are
// sorted by language.
func ByLanguage(contents []collect.FileContent, languages map[string]string, exclude []string) []Bundle {
	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[strings.TrimPrefix(strings.ToLower(e), ".")] = true
	}

	sections := make(map[string][]string)
	for _, fc := range contents {
		lang, ok := collect.Language(fc.Path, languages)
		if !ok {
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fc.Path)), ".")
		if excluded[ext] || excluded[strings.ToLower(lang)] {
			continue
		}
		sections[lang] = append(sections[lang], section(path.Base(filepath.ToSlash(fc.Path)), lang, fc.Content))
	}

	bundles := make([]Bundle, 0, len(sections))
	for lang, parts := range sections {
		bundles = append(bundles, Bundle{
			Language: lang,
			Name:     FileName(lang),
			Files:    len(parts),
			Content:  fmt.Sprintf("# %s Files\n\n", strings.ToUpper(lang)) + strings.Join(parts, "\n"),
		})
	}
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].Language < bundles[j].Language })
	return bundles
}

// FileName returns the bundle file name for lang.
func FileName(lang string) string {
	return lang + "_files.md"
}

func section(name, lang, code string) string {
	return fmt.Sprintf("### %s\n\n```%s\n%s\n```\n\n", name, lang, code)
}

// Write stores every bundle in out and returns the written paths.
func Write(ctx context.Context, out *sink.FS, bundles []Bundle, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var (
		written []string
		errList error
	)
	for _, b := range bundles {
		p, err := out.WriteFile(ctx, b.Name, []byte(b.Content))
		if err != nil {
			if ctx.Err() != nil {
				return written, multierr.Append(errList, err)
			}
			errList = multierr.Append(errList, err)
			continue
		}
		logger.Debug("Wrote bundle", zap.String("language", b.Language), zap.Int("files", b.Files), zap.String("path", p))
		written = append(written, p)
	}
	return written, errList
}

// ExtensionDir returns the folder name used for path's extension.
func ExtensionDir(p string) string {
	ext := strings.TrimPrefix(filepath.Ext(p), ".")
	if ext == "" {
		return NoExtension
	}
	return ext
}

// CopyByExtension copies each file to <ext>/<name> below out. Copy failures
// are collected and the remaining files are still copied.
func CopyByExtension(ctx context.Context, out *sink.FS, files []string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var (
		written []string
		errList error
	)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return written, multierr.Append(errList, err)
		}
		rel := path.Join(ExtensionDir(file), filepath.Base(file))
		dest, err := out.CopyFile(ctx, rel, file)
		if err != nil {
			logger.Warn("Failed to copy file", zap.String("file", file), zap.Error(err))
			errList = multierr.Append(errList, err)
			continue
		}
		logger.Debug("Copied file", zap.String("file", file), zap.String("dest", dest))
		written = append(written, dest)
	}
	return written, errList
}
