package collect

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	errs "splitkit/pkg/errors"
)

var (
	errBinary   = errors.New("binary file")
	errTooLarge = errors.New("file exceeds size limit")
)

// skipReason returns why a file should be skipped based on extension,
// ignore rules, size and binary content, or nil to keep it.
func skipReason(path, relPath string, info fs.FileInfo, opts Options) error {
	if opts.Ignore != nil && opts.Ignore.MatchesPath(relPath, false) {
		return errs.ErrIgnoredPath
	}

	if opts.Extensions != nil {
		if _, ok := Language(path, opts.Extensions); !ok {
			return fmt.Errorf("%q: %w", filepath.Ext(path), errs.ErrUnsupportedFile)
		}
	}

	if opts.MaxFileSizeKB > 0 && info.Size() > int64(opts.MaxFileSizeKB)*1024 {
		return fmt.Errorf("%d bytes: %w", info.Size(), errTooLarge)
	}

	if isCommonBinaryExtension(path) {
		return errBinary
	}
	isBinary, err := isBinaryFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSourceRead, err)
	}
	if isBinary {
		return errBinary
	}
	return nil
}

// Language returns the language tag for path's extension, matching the
// extension exactly first and case-insensitively second.
func Language(path string, languages map[string]string) (string, bool) {
	ext := filepath.Ext(path)
	if lang, ok := languages[ext]; ok {
		return lang, true
	}
	lower := strings.ToLower(ext)
	for k, lang := range languages {
		if strings.ToLower(k) == lower {
			return lang, true
		}
	}
	return "", false
}
