package collect

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	errs "splitkit/pkg/errors"
)

// Files walks paths and collects the files that pass opts. Missing roots
// are reported as ErrSourceNotFound after the remaining roots are walked.
func Files(ctx context.Context, paths []string, opts Options, logger *zap.Logger) (Collected, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var (
		collected Collected
		errList   error
	)
	logger.Debug("Starting file collection", zap.Int("pathCount", len(paths)))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return collected, err
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			errList = multierr.Append(errList, fmt.Errorf("resolving %s: %w: %w", path, errs.ErrSourceRead, err))
			continue
		}

		info, err := os.Stat(absPath)
		if err != nil {
			logger.Warn("Path does not exist or cannot be accessed", zap.String("path", absPath), zap.Error(err))
			if os.IsNotExist(err) {
				errList = multierr.Append(errList, fmt.Errorf("%s: %w", absPath, errs.ErrSourceNotFound))
			} else {
				errList = multierr.Append(errList, fmt.Errorf("%s: %w: %w", absPath, errs.ErrSourceRead, err))
			}
			continue
		}

		if info.IsDir() {
			c, err := traverse(ctx, absPath, opts, logger)
			if err != nil {
				errList = multierr.Append(errList, err)
			}
			collected.Regular = append(collected.Regular, c.Regular...)
			collected.Binary = append(collected.Binary, c.Binary...)
			continue
		}

		if reason := skipReason(absPath, filepath.Base(absPath), info, opts); reason != nil {
			logger.Debug("Skipping file", zap.String("file", absPath), zap.Error(reason))
			if errs.Is(reason, errBinary) {
				collected.Binary = append(collected.Binary, absPath)
			} else {
				collected.Skipped = append(collected.Skipped, SkippedFile{Path: absPath, Reason: reason})
			}
			continue
		}
		collected.Regular = append(collected.Regular, absPath)
	}

	sort.Strings(collected.Regular)
	sort.Strings(collected.Binary)
	logger.Debug("Completed file collection",
		zap.Int("regularFiles", len(collected.Regular)),
		zap.Int("binaryFiles", len(collected.Binary)),
		zap.Int("skippedFiles", len(collected.Skipped)))
	return collected, errList
}

// traverse walks one directory root.
func traverse(ctx context.Context, root string, opts Options, logger *zap.Logger) (Collected, error) {
	var collected Collected
	logger.Debug("Starting file traversal", zap.String("root", root), zap.Int("maxDepth", opts.MaxDepth))

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		relPath = filepath.ToSlash(relPath)
		depth := strings.Count(relPath, "/") + 1

		if d.IsDir() {
			if opts.Ignore != nil && opts.Ignore.MatchesPath(relPath, true) {
				logger.Debug("Skipping ignored directory", zap.String("directory", path))
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("Failed to get file info during traversal", zap.String("filePath", path), zap.Error(err))
			return nil
		}
		if reason := skipReason(path, relPath, info, opts); reason != nil {
			if errs.Is(reason, errBinary) {
				collected.Binary = append(collected.Binary, path)
			}
			if opts.Verbose {
				logger.Debug("Skipping file during traversal", zap.String("filePath", path), zap.Error(reason))
			}
			return nil
		}

		collected.Regular = append(collected.Regular, path)
		logger.Debug("Added file to processing list", zap.String("filePath", path))
		return nil
	})
	if err != nil {
		logger.Error("Error during file traversal", zap.String("root", root), zap.Error(err))
		return collected, err
	}
	return collected, nil
}
