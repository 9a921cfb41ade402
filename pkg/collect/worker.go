package collect

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"splitkit/pkg/source"
)

// ReadAll reads files with at most maxWorkers concurrent readers and
// returns their contents in input order. Files that fail to read are left
// out and their errors are returned together.
func ReadAll(ctx context.Context, files []string, root string, maxWorkers int, logger *zap.Logger) ([]FileContent, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}

	var (
		g       errgroup.Group
		mu      sync.Mutex
		errList error
		slots   = make([]*FileContent, len(files))
	)
	g.SetLimit(maxWorkers)

	logger.Debug("Distributing files to workers", zap.Int("files", len(files)), zap.Int("workers", maxWorkers))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := readOne(file, root)
			if err != nil {
				logger.Error("Worker failed to process file", zap.String("filePath", file), zap.Error(err))
				mu.Lock()
				errList = multierr.Append(errList, err)
				mu.Unlock()
				return nil
			}
			slots[i] = &content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	contents := make([]FileContent, 0, len(files))
	for _, c := range slots {
		if c != nil {
			contents = append(contents, *c)
		}
	}
	logger.Debug("All files processed", zap.Int("processedFiles", len(contents)))
	return contents, errList
}

func readOne(path, root string) (FileContent, error) {
	text, err := source.ReadText(path)
	if err != nil {
		return FileContent{}, err
	}
	return FileContent{Path: path, Rel: relativeTo(root, path), Content: text}, nil
}

// relativeTo returns path relative to root with forward slashes, falling
// back to the base name when path is not below root.
func relativeTo(root, path string) string {
	if root == "" {
		return filepath.Base(path)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}
	rel, err := filepath.Rel(absRoot, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
