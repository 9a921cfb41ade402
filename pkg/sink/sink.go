// Package sink persists split parts and other generated artifacts below an
// output directory.
package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	errs "splitkit/pkg/errors"
)

// Options configures a filesystem sink.
type Options struct {
	OutputDir string      // root directory for every artifact (required)
	Header    bool        // prefix each part with "<base>_part<n>:"
	Footer    bool        // suffix each part with a continuation or end marker
	FileMode  os.FileMode // 0 means 0644
	DirMode   os.FileMode // 0 means 0755
	Atomic    *bool       // nil means true: write a temp file and rename
}

// FS writes artifacts to the local filesystem.
type FS struct {
	root   string
	header bool
	footer bool
	atomic bool
	permF  os.FileMode
	permD  os.FileMode
	logger *zap.Logger
}

// New validates opts and returns a filesystem sink.
func New(opts Options, logger *zap.Logger) (*FS, error) {
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, fmt.Errorf("sink output directory is empty: %w", errs.ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &FS{
		root:   filepath.Clean(opts.OutputDir),
		header: opts.Header,
		footer: opts.Footer,
		atomic: true,
		permF:  opts.FileMode,
		permD:  opts.DirMode,
		logger: logger,
	}
	if w.permF == 0 {
		w.permF = 0o644
	}
	if w.permD == 0 {
		w.permD = 0o755
	}
	if opts.Atomic != nil {
		w.atomic = *opts.Atomic
	}
	return w, nil
}

// Root returns the output directory.
func (w *FS) Root() string {
	return w.root
}

// PartName returns the file name of the index-th part of base.
func PartName(base string, index int, ext string) string {
	return fmt.Sprintf("%s_part_%d%s", base, index, ext)
}

// Decorate wraps body with the optional header and footer lines. body
// itself is never modified.
func Decorate(base string, index, total int, body string, header, footer bool) string {
	var b strings.Builder
	if header {
		fmt.Fprintf(&b, "%s_part%d:\n\n", base, index)
	}
	b.WriteString(body)
	if footer {
		if index >= total {
			fmt.Fprintf(&b, "\n\n%s ✅ End of file.", base)
		} else {
			fmt.Fprintf(&b, "\n\n%s ➡ Continued in part %d...", base, index+1)
		}
	}
	return b.String()
}

// WriteParts writes one numbered file per body and returns the written paths
// in order.
func (w *FS) WriteParts(ctx context.Context, base, ext string, bodies []string) ([]string, error) {
	w.logger.Debug("Writing parts",
		zap.String("base", base),
		zap.String("outputDir", w.root),
		zap.Int("parts", len(bodies)))

	written := make([]string, 0, len(bodies))
	for i, body := range bodies {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		index := i + 1
		text := Decorate(base, index, len(bodies), body, w.header, w.footer)
		path, err := w.WriteFile(ctx, PartName(base, index, ext), []byte(text))
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteFile writes data to rel below the output directory and returns the
// destination path.
func (w *FS) WriteFile(ctx context.Context, rel string, data []byte) (string, error) {
	return w.write(ctx, rel, bytes.NewReader(data))
}

// CopyFile copies the file at src to rel below the output directory.
func (w *FS) CopyFile(ctx context.Context, rel, src string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w: %w", src, errs.ErrSourceRead, err)
	}
	defer f.Close()
	return w.write(ctx, rel, f)
}

func (w *FS) write(ctx context.Context, rel string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dest, err := w.resolve(rel)
	if err != nil {
		return "", err
	}
	if err := ensureDirectory(filepath.Dir(dest), w.permD, w.logger); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w: %w", dest, errs.ErrSinkWrite, err)
	}

	if w.atomic {
		err = writeAtomic(dest, r, w.permF)
	} else {
		err = writeOverwrite(dest, r, w.permF)
	}
	if err != nil {
		w.logger.Error("Failed to write file", zap.String("path", dest), zap.Error(err))
		return "", fmt.Errorf("writing %s: %w: %w", dest, errs.ErrSinkWrite, err)
	}
	w.logger.Debug("Successfully wrote file", zap.String("path", dest))
	return dest, nil
}

// resolve maps rel below the root, rejecting absolute names, volume names
// and parent escapes.
func (w *FS) resolve(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	switch {
	case clean == "." || clean == "":
		return "", fmt.Errorf("empty output name: %w", errs.ErrPathEscape)
	case filepath.IsAbs(clean), filepath.VolumeName(clean) != "":
		return "", fmt.Errorf("absolute output name %q: %w", rel, errs.ErrPathEscape)
	case clean == "..", strings.HasPrefix(clean, ".."+string(filepath.Separator)):
		return "", fmt.Errorf("output name %q: %w", rel, errs.ErrPathEscape)
	}
	return filepath.Join(w.root, clean), nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, perm os.FileMode, logger *zap.Logger) error {
	if err := os.MkdirAll(path, perm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}

func writeOverwrite(dest string, r io.Reader, perm os.FileMode) error {
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeAtomic(dest string, r io.Reader, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
