package collect

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	errs "splitkit/pkg/errors"
	"splitkit/pkg/ignore"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), []byte("# A\n"))
	writeFile(t, filepath.Join(root, "b.go"), []byte("package b\n"))
	writeFile(t, filepath.Join(root, "image.png"), []byte("not really a png"))
	writeFile(t, filepath.Join(root, "blob.dat"), []byte{0x00, 0x01, 0x02, 'x'})
	writeFile(t, filepath.Join(root, "sub", "c.md"), []byte("# C\n"))
	writeFile(t, filepath.Join(root, "sub", "deep", "d.md"), []byte("# D\n"))
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "e.md"), []byte("# E\n"))
	return root
}

func TestFilesWalksAndClassifies(t *testing.T) {
	root := fixture(t)
	rules := ignore.NewRules(zaptest.NewLogger(t))
	rules.CompileNames("node_modules")

	got, err := Files(context.Background(), []string{root}, Options{Ignore: rules}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "b.go"),
		filepath.Join(root, "sub", "c.md"),
		filepath.Join(root, "sub", "deep", "d.md"),
	}, got.Regular)
	assert.Equal(t, []string{
		filepath.Join(root, "blob.dat"),
		filepath.Join(root, "image.png"),
	}, got.Binary)
	assert.Empty(t, got.Skipped)
}

func TestFilesExtensionsAndDepth(t *testing.T) {
	root := fixture(t)
	opts := Options{Extensions: map[string]string{".md": "markdown"}, MaxDepth: 1}

	got, err := Files(context.Background(), []string{root}, opts, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.md")}, got.Regular)

	opts.MaxDepth = 2
	got, err = Files(context.Background(), []string{root}, opts, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "sub", "c.md"),
	}, got.Regular)
}

func TestFilesExplicitFileSkipped(t *testing.T) {
	root := fixture(t)
	opts := Options{Extensions: map[string]string{".md": "markdown"}}

	got, err := Files(context.Background(), []string{filepath.Join(root, "b.go")}, opts, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Empty(t, got.Regular)
	require.Len(t, got.Skipped, 1)
	assert.ErrorIs(t, got.Skipped[0].Reason, errs.ErrUnsupportedFile)
}

func TestFilesMaxSize(t *testing.T) {
	root := t.TempDir()
	big := make([]byte, 2048)
	for i := range big {
		big[i] = 'a'
	}
	writeFile(t, filepath.Join(root, "big.txt"), big)
	writeFile(t, filepath.Join(root, "small.txt"), []byte("ok"))

	got, err := Files(context.Background(), []string{root}, Options{MaxFileSizeKB: 1}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "small.txt")}, got.Regular)
}

func TestFilesMissingRoot(t *testing.T) {
	root := fixture(t)
	got, err := Files(context.Background(),
		[]string{filepath.Join(root, "missing"), filepath.Join(root, "sub")},
		Options{}, zaptest.NewLogger(t))
	require.ErrorIs(t, err, errs.ErrSourceNotFound)
	assert.Len(t, got.Regular, 2)
}

func TestFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Files(ctx, []string{t.TempDir()}, Options{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsBinaryFile(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]struct {
		data []byte
		want bool
	}{
		"text":    {[]byte("hello\nworld\n"), false},
		"empty":   {nil, false},
		"nul":     {[]byte("ab\x00cd"), true},
		"control": {[]byte{1, 2, 3, 4, 5, 6, 'a'}, true},
		"utf8":    {[]byte("héllo wörld ✅"), false},
		"utf16":   {[]byte{0xFF, 0xFE, 'h', 0, 'i', 0}, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, name)
			writeFile(t, p, tc.data)
			got, err := isBinaryFile(p)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLanguage(t *testing.T) {
	langs := map[string]string{".go": "go", ".md": "markdown"}
	lang, ok := Language("x/main.go", langs)
	assert.True(t, ok)
	assert.Equal(t, "go", lang)

	lang, ok = Language("README.MD", langs)
	assert.True(t, ok)
	assert.Equal(t, "markdown", lang)

	_, ok = Language("Makefile", langs)
	assert.False(t, ok)
}

func TestReadAllKeepsOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	var files []string
	for _, name := range []string{"z.md", "a.md", "m/n.md", "crlf.txt"} {
		p := filepath.Join(root, filepath.FromSlash(name))
		writeFile(t, p, []byte(name+"\r\nline\r\n"))
		files = append(files, p)
	}

	got, err := ReadAll(context.Background(), files, root, 2, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i, fc := range got {
		assert.Equal(t, files[i], fc.Path)
		assert.NotContains(t, fc.Content, "\r")
	}
	assert.Equal(t, "m/n.md", got[2].Rel)
	assert.Equal(t, "z.md\nline\n", got[0].Content)
}

func TestReadAllAggregatesErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	ok := filepath.Join(root, "ok.md")
	writeFile(t, ok, []byte("fine"))
	files := []string{filepath.Join(root, "gone1.md"), ok, filepath.Join(root, "gone2.md")}

	got, err := ReadAll(context.Background(), files, root, 0, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrSourceNotFound)
	require.Len(t, got, 1)
	assert.Equal(t, "ok.md", got[0].Rel)
}

func TestRelativeTo(t *testing.T) {
	root := t.TempDir()
	assert.Equal(t, "a/b.md", relativeTo(root, filepath.Join(root, "a", "b.md")))
	assert.Equal(t, "b.md", relativeTo(filepath.Join(root, "a"), filepath.Join(root, "b.md")))
	assert.Equal(t, "b.md", relativeTo("", filepath.Join(root, "b.md")))
}
