package bundle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"splitkit/pkg/collect"
	errs "splitkit/pkg/errors"
	"splitkit/pkg/sink"
)

var languages = map[string]string{".go": "go", ".py": "python", ".md": "markdown"}

func contents() []collect.FileContent {
	return []collect.FileContent{
		{Path: "/src/a/main.go", Rel: "a/main.go", Content: "package main"},
		{Path: "/src/tool.py", Rel: "tool.py", Content: "print(1)"},
		{Path: "/src/b/util.go", Rel: "b/util.go", Content: "package b"},
		{Path: "/src/README.MD", Rel: "README.MD", Content: "# hi"},
		{Path: "/src/Makefile", Rel: "Makefile", Content: "all:"},
	}
}

func TestByLanguage(t *testing.T) {
	got := ByLanguage(contents(), languages, nil)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"go", "markdown", "python"}, []string{got[0].Language, got[1].Language, got[2].Language})
	assert.Equal(t, "go_files.md", got[0].Name)
	assert.Equal(t, 2, got[0].Files)
	assert.Equal(t,
		"# GO Files\n\n"+
			"### main.go\n\n```go\npackage main\n```\n\n"+
			"\n"+
			"### util.go\n\n```go\npackage b\n```\n\n",
		got[0].Content)
	assert.Equal(t, "# PYTHON Files\n\n### tool.py\n\n```python\nprint(1)\n```\n\n", got[2].Content)
}

func TestByLanguageExclude(t *testing.T) {
	got := ByLanguage(contents(), languages, ParseExclude(" .PY, markdown ,,"))
	require.Len(t, got, 1)
	assert.Equal(t, "go", got[0].Language)

	assert.Empty(t, ByLanguage(contents(), languages, []string{"go", "py", "md"}))
}

func TestParseExclude(t *testing.T) {
	assert.Equal(t, []string{"js", "py", "markdown"}, ParseExclude("js, .py,Markdown"))
	assert.Nil(t, ParseExclude(" , "))
}

func TestExtensionDir(t *testing.T) {
	assert.Equal(t, "go", ExtensionDir("x/main.go"))
	assert.Equal(t, NoExtension, ExtensionDir("Makefile"))
	assert.Equal(t, "gz", ExtensionDir("a.tar.gz"))
}

func TestWriteAndCopy(t *testing.T) {
	ctx := context.Background()
	out, err := sink.New(sink.Options{OutputDir: t.TempDir()}, zaptest.NewLogger(t))
	require.NoError(t, err)

	paths, err := Write(ctx, out, ByLanguage(contents(), languages, nil), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(out.Root(), "go_files.md"), paths[0])

	src := t.TempDir()
	main := filepath.Join(src, "main.go")
	mk := filepath.Join(src, "Makefile")
	require.NoError(t, os.WriteFile(main, []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(mk, []byte("all:\n"), 0o644))

	copied, err := CopyByExtension(ctx, out, []string{main, filepath.Join(src, "gone.txt"), mk}, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, errs.ErrSourceRead)
	require.Len(t, copied, 2)

	data, err := os.ReadFile(filepath.Join(out.Root(), "go", "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(data))
	_, err = os.Stat(filepath.Join(out.Root(), NoExtension, "Makefile"))
	assert.NoError(t, err)
}
