package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	errs "splitkit/pkg/errors"
	"splitkit/pkg/ignore"
)

func layout(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"src/api", "src/web/components", "docs", "node_modules/x"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755))
	}
	for _, file := range []string{"README.md", "go.mod", "src/main.go", "src/api/h.go", "docs/Guide.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(file)), nil, 0o644))
	}
	return root
}

func TestRenderFull(t *testing.T) {
	root := layout(t)
	rules := ignore.NewRules(zaptest.NewLogger(t))
	rules.CompileNames("node_modules")

	got, err := Render([]string{root}, Options{}, rules, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, ""+
		"├── docs/\n"+
		"│   └── Guide.md\n"+
		"├── src/\n"+
		"│   ├── api/\n"+
		"│   │   └── h.go\n"+
		"│   ├── web/\n"+
		"│   │   └── components/\n"+
		"│   └── main.go\n"+
		"├── go.mod\n"+
		"└── README.md\n", got.Text)
	assert.Equal(t, 5, got.Dirs)
	assert.Equal(t, 5, got.Files)
}

func TestRenderDirectorySummary(t *testing.T) {
	root := layout(t)
	rules := ignore.NewRules(nil)
	rules.CompileNames("node_modules")

	got, err := Render([]string{root}, Options{MaxDepth: 2, DirsOnly: true, Fence: true}, rules, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "```\n"+
		"├── docs/\n"+
		"└── src/\n"+
		"    ├── api/\n"+
		"    └── web/\n"+
		"```", got.Text)
	assert.Equal(t, 4, got.Dirs)
	assert.Zero(t, got.Files)
}

func TestRenderIgnoredLastEntryKeepsConnectors(t *testing.T) {
	root := layout(t)
	rules := ignore.NewRules(nil)
	rules.CompileIgnoreLines("README.md", "node_modules/", "src/")

	got, err := Render([]string{root}, Options{MaxDepth: 1}, rules, nil)
	require.NoError(t, err)
	assert.Equal(t, "├── docs/\n└── go.mod\n", got.Text)
}

func TestRenderShowRootAndFiles(t *testing.T) {
	root := layout(t)
	got, err := Render([]string{filepath.Join(root, "docs"), filepath.Join(root, "go.mod")},
		Options{ShowRoot: true}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "docs/\n└── Guide.md\ngo.mod\n", got.Text)
}

func TestRenderMissingPath(t *testing.T) {
	root := layout(t)
	got, err := Render([]string{filepath.Join(root, "nope"), filepath.Join(root, "docs")}, Options{}, nil, nil)
	assert.ErrorIs(t, err, errs.ErrSourceNotFound)
	assert.Equal(t, "└── Guide.md\n", got.Text)
}
