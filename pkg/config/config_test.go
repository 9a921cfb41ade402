package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	errs "splitkit/pkg/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 700, cfg.Split.MaxLines)
	assert.Equal(t, 2500, cfg.Split.MaxChars)
	assert.Equal(t, "ScriptOutput", cfg.OutputDir)
	assert.Equal(t, "markdown", cfg.Files.Extensions[".md"])
	assert.Equal(t, "javascript", cfg.Bundle.Languages[".js"])
	assert.Contains(t, cfg.Files.IgnoreNames, "node_modules")
}

func TestDefaultConfigReturnsFreshValues(t *testing.T) {
	a := DefaultConfig()
	a.Files.IgnoreNames[0] = "changed"
	a.Files.Extensions[".md"] = "changed"

	b := DefaultConfig()
	assert.NotEqual(t, "changed", b.Files.IgnoreNames[0])
	assert.Equal(t, "markdown", b.Files.Extensions[".md"])
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitkit.yaml")
	data := []byte(`
output_dir: out
split:
  max_lines: 500
  header: true
tree:
  max_depth: 0
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 500, cfg.Split.MaxLines)
	assert.Equal(t, 2500, cfg.Split.MaxChars, "unset keys keep defaults")
	assert.True(t, cfg.Split.Header)
	assert.Equal(t, 0, cfg.Tree.MaxDepth)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitkit.toml")
	data := []byte(`
output_dir = "parts"

[split]
max_chars = 1200
footer = true

[merge]
output_file = "Docs.md"
header_level = 2
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "parts", cfg.OutputDir)
	assert.Equal(t, 1200, cfg.Split.MaxChars)
	assert.True(t, cfg.Split.Footer)
	assert.Equal(t, "Docs.md", cfg.Merge.OutputFile)
	assert.Equal(t, 2, cfg.Merge.HeaderLevel)
	assert.Equal(t, 700, cfg.Split.MaxLines)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("split: [unclosed"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("values override file and defaults", func(t *testing.T) {
		t.Setenv("SPLITKIT_OUTPUT_DIR", "env-out")
		t.Setenv("SPLITKIT_MAX_LINES", "42")
		t.Setenv("SPLITKIT_MAX_CHARS", " 99 ")
		t.Setenv("SPLITKIT_LOG_LEVEL", "warn")

		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "env-out", cfg.OutputDir)
		assert.Equal(t, 42, cfg.Split.MaxLines)
		assert.Equal(t, 99, cfg.Split.MaxChars)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("non-integer threshold is rejected", func(t *testing.T) {
		t.Setenv("SPLITKIT_MAX_LINES", "many")

		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, errs.ErrInvalidConfig)
	})
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Split.MaxLines = 0
	cfg.Split.MaxChars = -1
	cfg.Merge.HeaderLevel = 9
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "split.max_lines")
	assert.Contains(t, err.Error(), "split.max_chars")
	assert.Contains(t, err.Error(), "merge.header_level")
	assert.Contains(t, err.Error(), "logging.level")
	assert.Len(t, multierr.Errors(errorsUnwrapLast(err)), 4)
}

// errorsUnwrapLast returns the aggregated validation error behind the
// ErrInvalidConfig wrapper.
func errorsUnwrapLast(err error) error {
	wrapped, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return err
	}
	list := wrapped.Unwrap()
	return list[len(list)-1]
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"cfg/splitkit.yaml", "cfg/splitkit.toml"} {
		path := filepath.Join(t.TempDir(), name)
		cfg := DefaultConfig()
		cfg.Split.MaxLines = 321
		cfg.Tree.Fence = false

		require.NoError(t, cfg.Save(path), name)
		loaded, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, 321, loaded.Split.MaxLines, name)
		assert.False(t, loaded.Tree.Fence, name)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv("SPLITKIT_CONFIG", "")
	assert.Equal(t, DefaultPath, ResolvePath(""))
	assert.Equal(t, "x.toml", ResolvePath("x.toml"))

	t.Setenv("SPLITKIT_CONFIG", "/etc/splitkit.yaml")
	assert.Equal(t, "/etc/splitkit.yaml", ResolvePath(""))
}
