// Package config loads splitkit settings from YAML or TOML with environment
// overrides. Every operation receives its values from a Config; nothing is
// read from package-level defaults at run time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	errs "splitkit/pkg/errors"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".splitkit.yaml"

// Config holds all splitkit configuration.
type Config struct {
	// OutputDir is the root below which every command writes.
	OutputDir string `yaml:"output_dir" toml:"output_dir"`

	Split   SplitConfig   `yaml:"split" toml:"split"`
	Files   FilesConfig   `yaml:"files" toml:"files"`
	Bundle  BundleConfig  `yaml:"bundle" toml:"bundle"`
	Merge   MergeConfig   `yaml:"merge" toml:"merge"`
	Tree    TreeConfig    `yaml:"tree" toml:"tree"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// SplitConfig configures the line and character splitters.
type SplitConfig struct {
	MaxLines int  `yaml:"max_lines" toml:"max_lines"`
	MaxChars int  `yaml:"max_chars" toml:"max_chars"`
	Header   bool `yaml:"header" toml:"header"`
	Footer   bool `yaml:"footer" toml:"footer"`
}

// FilesConfig controls which input files are picked up.
type FilesConfig struct {
	// Extensions maps supported extensions to a short language tag.
	Extensions       map[string]string `yaml:"extensions" toml:"extensions"`
	IgnoreNames      []string          `yaml:"ignore_names" toml:"ignore_names"`
	IgnoreFile       string            `yaml:"ignore_file" toml:"ignore_file"`
	GlobalIgnoreFile string            `yaml:"global_ignore_file" toml:"global_ignore_file"`
	MaxFileSizeKB    int               `yaml:"max_file_size_kb" toml:"max_file_size_kb"`
	MaxWorkers       int               `yaml:"max_workers" toml:"max_workers"` // 0 means one per CPU
}

// BundleConfig configures language bundles.
type BundleConfig struct {
	// Languages maps extensions to the fenced-code language name.
	Languages map[string]string `yaml:"languages" toml:"languages"`
	Exclude   []string          `yaml:"exclude" toml:"exclude"`
}

// MergeConfig configures the document merger.
type MergeConfig struct {
	Extensions    []string `yaml:"extensions" toml:"extensions"`
	IgnoreDirs    []string `yaml:"ignore_dirs" toml:"ignore_dirs"`
	OutputFile    string   `yaml:"output_file" toml:"output_file"`
	IncludeHeader bool     `yaml:"include_header" toml:"include_header"`
	HeaderLevel   int      `yaml:"header_level" toml:"header_level"`
}

// TreeConfig configures the directory tree renderer.
type TreeConfig struct {
	MaxDepth    int      `yaml:"max_depth" toml:"max_depth"` // 0 means unlimited
	DirsOnly    bool     `yaml:"dirs_only" toml:"dirs_only"`
	Fence       bool     `yaml:"fence" toml:"fence"`
	OutputFile  string   `yaml:"output_file" toml:"output_file"`
	IgnoreNames []string `yaml:"ignore_names" toml:"ignore_names"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"` // debug, info, warn, error
	File  string `yaml:"file" toml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "ScriptOutput",

		Split: SplitConfig{
			MaxLines: 700,
			MaxChars: 2500,
		},

		Files: FilesConfig{
			Extensions: map[string]string{
				".js": "js", ".html": "html", ".ts": "typescript", ".java": "java", ".py": "python",
				".go": "go", ".rb": "ruby", ".cpp": "cpp", ".c": "c", ".php": "php", ".sh": "bash",
				".cs": "csharp", ".css": "css", ".txt": "text", ".h": "cpp", ".hpp": "cpp", ".md": "markdown",
			},
			IgnoreNames: []string{
				".metadata", "libraries", "gradle", ".angular", ".vscode", "node_modules", ".editorconfig",
				".gitignore", "Migrations", "Debug", "test", "libs", "angular.json", "package-lock.json",
				"package.json", "README.md", "Dependencies", "Connected Services", "tsconfig.app.json",
				"tsconfig.json", "tsconfig.spec.json", "CodeSummary.md", ".mvn", ".settings", "build",
				".idea", ".dart_tool", ".git",
			},
			IgnoreFile:    ".splitignore",
			MaxFileSizeKB: 1024,
		},

		Bundle: BundleConfig{
			Languages: map[string]string{
				".js": "javascript", ".ts": "typescript", ".py": "python", ".java": "java",
				".html": "html", ".css": "css", ".cpp": "cpp", ".c": "c", ".rb": "ruby",
				".go": "go", ".php": "php", ".sh": "bash", ".cs": "csharp", ".txt": "text",
				".md": "markdown",
			},
		},

		Merge: MergeConfig{
			Extensions:    []string{".md", ".txt"},
			IgnoreDirs:    []string{"node_modules", ".git", "dist", "build", ".next"},
			OutputFile:    "AllDocs.md",
			IncludeHeader: true,
			HeaderLevel:   1,
		},

		Tree: TreeConfig{
			MaxDepth:   2,
			DirsOnly:   true,
			Fence:      true,
			OutputFile: "zzz.md",
			IgnoreNames: []string{
				".angular", ".vscode", "node_modules", "Migrations", "Debug",
				"Dependencies", "Connected Services", ".git",
			},
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ResolvePath picks the config file: the explicit flag value, then
// SPLITKIT_CONFIG, then DefaultPath.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("SPLITKIT_CONFIG"); env != "" {
		return env
	}
	return DefaultPath
}

// Load loads configuration from a YAML or TOML file (by extension). A
// missing file yields the defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(path, data); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		// Defaults.
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	if isTOML(path) {
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("failed to parse config %s: %w: %w", path, errs.ErrInvalidConfig, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w: %w", path, errs.ErrInvalidConfig, err)
	}
	return nil
}

// Save writes the configuration as YAML, or TOML for a .toml path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var b strings.Builder
		if err := toml.NewEncoder(&b).Encode(c); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = []byte(b.String())
	} else {
		out, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = out
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if dir := os.Getenv("SPLITKIT_OUTPUT_DIR"); dir != "" {
		c.OutputDir = dir
	}
	if level := os.Getenv("SPLITKIT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	var err error
	err = multierr.Append(err, envInt("SPLITKIT_MAX_LINES", &c.Split.MaxLines))
	err = multierr.Append(err, envInt("SPLITKIT_MAX_CHARS", &c.Split.MaxChars))
	return err
}

func envInt(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s=%q is not an integer: %w", key, raw, errs.ErrInvalidConfig)
	}
	*dst = n
	return nil
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var err error
	if strings.TrimSpace(c.OutputDir) == "" {
		err = multierr.Append(err, fmt.Errorf("output_dir is empty"))
	}
	if c.Split.MaxLines <= 0 {
		err = multierr.Append(err, fmt.Errorf("split.max_lines must be positive, got %d", c.Split.MaxLines))
	}
	if c.Split.MaxChars <= 0 {
		err = multierr.Append(err, fmt.Errorf("split.max_chars must be positive, got %d", c.Split.MaxChars))
	}
	if len(c.Files.Extensions) == 0 {
		err = multierr.Append(err, fmt.Errorf("files.extensions is empty"))
	}
	if c.Files.MaxFileSizeKB <= 0 {
		err = multierr.Append(err, fmt.Errorf("files.max_file_size_kb must be positive, got %d", c.Files.MaxFileSizeKB))
	}
	if c.Files.MaxWorkers < 0 {
		err = multierr.Append(err, fmt.Errorf("files.max_workers must not be negative, got %d", c.Files.MaxWorkers))
	}
	if len(c.Bundle.Languages) == 0 {
		err = multierr.Append(err, fmt.Errorf("bundle.languages is empty"))
	}
	if c.Merge.HeaderLevel < 1 || c.Merge.HeaderLevel > 6 {
		err = multierr.Append(err, fmt.Errorf("merge.header_level must be between 1 and 6, got %d", c.Merge.HeaderLevel))
	}
	if c.Tree.MaxDepth < 0 {
		err = multierr.Append(err, fmt.Errorf("tree.max_depth must not be negative, got %d", c.Tree.MaxDepth))
	}
	if !validLevel(c.Logging.Level) {
		err = multierr.Append(err, fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, ValidLogLevels))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}
	return nil
}

func validLevel(level string) bool {
	for _, l := range ValidLogLevels {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
