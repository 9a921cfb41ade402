package ui

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestFormatterWithColor(t *testing.T) {
	if v, ok := os.LookupEnv("NO_COLOR"); ok {
		os.Unsetenv("NO_COLOR")
		t.Cleanup(func() { os.Setenv("NO_COLOR", v) })
	}
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	got := Path.Sprint("notes.md")
	assert.NotContains(t, got, "'")
	assert.Contains(t, got, "\x1b[")
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Path adds quotes", Path, "notes.md", "'notes.md'"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Highlight has no decoration", Highlight, "3", "3"},
		{"Muted adds parentheses", Muted, "2 skipped", "(2 skipped)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.formatter.Sprint(tt.input))
		})
	}
}

func TestStatusLines(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.Equal(t, "✓ notes.md split into 3 parts", Done("%s split into %d parts", "notes.md", 3))
	assert.Equal(t, "✗ nothing to do", Failed("nothing to do"))
	assert.Equal(t, "⚠ 2 files skipped", Warn("%d files skipped", 2))
	assert.Equal(t, "→ try --all", Hint("try --all"))
}

func TestEnsureNewline(t *testing.T) {
	assert.Equal(t, "\n", EnsureNewline(""))
	assert.Equal(t, "a\n", EnsureNewline("a"))
	assert.Equal(t, "a\n", EnsureNewline("a\n"))
}
