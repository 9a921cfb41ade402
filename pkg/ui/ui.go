// Package ui formats human-facing CLI messages.
//
// Formatters colorize text when the terminal supports it. With NO_COLOR set
// or on a dumb terminal they fall back to plain decorations:
//
//	ui.Path.Sprint("notes.md")      // notes.md, or 'notes.md' without color
//	ui.Success.Sprint("✓")          // green check
//	ui.Muted.Sprint("3 skipped")    // (3 skipped) without color
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if NoColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// NoColor reports whether color output is disabled, either through the
// NO_COLOR environment variable or by fatih/color's terminal detection.
func NoColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Semantic formatters for different types of CLI output.
var (
	// Path formats file and directory paths. 'Quoted' without color.
	Path = Formatter{color.New(color.FgYellow), "'", "'"}

	// Success formats success indicators and messages.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error formats error indicators and messages.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning formats warnings.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info formats hints and directional indicators.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats counts and user values.
	Highlight = Formatter{color.New(color.FgCyan, color.Bold), "", ""}

	// Muted formats secondary text. (Parenthesized) without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)

// Done returns a success status line.
func Done(format string, a ...interface{}) string {
	return Success.Sprint("✓") + " " + fmt.Sprintf(format, a...)
}

// Failed returns an error status line.
func Failed(format string, a ...interface{}) string {
	return Error.Sprint("✗") + " " + fmt.Sprintf(format, a...)
}

// Warn returns a warning status line.
func Warn(format string, a ...interface{}) string {
	return Warning.Sprint("⚠") + " " + fmt.Sprintf(format, a...)
}

// Hint returns an informational line.
func Hint(format string, a ...interface{}) string {
	return Info.Sprint("→") + " " + fmt.Sprintf(format, a...)
}
