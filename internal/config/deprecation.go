package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

var (
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F080"))

	boxStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#CCCCCC"))
)

// deprecationOutput receives the deprecation notices
var deprecationOutput io.Writer = os.Stderr

func printWarningDeprecated(field string, info *Deprecation) {
	header := warningStyle.Render("Warning: ") + fmt.Sprintf("field '%s' is deprecated", field)
	renderDeprecation(header, info)
}

func printErrorDeprecated(field string, info Deprecation) {
	header := errorStyle.Render("Error: ") + fmt.Sprintf("field '%s' is no longer supported", field)
	renderDeprecation(header, &info)
}

func renderDeprecation(header string, info *Deprecation) {
	lines := []string{header}
	if info != nil {
		lines = append(lines, deprecationNotes(*info, time.Now())...)
	}
	fmt.Fprintln(deprecationOutput, boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func deprecationNotes(info Deprecation, now time.Time) []string {
	var notes []string
	if info.Alternative != "" {
		notes = append(notes, fmt.Sprintf("use '%s' instead", fieldStyle.Render(info.Alternative)))
	}
	if !info.DeprecatedAt.IsZero() {
		notes = append(notes, noteStyle.Render("deprecated since "+info.DeprecatedAt.Format(time.DateOnly)))
	}
	if !info.RemovalDate.IsZero() {
		notes = append(notes, noteStyle.Render(lo.Ternary(
			now.After(info.RemovalDate),
			"removed on ",
			"will be removed on ",
		)+info.RemovalDate.Format(time.DateOnly)))
	}
	return notes
}
