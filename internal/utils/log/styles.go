package log

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var levelStyles = map[Level]lipgloss.Style{
	DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
	InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#0000FF")),
	WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")),
	ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")),
	FatalLevel: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF0000")).
		Background(lipgloss.Color("#000000")).
		Bold(true),
}

// level names are padded so messages line up
const levelWidth = 5

func levelLabel(l Level) string {
	s := strings.ToUpper(l.String())
	if len(s) < levelWidth {
		s += strings.Repeat(" ", levelWidth-len(s))
	}
	return s
}
