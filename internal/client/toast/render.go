package toast

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	infoStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

func label(kind Kind) string {
	switch kind {
	case KindSuccess:
		return successStyle.Render("[ok]")
	case KindError:
		return errorStyle.Render("[error]")
	default:
		return infoStyle.Render("[info]")
	}
}

// Format renders a single toast as one console line.
func Format(t Toast) string {
	return label(t.Kind) + " " + t.Message
}

// Print writes toasts to w, one per line.
func Print(w io.Writer, toasts []Toast) {
	if len(toasts) == 0 {
		return
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		lines = append(lines, Format(t))
	}
	_, _ = io.WriteString(w, strings.Join(lines, "\n")+"\n")
}
