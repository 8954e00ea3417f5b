package logtail

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the terminal styles used by ColorizeLine.
type Palette struct {
	Timestamp lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Notice    lipgloss.Style
	Unknown   lipgloss.Style
	Info      lipgloss.Style
	Frame     lipgloss.Style
}

// DefaultPalette mirrors the admin page colors: red errors, amber warnings
// and notices.
func DefaultPalette() Palette {
	return Palette{
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#CC0000")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFCC00")).Bold(true),
		Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFCC00")),
		Unknown:   lipgloss.NewStyle().Bold(true),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Italic(true),
		Frame:     lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
	}
}

// LevelStyle returns the style for a level.
func (p Palette) LevelStyle(level Level) lipgloss.Style {
	switch level {
	case LevelError:
		return p.Error
	case LevelWarning:
		return p.Warning
	case LevelNotice:
		return p.Notice
	default:
		return p.Unknown
	}
}

// ColorizeLine renders a single log line for the terminal. Lines of unknown
// shape are returned unchanged.
func (p Palette) ColorizeLine(line string) string {
	if m := severityPattern.FindStringSubmatch(line); m != nil {
		var b strings.Builder
		b.WriteString(p.Timestamp.Render(m[1]))
		b.WriteString(" ")
		b.WriteString(p.LevelStyle(ParseLevel(m[2])).Render(m[2]))
		b.WriteString(":")
		b.WriteString(m[3])
		return b.String()
	}
	if stackHeadPattern.MatchString(line) {
		return "    " + p.Info.Render("Stack Trace")
	}
	if m := stackFramePattern.FindStringSubmatch(line); m != nil {
		return "    " + p.Frame.Render(m[2]) + m[3]
	}
	return line
}

// ColorizeLines applies ColorizeLine to each line.
func (p Palette) ColorizeLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = p.ColorizeLine(line)
	}
	return out
}
