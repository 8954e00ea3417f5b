package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logpeek/internal/logtail"
)

func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

func (m Model) renderContent() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	if !snap.Found {
		if snap.Raw == "" {
			return styles.MutedText.Render("Loading...")
		}
		return styles.DangerText.Render(snap.Raw)
	}

	var b strings.Builder
	if snap.Err != nil {
		b.WriteString(styles.DangerText.Render("partial read: " + snap.Err.Error()))
		b.WriteString("\n")
	}
	if snap.Raw == "" {
		b.WriteString(styles.MutedText.Render("(log is empty)"))
		return b.String()
	}
	b.WriteString(strings.Join(m.theme.Palette().ColorizeLines(strings.Split(snap.Raw, "\n")), "\n"))
	return b.String()
}

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	parts := []string{styles.AccentText.Render("logpeek")}

	path := m.snapshot.Path
	if path == "" {
		path = m.cfg.LogPath
	}
	parts = append(parts, styles.Text.Render(path))
	parts = append(parts, styles.MutedText.Render(fmt.Sprintf("last %d lines", m.cfg.LineCount)))

	if m.snapshot.Found {
		parts = append(parts, levelSummary(m.snapshot.Records))
	} else if m.snapshot.Raw != "" {
		parts = append(parts, styles.DangerText.Render("not found"))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	hints := "r reload  +/- lines  T theme  ? help  q quit"
	if !m.loadedAt.IsZero() {
		hints += "  ·  loaded " + m.loadedAt.Format("15:04:05")
	}
	return styles.Footer.Width(m.width).Render(hints)
}

func levelSummary(records []logtail.Record) string {
	counts := logtail.Counts(records)
	return fmt.Sprintf("errors %d · warnings %d · notices %d",
		counts[logtail.LevelError], counts[logtail.LevelWarning], counts[logtail.LevelNotice])
}
