package skin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"skim/internal/browser"
)

// Minimal strips the chrome down to content, a thin accent and lowercase
// hints.
type Minimal struct{}

func (Minimal) Name() string { return "minimal" }

var (
	minimalAccent = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa"))
	minimalSubtle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	minimalText   = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
)

func (m Minimal) Render(f Frame) string {
	var b strings.Builder

	switch state := f.State.(type) {
	case browser.Loading:
		b.WriteString(minimalSubtle.Render(state.URL) + "\n\n")
		b.WriteString(minimalAccent.Render(progressBar(state.Progress, 24, '▪', '·')) + "\n")
		b.WriteString(minimalSubtle.Render(strings.ToLower(state.Stage)) + "\n")

	case browser.Page:
		b.WriteString(minimalText.Render(truncate(state.Title, f.Width)) + "\n")
		b.WriteString(minimalSubtle.Render(truncate(state.URL, f.Width)) + "\n\n")

		for _, row := range summaryWindow(f.SummaryLines, f.Scroll, minimalSummaryRows(f, len(state.Links))) {
			b.WriteString(row + "\n")
		}

		if len(state.Links) > 0 {
			b.WriteString("\n")
			for _, row := range linkRows(state, f.SelectedLink, "▶ ") {
				b.WriteString(minimalSubtle.Render(truncate(row, f.Width)) + "\n")
			}
		}
		b.WriteString("\n" + minimalSubtle.Render("↑↓ scroll  ⏎ follow  g url  q quit"))

	case browser.URLInput:
		b.WriteString(minimalSubtle.Render("url") + "\n")
		b.WriteString(minimalText.Render(state.Buffer) + minimalAccent.Render("▌") + "\n")

	case browser.URLSuggestions:
		b.WriteString(minimalText.Render(fmt.Sprintf("unable to load %s", state.OriginalURL)) + "\n")
		b.WriteString(minimalSubtle.Render(state.ErrorMessage) + "\n\n")
		for _, row := range suggestionRows(state, "▶ ") {
			b.WriteString(minimalText.Render(row) + "\n")
		}
		b.WriteString("\n" + minimalSubtle.Render("↑↓ select  ⏎ confirm  esc cancel"))

	case browser.HistoryView:
		b.WriteString(minimalSubtle.Render("history") + "\n\n")
		for _, row := range historyRows(state, "▶ ") {
			b.WriteString(minimalText.Render(truncate(row, f.Width)) + "\n")
		}
		b.WriteString("\n" + minimalSubtle.Render("press any key to return"))

	case browser.ErrorView:
		b.WriteString(minimalText.Render(state.Message) + "\n\n")
		b.WriteString(minimalSubtle.Render("press any key to dismiss"))
	}

	return b.String()
}

func minimalSummaryRows(f Frame, linkCount int) int {
	rows := f.Height - 6 - linkCount
	if rows < 3 {
		rows = 3
	}
	return rows
}
