package skin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"skim/internal/browser"
)

// Retro mimics an amber-and-green terminal workstation, all caps chrome.
type Retro struct{}

func (Retro) Name() string { return "retro" }

var (
	retroAmber = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffb000"))
	retroGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("#33ff33"))
	retroGray  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a"))
	retroRed   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff3333"))
)

func retroRule(width int) string {
	if width < 10 {
		width = 60
	}
	return retroAmber.Render(strings.Repeat("═", width))
}

func (r Retro) Render(f Frame) string {
	var b strings.Builder
	b.WriteString(retroRule(f.Width) + "\n")
	b.WriteString(retroAmber.Render("SKIM NETWORK TERMINAL") + "\n")
	b.WriteString(retroRule(f.Width) + "\n")

	switch state := f.State.(type) {
	case browser.Loading:
		b.WriteString(retroGreen.Render(fmt.Sprintf("TARGET: %s", state.URL)) + "\n")
		b.WriteString(retroGreen.Render(fmt.Sprintf("[%s] %d%% COMPLETE", progressBar(state.Progress, 30, '█', '─'), state.Progress)) + "\n")
		b.WriteString(retroGray.Render("OPERATION: "+strings.ToUpper(state.Stage)) + "\n")

	case browser.Page:
		b.WriteString(retroGreen.Render("DOCUMENT: "+strings.ToUpper(truncate(state.Title, f.Width))) + "\n")
		b.WriteString(retroGray.Render("ADDRESS: "+truncate(state.URL, f.Width)) + "\n\n")

		b.WriteString(retroAmber.Render("── DATA ANALYSIS ──") + "\n")
		rows := summaryWindow(f.SummaryLines, f.Scroll, retroSummaryRows(f, len(state.Links)))
		if len(rows) == 0 {
			b.WriteString(retroGray.Render("[ NO DATA AVAILABLE ]") + "\n")
		}
		for _, row := range rows {
			b.WriteString(row + "\n")
		}

		b.WriteString("\n" + retroAmber.Render("── NAVIGATION LINKS ──") + "\n")
		if len(state.Links) == 0 {
			b.WriteString(retroGray.Render("[ NO LINKS DETECTED ]") + "\n")
		}
		for _, row := range linkRows(state, f.SelectedLink, "► ") {
			b.WriteString(retroGreen.Render(truncate(row, f.Width)) + "\n")
		}
		b.WriteString("\n" + retroGray.Render("COMMANDS: 1-9 FOLLOW  B/F MOVE  H LOG  G URL  R RELOAD  Q TERMINATE"))

	case browser.URLInput:
		b.WriteString(retroGreen.Render("ENTER NETWORK DESTINATION:") + "\n")
		b.WriteString(retroGreen.Render("> "+state.Buffer+"_") + "\n")

	case browser.URLSuggestions:
		b.WriteString(retroRed.Render("ACCESS FAILURE: "+state.OriginalURL) + "\n")
		b.WriteString(retroGray.Render(strings.ToUpper(state.ErrorMessage)) + "\n\n")
		b.WriteString(retroAmber.Render("ALTERNATE ROUTES:") + "\n")
		for _, row := range suggestionRows(state, "► ") {
			b.WriteString(retroGreen.Render(row) + "\n")
		}
		b.WriteString("\n" + retroGray.Render("↑↓ SELECT  ⏎ EXECUTE  ESC ABORT"))

	case browser.HistoryView:
		b.WriteString(retroAmber.Render("ACCESS HISTORY LOG") + "\n\n")
		for _, row := range historyRows(state, "► ") {
			b.WriteString(retroGreen.Render(truncate(row, f.Width)) + "\n")
		}
		b.WriteString("\n" + retroGray.Render("PRESS ANY KEY TO RESUME"))

	case browser.ErrorView:
		b.WriteString(retroRed.Render("SYSTEM FAULT") + "\n\n")
		b.WriteString(retroGreen.Render(state.Message) + "\n\n")
		b.WriteString(retroGray.Render("PRESS ANY KEY TO RECOVER"))
	}

	return b.String()
}

func retroSummaryRows(f Frame, linkCount int) int {
	rows := f.Height - 11 - linkCount
	if rows < 3 {
		rows = 3
	}
	return rows
}
