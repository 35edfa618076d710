package skin

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"skim/internal/browser"
)

// Classic is the default skin: bordered sections with a dark palette.
type Classic struct{}

func (Classic) Name() string { return "classic" }

type classicTheme struct {
	Title   lipgloss.Style
	URL     lipgloss.Style
	Section lipgloss.Style
	Body    lipgloss.Style
	Hint    lipgloss.Style
	Warn    lipgloss.Style
	Accent  lipgloss.Style
	Box     lipgloss.Style
}

func classicStyles() classicTheme {
	mauve := lipgloss.Color("#cba6f7")
	teal := lipgloss.Color("#94e2d5")
	red := lipgloss.Color("#f38ba8")
	text := lipgloss.Color("#cdd6f4")
	subtext := lipgloss.Color("#a6adc8")
	lavender := lipgloss.Color("#b4befe")
	surface := lipgloss.Color("#313244")

	return classicTheme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(mauve),
		URL:     lipgloss.NewStyle().Foreground(lavender),
		Section: lipgloss.NewStyle().Bold(true).Foreground(teal),
		Body:    lipgloss.NewStyle().Foreground(text),
		Hint:    lipgloss.NewStyle().Foreground(subtext),
		Warn:    lipgloss.NewStyle().Bold(true).Foreground(red),
		Accent:  lipgloss.NewStyle().Foreground(lavender).Background(surface).Padding(0, 1),
		Box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(surface).Padding(0, 1),
	}
}

func (c Classic) Render(f Frame) string {
	th := classicStyles()
	var b strings.Builder

	switch state := f.State.(type) {
	case browser.Loading:
		b.WriteString(th.Title.Render("skim") + "\n\n")
		b.WriteString(th.Section.Render("Loading") + " " + th.URL.Render(state.URL) + "\n")
		bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
		b.WriteString(bar.ViewAs(float64(state.Progress)/100) + "\n")
		b.WriteString(th.Hint.Render(state.Stage) + "\n")

	case browser.Page:
		header := th.Title.Render(truncate(state.Title, f.Width)) + "\n" + th.URL.Render(truncate(state.URL, f.Width))
		b.WriteString(header + "\n\n")

		b.WriteString(th.Section.Render("Summary") + "\n")
		rows := summaryWindow(f.SummaryLines, f.Scroll, classicSummaryRows(f, len(state.Links)))
		for _, row := range rows {
			b.WriteString(row + "\n")
		}

		if len(state.Links) > 0 {
			b.WriteString("\n" + th.Section.Render("Links") + "\n")
			for _, row := range linkRows(state, f.SelectedLink, "▶ ") {
				b.WriteString(th.Body.Render(truncate(row, f.Width)) + "\n")
			}
		}
		b.WriteString("\n" + th.Hint.Render("1-9 follow • shift+↑↓ select • ↑↓ scroll • b/f back/forward • h history • g url • r refresh • q quit"))

	case browser.URLInput:
		b.WriteString(th.Title.Render("skim") + "\n\n")
		b.WriteString(th.Box.Render(th.Section.Render("Enter URL")+"\n"+th.Body.Render(state.Buffer+"▌")) + "\n")
		b.WriteString(th.Hint.Render("enter confirm • esc cancel"))

	case browser.URLSuggestions:
		b.WriteString(th.Warn.Render("Unable to load: "+state.OriginalURL) + "\n")
		b.WriteString(th.Hint.Render(state.ErrorMessage) + "\n\n")
		b.WriteString(th.Section.Render("Did you mean") + "\n")
		for _, row := range suggestionRows(state, "▶ ") {
			b.WriteString(th.Body.Render(row) + "\n")
		}
		b.WriteString("\n" + th.Hint.Render("↑↓ select • enter confirm • esc cancel"))

	case browser.HistoryView:
		b.WriteString(th.Section.Render("History") + "\n\n")
		if len(state.Entries) == 0 {
			b.WriteString(th.Hint.Render("No pages visited yet") + "\n")
		}
		for _, row := range historyRows(state, "▶ ") {
			b.WriteString(th.Body.Render(truncate(row, f.Width)) + "\n")
		}
		b.WriteString("\n" + th.Hint.Render("press any key to return"))

	case browser.ErrorView:
		b.WriteString(th.Warn.Render("Error") + "\n\n")
		b.WriteString(th.Body.Render(state.Message) + "\n\n")
		b.WriteString(th.Hint.Render("press any key to dismiss"))
	}

	return b.String()
}

// classicSummaryRows budgets the vertical space left for the summary after
// the header, the link list and the hint bar.
func classicSummaryRows(f Frame, linkCount int) int {
	reserved := 8 + linkCount
	rows := f.Height - reserved
	if rows < 3 {
		rows = 3
	}
	return rows
}
