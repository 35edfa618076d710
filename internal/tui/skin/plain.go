package skin

import (
	"fmt"
	"strings"

	"skim/internal/browser"
)

// Plain renders without any styling. Useful on dumb terminals and when
// piping captures.
type Plain struct{}

func (Plain) Name() string { return "plain" }

func (p Plain) Render(f Frame) string {
	var b strings.Builder

	switch state := f.State.(type) {
	case browser.Loading:
		b.WriteString("Loading " + state.URL + "\n")
		b.WriteString(fmt.Sprintf("%d%% - %s\n", state.Progress, state.Stage))

	case browser.Page:
		b.WriteString(state.Title + "\n")
		b.WriteString(state.URL + "\n\n")
		for _, row := range summaryWindow(f.SummaryLines, f.Scroll, plainSummaryRows(f, len(state.Links))) {
			b.WriteString(row + "\n")
		}
		if len(state.Links) > 0 {
			b.WriteString("\nLinks:\n")
			for _, row := range linkRows(state, f.SelectedLink, "> ") {
				b.WriteString(row + "\n")
			}
		}
		b.WriteString("\n1-9 follow | up/down scroll | b/f back/forward | h history | g url | r refresh | q quit")

	case browser.URLInput:
		b.WriteString("Enter URL: " + state.Buffer + "\n")

	case browser.URLSuggestions:
		b.WriteString("Unable to load: " + state.OriginalURL + "\n")
		b.WriteString(state.ErrorMessage + "\n\nDid you mean:\n")
		for _, row := range suggestionRows(state, "> ") {
			b.WriteString(row + "\n")
		}
		b.WriteString("\nup/down select | enter confirm | esc cancel")

	case browser.HistoryView:
		b.WriteString("History:\n")
		for _, row := range historyRows(state, "> ") {
			b.WriteString(row + "\n")
		}
		b.WriteString("\npress any key to return")

	case browser.ErrorView:
		b.WriteString("Error: " + state.Message + "\n")
		b.WriteString("press any key to dismiss")
	}

	return b.String()
}

func plainSummaryRows(f Frame, linkCount int) int {
	rows := f.Height - 7 - linkCount
	if rows < 3 {
		rows = 3
	}
	return rows
}
