// Package skin renders the interaction state to a terminal frame. Each skin
// is a full visual treatment of the same state; the interaction loop picks
// one at startup and never switches.
package skin

import (
	"fmt"
	"sort"
	"strings"

	"skim/internal/browser"
)

// Frame is the snapshot a skin renders. SummaryLines is the markdown summary
// already rendered for the terminal, one row per element.
type Frame struct {
	State        browser.State
	SummaryLines []string
	Width        int
	Height       int
	Scroll       int
	SelectedLink int
}

type Skin interface {
	Name() string
	Render(f Frame) string
}

// DefaultName is the skin used when none is requested.
const DefaultName = "classic"

func registry() map[string]Skin {
	return map[string]Skin{
		"classic": Classic{},
		"minimal": Minimal{},
		"retro":   Retro{},
		"plain":   Plain{},
	}
}

// ByName resolves a skin. The error lists the available names.
func ByName(name string) (Skin, error) {
	if name == "" {
		name = DefaultName
	}
	s, ok := registry()[name]
	if !ok {
		return nil, fmt.Errorf("unknown skin %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names returns the available skin names, sorted.
func Names() []string {
	names := make([]string, 0, 4)
	for name := range registry() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// summaryWindow slices the rendered summary to the rows that fit, honoring
// the scroll offset. Scroll past the end shows the last row.
func summaryWindow(lines []string, scroll, rows int) []string {
	if rows < 1 || len(lines) == 0 {
		return nil
	}
	if scroll < 0 {
		scroll = 0
	}
	if scroll > len(lines)-1 {
		scroll = len(lines) - 1
	}
	end := scroll + rows
	if end > len(lines) {
		end = len(lines)
	}
	return lines[scroll:end]
}

// linkRows formats the numbered link list. selected marks the row chosen with
// shift+up/down; -1 means no keyboard selection.
func linkRows(state browser.Page, selected int, marker string) []string {
	rows := make([]string, 0, len(state.Links))
	for i, link := range state.Links {
		prefix := strings.Repeat(" ", len([]rune(marker)))
		if i == selected {
			prefix = marker
		}
		rows = append(rows, fmt.Sprintf("%s[%d] %s", prefix, link.Ordinal, link.Text))
	}
	return rows
}

// historyRows formats the visit list, newest last, marking the current entry.
func historyRows(view browser.HistoryView, marker string) []string {
	rows := make([]string, 0, len(view.Entries))
	for i, entry := range view.Entries {
		prefix := strings.Repeat(" ", len([]rune(marker)))
		if i == view.CurrentIndex {
			prefix = marker
		}
		rows = append(rows, fmt.Sprintf("%s%s - %s", prefix, entry.Title, entry.URL))
	}
	return rows
}

// suggestionRows formats the candidate URLs with the selection marker.
func suggestionRows(state browser.URLSuggestions, marker string) []string {
	rows := make([]string, 0, len(state.Suggestions))
	for i, suggestion := range state.Suggestions {
		prefix := strings.Repeat(" ", len([]rune(marker)))
		if i == state.SelectedIndex {
			prefix = marker
		}
		rows = append(rows, prefix+suggestion)
	}
	return rows
}

// progressBar draws a fixed-width bar for the given percentage.
func progressBar(percent, width int, fill, empty rune) string {
	if width < 1 {
		width = 20
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := width * percent / 100
	return strings.Repeat(string(fill), filled) + strings.Repeat(string(empty), width-filled)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if max < 1 || len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
