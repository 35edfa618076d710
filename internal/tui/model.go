// Package tui runs the interaction loop: it maps keys to session actions,
// drives the content pipeline in the background and renders frames through
// the active skin.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"skim/internal/browser"
	"skim/internal/pipeline"
	"skim/internal/tui/skin"
)

// Loader runs the staged fetch-extract-summarize pipeline for one URL.
type Loader interface {
	Load(ctx context.Context, pageURL string, report pipeline.ProgressFunc) (pipeline.PageContent, error)
}

// Suggester proposes corrected URLs after a failed navigation.
type Suggester interface {
	SuggestURLs(ctx context.Context, input, errorMessage string) ([]string, error)
}

// VisitRecorder appends successful navigations to the visit log. Recording
// is best effort; failures never interrupt browsing.
type VisitRecorder interface {
	SaveVisit(ctx context.Context, url, title string) error
}

type progressEvent struct {
	percent int
	stage   string
}

type startNavigationMsg struct {
	url string
}

type progressMsg struct {
	seq     int
	percent int
	stage   string
}

type navigationSuccessMsg struct {
	seq     int
	url     string
	content pipeline.PageContent
}

// navigationFailureMsg carries the user's raw input, not the normalized URL:
// the suggester prompt, the local fallback rules and the suggestion view all
// work on what the user actually typed.
type navigationFailureMsg struct {
	seq         int
	input       string
	err         error
	suggestions []string
}

type Model struct {
	session   *browser.Session
	loader    Loader
	suggester Suggester
	visits    VisitRecorder
	skin      skin.Skin

	startURL     string
	navSeq       int
	progress     chan progressEvent
	rawSummary   string
	summaryLines []string
	scroll       int
	selectedLink int
	width        int
	height       int
}

func NewModel(loader Loader, suggester Suggester, visits VisitRecorder, sk skin.Skin, startURL string) Model {
	return Model{
		session:      browser.NewSession(),
		loader:       loader,
		suggester:    suggester,
		visits:       visits,
		skin:     sk,
		startURL: startURL,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	if m.startURL == "" {
		return nil
	}
	url := m.startURL
	return func() tea.Msg {
		return startNavigationMsg{url: url}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.rawSummary != "" {
			m.summaryLines = m.renderSummary(m.rawSummary)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case startNavigationMsg:
		return m.startNavigation(msg.url)

	case progressMsg:
		if msg.seq != m.navSeq {
			return m, nil
		}
		m.session.SetProgress(msg.percent, msg.stage)
		return m, listenProgressCmd(msg.seq, m.progress)

	case navigationSuccessMsg:
		if msg.seq != m.navSeq {
			return m, nil
		}
		m.session.CompleteNavigation(msg.url, msg.content.Title, msg.content.Summary, msg.content.Links)
		m.rawSummary = msg.content.Summary
		m.summaryLines = m.renderSummary(m.rawSummary)
		m.scroll = 0
		// Selection starts on the first link so enter follows it right away.
		m.selectedLink = 0
		return m, saveVisitCmd(m.visits, msg.url, msg.content.Title)

	case navigationFailureMsg:
		if msg.seq != m.navSeq {
			return m, nil
		}
		m.session.FailNavigation(msg.input, msg.err, msg.suggestions)
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	return m.skin.Render(skin.Frame{
		State:        m.session.State(),
		SummaryLines: m.summaryLines,
		Width:        m.width,
		Height:       m.height,
		Scroll:       m.scroll,
		SelectedLink: m.selectedLink,
	})
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch state := m.session.State().(type) {
	case browser.Loading:
		// No cancellation mid-pipeline; keys are dropped until it ends.
		return m, nil

	case browser.Page:
		return m.handlePageKey(msg, state)

	case browser.URLInput:
		return m.handleInputKey(msg, state)

	case browser.URLSuggestions:
		switch msg.String() {
		case "q":
			return m.applyAction(browser.Action{Kind: browser.ActionQuit})
		case "up", "shift+tab":
			return m.applyAction(browser.Action{Kind: browser.ActionSelectPrevSuggestion})
		case "down", "tab":
			return m.applyAction(browser.Action{Kind: browser.ActionSelectNextSuggestion})
		case "enter":
			return m.applyAction(browser.Action{Kind: browser.ActionConfirmSuggestion})
		case "esc":
			return m.applyAction(browser.Action{Kind: browser.ActionCancelInput})
		}
		return m, nil

	case browser.HistoryView:
		// Any key returns to the page.
		return m.applyAction(browser.Action{Kind: browser.ActionGoBack})

	case browser.ErrorView:
		if msg.String() == "r" {
			return m.applyAction(browser.Action{Kind: browser.ActionRefresh})
		}
		return m.applyAction(browser.Action{Kind: browser.ActionDismissError})
	}

	return m, nil
}

func (m Model) handlePageKey(msg tea.KeyMsg, state browser.Page) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m.applyAction(browser.Action{Kind: browser.ActionQuit})
	case "b":
		return m.applyAction(browser.Action{Kind: browser.ActionGoBack})
	case "f":
		return m.applyAction(browser.Action{Kind: browser.ActionGoForward})
	case "h":
		return m.applyAction(browser.Action{Kind: browser.ActionShowHistory})
	case "g":
		return m.applyAction(browser.Action{Kind: browser.ActionEnterURL})
	case "r":
		return m.applyAction(browser.Action{Kind: browser.ActionRefresh})
	case "up":
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil
	case "down":
		if m.scroll < len(m.summaryLines)-1 {
			m.scroll++
		}
		return m, nil
	case "shift+up":
		if m.selectedLink > 0 {
			m.selectedLink--
		}
		return m, nil
	case "shift+down":
		if len(state.Links) > 0 && m.selectedLink < len(state.Links)-1 {
			m.selectedLink++
		}
		return m, nil
	case "enter":
		return m.applyAction(browser.Action{Kind: browser.ActionFollowSelectedLink, Ordinal: m.selectedLink})
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		ordinal := int(key[0] - '0')
		return m.applyAction(browser.Action{Kind: browser.ActionFollowLink, Ordinal: ordinal})
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg, state browser.URLInput) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.applyAction(browser.Action{Kind: browser.ActionCancelInput})
	case tea.KeyEnter:
		return m.applyAction(browser.Action{Kind: browser.ActionConfirmInput, Text: state.Buffer})
	case tea.KeyBackspace:
		return m.applyAction(browser.Action{Kind: browser.ActionBackspace})
	case tea.KeySpace:
		return m.applyAction(browser.Action{Kind: browser.ActionInputChar, Char: ' '})
	case tea.KeyRunes:
		model := tea.Model(m)
		var cmd tea.Cmd
		for _, r := range msg.Runes {
			model, cmd = model.(Model).applyAction(browser.Action{Kind: browser.ActionInputChar, Char: r})
		}
		return model, cmd
	}
	return m, nil
}

func (m Model) applyAction(action browser.Action) (tea.Model, tea.Cmd) {
	command, target := m.session.Apply(action)
	switch command {
	case browser.CommandQuit:
		return m, tea.Quit
	case browser.CommandNavigate:
		return m.startNavigation(target)
	}
	return m, nil
}

// startNavigation normalizes the input, enters Loading and kicks off the
// pipeline. URL syntax errors go through the same failure path as network
// errors so the suggester gets a chance to correct them.
func (m Model) startNavigation(raw string) (tea.Model, tea.Cmd) {
	m.navSeq++
	seq := m.navSeq

	normalized, err := m.session.BeginNavigation(raw)
	if err != nil {
		return m, failNavigationCmd(m.suggester, seq, raw, err)
	}

	ch := make(chan progressEvent, 8)
	m.progress = ch
	return m, tea.Batch(
		loadPageCmd(m.loader, m.suggester, seq, raw, normalized, ch),
		listenProgressCmd(seq, ch),
	)
}

func (m Model) renderSummary(summary string) []string {
	width := m.width
	if width < 20 {
		width = 80
	}
	options := []glamour.TermRendererOption{glamour.WithWordWrap(width - 2)}
	if m.skin != nil && m.skin.Name() == "plain" {
		options = append(options, glamour.WithStandardStyle("notty"))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	renderer, err := glamour.NewTermRenderer(options...)
	if err == nil {
		if out, renderErr := renderer.Render(summary); renderErr == nil {
			return strings.Split(strings.TrimRight(out, "\n"), "\n")
		}
	}
	return strings.Split(summary, "\n")
}

func loadPageCmd(loader Loader, suggester Suggester, seq int, input, pageURL string, ch chan progressEvent) tea.Cmd {
	return func() tea.Msg {
		content, err := loader.Load(context.Background(), pageURL, func(percent int, stage string) {
			ch <- progressEvent{percent: percent, stage: stage}
		})
		close(ch)
		if err != nil {
			return navigationFailureMsg{
				seq:         seq,
				input:       input,
				err:         err,
				suggestions: suggest(suggester, input, err),
			}
		}
		return navigationSuccessMsg{seq: seq, url: pageURL, content: content}
	}
}

func failNavigationCmd(suggester Suggester, seq int, input string, cause error) tea.Cmd {
	return func() tea.Msg {
		return navigationFailureMsg{
			seq:         seq,
			input:       input,
			err:         cause,
			suggestions: suggest(suggester, input, cause),
		}
	}
}

// suggest asks the suggester for candidates. Suggester failures collapse to
// an empty list so the local fallback rules take over.
func suggest(suggester Suggester, input string, cause error) []string {
	if suggester == nil {
		return nil
	}
	suggestions, err := suggester.SuggestURLs(context.Background(), input, cause.Error())
	if err != nil {
		return nil
	}
	return suggestions
}

func listenProgressCmd(seq int, ch <-chan progressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg{seq: seq, percent: event.percent, stage: event.stage}
	}
}

func saveVisitCmd(visits VisitRecorder, url, title string) tea.Cmd {
	if visits == nil {
		return nil
	}
	return func() tea.Msg {
		_ = visits.SaveVisit(context.Background(), url, title)
		return nil
	}
}
