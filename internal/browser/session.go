// Package browser holds the session engine: the bounded history, the
// interaction state machine and the URL normalization and suggestion rules.
// It performs no I/O; the interaction loop drives navigations around it.
package browser

import (
	"fmt"
	"strings"

	"skim/internal/extract"
)

// Summary placeholder when returning to an already-visited page without
// re-running the pipeline. Summaries are not cached across this path.
const refreshHint = "Use 'r' to refresh for summary"

// Session owns the history, the current link list and the interaction state.
// All mutation happens through Apply and the navigation lifecycle methods,
// from a single goroutine.
type Session struct {
	history    *History
	links      []extract.Link
	state      State
	currentURL string
}

func NewSession() *Session {
	return &Session{
		history: NewHistory(),
		state:   URLInput{},
	}
}

func (s *Session) State() State          { return s.state }
func (s *Session) Links() []extract.Link { return s.links }
func (s *Session) History() *History     { return s.history }
func (s *Session) CurrentURL() string    { return s.currentURL }

// Apply handles one user action, mutating the state in place. When the action
// requires work the session cannot do itself it returns CommandNavigate with
// the target URL, or CommandQuit.
func (s *Session) Apply(action Action) (Command, string) {
	switch action.Kind {
	case ActionQuit:
		return CommandQuit, ""

	case ActionEnterURL:
		s.state = URLInput{}

	case ActionInputChar:
		if input, ok := s.state.(URLInput); ok {
			s.state = URLInput{Buffer: input.Buffer + string(action.Char)}
		}

	case ActionBackspace:
		if input, ok := s.state.(URLInput); ok && input.Buffer != "" {
			runes := []rune(input.Buffer)
			s.state = URLInput{Buffer: string(runes[:len(runes)-1])}
		}

	case ActionConfirmInput:
		if strings.TrimSpace(action.Text) != "" {
			return CommandNavigate, action.Text
		}

	case ActionCancelInput:
		if !s.returnToPage() {
			if _, ok := s.state.(URLSuggestions); ok {
				s.state = URLInput{}
			}
		}

	case ActionFollowLink:
		for _, link := range s.links {
			if link.Ordinal == action.Ordinal {
				return CommandNavigate, link.URL
			}
		}

	case ActionFollowSelectedLink:
		if action.Ordinal >= 0 && action.Ordinal < len(s.links) {
			return CommandNavigate, s.links[action.Ordinal].URL
		}

	case ActionGoBack:
		switch s.state.(type) {
		case HistoryView, ErrorView:
			s.returnToPage()
		default:
			if entry, ok := s.history.Back(); ok {
				return CommandNavigate, entry.URL
			}
		}

	case ActionGoForward:
		if entry, ok := s.history.Forward(); ok {
			return CommandNavigate, entry.URL
		}

	case ActionShowHistory:
		s.state = HistoryView{
			Entries:      s.history.List(),
			CurrentIndex: s.history.CurrentIndex(),
		}

	case ActionRefresh:
		if _, ok := s.state.(ErrorView); ok {
			s.returnToPage()
			break
		}
		if s.currentURL != "" {
			return CommandNavigate, s.currentURL
		}

	case ActionSelectPrevSuggestion:
		if sugg, ok := s.state.(URLSuggestions); ok && len(sugg.Suggestions) > 0 {
			sugg.SelectedIndex--
			if sugg.SelectedIndex < 0 {
				sugg.SelectedIndex = len(sugg.Suggestions) - 1
			}
			s.state = sugg
		}

	case ActionSelectNextSuggestion:
		if sugg, ok := s.state.(URLSuggestions); ok && len(sugg.Suggestions) > 0 {
			sugg.SelectedIndex = (sugg.SelectedIndex + 1) % len(sugg.Suggestions)
			s.state = sugg
		}

	case ActionConfirmSuggestion:
		if sugg, ok := s.state.(URLSuggestions); ok && len(sugg.Suggestions) > 0 {
			return CommandNavigate, sugg.Suggestions[sugg.SelectedIndex]
		}

	case ActionDismissError:
		if !s.returnToPage() {
			s.state = URLInput{}
		}
	}

	return CommandNone, ""
}

// BeginNavigation normalizes raw and enters Loading. On a syntax error the
// state is left untouched; callers route the error through FailNavigation so
// the loop survives it.
func (s *Session) BeginNavigation(raw string) (string, error) {
	normalized, err := NormalizeURL(raw)
	if err != nil {
		return "", err
	}
	s.currentURL = normalized
	s.state = Loading{URL: normalized, Progress: 0, Stage: "Starting..."}
	return normalized, nil
}

// SetProgress updates the Loading stage indicator. Informational only.
func (s *Session) SetProgress(percent int, stage string) {
	if loading, ok := s.state.(Loading); ok {
		s.state = Loading{URL: loading.URL, Progress: percent, Stage: stage}
	}
}

// CompleteNavigation applies a successful pipeline run: the visit is pushed
// onto the history and the link list is swapped. This is the only success
// boundary at which either is mutated.
func (s *Session) CompleteNavigation(url, title, summary string, links []extract.Link) {
	s.links = links
	s.history.Add(url, title)
	s.state = Page{URL: url, Title: title, Summary: summary, Links: links}
}

// FailNavigation applies a failed navigation. suggested carries the
// suggester's candidates; when it is empty, local fallbacks are synthesized
// from the failed input. With no viable candidates the session shows an
// error instead.
func (s *Session) FailNavigation(failedURL string, cause error, suggested []string) {
	suggestions := suggested
	if len(suggestions) == 0 {
		suggestions = FallbackSuggestions(failedURL)
	}
	if len(suggestions) == 0 {
		s.state = ErrorView{Message: fmt.Sprintf("Failed to load page: %v", cause)}
		return
	}
	s.state = URLSuggestions{
		OriginalURL:  failedURL,
		ErrorMessage: cause.Error(),
		Suggestions:  suggestions,
	}
}

// returnToPage restores the Page state for the current history entry with the
// placeholder summary. Reports false when the history is empty.
func (s *Session) returnToPage() bool {
	current, ok := s.history.Current()
	if !ok {
		return false
	}
	s.state = Page{
		URL:     current.URL,
		Title:   current.Title,
		Summary: refreshHint,
		Links:   s.links,
	}
	return true
}
