package browser

import "skim/internal/extract"

// State is the session's interaction state. Exactly one variant is active at
// a time and the whole value is replaced on every transition.
type State interface {
	state()
}

// Loading is shown while the content pipeline runs for URL.
type Loading struct {
	URL      string
	Progress int
	Stage    string
}

// Page is a successfully loaded page.
type Page struct {
	URL     string
	Title   string
	Summary string
	Links   []extract.Link
}

// HistoryView lists the visit log. CurrentIndex is -1 when the log is empty.
type HistoryView struct {
	Entries      []HistoryEntry
	CurrentIndex int
}

// URLInput is the address entry prompt.
type URLInput struct {
	Buffer string
}

// URLSuggestions offers alternatives after a failed navigation. Selection
// wraps around in both directions.
type URLSuggestions struct {
	OriginalURL   string
	ErrorMessage  string
	Suggestions   []string
	SelectedIndex int
}

// ErrorView reports a navigation failure with no viable suggestions.
type ErrorView struct {
	Message string
}

func (Loading) state()        {}
func (Page) state()           {}
func (HistoryView) state()    {}
func (URLInput) state()       {}
func (URLSuggestions) state() {}
func (ErrorView) state()      {}

// ActionKind enumerates the semantic user actions the renderer can emit.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionFollowLink
	ActionFollowSelectedLink
	ActionGoBack
	ActionGoForward
	ActionShowHistory
	ActionEnterURL
	ActionConfirmInput
	ActionCancelInput
	ActionRefresh
	ActionInputChar
	ActionBackspace
	ActionSelectPrevSuggestion
	ActionSelectNextSuggestion
	ActionConfirmSuggestion
	ActionDismissError
)

// Action is one semantic user action with its payload.
type Action struct {
	Kind    ActionKind
	Char    rune   // ActionInputChar
	Ordinal int    // ActionFollowLink: 1-based ordinal; ActionFollowSelectedLink: 0-based index
	Text    string // ActionConfirmInput
}

// Command tells the interaction loop what a transition requires of it.
type Command int

const (
	CommandNone Command = iota
	CommandNavigate
	CommandQuit
)
