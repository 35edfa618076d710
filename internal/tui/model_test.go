package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"skim/internal/browser"
	"skim/internal/extract"
	"skim/internal/pipeline"
	"skim/internal/tui/skin"
)

type fakeLoader struct {
	content pipeline.PageContent
	err     error
	stages  []int
}

func (f *fakeLoader) Load(ctx context.Context, pageURL string, report pipeline.ProgressFunc) (pipeline.PageContent, error) {
	for _, percent := range f.stages {
		report(percent, "working")
	}
	return f.content, f.err
}

type fakeSuggester struct {
	urls []string
	err  error
}

func (f *fakeSuggester) SuggestURLs(ctx context.Context, input, errorMessage string) ([]string, error) {
	return f.urls, f.err
}

type fakeVisits struct {
	mu    sync.Mutex
	saved []string
}

func (f *fakeVisits) SaveVisit(ctx context.Context, url, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, url)
	return nil
}

func testModel() Model {
	sk, _ := skin.ByName("plain")
	return NewModel(&fakeLoader{}, &fakeSuggester{}, nil, sk, "")
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleContent() pipeline.PageContent {
	return pipeline.PageContent{
		Title:   "Example",
		Summary: "a summary",
		Links: []extract.Link{
			{Text: "First", URL: "https://example.com/a", Ordinal: 1},
			{Text: "Second", URL: "https://example.com/b", Ordinal: 2},
		},
	}
}

// loadedModel drives the model through one full successful navigation.
func loadedModel(t *testing.T) Model {
	t.Helper()
	m := testModel()

	next, _ := m.Update(startNavigationMsg{url: "https://example.com"})
	m = next.(Model)
	if _, ok := m.session.State().(browser.Loading); !ok {
		t.Fatalf("state = %T, want Loading", m.session.State())
	}

	next, _ = m.Update(navigationSuccessMsg{seq: 1, url: "https://example.com/", content: sampleContent()})
	m = next.(Model)
	if _, ok := m.session.State().(browser.Page); !ok {
		t.Fatalf("state = %T, want Page", m.session.State())
	}
	return m
}

func TestModel_TypingAndConfirmStartsNavigation(t *testing.T) {
	m := testModel()

	next, _ := m.Update(keyMsg("example.com"))
	m = next.(Model)
	input, ok := m.session.State().(browser.URLInput)
	if !ok || input.Buffer != "example.com" {
		t.Fatalf("state = %#v", m.session.State())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	loading, ok := m.session.State().(browser.Loading)
	if !ok {
		t.Fatalf("state = %T, want Loading", m.session.State())
	}
	if loading.URL != "https://example.com/" {
		t.Fatalf("loading URL = %q", loading.URL)
	}
	if cmd == nil {
		t.Fatal("expected a pipeline command")
	}
}

func TestModel_ProgressUpdatesLoadingState(t *testing.T) {
	m := testModel()
	next, _ := m.Update(startNavigationMsg{url: "https://example.com"})
	m = next.(Model)

	next, cmd := m.Update(progressMsg{seq: 1, percent: 50, stage: "Extracting text content..."})
	m = next.(Model)
	loading := m.session.State().(browser.Loading)
	if loading.Progress != 50 || loading.Stage != "Extracting text content..." {
		t.Fatalf("unexpected loading state: %+v", loading)
	}
	if cmd == nil {
		t.Fatal("expected the progress listener to be re-armed")
	}
}

func TestModel_NavigationSuccess(t *testing.T) {
	m := loadedModel(t)

	page := m.session.State().(browser.Page)
	if page.Title != "Example" || len(page.Links) != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if len(m.summaryLines) == 0 {
		t.Fatal("summary was not rendered")
	}
	if m.scroll != 0 || m.selectedLink != 0 {
		t.Fatalf("scroll/selection not reset: %d %d", m.scroll, m.selectedLink)
	}
}

func TestModel_StaleMessagesIgnored(t *testing.T) {
	m := loadedModel(t)

	next, _ := m.Update(navigationFailureMsg{seq: 0, input: "x", err: errors.New("late")})
	m = next.(Model)
	if _, ok := m.session.State().(browser.Page); !ok {
		t.Fatalf("stale failure changed state to %T", m.session.State())
	}

	next, _ = m.Update(progressMsg{seq: 99, percent: 10, stage: "late"})
	m = next.(Model)
	if _, ok := m.session.State().(browser.Page); !ok {
		t.Fatalf("stale progress changed state to %T", m.session.State())
	}
}

func TestModel_NavigationFailureShowsSuggestions(t *testing.T) {
	m := testModel()
	next, _ := m.Update(startNavigationMsg{url: "https://example.com"})
	m = next.(Model)

	next, _ = m.Update(navigationFailureMsg{
		seq:         1,
		input:       "example.com",
		err:         errors.New("no such host"),
		suggestions: []string{"https://www.example.com/"},
	})
	m = next.(Model)

	sugg, ok := m.session.State().(browser.URLSuggestions)
	if !ok {
		t.Fatalf("state = %T, want URLSuggestions", m.session.State())
	}
	if len(sugg.Suggestions) != 1 || sugg.Suggestions[0] != "https://www.example.com/" {
		t.Fatalf("suggestions = %v", sugg.Suggestions)
	}
}

// runCmds executes a command tree depth-first, flattening batches, and
// returns the produced messages.
func runCmds(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, sub := range batch {
			msgs = append(msgs, runCmds(sub)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// Typing a bare word must surface suggestions built from the raw input, not
// from the normalized URL: "wired" should offer wired.com variants, never
// "https://www.wired/".
func TestModel_BareWordFailureSuggestsRealSites(t *testing.T) {
	sk, _ := skin.ByName("plain")
	loader := &fakeLoader{err: errors.New("no such host")}
	suggester := &fakeSuggester{err: errors.New("api down")}
	m := NewModel(loader, suggester, nil, sk, "")

	next, _ := m.Update(keyMsg("wired"))
	m = next.(Model)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	for _, msg := range runCmds(cmd) {
		next, _ = m.Update(msg)
		m = next.(Model)
	}

	sugg, ok := m.session.State().(browser.URLSuggestions)
	if !ok {
		t.Fatalf("state = %T, want URLSuggestions", m.session.State())
	}
	if sugg.OriginalURL != "wired" {
		t.Fatalf("OriginalURL = %q, want the raw input", sugg.OriginalURL)
	}

	got := strings.Join(sugg.Suggestions, " ")
	for _, want := range []string{"https://www.wired.com", "https://wired.com"} {
		if !strings.Contains(got, want) {
			t.Fatalf("suggestions %v missing %q", sugg.Suggestions, want)
		}
	}
	for _, suggestion := range sugg.Suggestions {
		if strings.HasSuffix(suggestion, "wired/") || strings.HasSuffix(suggestion, "wired") {
			t.Fatalf("suggestion %q built from the normalized URL", suggestion)
		}
	}
}

func TestModel_QuitFromSuggestions(t *testing.T) {
	m := testModel()
	next, _ := m.Update(startNavigationMsg{url: "https://example.com"})
	m = next.(Model)
	next, _ = m.Update(navigationFailureMsg{
		seq:         1,
		input:       "example.com",
		err:         errors.New("no such host"),
		suggestions: []string{"https://www.example.com/"},
	})
	m = next.(Model)
	if _, ok := m.session.State().(browser.URLSuggestions); !ok {
		t.Fatalf("state = %T, want URLSuggestions", m.session.State())
	}

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestModel_KeysIgnoredWhileLoading(t *testing.T) {
	m := testModel()
	next, _ := m.Update(startNavigationMsg{url: "https://example.com"})
	m = next.(Model)

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if cmd != nil {
		t.Fatal("keys during loading must be dropped")
	}
	if _, ok := m.session.State().(browser.Loading); !ok {
		t.Fatalf("state = %T, want Loading", m.session.State())
	}
}

func TestModel_PageKeys(t *testing.T) {
	m := loadedModel(t)

	// g opens the URL prompt.
	next, _ := m.Update(keyMsg("g"))
	if _, ok := next.(Model).session.State().(browser.URLInput); !ok {
		t.Fatalf("state after g = %T", next.(Model).session.State())
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := loadedModel(t)

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestModel_DigitFollowsLink(t *testing.T) {
	m := loadedModel(t)

	next, cmd := m.Update(keyMsg("2"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	if loading, ok := m.session.State().(browser.Loading); !ok || loading.URL != "https://example.com/b" {
		t.Fatalf("state after 2 = %#v", m.session.State())
	}
}

func TestModel_HistoryRoundTrip(t *testing.T) {
	m := loadedModel(t)

	next, _ := m.Update(keyMsg("h"))
	m = next.(Model)
	if _, ok := m.session.State().(browser.HistoryView); !ok {
		t.Fatalf("state = %T, want HistoryView", m.session.State())
	}

	next, _ = m.Update(keyMsg("x"))
	m = next.(Model)
	page, ok := m.session.State().(browser.Page)
	if !ok {
		t.Fatalf("state = %T, want Page", m.session.State())
	}
	if page.Summary != "Use 'r' to refresh for summary" {
		t.Fatalf("summary = %q", page.Summary)
	}
}

func TestModel_LinkSelection(t *testing.T) {
	m := loadedModel(t)

	// Selection starts on the first link.
	if m.selectedLink != 0 {
		t.Fatalf("selectedLink = %d, want 0", m.selectedLink)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})
	m = next.(Model)
	if m.selectedLink != 1 {
		t.Fatalf("selectedLink = %d, want 1", m.selectedLink)
	}

	// Clamped at the last link.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})
	m = next.(Model)
	if m.selectedLink != 1 {
		t.Fatalf("selectedLink = %d, want 1", m.selectedLink)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftUp})
	m = next.(Model)
	if m.selectedLink != 0 {
		t.Fatalf("selectedLink = %d, want 0", m.selectedLink)
	}

	// Clamped at the first link.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftUp})
	m = next.(Model)
	if m.selectedLink != 0 {
		t.Fatalf("selectedLink = %d, want 0", m.selectedLink)
	}
}

func TestModel_EnterFollowsFirstLinkByDefault(t *testing.T) {
	m := loadedModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected navigation command for selected link")
	}
	if loading, ok := m.session.State().(browser.Loading); !ok || loading.URL != "https://example.com/a" {
		t.Fatalf("state = %#v", m.session.State())
	}
}

func TestModel_EnterFollowsSelectedLink(t *testing.T) {
	m := loadedModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})
	m = next.(Model)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected navigation command for selected link")
	}
	if loading, ok := m.session.State().(browser.Loading); !ok || loading.URL != "https://example.com/b" {
		t.Fatalf("state = %#v", m.session.State())
	}
}

func TestModel_ScrollClamps(t *testing.T) {
	m := loadedModel(t)
	m.summaryLines = []string{"a", "b", "c"}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.scroll != 0 {
		t.Fatalf("scroll = %d, want 0", m.scroll)
	}

	for i := 0; i < 10; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(Model)
	}
	if m.scroll != 2 {
		t.Fatalf("scroll = %d, want 2", m.scroll)
	}
}

func TestModel_ErrorViewKeys(t *testing.T) {
	m := testModel()
	next, _ := m.Update(startNavigationMsg{url: "https://example.com"})
	m = next.(Model)
	next, _ = m.Update(navigationFailureMsg{seq: 1, input: "", err: errors.New("boom")})
	m = next.(Model)
	if _, ok := m.session.State().(browser.ErrorView); !ok {
		t.Fatalf("state = %T, want ErrorView", m.session.State())
	}

	next, _ = m.Update(keyMsg("x"))
	m = next.(Model)
	if _, ok := m.session.State().(browser.URLInput); !ok {
		t.Fatalf("state = %T, want URLInput without history", m.session.State())
	}
}

func TestLoadPageCmd_Success(t *testing.T) {
	loader := &fakeLoader{content: sampleContent(), stages: []int{25, 50, 75, 90, 100}}
	ch := make(chan progressEvent, 8)

	msg := loadPageCmd(loader, nil, 1, "example.com", "https://example.com/", ch)()

	success, ok := msg.(navigationSuccessMsg)
	if !ok {
		t.Fatalf("msg = %T, want navigationSuccessMsg", msg)
	}
	if success.content.Title != "Example" {
		t.Fatalf("title = %q", success.content.Title)
	}

	var percents []int
	for event := range ch {
		percents = append(percents, event.percent)
	}
	if len(percents) != 5 || percents[0] != 25 || percents[4] != 100 {
		t.Fatalf("progress events = %v", percents)
	}
}

func TestLoadPageCmd_FailureAsksSuggester(t *testing.T) {
	loader := &fakeLoader{err: errors.New("no such host")}
	suggester := &fakeSuggester{urls: []string{"https://www.example.com"}}
	ch := make(chan progressEvent, 8)

	msg := loadPageCmd(loader, suggester, 1, "example.com", "https://example.com/", ch)()

	failure, ok := msg.(navigationFailureMsg)
	if !ok {
		t.Fatalf("msg = %T, want navigationFailureMsg", msg)
	}
	if len(failure.suggestions) != 1 {
		t.Fatalf("suggestions = %v", failure.suggestions)
	}
	if failure.input != "example.com" {
		t.Fatalf("input = %q, want the raw input", failure.input)
	}
}

func TestLoadPageCmd_SuggesterErrorCollapsesToNil(t *testing.T) {
	loader := &fakeLoader{err: errors.New("boom")}
	suggester := &fakeSuggester{err: errors.New("api down")}
	ch := make(chan progressEvent, 8)

	msg := loadPageCmd(loader, suggester, 1, "example.com", "https://example.com/", ch)()

	failure := msg.(navigationFailureMsg)
	if failure.suggestions != nil {
		t.Fatalf("suggestions = %v, want nil", failure.suggestions)
	}
}

func TestSaveVisitCmd(t *testing.T) {
	visits := &fakeVisits{}
	cmd := saveVisitCmd(visits, "https://example.com/", "Example")
	if cmd == nil {
		t.Fatal("expected command")
	}
	cmd()
	if len(visits.saved) != 1 || visits.saved[0] != "https://example.com/" {
		t.Fatalf("saved = %v", visits.saved)
	}

	if saveVisitCmd(nil, "x", "y") != nil {
		t.Fatal("nil recorder should yield no command")
	}
}

func TestModel_ViewRendersEveryState(t *testing.T) {
	m := loadedModel(t)
	if out := m.View(); !strings.Contains(out, "Example") {
		t.Fatalf("page view missing title:\n%s", out)
	}

	next, _ := m.Update(keyMsg("g"))
	m = next.(Model)
	if out := m.View(); !strings.Contains(out, "Enter URL") {
		t.Fatalf("input view missing prompt:\n%s", out)
	}
}
