package browser

const historyCapacity = 100

// HistoryEntry is one visited page. Immutable once recorded.
type HistoryEntry struct {
	URL   string
	Title string
}

// History is a bounded, cursor-based log of visited pages. The cursor always
// points at a valid entry, or is -1 iff the log is empty.
type History struct {
	entries []HistoryEntry
	cursor  int
	maxSize int
}

func NewHistory() *History {
	return &History{cursor: -1, maxSize: historyCapacity}
}

// Add records a new visit. Navigating from a non-tail cursor discards the
// forward branch first. Exceeding capacity evicts the oldest entry and shifts
// the cursor down with it.
func (h *History) Add(url, title string) {
	if h.cursor >= 0 && h.cursor < len(h.entries)-1 {
		h.entries = h.entries[:h.cursor+1]
	}

	h.entries = append(h.entries, HistoryEntry{URL: url, Title: title})
	h.cursor = len(h.entries) - 1

	for len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
		if h.cursor > 0 {
			h.cursor--
		} else {
			h.cursor = -1
		}
	}
}

func (h *History) CanGoBack() bool {
	return h.cursor > 0
}

func (h *History) CanGoForward() bool {
	return h.cursor >= 0 && h.cursor < len(h.entries)-1
}

// Back moves the cursor one entry back and returns it. Reports false at the
// oldest entry (or when empty) without moving.
func (h *History) Back() (HistoryEntry, bool) {
	if !h.CanGoBack() {
		return HistoryEntry{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Forward moves the cursor one entry forward and returns it. Reports false at
// the tail without moving.
func (h *History) Forward() (HistoryEntry, bool) {
	if !h.CanGoForward() {
		return HistoryEntry{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Current returns the entry at the cursor, or false when empty.
func (h *History) Current() (HistoryEntry, bool) {
	if h.cursor < 0 || h.cursor >= len(h.entries) {
		return HistoryEntry{}, false
	}
	return h.entries[h.cursor], true
}

// List returns a copy of the full ordered log, for display only.
func (h *History) List() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// CurrentIndex returns the cursor position, or -1 when empty.
func (h *History) CurrentIndex() int {
	return h.cursor
}

func (h *History) Len() int {
	return len(h.entries)
}
