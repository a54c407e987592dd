// Package tui provides a Bubble Tea terminal UI for the questline engine.
package tui

// History keeps the most recent commands for Up/Down recall. A position
// equal to len(lines) means the player is typing fresh input.
type History struct {
	lines []string
	limit int
	pos   int
}

// NewHistory creates a history that remembers at most limit commands.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records a command, skipping a repeat of the last one, and ends any
// recall in progress.
func (h *History) Push(cmd string) {
	if n := len(h.lines); n == 0 || h.lines[n-1] != cmd {
		h.lines = append(h.lines, cmd)
		if over := len(h.lines) - h.limit; over > 0 {
			h.lines = h.lines[over:]
		}
	}
	h.Reset()
}

// Prev steps back to an older command, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.lines[h.pos], true
}

// Next steps toward the newest command. It reports false once recall
// runs past the newest entry.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.lines) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.lines) {
		return "", false
	}
	return h.lines[h.pos], true
}

// Reset ends recall.
func (h *History) Reset() {
	h.pos = len(h.lines)
}
