// Package tui provides a Bubble Tea terminal UI for playing Tube Roulette.
package tui

import "strings"

// answered is one recorded reply and the kind of prompt it answered.
type answered struct {
	text string
	kind promptKind
}

// History recalls earlier answers with Up/Down. Recall is scoped to the
// prompt being answered: at the aim prompt only earlier aims come back,
// at the item prompt only earlier item picks. Slash commands are not kept.
type History struct {
	entries []answered
	max     int
	cursor  int // -1 = not navigating, else index into entries
}

// NewHistory creates a history holding at most max answers.
func NewHistory(max int) *History {
	return &History{
		entries: make([]answered, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// Push records an answer given at a prompt of the given kind. Blank input,
// slash commands, and a repeat of the last answer to the same kind are
// dropped.
func (h *History) Push(text string, kind promptKind) {
	if text == "" || strings.HasPrefix(text, "/") {
		return
	}
	if last, ok := h.last(kind); ok && last == text {
		return
	}
	h.entries = append(h.entries, answered{text: text, kind: kind})
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Prev steps to the previous answer for kind. At the oldest match it stays
// put. Returns ("", false) if nothing for kind was recorded.
func (h *History) Prev(kind promptKind) (string, bool) {
	start := len(h.entries) - 1
	if h.cursor != -1 {
		start = h.cursor - 1
	}
	for i := start; i >= 0; i-- {
		if h.entries[i].kind == kind {
			h.cursor = i
			return h.entries[i].text, true
		}
	}
	if h.cursor != -1 && h.entries[h.cursor].kind == kind {
		return h.entries[h.cursor].text, true
	}
	return "", false
}

// Next steps to the next newer answer for kind. Returns ("", false) once
// past the newest, which ends navigation.
func (h *History) Next(kind promptKind) (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	for i := h.cursor + 1; i < len(h.entries); i++ {
		if h.entries[i].kind == kind {
			h.cursor = i
			return h.entries[i].text, true
		}
	}
	h.cursor = -1
	return "", false
}

// ResetCursor ends navigation.
func (h *History) ResetCursor() {
	h.cursor = -1
}

func (h *History) last(kind promptKind) (string, bool) {
	for i := len(h.entries) - 1; i >= 0; i-- {
		if h.entries[i].kind == kind {
			return h.entries[i].text, true
		}
	}
	return "", false
}
