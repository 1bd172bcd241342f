package state

import (
	"strings"
	"unicode"
)

// SetFilter replaces the filter query and puts its caret at pos. Starting a
// query remembers the cursor and jumps to the best match. Clearing it goes
// back to the remembered entry, or to the entry in effect when there is none.
func (l *Level) SetFilter(query string, pos int) {
	wasFiltering := strings.TrimSpace(l.Filter) != ""
	trimmed := strings.TrimSpace(query)
	l.Filter = query
	l.FilterCursor = clamp(pos, 0, len([]rune(query)))
	switch {
	case trimmed != "":
		if !wasFiltering {
			l.LastCursor = l.Cursor
		}
		l.applyFilter()
		l.Cursor = max(BestMatchIndex(l.Items, trimmed), 0)
	case wasFiltering:
		restore := l.LastCursor
		l.LastCursor = -1
		l.applyFilter()
		if restore < 0 || restore >= len(l.Items) {
			restore = max(l.ActiveIndex(), 0)
		}
		l.Cursor = restore
	default:
		l.applyFilter()
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	n := len(l.Items)
	if n == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, n-1)
	if l.ViewportOffset < 0 || l.ViewportOffset >= n {
		l.ViewportOffset = 0
	}
}

func (l *Level) caret() ([]rune, int) {
	runes := []rune(l.Filter)
	return runes, clamp(l.FilterCursor, 0, len(runes))
}

// FilterCursorPos returns the caret as a rune offset into the query.
func (l *Level) FilterCursorPos() int {
	_, pos := l.caret()
	return pos
}

func (l *Level) moveCaret(pos int) bool {
	if pos == l.FilterCursorPos() {
		return false
	}
	l.FilterCursor = pos
	return true
}

// splice replaces runes[from:to] of the query with insert and leaves the
// caret after the inserted text.
func (l *Level) splice(from, to int, insert []rune) {
	runes := []rune(l.Filter)
	updated := make([]rune, 0, len(runes)-(to-from)+len(insert))
	updated = append(updated, runes[:from]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[to:]...)
	l.SetFilter(string(updated), from+len(insert))
}

// InsertFilterText types text at the caret.
func (l *Level) InsertFilterText(text string) bool {
	if text == "" {
		return false
	}
	pos := l.FilterCursorPos()
	l.splice(pos, pos, []rune(text))
	return true
}

// DeleteFilterRuneBackward is backspace.
func (l *Level) DeleteFilterRuneBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.splice(pos-1, pos, nil)
	return true
}

// DeleteFilterWordBackward removes the word before the caret.
func (l *Level) DeleteFilterWordBackward() bool {
	runes, pos := l.caret()
	if pos == 0 {
		return false
	}
	l.splice(wordStart(runes, pos), pos, nil)
	return true
}

func (l *Level) MoveFilterCursorStart() bool {
	return l.moveCaret(0)
}

func (l *Level) MoveFilterCursorEnd() bool {
	return l.moveCaret(len([]rune(l.Filter)))
}

func (l *Level) MoveFilterCursorWordBackward() bool {
	runes, pos := l.caret()
	return l.moveCaret(wordStart(runes, pos))
}

func (l *Level) MoveFilterCursorWordForward() bool {
	runes, pos := l.caret()
	return l.moveCaret(wordEnd(runes, pos))
}

func (l *Level) MoveFilterCursorRuneBackward() bool {
	return l.moveCaret(max(l.FilterCursorPos()-1, 0))
}

func (l *Level) MoveFilterCursorRuneForward() bool {
	runes, pos := l.caret()
	return l.moveCaret(min(pos+1, len(runes)))
}

// wordStart skips spaces then a word going left from pos.
func wordStart(runes []rune, pos int) int {
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

// wordEnd skips a word then spaces going right from pos.
func wordEnd(runes []rune, pos int) int {
	for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}
