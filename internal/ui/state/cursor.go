package state

// MoveCursorTo places the cursor on index, clamped to the visible entries,
// and reports whether it moved.
func (l *Level) MoveCursorTo(index int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = clamp(index, 0, len(l.Items)-1)
	return l.Cursor != old
}

func (l *Level) MoveCursorHome() bool {
	return l.MoveCursorTo(0)
}

func (l *Level) MoveCursorEnd() bool {
	return l.MoveCursorTo(len(l.Items) - 1)
}

// MoveCursorPageUp moves one page of rows up.
func (l *Level) MoveCursorPageUp(rows int) bool {
	return l.MoveCursorTo(max(l.Cursor, 0) - l.pageSize(rows))
}

// MoveCursorPageDown moves one page of rows down.
func (l *Level) MoveCursorPageDown(rows int) bool {
	return l.MoveCursorTo(max(l.Cursor, 0) + l.pageSize(rows))
}

func (l *Level) pageSize(rows int) int {
	total := len(l.Items)
	if rows <= 0 || rows > total {
		return total
	}
	return rows
}

// EnsureCursorVisible clamps the cursor and scrolls the viewport of rows
// entries so the cursor stays inside it.
func (l *Level) EnsureCursorVisible(rows int) {
	n := len(l.Items)
	if n == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, n-1)
	if rows <= 0 {
		l.ViewportOffset = 0
		return
	}
	offset := clamp(l.ViewportOffset, 0, max(n-rows, 0))
	if l.Cursor < offset {
		offset = l.Cursor
	}
	if l.Cursor >= offset+rows {
		offset = l.Cursor - rows + 1
	}
	l.ViewportOffset = offset
}

// Window returns the bounds of the entries shown in a viewport of rows
// entries. A non-positive rows shows everything.
func (l *Level) Window(rows int) (start, end int) {
	n := len(l.Items)
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start = clamp(l.ViewportOffset, 0, n-rows)
	return start, start + rows
}
