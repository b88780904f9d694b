package main

func (m *model) handleNavigation(key string) {
	switch key {
	case "k", "up":
		m.cursorRow--
	case "j", "down":
		m.cursorRow++
	case "g", "home":
		m.cursorRow = 0
	case "G", "end":
		m.cursorRow = m.store.Len()
	case "h", "left":
		if m.cursorCol > FieldX {
			m.cursorCol--
		}
	case "l", "right":
		if m.cursorCol < FieldHeading {
			m.cursorCol++
		}
	}
	m.ensureCursorInBounds()
}

// ensureCursorInBounds keeps the cursor on a waypoint row or on the empty
// trailing row at index Len.
func (m *model) ensureCursorInBounds() {
	if m.cursorRow > m.store.Len() {
		m.cursorRow = m.store.Len()
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}

	visible := m.visibleRows()
	if visible <= 0 {
		m.offset = 0
		return
	}
	if m.cursorRow < m.offset {
		m.offset = m.cursorRow
	}
	if m.cursorRow >= m.offset+visible {
		m.offset = m.cursorRow - visible + 1
	}
}

// visibleRows is how many table rows fit on screen, 0 when the size is
// not known yet.
func (m *model) visibleRows() int {
	if m.height <= 0 {
		return 0
	}
	rows := m.height - tableHeaderLines - footerLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

// rowAt maps a screen line to a table row, or -1 outside the table.
func (m *model) rowAt(y int) int {
	start, _ := m.visibleRange()
	row := y - tableHeaderLines + start
	if y < tableHeaderLines || row < 0 || row > m.store.Len() {
		return -1
	}
	return row
}

func isNavigationKey(key string) bool {
	switch key {
	case "k", "up", "j", "down", "g", "home", "G", "end", "h", "left", "l", "right":
		return true
	}
	return false
}
