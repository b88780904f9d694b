package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const cellWidth = 12

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	dragStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dropStyle     = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	panelStyle    = lipgloss.NewStyle().PaddingLeft(1)
	rowIndexStyle = lipgloss.NewStyle().Width(5).Align(lipgloss.Right)
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("wayedit | %d waypoints", m.store.Len())))
	if m.filename != "" {
		b.WriteString(dimStyle.Render(" | " + m.filename))
	}
	b.WriteString("\n")

	header := rowIndexStyle.Render("#") + "  "
	for f := FieldX; f <= FieldHeading; f++ {
		header += headerStyle.Render(padLeft(f.String(), cellWidth))
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", 7+cellWidth*numFields)))
	b.WriteString("\n")

	start, end := m.visibleRange()
	for row := start; row < end; row++ {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.panelView()))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

// visibleRange returns the half-open row range on screen, including the
// empty trailing row.
func (m model) visibleRange() (int, int) {
	total := m.store.Len() + 1
	visible := m.visibleRows()
	if visible <= 0 || visible >= total {
		return 0, total
	}
	start := m.offset
	if start > total-visible {
		start = total - visible
	}
	return start, start + visible
}

func (m model) renderRow(row int) string {
	dragging := m.mode == ModeDragging
	source := m.reorder.Source()

	if row == m.store.Len() {
		text := rowIndexStyle.Render("·") + "  " + dimStyle.Render("(end)")
		if dragging && row == m.dropTarget {
			return dropStyle.Render("▸") + text
		}
		if row == m.cursorRow {
			return cursorStyle.Render(">") + text
		}
		return " " + text
	}

	pose, _ := m.store.At(row)
	marker := " "
	switch {
	case dragging && row == source:
		marker = dragStyle.Render("≡")
	case dragging && row == m.dropTarget:
		marker = dropStyle.Render("▸")
	case row == m.cursorRow:
		marker = ">"
	}

	line := marker + rowIndexStyle.Render(fmt.Sprintf("%d", row)) + "  "
	for f := FieldX; f <= FieldHeading; f++ {
		cell := padLeft(formatNumber(DisplayValue(pose.Field(f))), cellWidth)
		switch {
		case m.mode == ModeEditing && row == m.cursorRow && f == m.cursorCol:
			cell = padLeft(m.editInput.View(), cellWidth)
		case dragging && row == source:
			cell = dragStyle.Render(cell)
		case dragging && row == m.dropTarget:
			cell = dropStyle.Render(cell)
		case !dragging && row == m.cursorRow && f == m.cursorCol:
			cell = cursorStyle.Render(cell)
		}
		line += cell
	}
	return line
}

func (m model) panelView() string {
	switch m.mode {
	case ModeEditing:
		return fmt.Sprintf("Edit %s of waypoint %d | Enter=commit, Esc=cancel", m.cursorCol, m.cursorRow)
	case ModeAdding:
		fields := make([]string, 0, numFields)
		for _, input := range m.formInputs {
			fields = append(fields, lipgloss.NewStyle().Width(cellWidth+8).Render(input.View()))
		}
		return "Add waypoint  " + lipgloss.JoinHorizontal(lipgloss.Top, fields...) + dimStyle.Render("  Tab=next, Enter=add, Esc=cancel")
	case ModeFileInput:
		return m.fileOpString() + " filename: " + m.fileInput.View()
	case ModeDragging:
		return fmt.Sprintf("Moving waypoint %d | j/k=choose row, Enter=drop, Esc=cancel", m.reorder.Source())
	default:
		return dimStyle.Render("a=add  e=edit  d=delete  m=move  p=paste  y=copy  u/U=undo/redo  ?=help")
	}
}

func (m model) fileOpString() string {
	switch m.fileOp {
	case FileOpImport:
		return "Import"
	case FileOpExportText:
		return "Export text"
	case FileOpExportPNG:
		return "Export PNG"
	default:
		return "File"
	}
}

func (m model) statusLine() string {
	if m.mode == ModeConfirm {
		return fmt.Sprintf("Mode: CONFIRM | %s", m.confirmMessage())
	}

	status := fmt.Sprintf("Mode: %s | Row %d | Column %s", m.modeString(), m.cursorRow, m.cursorCol)
	if m.successMessage != "" {
		status += " | " + successStyle.Render(m.successMessage)
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmDeleteWaypoint:
		return fmt.Sprintf("Delete waypoint %s? (y/n)", m.pendingDelete)
	case ConfirmReplaceWaypoints:
		return fmt.Sprintf("Replace %d waypoints with %d imported? (y/n)", m.store.Len(), len(m.pendingImport))
	case ConfirmQuit:
		return "Quit wayedit? Unsaved changes will be lost. (y/n)"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingFile)
	default:
		return "(y/n)"
	}
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeEditing:
		return "EDIT"
	case ModeAdding:
		return "ADD"
	case ModeDragging:
		return "MOVE"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	helpLines := []string{
		"wayedit Help",
		"============",
		"",
		"Navigation:",
		"  j/k/↑/↓          Move between waypoints (the last row is the end of the path)",
		"  h/l/←/→          Move between X, Y and Angle",
		"  g/G              First waypoint / end row",
		"",
		"Editing:",
		"  e/Enter          Edit the selected cell",
		"  a                Add a waypoint at the end",
		"  d                Delete the selected waypoint (at least 2 are kept)",
		"  m/Space          Pick up the selected waypoint, Enter drops it on the cursor row",
		"  mouse drag       Drag a row onto another row",
		"",
		"Import and export:",
		"  p/Ctrl+V         Replace all waypoints with the clipboard contents",
		"  y                Copy waypoints to the clipboard",
		"  o                Import waypoints from a text file",
		"  s                Export waypoints as text",
		"  S                Export the path as a PNG image",
		"",
		"  Each imported line looks like",
		"    new SwerveTrajectoryWaypoint(x, y, orientation, heading),",
		"  Other lines are skipped.",
		"",
		"General:",
		"  u                Undo",
		"  U/Ctrl+R         Redo",
		"  ?                Toggle this help screen",
		"  q/Ctrl+C         Quit",
		"",
		"Press any key to close.",
	}
	return strings.Join(helpLines, "\n")
}

func padLeft(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
