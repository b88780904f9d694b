package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(poses ...Pose) model {
	return newModel(&Config{Confirmations: false}, NewWaypointStore(poses...))
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func press(m model, keys ...string) model {
	for _, key := range keys {
		updated, _ := m.Update(keyMsg(key))
		m = updated.(model)
	}
	return m
}

func click(m model, kind tea.MouseEventType, y int) model {
	updated, _ := m.Update(tea.MouseMsg{X: 2, Y: y, Type: kind})
	return updated.(model)
}

func stubClipboard(t *testing.T, text string) {
	t.Helper()
	original := readClipboard
	readClipboard = func() (string, error) { return text, nil }
	t.Cleanup(func() { readClipboard = original })
}

func TestNavigation(t *testing.T) {
	m := newTestModel(poseA, poseB)

	m = press(m, "G")
	if m.cursorRow != 2 {
		t.Errorf("G moved to row %d, want the end row 2", m.cursorRow)
	}
	m = press(m, "j")
	if m.cursorRow != 2 {
		t.Errorf("cursor left the table: row %d", m.cursorRow)
	}
	m = press(m, "g", "k")
	if m.cursorRow != 0 {
		t.Errorf("cursor row = %d, want 0", m.cursorRow)
	}
	m = press(m, "h")
	if m.cursorCol != FieldX {
		t.Errorf("cursor column = %s, want X", m.cursorCol)
	}
	m = press(m, "l", "l", "l")
	if m.cursorCol != FieldHeading {
		t.Errorf("cursor column = %s, want Angle", m.cursorCol)
	}
}

func TestEditCell(t *testing.T) {
	m := newTestModel(Pose{1, 2, 0.5}, poseB)

	m = press(m, "l", "e")
	if m.mode != ModeEditing {
		t.Fatalf("mode = %s, want EDIT", m.modeString())
	}
	if m.editInput.Value() != "2" {
		t.Errorf("edit input = %q, want the current value", m.editInput.Value())
	}
	m.editInput.SetValue("9")
	m = press(m, "enter")

	if m.mode != ModeNormal {
		t.Errorf("mode = %s after commit", m.modeString())
	}
	assertPoses(t, m.store.Poses(), []Pose{{1, 9, 0.5}, poseB})
	if m.successMessage != "Set Y of waypoint 0" {
		t.Errorf("success message = %q", m.successMessage)
	}
}

func TestEditCellInvalid(t *testing.T) {
	for _, value := range []string{"abc", "", "NaN", "+Inf"} {
		m := newTestModel(poseA, poseB)
		m = press(m, "e")
		m.editInput.SetValue(value)
		m = press(m, "enter")

		if m.mode != ModeEditing {
			t.Errorf("%q: mode = %s, want EDIT", value, m.modeString())
		}
		if m.errorMessage == "" {
			t.Errorf("%q: no error message", value)
		}
		assertPoses(t, m.store.Poses(), []Pose{poseA, poseB})

		m = press(m, "esc")
		if m.mode != ModeNormal {
			t.Errorf("%q: esc left mode %s", value, m.modeString())
		}
	}
}

func TestEditEndRow(t *testing.T) {
	m := newTestModel(poseA, poseB)
	m = press(m, "G", "e")
	if m.mode != ModeNormal || m.errorMessage == "" {
		t.Errorf("editing the end row: mode %s, error %q", m.modeString(), m.errorMessage)
	}
}

func TestAddWaypoint(t *testing.T) {
	m := newTestModel(poseA, poseB)

	m = press(m, "a")
	if m.mode != ModeAdding {
		t.Fatalf("mode = %s, want ADD", m.modeString())
	}
	m.formInputs[FieldX].SetValue("4")
	m.formInputs[FieldY].SetValue("5")
	m.formInputs[FieldHeading].SetValue("0.5")
	m = press(m, "enter", "enter", "enter")

	if m.mode != ModeNormal {
		t.Errorf("mode = %s after add", m.modeString())
	}
	assertPoses(t, m.store.Poses(), []Pose{poseA, poseB, {4, 5, 0.5}})
	if m.cursorRow != 2 {
		t.Errorf("cursor row = %d, want 2", m.cursorRow)
	}
}

func TestAddWaypointInvalidField(t *testing.T) {
	m := newTestModel(poseA, poseB)

	m = press(m, "a")
	m.formInputs[FieldX].SetValue("1")
	m.formInputs[FieldHeading].SetValue("0")
	m = press(m, "tab", "tab", "enter")

	if m.mode != ModeAdding {
		t.Errorf("mode = %s, want ADD", m.modeString())
	}
	if m.formFocus != int(FieldY) {
		t.Errorf("focus = %d, want the Y field", m.formFocus)
	}
	if m.store.Len() != 2 {
		t.Errorf("len = %d, want 2", m.store.Len())
	}
}

func TestDelete(t *testing.T) {
	m := newTestModel(poseA, poseB, poseC)

	m = press(m, "j", "d")
	assertPoses(t, m.store.Poses(), []Pose{poseA, poseC})

	m = press(m, "d")
	if !strings.Contains(m.errorMessage, "Cannot delete") {
		t.Errorf("error message = %q", m.errorMessage)
	}
	assertPoses(t, m.store.Poses(), []Pose{poseA, poseC})
}

func TestDeleteConfirm(t *testing.T) {
	m := newModel(defaultConfig(), NewWaypointStore(poseA, poseB, poseC))

	m = press(m, "d")
	if m.mode != ModeConfirm || m.confirmAction != ConfirmDeleteWaypoint {
		t.Fatalf("mode = %s, want CONFIRM", m.modeString())
	}
	m = press(m, "n")
	if m.store.Len() != 3 {
		t.Errorf("declined delete removed a waypoint")
	}

	m = press(m, "d", "y")
	assertPoses(t, m.store.Poses(), []Pose{poseB, poseC})
}

func TestKeyboardDrag(t *testing.T) {
	m := newTestModel(poseA, poseB, poseC, poseD)

	m = press(m, "m")
	if m.mode != ModeDragging || m.reorder.State() != DragDragging {
		t.Fatalf("mode = %s, state %s", m.modeString(), m.reorder.State())
	}
	m = press(m, "j", "j")
	if m.dropTarget != 2 {
		t.Errorf("drop target = %d, want 2", m.dropTarget)
	}
	m = press(m, "enter")

	assertPoses(t, m.store.Poses(), []Pose{poseB, poseC, poseA, poseD})
	if m.mode != ModeNormal || m.reorder.State() != DragIdle {
		t.Errorf("mode = %s, state %s after drop", m.modeString(), m.reorder.State())
	}
}

func TestKeyboardDragToEndRow(t *testing.T) {
	m := newTestModel(poseA, poseB, poseC, poseD)

	m = press(m, "j", "m", "G", "enter")
	assertPoses(t, m.store.Poses(), []Pose{poseA, poseC, poseD, poseB})
	if m.cursorRow != 3 {
		t.Errorf("cursor row = %d, want 3", m.cursorRow)
	}
}

func TestKeyboardDragSameRow(t *testing.T) {
	m := newTestModel(poseA, poseB, poseC)

	m = press(m, "m", "enter")
	if m.mode != ModeDragging || m.errorMessage == "" {
		t.Errorf("mode = %s, error %q", m.modeString(), m.errorMessage)
	}
	m = press(m, "esc")
	if m.mode != ModeNormal || m.reorder.State() != DragIdle {
		t.Errorf("esc left mode %s, state %s", m.modeString(), m.reorder.State())
	}
	assertPoses(t, m.store.Poses(), []Pose{poseA, poseB, poseC})
}

func TestMouseDrag(t *testing.T) {
	m := newTestModel(poseA, poseB, poseC)

	m = click(m, tea.MouseLeft, tableHeaderLines)
	if m.mode != ModeDragging {
		t.Fatalf("mode = %s after press", m.modeString())
	}
	m = click(m, tea.MouseMotion, tableHeaderLines+2)
	if m.dropTarget != 2 {
		t.Errorf("drop target = %d, want 2", m.dropTarget)
	}
	m = click(m, tea.MouseRelease, tableHeaderLines+2)

	assertPoses(t, m.store.Poses(), []Pose{poseB, poseC, poseA})
	if m.mode != ModeNormal {
		t.Errorf("mode = %s after release", m.modeString())
	}
}

func TestMouseReleaseOnSourceCancels(t *testing.T) {
	m := newTestModel(poseA, poseB, poseC)

	m = click(m, tea.MouseLeft, tableHeaderLines+1)
	m = click(m, tea.MouseRelease, tableHeaderLines+1)

	if m.mode != ModeNormal || m.reorder.State() != DragIdle {
		t.Errorf("mode = %s, state %s", m.modeString(), m.reorder.State())
	}
	assertPoses(t, m.store.Poses(), []Pose{poseA, poseB, poseC})
}

func TestMouseOutsideTable(t *testing.T) {
	m := newTestModel(poseA, poseB)
	m = click(m, tea.MouseLeft, 0)
	if m.mode != ModeNormal {
		t.Errorf("click on the header started mode %s", m.modeString())
	}
}

func TestPasteImport(t *testing.T) {
	stubClipboard(t, "new SwerveTrajectoryWaypoint(1, 2, 0, 0.5),\r\nnot a waypoint\r\nnew SwerveTrajectoryWaypoint(3, 4, 0, 1),\r\nnew SwerveTrajectoryWaypoint(5, 6, 0, 1.5)")
	m := newTestModel(poseA, poseB)

	m = press(m, "p")
	assertPoses(t, m.store.Poses(), []Pose{{1, 2, 0.5}, {3, 4, 1}, {5, 6, 1.5}})
	if m.successMessage != "Imported 3 waypoints from clipboard (1 lines skipped)" {
		t.Errorf("success message = %q", m.successMessage)
	}
}

func TestPasteImportConfirm(t *testing.T) {
	stubClipboard(t, "new SwerveTrajectoryWaypoint(1, 2, 0, 0.5)\nnew SwerveTrajectoryWaypoint(3, 4, 0, 1)")
	m := newModel(defaultConfig(), NewWaypointStore(poseA, poseB, poseC))

	m = press(m, "p")
	if m.mode != ModeConfirm || m.confirmAction != ConfirmReplaceWaypoints {
		t.Fatalf("mode = %s, want CONFIRM", m.modeString())
	}
	m = press(m, "esc")
	assertPoses(t, m.store.Poses(), []Pose{poseA, poseB, poseC})

	m = press(m, "p", "y")
	assertPoses(t, m.store.Poses(), []Pose{{1, 2, 0.5}, {3, 4, 1}})
}

func TestPasteImportRefused(t *testing.T) {
	stubClipboard(t, "new SwerveTrajectoryWaypoint(1, 2, 0, 0.5)\ngarbage")
	m := newTestModel(poseA, poseB, poseC)

	m = press(m, "p")
	if !strings.Contains(m.errorMessage, "refused") {
		t.Errorf("error message = %q", m.errorMessage)
	}
	assertPoses(t, m.store.Poses(), []Pose{poseA, poseB, poseC})
}

func TestPasteClipboardError(t *testing.T) {
	original := readClipboard
	readClipboard = func() (string, error) { return "", errors.New("no clipboard") }
	t.Cleanup(func() { readClipboard = original })

	m := newTestModel(poseA, poseB)
	m = press(m, "p")
	if !strings.Contains(m.errorMessage, "no clipboard") {
		t.Errorf("error message = %q", m.errorMessage)
	}
}

func TestCopyToClipboard(t *testing.T) {
	var copied string
	original := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = original })

	m := newTestModel(poseA, poseB)
	m = press(m, "y")
	if copied != formatWaypoints([]Pose{poseA, poseB}) {
		t.Errorf("copied %q", copied)
	}
	if m.successMessage != "Copied 2 waypoints" {
		t.Errorf("success message = %q", m.successMessage)
	}
}

func TestExportTextFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "auto")
	m := newTestModel(poseA, poseB)

	m = press(m, "s")
	if m.mode != ModeFileInput {
		t.Fatalf("mode = %s, want FILE", m.modeString())
	}
	m.fileInput.SetValue(name)
	m = press(m, "enter")

	data, err := os.ReadFile(name + ".txt")
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	assertPoses(t, ParseWaypoints(string(data)), []Pose{poseA, poseB})
	if m.successMessage != "Saved "+name+".txt" {
		t.Errorf("success message = %q", m.successMessage)
	}
}

func TestExportOverwriteConfirm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auto.txt")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	m := newModel(defaultConfig(), NewWaypointStore(poseA, poseB))

	m = press(m, "s")
	m.fileInput.SetValue(path)
	m = press(m, "enter")
	if m.mode != ModeConfirm || m.confirmAction != ConfirmOverwriteFile {
		t.Fatalf("mode = %s, want CONFIRM", m.modeString())
	}
	m = press(m, "y")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != formatWaypoints([]Pose{poseA, poseB}) {
		t.Errorf("file = %q", data)
	}
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "path.txt")
	if err := os.WriteFile(path, []byte(formatWaypoints([]Pose{poseC, poseB, poseA})), 0644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(poseA, poseB)

	m = press(m, "o")
	m.fileInput.SetValue(path)
	m = press(m, "enter")

	assertPoses(t, m.store.Poses(), []Pose{poseC, poseB, poseA})
	if m.filename != strings.TrimSuffix(path, ".txt") {
		t.Errorf("filename = %q", m.filename)
	}
}

func TestImportMissingFile(t *testing.T) {
	m := newTestModel(poseA, poseB)

	m = press(m, "o")
	m.fileInput.SetValue(filepath.Join(t.TempDir(), "missing.txt"))
	m = press(m, "enter")

	if m.mode != ModeFileInput || m.errorMessage == "" {
		t.Errorf("mode = %s, error %q", m.modeString(), m.errorMessage)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(poseA, poseB)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestQuitConfirm(t *testing.T) {
	m := newModel(defaultConfig(), NewWaypointStore(poseA, poseB))

	updated, cmd := m.Update(keyMsg("q"))
	m = updated.(model)
	if cmd != nil || m.mode != ModeConfirm {
		t.Fatalf("mode = %s, want CONFIRM", m.modeString())
	}
	_, cmd = m.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatal("y returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("y did not quit")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(Pose{1.23456, 2, 0}, poseB)
	view := m.View()

	for _, want := range []string{"wayedit | 2 waypoints", "1.235", "(end)", "Mode: NORMAL"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q:\n%s", want, view)
		}
	}

	m = press(m, "?")
	if !strings.Contains(m.View(), "wayedit Help") {
		t.Error("help view not shown")
	}
	m = press(m, "x")
	if m.help {
		t.Error("help still shown after a key")
	}
}

func TestWindowResizeScrolls(t *testing.T) {
	poses := make([]Pose, 20)
	for i := range poses {
		poses[i] = Pose{X: float64(i)}
	}
	m := newTestModel(poses...)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m = updated.(model)
	m = press(m, "G")

	start, end := m.visibleRange()
	if end-start != 6 {
		t.Errorf("visible rows = %d, want 6", end-start)
	}
	if m.cursorRow < start || m.cursorRow >= end {
		t.Errorf("cursor row %d outside visible range %d..%d", m.cursorRow, start, end)
	}
	if row := m.rowAt(tableHeaderLines); row != start {
		t.Errorf("rowAt(header) = %d, want %d", row, start)
	}
}
