package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// defaultWaypoints seeds a new session so the floor holds from the start.
func defaultWaypoints() []Pose {
	return []Pose{
		NewPose(0, 0, 0),
		NewPose(3, 0, 0),
	}
}

func newModel(config *Config, store *WaypointStore) model {
	if config == nil {
		config = defaultConfig()
	}

	editInput := textinput.New()
	editInput.Prompt = ""
	editInput.CharLimit = 32

	var formInputs [numFields]textinput.Model
	for i := range formInputs {
		input := textinput.New()
		input.Prompt = Field(i).String() + ": "
		input.Placeholder = "0.0"
		input.CharLimit = 32
		input.Width = 12
		formInputs[i] = input
	}

	fileInput := textinput.New()
	fileInput.Prompt = ""
	fileInput.CharLimit = 256

	reorder := NewReorderController(store)
	reorder.OnStateChange(func(state DragState) {
		log.Printf("drag state %s", state)
	})

	return model{
		store:      store,
		editor:     NewEditCommitController(store),
		reorder:    reorder,
		history:    newHistory(store),
		dropTarget: -1,
		mode:       ModeNormal,
		editInput:  editInput,
		formInputs: formInputs,
		fileInput:  fileInput,
		config:     config,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.help {
			m.help = false
			return m, nil
		}

		switch m.mode {
		case ModeNormal:
			return m.handleNormalKey(msg)
		case ModeEditing:
			return m.handleEditKey(msg)
		case ModeAdding:
			return m.handleAddKey(msg)
		case ModeDragging:
			return m.handleDragKey(msg)
		case ModeFileInput:
			return m.handleFileKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		}
	}
	return m.updateFocusedInput(msg)
}

// updateFocusedInput hands other messages, such as cursor blinks, to the
// text input that currently has focus.
func (m model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case ModeEditing:
		m.editInput, cmd = m.editInput.Update(msg)
	case ModeAdding:
		m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	case ModeFileInput:
		m.fileInput, cmd = m.fileInput.Update(msg)
	}
	return m, cmd
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if isNavigationKey(key) {
		m.handleNavigation(key)
		return m, nil
	}

	m.errorMessage = ""
	m.successMessage = ""

	switch key {
	case "ctrl+c", "q":
		if !m.config.Confirmations {
			return m, tea.Quit
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
	case "?":
		m.help = true
	case "e", "enter":
		return m, m.startEdit()
	case "a":
		return m, m.startAdd()
	case "d", "delete", "backspace":
		m.requestDelete()
	case "m", " ":
		m.startDrag(m.cursorRow)
	case "p", "ctrl+v":
		m.pasteFromClipboard()
	case "y":
		m.copyToClipboard()
	case "o":
		return m, m.startFileInput(FileOpImport)
	case "s":
		return m, m.startFileInput(FileOpExportText)
	case "S":
		return m, m.startFileInput(FileOpExportPNG)
	case "u":
		if !m.undo() {
			m.errorMessage = "Nothing to undo"
		}
		m.ensureCursorInBounds()
	case "U", "ctrl+r":
		if !m.redo() {
			m.errorMessage = "Nothing to redo"
		}
		m.ensureCursorInBounds()
	}
	return m, nil
}

// Cell editing

func (m *model) startEdit() tea.Cmd {
	pose, err := m.store.At(m.cursorRow)
	if err != nil {
		m.errorMessage = "Select a waypoint to edit"
		return nil
	}
	m.editInput.SetValue(strconv.FormatFloat(pose.Field(m.cursorCol), 'g', -1, 64))
	m.editInput.CursorEnd()
	m.mode = ModeEditing
	return m.editInput.Focus()
}

func (m model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.editInput.Blur()
		m.mode = ModeNormal
		m.errorMessage = ""
		return m, nil
	case tea.KeyEnter:
		m.commitEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m *model) commitEdit() {
	value, err := parseEntry(m.editInput.Value())
	if err != nil {
		m.errorMessage = fmt.Sprintf("%s: %v", m.cursorCol, err)
		return
	}
	if err := m.editor.Commit(m.cursorRow, m.cursorCol, value); err != nil {
		m.errorMessage = err.Error()
		if errors.Is(err, ErrIndexOutOfRange) {
			log.Printf("edit commit: %v", err)
			m.editInput.Blur()
			m.mode = ModeNormal
		}
		return
	}
	m.editInput.Blur()
	m.mode = ModeNormal
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf("Set %s of waypoint %d", m.cursorCol, m.cursorRow)
}

// parseEntry is the numeric-field check shared by the edit cell and the
// add form.
func parseEntry(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errors.New("enter a number")
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	if !isFinite(v) {
		return 0, ErrNonFiniteValue
	}
	return v, nil
}

// Add form

func (m *model) startAdd() tea.Cmd {
	for i := range m.formInputs {
		m.formInputs[i].SetValue("")
		m.formInputs[i].Blur()
	}
	m.formFocus = 0
	m.mode = ModeAdding
	return m.formInputs[0].Focus()
}

func (m model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.errorMessage = ""
		return m, nil
	case "tab", "down":
		return m, m.focusFormField((m.formFocus + 1) % numFields)
	case "shift+tab", "up":
		return m, m.focusFormField((m.formFocus + numFields - 1) % numFields)
	case "enter":
		if m.formFocus < numFields-1 {
			return m, m.focusFormField(m.formFocus + 1)
		}
		m.confirmAdd()
		return m, nil
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func (m *model) focusFormField(index int) tea.Cmd {
	m.formInputs[m.formFocus].Blur()
	m.formFocus = index
	return m.formInputs[index].Focus()
}

func (m *model) confirmAdd() {
	var values [numFields]float64
	for i, input := range m.formInputs {
		v, err := parseEntry(input.Value())
		if err != nil {
			m.errorMessage = fmt.Sprintf("%s: %v", Field(i), err)
			m.focusFormField(i)
			return
		}
		values[i] = v
	}
	m.store.Add(NewPose(values[FieldX], values[FieldY], values[FieldHeading]))
	m.cursorRow = m.store.Len() - 1
	m.ensureCursorInBounds()
	m.mode = ModeNormal
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf("Added waypoint %d", m.cursorRow)
}

// Delete

func (m *model) requestDelete() {
	pose, err := m.store.At(m.cursorRow)
	if err != nil {
		m.errorMessage = "Select a waypoint to delete"
		return
	}
	if m.store.Len() <= minWaypoints {
		m.errorMessage = "Cannot delete: " + ErrTooFewWaypoints.Error()
		return
	}
	m.pendingDelete = pose
	if m.config.Confirmations {
		m.mode = ModeConfirm
		m.confirmAction = ConfirmDeleteWaypoint
		return
	}
	m.deleteWaypoint(pose)
}

func (m *model) deleteWaypoint(pose Pose) {
	if !m.store.RemoveSelected(pose) {
		m.errorMessage = "Cannot delete: " + ErrTooFewWaypoints.Error()
		return
	}
	m.ensureCursorInBounds()
	m.successMessage = "Deleted waypoint " + pose.String()
}

// Reorder

func (m *model) startDrag(row int) bool {
	if _, err := m.reorder.DragStart(row); err != nil {
		m.errorMessage = "Select a waypoint to move"
		return false
	}
	m.mode = ModeDragging
	m.dropTarget = row
	return true
}

func (m model) handleDragKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if isNavigationKey(key) {
		m.handleNavigation(key)
		m.dropTarget = m.cursorRow
		return m, nil
	}

	switch key {
	case "esc", "m":
		m.cancelDrag()
	case "enter", " ":
		if !m.finishDrag(m.cursorRow) {
			m.errorMessage = "Move the waypoint to a different row first"
		}
	}
	return m, nil
}

// finishDrag drops on target if the reorder controller accepts it.
func (m *model) finishDrag(target int) bool {
	if !m.reorder.DragOver(target) {
		return false
	}
	source := m.reorder.Source()
	m.mode = ModeNormal
	m.dropTarget = -1
	m.mouseDrag = false
	if err := m.reorder.Drop(target); err != nil {
		log.Printf("drop: %v", err)
		m.errorMessage = err.Error()
		return true
	}
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf("Moved waypoint %d", source)
	if target >= m.store.Len() {
		target = m.store.Len() - 1
	}
	m.cursorRow = target
	m.ensureCursorInBounds()
	return true
}

func (m *model) cancelDrag() {
	m.reorder.Cancel()
	m.mode = ModeNormal
	m.dropTarget = -1
	m.mouseDrag = false
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	row := m.rowAt(msg.Y)

	switch msg.Type {
	case tea.MouseLeft:
		if m.mode != ModeNormal || row < 0 {
			return
		}
		m.cursorRow = row
		if row < m.store.Len() && m.startDrag(row) {
			m.mouseDrag = true
		}
	case tea.MouseMotion:
		if m.mode == ModeDragging && m.mouseDrag && row >= 0 {
			m.cursorRow = row
			m.dropTarget = row
		}
	case tea.MouseRelease:
		if m.mode != ModeDragging || !m.mouseDrag {
			return
		}
		if row < 0 || !m.finishDrag(row) {
			m.cancelDrag()
		}
	case tea.MouseWheelUp:
		m.handleNavigation("up")
	case tea.MouseWheelDown:
		m.handleNavigation("down")
	}
}

// Import

func (m *model) pasteFromClipboard() {
	text, err := readClipboard()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
		return
	}
	m.beginImport(cleanClipboardText(text), "clipboard")
}

func (m *model) beginImport(text, source string) {
	report := ParseWaypointsReport(text)
	for _, skipped := range report.Skipped {
		log.Printf("import %s: skipped %v", source, skipped)
	}
	if len(report.Poses) < minWaypoints {
		m.mode = ModeNormal
		m.errorMessage = fmt.Sprintf("Import from %s refused: %d waypoint(s) parsed, %v", source, len(report.Poses), ErrTooFewWaypoints)
		return
	}

	m.pendingImport = report.Poses
	m.successMessage = importSummary(len(report.Poses), len(report.Skipped), source)
	if m.config.Confirmations {
		m.mode = ModeConfirm
		m.confirmAction = ConfirmReplaceWaypoints
		return
	}
	m.applyImport()
}

func (m *model) applyImport() {
	m.store.ReplaceAll(m.pendingImport)
	log.Printf("%s", m.successMessage)
	m.pendingImport = nil
	m.mode = ModeNormal
	m.cursorRow = 0
	m.ensureCursorInBounds()
}

func importSummary(imported, skipped int, source string) string {
	summary := fmt.Sprintf("Imported %d waypoints from %s", imported, source)
	if skipped > 0 {
		summary += fmt.Sprintf(" (%d lines skipped)", skipped)
	}
	return summary
}

func (m *model) copyToClipboard() {
	if err := writeClipboard(formatWaypoints(m.store.Poses())); err != nil {
		m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
		return
	}
	m.successMessage = fmt.Sprintf("Copied %d waypoints", m.store.Len())
}

// Files

func (m *model) startFileInput(op FileOperation) tea.Cmd {
	m.fileOp = op
	m.fileInput.SetValue(m.filename)
	m.fileInput.CursorEnd()
	m.mode = ModeFileInput
	return m.fileInput.Focus()
}

func (m model) handleFileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.fileInput.Blur()
		m.mode = ModeNormal
		m.errorMessage = ""
		return m, nil
	case tea.KeyEnter:
		m.submitFile()
		return m, nil
	}

	var cmd tea.Cmd
	m.fileInput, cmd = m.fileInput.Update(msg)
	return m, cmd
}

func (m *model) submitFile() {
	name := strings.TrimSpace(m.fileInput.Value())
	if name == "" {
		m.errorMessage = "Enter a filename"
		return
	}
	m.fileInput.Blur()
	m.errorMessage = ""
	m.filename = strings.TrimSuffix(name, filepath.Ext(name))

	switch m.fileOp {
	case FileOpImport:
		m.importFile(name)
	case FileOpExportText:
		m.requestExport(m.config.GetSavePath(withExtension(name, ".txt")))
	case FileOpExportPNG:
		m.requestExport(m.config.GetSavePath(withExtension(name, ".png")))
	}
}

func (m *model) importFile(name string) {
	path := name
	if _, err := os.Stat(path); err != nil {
		path = m.config.GetSavePath(name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		m.mode = ModeFileInput
		m.errorMessage = err.Error()
		return
	}
	m.mode = ModeNormal
	m.beginImport(string(data), filepath.Base(path))
}

func (m *model) requestExport(path string) {
	if _, err := os.Stat(path); err == nil && m.config.Confirmations {
		m.pendingFile = path
		m.mode = ModeConfirm
		m.confirmAction = ConfirmOverwriteFile
		return
	}
	m.writeExport(path)
}

func (m *model) writeExport(path string) {
	m.mode = ModeNormal
	var err error
	if m.fileOp == FileOpExportPNG {
		err = exportPNG(path, m.store.Poses())
	} else {
		err = exportText(path, m.store.Poses())
	}
	if err != nil {
		m.errorMessage = fmt.Sprintf("Export failed: %v", err)
		return
	}
	log.Printf("exported %d waypoints to %s", m.store.Len(), path)
	m.successMessage = "Saved " + path
}

func withExtension(name, ext string) string {
	if strings.EqualFold(filepath.Ext(name), ext) {
		return name
	}
	return name + ext
}

// Confirmations

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmDeleteWaypoint:
			m.deleteWaypoint(m.pendingDelete)
		case ConfirmReplaceWaypoints:
			m.applyImport()
		case ConfirmOverwriteFile:
			m.writeExport(m.pendingFile)
			m.pendingFile = ""
		}
	case "n", "N", "esc", "ctrl+c":
		m.mode = ModeNormal
		m.pendingImport = nil
		m.pendingFile = ""
		m.successMessage = ""
	}
	return m, nil
}
