package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"inkboard/attrs"
	"inkboard/shape"
	"inkboard/tool"
)

var toolKeys = map[string]tool.Tool{
	"1": tool.Select,
	"2": tool.Pencil,
	"3": tool.Eraser,
	"4": tool.Rectangle,
	"5": tool.Circle,
	"6": tool.Arrow,
	"7": tool.Text,
}

func (m *model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if isNavigationKey(key) {
		m.handleNavigation(key, m.getMoveSpeed(key))
		return nil
	}
	if t, ok := toolKeys[key]; ok {
		m.drag = nil
		m.editor.SetTool(t)
		m.successMessage = "Tool: " + t.String()
		return nil
	}

	switch key {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if m.config.Confirmations && m.doc.dirty {
			m.confirm(ConfirmQuit)
			return nil
		}
		return tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
	case "esc":
		m.editor.CancelGesture()
		m.drag = nil
		m.editor.ClearSelection()
	case "enter":
		m.primaryAction(false)
	case " ":
		m.primaryAction(true)
	case "m":
		m.startMove()
	case "d", "delete", "backspace":
		if len(m.editor.SelectedIDs()) == 0 {
			m.errorMessage = "Nothing selected"
		} else if m.config.Confirmations {
			m.confirm(ConfirmDelete)
		} else {
			m.deleteSelected()
		}
	case "e":
		m.startTextEdit()
	case "c":
		m.copySelected()
	case "p":
		m.paste()
	case "B":
		m.barcodeFromClipboard()
	case "u":
		m.undo()
	case "U":
		m.redo()
	case "s":
		m.startFileInput(FileOpSave)
		m.input = strings.TrimSuffix(m.filename, documentExt)
	case "o":
		if m.config.Confirmations && m.doc.dirty {
			m.confirm(ConfirmDiscard)
			return nil
		}
		m.startFileInput(FileOpOpen)
		m.scanDocuments()
	case "i":
		m.startFileInput(FileOpInsertPicture)
	case "I":
		m.startFileInput(FileOpInsertDrawing)
	case "b":
		m.startFileInput(FileOpScanBarcode)
	case "x":
		m.startFileInput(FileOpExportBarcode)
	case "W":
		canvas := m.editor.Canvas()
		m.startFileInput(FileOpCanvasSize)
		m.input = fmt.Sprintf("%gx%g", canvas.Width, canvas.Height)
	case "f":
		return m.cycleFont(1)
	case "F":
		return m.cycleFont(-1)
	case "[", "]":
		width := m.attributes().StrokeWidth
		if key == "[" {
			width -= strokeWidthStep
		} else {
			width += strokeWidthStep
		}
		m.queueEdit(attrs.SetStrokeWidth(max(width, 0)))
	case "-", "+", "=":
		opacity := m.attributes().Opacity
		if key == "-" {
			opacity -= opacityStep
		} else {
			opacity += opacityStep
		}
		m.queueEdit(attrs.SetOpacity(min(max(opacity, 0), 1)))
	case "(", ")":
		size := m.attributes().FontSize
		if key == "(" {
			size -= fontSizeStep
		} else {
			size += fontSizeStep
		}
		if size > 0 {
			m.applyEdit(attrs.SetFontSize(size))
		}
	case "*":
		a := m.attributes()
		weight := shape.WeightBold
		if a.FontWeight == shape.WeightBold {
			weight = shape.WeightRegular
		}
		m.applyEdit(attrs.SetFontStyles(a.FontStyle, weight))
	case "/":
		a := m.attributes()
		style := shape.FontItalic
		if a.FontStyle == shape.FontItalic {
			style = shape.FontNormal
		}
		m.applyEdit(attrs.SetFontStyles(style, a.FontWeight))
	case "a":
		m.applyEdit(attrs.SetTextAlign(nextAlign(m.attributes().TextAlign)))
	case "g":
		m.applyEdit(attrs.SetFill(nextColor(m.attributes().Fill)))
	case "G":
		m.applyEdit(attrs.SetStroke(nextColor(m.attributes().Stroke)))
	}
	return nil
}

// attributes are the panel values including edits still being debounced
// for the current selection.
func (m *model) attributes() attrs.Attributes {
	a := m.editor.Attributes()
	if !slices.Equal(m.pending.ids, m.editor.SelectedIDs()) {
		return a
	}
	return m.pending.patch.ApplyDefaults(a)
}

// queueEdit holds back slider-like edits until the key repeats settle. The
// edit stays bound to the records selected when the key was pressed.
func (m *model) queueEdit(p attrs.Patch) {
	ids := m.editor.SelectedIDs()
	if !slices.Equal(m.pending.ids, ids) {
		m.flushEdits()
	}
	m.pending = pendingEdit{ids: ids, patch: m.pending.patch.Merge(p)}
	m.edits.Push(m.pending)
}

func (m *model) applyEdit(p attrs.Patch) {
	m.flushEdits()
	m.editor.ApplyAttributes(p)
}

func nextColor(current string) string {
	for i, c := range palette {
		if strings.EqualFold(c, current) {
			return palette[(i+1)%len(palette)]
		}
	}
	return palette[0]
}

func nextAlign(current shape.TextAlign) shape.TextAlign {
	switch current {
	case shape.AlignLeft, "":
		return shape.AlignCenter
	case shape.AlignCenter:
		return shape.AlignRight
	}
	return shape.AlignLeft
}

func (m *model) cycleFont(step int) tea.Cmd {
	families := m.fonts.Families()
	if len(families) == 0 {
		return nil
	}
	current := m.attributes().FontFamily
	next := 0
	for i, f := range families {
		if strings.EqualFold(f.Name, current) {
			next = (i + step + len(families)) % len(families)
			break
		}
	}
	return loadFontCmd(m.fonts, families[next].Name)
}

// primaryAction is enter or space at the cursor: select with the select
// tool, otherwise start or finish a gesture.
func (m *model) primaryAction(toggle bool) {
	p := m.cursorPoint()
	if m.editor.Tool() == tool.Select {
		m.press(p, toggle)
		m.drag = nil
		return
	}
	if _, drawing := m.editor.Gesture(); drawing {
		m.release()
		return
	}
	m.press(p, false)
}

func (m *model) startMove() {
	if m.editor.Tool() != tool.Select {
		m.errorMessage = "Switch to the select tool (1) to move shapes"
		return
	}
	r, ok := m.recordUnderCursor()
	if !ok {
		selected := m.editor.Selected()
		if len(selected) == 0 {
			m.errorMessage = "Nothing to move"
			return
		}
		r = selected[0]
	}
	m.editor.Select(r.ID)
	p := m.cursorPoint()
	m.drag = &dragState{id: r.ID, start: p, current: p, originX: r.X, originY: r.Y}
	m.mode = ModeMove
}

func (m *model) handleMoveKey(msg tea.KeyMsg) {
	key := msg.String()
	switch {
	case isNavigationKey(key):
		m.handleNavigation(key, m.getMoveSpeed(key))
	case key == "enter":
		m.release()
		m.mode = ModeNormal
	case key == "esc":
		m.drag = nil
		m.mode = ModeNormal
	}
}

func (m *model) startTextEdit() {
	target, ok := shape.Record{}, false
	for _, r := range m.editor.Selected() {
		if r.Type() == shape.KindText {
			target, ok = r, true
			break
		}
	}
	if !ok {
		if r, hit := m.recordUnderCursor(); hit && r.Type() == shape.KindText {
			target, ok = r, true
		}
	}
	if !ok {
		m.errorMessage = "No text to edit"
		return
	}
	m.textTarget = target.ID
	m.input = target.Body.(shape.Text).Text
	m.mode = ModeTextInput
}

func (m *model) handleTextInputKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.textTarget = ""
	case tea.KeyEnter:
		if m.input != "" {
			m.editor.SetText(m.textTarget, m.input)
		}
		m.mode = ModeNormal
		m.textTarget = ""
	case tea.KeyCtrlJ:
		m.input += "\n"
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
}

func (m *model) deleteSelected() {
	n := len(m.editor.SelectedIDs())
	m.flushEdits()
	if m.editor.DeleteSelected() {
		m.successMessage = fmt.Sprintf("Deleted %d shape(s)", n)
	}
}

func (m *model) copySelected() {
	data, err := m.editor.CopySelected()
	if err != nil {
		m.errorMessage = "Nothing selected"
		return
	}
	if err := writeClipboardText(string(data)); err != nil {
		log.Printf("clipboard: %v", err)
		m.errorMessage = "Could not write clipboard"
		return
	}
	m.successMessage = fmt.Sprintf("Copied %d shape(s)", len(m.editor.SelectedIDs()))
}

func (m *model) paste() {
	text, err := readClipboardText()
	if err != nil {
		log.Printf("clipboard: %v", err)
		m.errorMessage = "Could not read clipboard"
		return
	}
	m.flushEdits()
	m.editor.SetTool(tool.Select)
	records, err := m.editor.Paste([]byte(strings.TrimSpace(text)))
	if err != nil {
		m.errorMessage = "Clipboard holds no shapes"
		return
	}
	m.successMessage = fmt.Sprintf("Pasted %d shape(s)", len(records))
}

func (m *model) barcodeFromClipboard() {
	text, err := readClipboardText()
	if err != nil {
		log.Printf("clipboard: %v", err)
		m.errorMessage = "Could not read clipboard"
		return
	}
	text = strings.TrimSpace(cleanClipboardText(text))
	r, err := m.editor.InsertBarcode(text, shape.QRCode)
	if err != nil {
		log.Printf("barcode from clipboard: %v", err)
		m.errorMessage = err.Error()
		return
	}
	m.editor.Select(r.ID)
	m.successMessage = "Inserted QR code"
}

func (m *model) startFileInput(op FileOperation) {
	m.fileOp = op
	m.input = ""
	m.fileList = nil
	m.selectedFileIndex = -1
	m.mode = ModeFileInput
}

func (m *model) handleFileInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		return nil
	case tea.KeyEnter:
		m.mode = ModeNormal
		return m.performFileOp()
	case tea.KeyUp, tea.KeyDown:
		if len(m.fileList) == 0 {
			return nil
		}
		if msg.Type == tea.KeyUp {
			m.selectedFileIndex = (m.selectedFileIndex - 1 + len(m.fileList)) % len(m.fileList)
		} else {
			m.selectedFileIndex = (m.selectedFileIndex + 1) % len(m.fileList)
		}
		m.input = strings.TrimSuffix(m.fileList[m.selectedFileIndex], documentExt)
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func (m *model) performFileOp() tea.Cmd {
	name := strings.TrimSpace(m.input)
	if name == "" {
		m.errorMessage = "No file name given"
		return nil
	}

	switch m.fileOp {
	case FileOpSave:
		name = withExt(name)
		path := m.config.GetSavePath(name)
		if _, err := os.Stat(path); err == nil && name != m.filename && m.config.Confirmations {
			m.input = name
			m.confirm(ConfirmOverwriteFile)
			return nil
		}
		m.saveDocument(name)
	case FileOpOpen:
		m.openDocument(withExt(name))
	case FileOpInsertPicture, FileOpInsertDrawing, FileOpScanBarcode:
		return loadFileCmd(m.fileOp, expandHome(name))
	case FileOpExportBarcode:
		if !strings.HasSuffix(strings.ToLower(name), ".png") {
			name += ".png"
		}
		if err := m.exportBarcodePNG(m.config.GetSavePath(expandHome(name))); err != nil {
			log.Printf("exporting barcode: %v", err)
			m.errorMessage = err.Error()
			return nil
		}
		m.successMessage = "Exported " + name
	case FileOpCanvasSize:
		m.resizeCanvas(name)
	}
	return nil
}

// resizeCanvas sets the frame from input of the form WIDTHxHEIGHT.
func (m *model) resizeCanvas(input string) {
	w, h, ok := strings.Cut(strings.ToLower(input), "x")
	width, errW := strconv.ParseFloat(strings.TrimSpace(w), 64)
	height, errH := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if !ok || errW != nil || errH != nil {
		m.errorMessage = fmt.Sprintf("Canvas size must look like 800x600, got %q", input)
		return
	}
	if err := m.editor.SetCanvasSize(width, height); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.ensureCursorInBounds()
	m.successMessage = fmt.Sprintf("Canvas %gx%g", width, height)
}

func (m *model) saveDocument(name string) {
	m.flushEdits()
	var buf bytes.Buffer
	if err := m.editor.Save(&buf); err != nil {
		log.Printf("saving %s: %v", name, err)
		m.errorMessage = err.Error()
		return
	}
	if err := os.WriteFile(m.config.GetSavePath(name), buf.Bytes(), 0644); err != nil {
		log.Printf("saving %s: %v", name, err)
		m.errorMessage = fmt.Sprintf("Could not save %s", name)
		return
	}
	m.filename = name
	m.doc.dirty = false
	m.successMessage = "Saved " + name
}

func (m *model) openDocument(name string) {
	f, err := os.Open(m.config.GetSavePath(name))
	if err != nil {
		log.Printf("opening %s: %v", name, err)
		m.errorMessage = fmt.Sprintf("Could not open %s", name)
		return
	}
	defer f.Close()

	m.flushEdits()
	if err := m.editor.Load(f); err != nil {
		log.Printf("loading %s: %v", name, err)
		m.errorMessage = fmt.Sprintf("%s is not a valid document", name)
		return
	}
	m.filename = name
	m.doc.dirty = false
	m.successMessage = "Opened " + name
}

func (m *model) confirm(action ConfirmAction) {
	m.confirmAction = action
	m.mode = ModeConfirm
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return tea.Quit
		case ConfirmDelete:
			m.deleteSelected()
		case ConfirmOverwriteFile:
			m.saveDocument(m.input)
		case ConfirmDiscard:
			m.startFileInput(FileOpOpen)
			m.scanDocuments()
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return nil
}

func (m *model) handleHelpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
}
