package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"inkboard/attrs"
)

var (
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	panelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	labelStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
)

var helpLines = []string{
	"Inkboard Help",
	"=============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor around the canvas",
	"  Shift+h/j/k/l    Move cursor 4x faster",
	"  Mouse            Click and drag to draw, select and move",
	"",
	"Tools:",
	"------",
	"  1 select   2 pencil   3 eraser   4 rectangle",
	"  5 circle   6 arrow    7 text",
	"  Enter            Select under cursor, or start/finish drawing",
	"  Space            Toggle selection under cursor",
	"  Esc              Cancel drawing and clear selection",
	"",
	"Shapes:",
	"-------",
	"  m                Move shape under cursor (Enter to drop)",
	"  e                Edit selected text",
	"  d                Delete selection",
	"  c                Copy selection to the clipboard",
	"  p                Paste shapes from the clipboard",
	"  u / U            Undo / redo",
	"",
	"Attributes:",
	"-----------",
	"  g / G            Cycle fill / stroke color",
	"  [ / ]            Thinner / thicker stroke",
	"  - / +            Less / more opacity",
	"  ( / )            Smaller / larger font",
	"  f / F            Next / previous font family",
	"  * / /            Toggle bold / italic",
	"  a                Cycle text alignment",
	"",
	"Files:",
	"------",
	"  s                Save document",
	"  o                Open document",
	"  i / I            Insert picture / drawing from an image file",
	"  b                Scan a barcode from an image file",
	"  B                Insert QR code of the clipboard text",
	"  x                Export selected barcode as PNG",
	"  W                Set canvas size",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.mode == ModeFileInput {
		return m.fileInputView()
	}

	g := m.renderCanvas()
	var result strings.Builder
	for y, row := range g {
		if y > 0 {
			result.WriteString("\n")
		}
		if y != m.cursorY || m.cursorX >= len(row) {
			result.WriteString(string(row))
			continue
		}
		result.WriteString(string(row[:m.cursorX]))
		result.WriteString(cursorStyle.Render(string(row[m.cursorX])))
		result.WriteString(string(row[m.cursorX+1:]))
	}

	result.WriteString("\n")
	result.WriteString(m.panelView())
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■") + " " + color
}

// panelView shows the attribute group for the selection or active tool.
func (m model) panelView() string {
	a := m.attributes()
	var fields []string

	panel := m.editor.Panel()
	switch panel {
	case attrs.PanelText:
		fields = []string{
			fmt.Sprintf("font %s (%s)", a.FontFamily, a.TypeFace),
			fmt.Sprintf("size %g", a.FontSize),
			fmt.Sprintf("%s %d", a.FontStyle, a.FontWeight),
			string(a.TextAlign),
			"fill " + swatch(a.Fill),
			fmt.Sprintf("opacity %.2f", a.Opacity),
		}
	case attrs.PanelShape:
		fields = []string{
			"fill " + swatch(a.Fill),
			"stroke " + swatch(a.Stroke),
			fmt.Sprintf("width %g", a.StrokeWidth),
			fmt.Sprintf("opacity %.2f", a.Opacity),
		}
	case attrs.PanelBrush:
		fields = []string{
			"stroke " + swatch(a.Stroke),
			fmt.Sprintf("width %g", a.StrokeWidth),
			fmt.Sprintf("opacity %.2f", a.Opacity),
		}
	default:
		if len(m.editor.SelectedIDs()) > 1 {
			fields = []string{"mixed selection"}
		} else {
			fields = []string{"pick a drawing tool or select a shape"}
		}
	}

	label := labelStyle.Render(strings.ToUpper(panel.String()))
	return panelStyle.Render(label + " | " + strings.Join(fields, " | "))
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeTextInput:
		return "TEXT"
	case ModeMove:
		return "MOVE"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmQuit:
		return "Quit with unsaved changes? (y/n)"
	case ConfirmDelete:
		return fmt.Sprintf("Delete %d shape(s)? (y/n)", len(m.editor.SelectedIDs()))
	case ConfirmOverwriteFile:
		return fmt.Sprintf("Overwrite %s? (y/n)", m.input)
	case ConfirmDiscard:
		return "Discard unsaved changes? (y/n)"
	}
	return "(y/n)"
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeConfirm:
		return statusStyle.Render(m.confirmPrompt())
	case ModeTextInput:
		return statusStyle.Render("Text: " + strings.ReplaceAll(m.input, "\n", "⏎") + "█ | Enter to apply, Esc to cancel")
	}

	name := m.filename
	if name == "" {
		name = "[untitled]"
	}
	if m.doc.dirty {
		name += " *"
	}
	undo, redo := m.editor.Store().Depth()
	status := fmt.Sprintf("Mode: %s | Tool: %s | %s | %d shapes | selected %d | undo %d redo %d",
		m.modeString(), m.editor.Tool(), name, m.editor.Store().Len(), len(m.editor.SelectedIDs()), undo, redo)

	line := statusStyle.Render(status)
	if m.successMessage != "" {
		line += " " + successStyle.Render(m.successMessage)
	}
	if m.errorMessage != "" {
		line += " " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage == "" {
		line += statusStyle.Render(" | ? for help | q to quit")
	}
	return line
}

func (m model) fileInputView() string {
	var prompt string
	switch m.fileOp {
	case FileOpSave:
		prompt = "Save as"
	case FileOpOpen:
		prompt = "Open"
	case FileOpInsertPicture:
		prompt = "Insert picture from"
	case FileOpInsertDrawing:
		prompt = "Insert drawing from"
	case FileOpScanBarcode:
		prompt = "Scan barcode in"
	case FileOpExportBarcode:
		prompt = "Export barcode to"
	case FileOpCanvasSize:
		prompt = "Canvas size (WxH)"
	}

	var lines []string
	for i, name := range m.fileList {
		if i == m.selectedFileIndex {
			lines = append(lines, selectedStyle.Render("> "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	if m.fileOp == FileOpOpen && len(m.fileList) == 0 {
		lines = append(lines, "  (no saved documents)")
	}
	lines = append(lines, "", fmt.Sprintf("%s: %s█", prompt, m.input))
	lines = append(lines, statusStyle.Render("Enter to confirm | Esc to cancel"))
	return strings.Join(lines, "\n")
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = max(len(helpLines)-visibleHeight, 0)
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
