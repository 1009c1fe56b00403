package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"inkboard/adapt"
	"inkboard/attrs"
	"inkboard/barcode"
	"inkboard/debounce"
	"inkboard/editor"
	"inkboard/fonts"
	"inkboard/shape"
	"inkboard/store"
	"inkboard/tool"
)

func main() {
	config, configErr := loadConfig()

	if config.LogFile != "" {
		f, err := tea.LogToFile(config.GetSavePath(config.LogFile), "inkboard")
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var p *tea.Program
	m := initialModel(config, func(msg tea.Msg) { p.Send(msg) })
	if configErr != nil {
		log.Printf("using default configuration: %v", configErr)
		m.errorMessage = configErr.Error()
	}

	p = tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// initialModel wires the editor and its collaborators. send delivers
// messages produced outside the program loop, such as debounced edits.
func initialModel(config *Config, send func(tea.Msg)) model {
	registry := fonts.Builtin()
	doc := &docStatus{}

	defaults := config.Attributes()
	if category, err := registry.Load(context.Background(), defaults.FontFamily); err == nil {
		defaults.TypeFace = category
	} else {
		log.Printf("default font: %v", err)
		defaults.FontFamily = attrs.Defaults().FontFamily
	}

	st := store.New(
		store.WithLimit(config.HistoryLimit),
		store.WithOnChange(func(records []shape.Record) {
			doc.dirty = true
			doc.shapes = len(records)
		}),
	)
	ed := editor.New(st,
		editor.WithFonts(registry),
		editor.WithCodec(barcode.Standard{}),
		editor.WithDefaults(defaults),
		editor.WithCanvas(config.CanvasWidth, config.CanvasHeight),
	)
	ed.SetTool(config.Tool())

	return model{
		mode:              ModeNormal,
		editor:            ed,
		fonts:             registry,
		config:            config,
		doc:               doc,
		selectedFileIndex: -1,
		edits:             debounce.New(config.DebounceDelay(), func(e pendingEdit) {
			send(attributesMsg(e))
		}),
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

	case attributesMsg:
		m.editor.ApplyAttributesTo(msg.ids, msg.patch)
		if !m.edits.Pending() {
			m.pending = pendingEdit{}
		}
		return m, nil

	case fileLoadedMsg:
		return m, m.handleFileLoaded(msg)

	case barcodeDecodedMsg:
		m.handleBarcodeDecoded(msg)
		return m, nil

	case fontLoadedMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Font %s unavailable", msg.family)
			return m, nil
		}
		m.editor.ApplyFontFamily(msg.family, msg.category)
		m.successMessage = "Font: " + msg.family
		return m, nil

	case tea.MouseMsg:
		if m.mode == ModeNormal && !m.help {
			m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.help {
			m.handleHelpKey(msg)
			return m, nil
		}
		m.errorMessage = ""
		m.successMessage = ""

		var cmd tea.Cmd
		switch m.mode {
		case ModeNormal:
			cmd = m.handleNormalKey(msg)
		case ModeMove:
			m.handleMoveKey(msg)
		case ModeTextInput:
			m.handleTextInputKey(msg)
		case ModeFileInput:
			cmd = m.handleFileInputKey(msg)
		case ModeConfirm:
			cmd = m.handleConfirmKey(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	w, h := m.canvasArea()
	inside := msg.X >= 0 && msg.X < w && msg.Y >= 0 && msg.Y < h
	if inside {
		m.cursorX, m.cursorY = msg.X, msg.Y
	}
	p := m.toCanvas(m.cursorX, m.cursorY)

	switch msg.Type {
	case tea.MouseLeft:
		if !inside {
			return
		}
		m.press(p, msg.Ctrl)
	case tea.MouseMotion:
		if m.drag != nil {
			m.drag.current = p
		} else {
			m.editor.ExtendGesture(p)
		}
	case tea.MouseRelease:
		m.release()
	}
}

// press starts whatever the active tool does at p.
func (m *model) press(p shape.Point, toggle bool) {
	switch m.editor.Tool() {
	case tool.Select:
		sx, sy := m.cellScale()
		r, ok := recordAt(m.editor.Shapes(), p, sx/2, sy/2)
		if !ok {
			if !toggle {
				m.editor.ClearSelection()
			}
			return
		}
		if toggle {
			m.editor.Toggle(r.ID)
			return
		}
		if !m.isSelected(r.ID) {
			m.editor.Select(r.ID)
		}
		m.drag = &dragState{id: r.ID, start: p, current: p, originX: r.X, originY: r.Y}
	case tool.Text:
		m.editor.BeginGesture(p)
		m.release()
	default:
		m.editor.BeginGesture(p)
	}
}

// release finishes the drag or gesture in progress.
func (m *model) release() {
	if m.drag != nil {
		d := m.drag
		m.drag = nil
		if d.current != d.start {
			x, y := d.position()
			m.editor.DragEnd(d.id, x, y)
		}
		return
	}

	r, ok := m.editor.EndGesture()
	if !ok {
		return
	}
	if r.Type() == shape.KindText {
		m.textTarget = r.ID
		m.input = ""
		m.mode = ModeTextInput
	}
}

func (m *model) handleFileLoaded(msg fileLoadedMsg) tea.Cmd {
	if msg.err != nil {
		log.Printf("loading %s: %v", msg.path, msg.err)
		m.errorMessage = fmt.Sprintf("Could not load %s", msg.path)
		return nil
	}

	switch msg.op {
	case FileOpInsertPicture, FileOpInsertDrawing:
		kind := adapt.Picture
		if msg.op == FileOpInsertDrawing {
			kind = adapt.Drawing
		}
		r, err := m.editor.InsertImage(msg.dataURL, kind)
		if err != nil {
			log.Printf("inserting %s: %v", msg.path, err)
			m.errorMessage = fmt.Sprintf("%s is not an image", msg.path)
			return nil
		}
		m.editor.Select(r.ID)
		m.successMessage = "Inserted " + msg.path
	case FileOpScanBarcode:
		m.successMessage = "Scanning " + msg.path + "..."
		return decodeBarcodeCmd(m.editor.Codec(), msg.path, msg.dataURL)
	}
	return nil
}

func (m *model) handleBarcodeDecoded(msg barcodeDecodedMsg) {
	if msg.err != nil {
		log.Printf("decoding barcode in %s: %v", msg.path, msg.err)
		m.errorMessage = fmt.Sprintf("No barcode found in %s", msg.path)
		return
	}
	r, err := m.editor.InsertDecodedBarcode(msg.result)
	if err != nil {
		log.Printf("inserting barcode from %s: %v", msg.path, err)
		m.errorMessage = err.Error()
		return
	}
	m.editor.Select(r.ID)
	m.successMessage = fmt.Sprintf("Inserted %s barcode", msg.result.Format)
}
