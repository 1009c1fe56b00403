package main

import (
	"inkboard/attrs"
	"inkboard/barcode"
	"inkboard/debounce"
	"inkboard/editor"
	"inkboard/fonts"
	"inkboard/shape"
)

type model struct {
	width             int
	height            int
	cursorX           int
	cursorY           int
	mode              Mode
	help              bool
	helpScroll        int
	editor            *editor.Editor
	fonts             *fonts.Registry
	config            *Config
	edits             *debounce.Debouncer[pendingEdit]
	pending           pendingEdit
	filename          string
	input             string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	confirmAction     ConfirmAction
	textTarget        string
	drag              *dragState
	doc               *docStatus
	errorMessage      string
	successMessage    string
}

// docStatus is shared by every copy of the model and updated by the store
// whenever the document changes.
type docStatus struct {
	dirty  bool
	shapes int
}

// dragState tracks a select-tool drag from press to release. Only the
// release is turned into a document change.
type dragState struct {
	id      string
	start   shape.Point
	current shape.Point
	originX float64
	originY float64
}

func (d *dragState) position() (float64, float64) {
	return d.originX + d.current.X - d.start.X, d.originY + d.current.Y - d.start.Y
}

// pendingEdit is a panel edit waiting out the debounce, together with the
// selection it was made on.
type pendingEdit struct {
	ids   []string
	patch attrs.Patch
}

// attributesMsg carries a debounced panel edit back onto the UI goroutine.
type attributesMsg pendingEdit

type fileLoadedMsg struct {
	op      FileOperation
	path    string
	dataURL string
	err     error
}

type barcodeDecodedMsg struct {
	path   string
	result barcode.Result
	err    error
}

type fontLoadedMsg struct {
	family   string
	category string
	err      error
}
