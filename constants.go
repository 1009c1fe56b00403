package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeTextInput
	ModeMove
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpInsertPicture
	FileOpInsertDrawing
	FileOpScanBarcode
	FileOpExportBarcode
	FileOpCanvasSize
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmDelete
	ConfirmOverwriteFile
	ConfirmDiscard
)

const (
	documentExt  = ".json"
	panelHeight  = 1 // attribute panel line above the status line
	statusHeight = 1

	strokeWidthStep = 1
	opacityStep     = 0.1
	fontSizeStep    = 2
	fontLoadTimeout = 5 // seconds
)

// Colors cycled by the fill and stroke keys.
var palette = []string{
	"#000000",
	"#ffffff",
	"#e03131",
	"#2f9e44",
	"#1971c2",
	"#f08c00",
	"#9c36b5",
	"#868e96",
}
