// Package editor ties the shape store, the tool state and the panel
// attributes together into the operations a canvas front-end calls.
//
// An Editor is driven from a single goroutine. Collaborators that block,
// font loading and barcode decoding, take their input up front so the
// caller may run them off the UI goroutine and hand back the result.
package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"math"

	"inkboard/adapt"
	"inkboard/attrs"
	"inkboard/barcode"
	"inkboard/dataurl"
	"inkboard/shape"
	"inkboard/store"
	"inkboard/tool"
)

var (
	ErrInvalidSize = errors.New("canvas size must be positive")
	ErrNoFonts     = errors.New("no font loader configured")
	ErrNothing     = errors.New("nothing to copy")
)

const (
	// PasteOffset shifts pasted records so they do not cover the originals.
	PasteOffset = 10
	// DefaultText is the content of a text record placed with the text tool.
	DefaultText = "Text"
)

// FontLoader makes a font family available and reports its category.
type FontLoader interface {
	Load(ctx context.Context, family string) (string, error)
}

type Option func(*Editor)

func WithFonts(f FontLoader) Option {
	return func(e *Editor) { e.fonts = f }
}

func WithCodec(c barcode.Codec) Option {
	return func(e *Editor) { e.codec = c }
}

func WithDefaults(a attrs.Attributes) Option {
	return func(e *Editor) { e.defaults = a }
}

func WithCanvas(width, height float64) Option {
	return func(e *Editor) {
		if width > 0 && height > 0 {
			e.canvas = adapt.Bounds{Width: width, Height: height}
		}
	}
}

type Editor struct {
	store    *store.Store
	tools    *tool.State
	defaults attrs.Attributes
	canvas   adapt.Bounds
	fonts    FontLoader
	codec    barcode.Codec
}

// New returns an editor over st with the select tool active.
func New(st *store.Store, opts ...Option) *Editor {
	e := &Editor{
		store:    st,
		tools:    tool.NewState(tool.Select),
		defaults: attrs.Defaults(),
		canvas:   adapt.Bounds{Width: 800, Height: 600},
		codec:    barcode.Standard{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Store() *store.Store        { return e.store }
func (e *Editor) Shapes() []shape.Record     { return e.store.Shapes() }
func (e *Editor) Tool() tool.Tool            { return e.tools.Tool() }
func (e *Editor) Canvas() adapt.Bounds       { return e.canvas }
func (e *Editor) Defaults() attrs.Attributes { return e.defaults }
func (e *Editor) Codec() barcode.Codec       { return e.codec }

// SetTool switches the active tool. An unfinished gesture is dropped.
func (e *Editor) SetTool(t tool.Tool) {
	e.tools.SetTool(t)
}

// SetCanvasSize changes the frame new records are centered in. It is not
// part of the undo history.
func (e *Editor) SetCanvasSize(width, height float64) error {
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, width, height)
	}
	e.canvas = adapt.Bounds{Width: width, Height: height}
	return nil
}

// Selected returns the selected records in selection order.
func (e *Editor) Selected() []shape.Record {
	return e.tools.SelectedRecords(e.store.Shapes())
}

func (e *Editor) SelectedIDs() []string { return e.tools.Selected() }

// Select replaces the selection with the ids that exist in the document.
func (e *Editor) Select(ids ...string) bool {
	live := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := e.store.Find(id); ok {
			live = append(live, id)
		}
	}
	return e.tools.Select(live...)
}

func (e *Editor) Toggle(id string) bool {
	if _, ok := e.store.Find(id); !ok {
		return false
	}
	return e.tools.Toggle(id)
}

func (e *Editor) ClearSelection() { e.tools.ClearSelection() }

// Panel is the control panel to show for the current selection and tool.
func (e *Editor) Panel() attrs.Panel {
	return attrs.PanelFor(e.Selected(), e.tools.Tool())
}

// Attributes are the values the panel displays.
func (e *Editor) Attributes() attrs.Attributes {
	return attrs.Resolve(e.Selected(), e.defaults)
}

// ApplyAttributes folds a panel edit into the tool defaults and applies it
// to every selected record as one undoable change. It reports whether the
// document changed.
func (e *Editor) ApplyAttributes(p attrs.Patch) bool {
	return e.ApplyAttributesTo(e.tools.Selected(), p)
}

// ApplyAttributesTo is ApplyAttributes for a selection captured earlier.
// Ids no longer in the document are skipped.
func (e *Editor) ApplyAttributesTo(ids []string, p attrs.Patch) bool {
	if p.Empty() {
		return false
	}
	e.defaults = p.ApplyDefaults(e.defaults)
	if len(ids) == 0 {
		return false
	}
	return e.store.SetShapes(store.UpdateByID(ids, p.Apply))
}

// SetFontFamily loads family and, once it is available, applies it to the
// defaults and the selection. Nothing changes when loading fails.
func (e *Editor) SetFontFamily(ctx context.Context, family string) error {
	if e.fonts == nil {
		return ErrNoFonts
	}
	category, err := e.fonts.Load(ctx, family)
	if err != nil {
		log.Printf("loading font %q: %v", family, err)
		return fmt.Errorf("load font %q: %w", family, err)
	}
	e.ApplyFontFamily(family, category)
	return nil
}

// ApplyFontFamily applies a family that has already been loaded.
func (e *Editor) ApplyFontFamily(family, category string) bool {
	return e.ApplyAttributes(attrs.SetFontFamily(family, category))
}

// SetText replaces the content of a text record.
func (e *Editor) SetText(id, text string) bool {
	return e.store.SetShapes(store.UpdateByID([]string{id}, func(r shape.Record) shape.Record {
		if t, ok := r.Body.(shape.Text); ok {
			t.Text = text
			r = r.WithBody(t)
		}
		return r
	}))
}

// DragEnd records the final position of a dragged record. Drags are only
// honored while shapes are draggable.
func (e *Editor) DragEnd(id string, x, y float64) bool {
	if !e.tools.Draggable() {
		return false
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return false
	}
	return e.store.SetShapes(store.Move(id, x, y))
}

// DeleteSelected removes the selected records.
func (e *Editor) DeleteSelected() bool {
	ids := e.tools.Selected()
	if len(ids) == 0 {
		return false
	}
	changed := e.store.SetShapes(store.Remove(ids...))
	e.tools.Prune(e.store.Shapes())
	return changed
}

func (e *Editor) Undo() bool {
	ok := e.store.Undo()
	e.tools.Prune(e.store.Shapes())
	return ok
}

func (e *Editor) Redo() bool {
	ok := e.store.Redo()
	e.tools.Prune(e.store.Shapes())
	return ok
}

func (e *Editor) add(r shape.Record) (shape.Record, error) {
	if err := shape.Validate(r); err != nil {
		return shape.Record{}, err
	}
	e.store.SetShapes(store.Append(r))
	return r, nil
}

// InsertImage adds a picture or drawing from an image data URL, centered on
// the canvas at its natural size.
func (e *Editor) InsertImage(dataURL string, kind adapt.ImageKind) (shape.Record, error) {
	r, err := adapt.FromLoadedFile(dataURL, kind, e.canvas)
	if err != nil {
		return shape.Record{}, err
	}
	if o := e.defaults.Opacity; o >= 0 && o <= 1 {
		r.Opacity = o
	}
	return e.add(r)
}

// InsertBarcode adds a barcode record for text in the given symbology,
// colored with the current fill and stroke.
func (e *Editor) InsertBarcode(text string, format shape.Symbology) (shape.Record, error) {
	return e.insertBarcode(text, format.String())
}

// InsertBarcodeFromImage reads a barcode out of an image data URL and adds
// it as a barcode record. A failed read leaves the document untouched.
func (e *Editor) InsertBarcodeFromImage(dataURL string) (shape.Record, error) {
	img, err := dataurl.DecodeImage(dataURL)
	if err != nil {
		return shape.Record{}, fmt.Errorf("%w: %v", adapt.ErrMalformedImage, err)
	}
	res, err := e.codec.Decode(img)
	if err != nil {
		log.Printf("decoding barcode: %v", err)
		return shape.Record{}, err
	}
	return e.InsertDecodedBarcode(res)
}

// InsertDecodedBarcode adds a barcode record for a decoder result obtained
// elsewhere.
func (e *Editor) InsertDecodedBarcode(res barcode.Result) (shape.Record, error) {
	return e.insertBarcode(res.Text, res.Format)
}

func (e *Editor) insertBarcode(text, format string) (shape.Record, error) {
	colors := adapt.Colors{Bar: e.defaults.Fill, Text: e.defaults.Stroke}
	var opts []adapt.Option
	if sym, ok := shape.ParseSymbology(format); ok && text != "" {
		size, err := e.symbolSize(text, sym, colors)
		if err != nil {
			log.Printf("encoding %s barcode: %v", sym, err)
			return shape.Record{}, fmt.Errorf("encode %s barcode: %w", sym, err)
		}
		opts = append(opts, adapt.WithSize(float64(size.X), float64(size.Y)))
	}
	r, err := adapt.FromDecodedBarcode(text, format, colors, e.canvas, opts...)
	if err != nil {
		return shape.Record{}, err
	}
	r.Opacity = e.defaults.Opacity
	return e.add(r)
}

func (e *Editor) symbolSize(text string, sym shape.Symbology, colors adapt.Colors) (image.Point, error) {
	img, err := e.codec.Encode(text, sym, barcode.Colors{Bar: colors.Bar, Text: colors.Text})
	if err != nil {
		return image.Point{}, err
	}
	return img.Bounds().Size(), nil
}

// Save writes the document to w.
func (e *Editor) Save(w io.Writer) error {
	data, err := shape.MarshalDocument(e.store.Shapes())
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Load replaces the document with the one read from r. The replacement is
// a single undoable change; an invalid document changes nothing.
func (e *Editor) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	records, err := shape.UnmarshalDocument(data)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	e.store.Replace(records)
	e.tools.Prune(e.store.Shapes())
	return nil
}

// CopySelected serializes the selection as a document.
func (e *Editor) CopySelected() ([]byte, error) {
	sel := e.Selected()
	if len(sel) == 0 {
		return nil, ErrNothing
	}
	return shape.MarshalDocument(sel)
}

// Paste adds the records of a copied document under fresh ids, offset from
// where they were copied. The pasted records become the selection.
func (e *Editor) Paste(data []byte) ([]shape.Record, error) {
	records, err := shape.UnmarshalDocument(data)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	for i := range records {
		records[i].ID = shape.NewID()
		records[i].X += PasteOffset
		records[i].Y += PasteOffset
	}
	e.store.SetShapes(store.Append(records...))
	e.tools.Select(shape.IDs(records)...)
	return records, nil
}
