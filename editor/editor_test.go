package editor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkboard/adapt"
	"inkboard/attrs"
	"inkboard/barcode"
	"inkboard/dataurl"
	"inkboard/fonts"
	"inkboard/shape"
	"inkboard/store"
	"inkboard/tool"
)

type fakeCodec struct {
	result  barcode.Result
	err     error
	size    image.Point
	encoded []string
}

func (c *fakeCodec) Encode(text string, format shape.Symbology, colors barcode.Colors) (image.Image, error) {
	c.encoded = append(c.encoded, text)
	return image.NewRGBA(image.Rectangle{Max: c.size}), nil
}

func (c *fakeCodec) Decode(image.Image) (barcode.Result, error) {
	return c.result, c.err
}

type fakeFonts map[string]string

func (f fakeFonts) Load(_ context.Context, family string) (string, error) {
	if c, ok := f[family]; ok {
		return c, nil
	}
	return "", fonts.ErrUnavailable
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return dataurl.Encode("image/png", buf.Bytes())
}

func draw(t *testing.T, e *Editor, tl tool.Tool, pts ...shape.Point) shape.Record {
	t.Helper()
	e.SetTool(tl)
	require.True(t, e.BeginGesture(pts[0]))
	for _, p := range pts[1:] {
		require.True(t, e.ExtendGesture(p))
	}
	r, ok := e.EndGesture()
	require.True(t, ok)
	return r
}

func TestDrawingStampsDefaults(t *testing.T) {
	e := New(store.New())
	e.ApplyAttributes(attrs.SetStroke("#ff0000"))

	line := draw(t, e, tool.Pencil, shape.Point{X: 1, Y: 1}, shape.Point{X: 5, Y: 5}, shape.Point{X: 9, Y: 2})
	assert.Equal(t, shape.KindPencil, line.Type())
	assert.Equal(t, "#ff0000", line.Stroke)
	assert.Len(t, line.Points(), 3)

	rect := draw(t, e, tool.Rectangle, shape.Point{X: 50, Y: 40}, shape.Point{X: 10, Y: 60})
	assert.Equal(t, 10.0, rect.X)
	assert.Equal(t, 40.0, rect.Y)
	assert.Equal(t, shape.Rectangle{Width: 40, Height: 20}, rect.Body)

	circle := draw(t, e, tool.Circle, shape.Point{X: 0, Y: 0}, shape.Point{X: 3, Y: 4})
	assert.Equal(t, shape.Circle{Radius: 5}, circle.Body)

	text := draw(t, e, tool.Text, shape.Point{X: 7, Y: 8})
	body := text.Body.(shape.Text)
	assert.Equal(t, DefaultText, body.Text)
	assert.Equal(t, e.Defaults().FontSize, body.FontSize)

	assert.Equal(t, []string{line.ID, rect.ID, circle.ID, text.ID}, shape.IDs(e.Shapes()))
	undo, _ := e.Store().Depth()
	assert.Equal(t, 4, undo)
}

func TestDegenerateGestureAddsNothing(t *testing.T) {
	e := New(store.New())
	e.SetTool(tool.Pencil)
	require.True(t, e.BeginGesture(shape.Point{X: 1, Y: 1}))
	_, ok := e.EndGesture()
	assert.False(t, ok)

	e.SetTool(tool.Rectangle)
	e.BeginGesture(shape.Point{X: 1, Y: 1})
	e.ExtendGesture(shape.Point{X: 1, Y: 9})
	_, ok = e.EndGesture()
	assert.False(t, ok)

	assert.Empty(t, e.Shapes())
	assert.False(t, e.Store().CanUndo())
}

func TestSwitchingToolCancelsGesture(t *testing.T) {
	e := New(store.New())
	e.SetTool(tool.Pencil)
	e.BeginGesture(shape.Point{X: 1, Y: 1})
	e.ExtendGesture(shape.Point{X: 2, Y: 2})
	e.SetTool(tool.Select)

	_, ok := e.EndGesture()
	assert.False(t, ok)
	assert.False(t, e.BeginGesture(shape.Point{}))
}

func TestMixedSelectionHasNoPanel(t *testing.T) {
	e := New(store.New())
	text := draw(t, e, tool.Text, shape.Point{X: 1, Y: 1})
	line := draw(t, e, tool.Pencil, shape.Point{X: 1, Y: 1}, shape.Point{X: 2, Y: 2})

	e.SetTool(tool.Select)
	require.True(t, e.Select(text.ID))
	assert.Equal(t, attrs.PanelText, e.Panel())

	require.True(t, e.Toggle(line.ID))
	assert.Equal(t, attrs.PanelNone, e.Panel())

	e.ClearSelection()
	assert.Equal(t, attrs.PanelNone, e.Panel())
	e.SetTool(tool.Eraser)
	assert.Equal(t, attrs.PanelBrush, e.Panel())
}

func TestApplyAttributesToSelection(t *testing.T) {
	e := New(store.New())
	a := draw(t, e, tool.Rectangle, shape.Point{}, shape.Point{X: 10, Y: 10})
	b := draw(t, e, tool.Circle, shape.Point{}, shape.Point{X: 10, Y: 0})
	e.SetTool(tool.Select)
	e.Select(a.ID, b.ID)
	before, _ := e.Store().Depth()

	assert.True(t, e.ApplyAttributes(attrs.SetFill("#00ff00")))

	after, _ := e.Store().Depth()
	assert.Equal(t, before+1, after)
	for _, r := range e.Shapes() {
		assert.Equal(t, "#00ff00", r.Fill)
	}
	assert.Equal(t, "#00ff00", e.Attributes().Fill)
	assert.Equal(t, "#00ff00", e.Defaults().Fill)

	assert.False(t, e.ApplyAttributes(attrs.Patch{}))
}

func TestApplyAttributesWithoutSelectionOnlyChangesDefaults(t *testing.T) {
	e := New(store.New())
	assert.False(t, e.ApplyAttributes(attrs.SetOpacity(0.5)))
	assert.Equal(t, 0.5, e.Defaults().Opacity)
	assert.False(t, e.Store().CanUndo())
}

func TestSetFontFamily(t *testing.T) {
	e := New(store.New(), WithFonts(fakeFonts{"Go Mono": fonts.Monospace}))
	text := draw(t, e, tool.Text, shape.Point{X: 1, Y: 1})
	e.SetTool(tool.Select)
	e.Select(text.ID)

	require.NoError(t, e.SetFontFamily(context.Background(), "Go Mono"))
	got, _ := e.Store().Find(text.ID)
	body := got.Body.(shape.Text)
	assert.Equal(t, "Go Mono", body.FontFamily)
	assert.Equal(t, fonts.Monospace, body.TypeFace)

	shapes := e.Shapes()
	err := e.SetFontFamily(context.Background(), "Comic Sans")
	assert.ErrorIs(t, err, fonts.ErrUnavailable)
	assert.True(t, shape.EqualSequence(shapes, e.Shapes()))
	assert.Equal(t, "Go Mono", e.Defaults().FontFamily)
}

func TestSetFontFamilyWithoutLoader(t *testing.T) {
	e := New(store.New())
	assert.ErrorIs(t, e.SetFontFamily(context.Background(), "Go"), ErrNoFonts)
}

func TestDragEndOnlyWithSelectTool(t *testing.T) {
	e := New(store.New())
	r := draw(t, e, tool.Rectangle, shape.Point{}, shape.Point{X: 10, Y: 10})

	assert.False(t, e.DragEnd(r.ID, 100, 100))

	e.SetTool(tool.Select)
	assert.True(t, e.DragEnd(r.ID, 100, 120))
	got, _ := e.Store().Find(r.ID)
	assert.Equal(t, 100.0, got.X)
	assert.Equal(t, 120.0, got.Y)

	assert.False(t, e.DragEnd(r.ID, 100, 120))
	assert.False(t, e.DragEnd("missing", 1, 1))
}

func TestDeleteAndUndoPrunesSelection(t *testing.T) {
	e := New(store.New())
	r := draw(t, e, tool.Rectangle, shape.Point{}, shape.Point{X: 10, Y: 10})
	e.SetTool(tool.Select)
	e.Select(r.ID)

	assert.True(t, e.DeleteSelected())
	assert.Empty(t, e.Shapes())
	assert.Empty(t, e.SelectedIDs())

	require.True(t, e.Undo())
	assert.Len(t, e.Shapes(), 1)
	e.Select(r.ID)

	require.True(t, e.Undo())
	assert.Empty(t, e.Shapes())
	assert.Empty(t, e.SelectedIDs())

	require.True(t, e.Redo())
	assert.Len(t, e.Shapes(), 1)
}

func TestSelectIgnoresUnknownIDs(t *testing.T) {
	e := New(store.New())
	r := draw(t, e, tool.Circle, shape.Point{}, shape.Point{X: 1, Y: 1})
	e.SetTool(tool.Select)
	e.Select("ghost", r.ID)
	assert.Equal(t, []string{r.ID}, e.SelectedIDs())
	assert.False(t, e.Toggle("ghost"))
}

func TestInsertBarcodeFromImage(t *testing.T) {
	codec := &fakeCodec{result: barcode.Result{Text: "hello", Format: "QR_CODE"}, size: image.Pt(132, 132)}
	e := New(store.New(), WithCodec(codec), WithCanvas(400, 300))
	e.ApplyAttributes(attrs.SetFill("#112233"))
	e.ApplyAttributes(attrs.SetStroke("#445566"))

	r, err := e.InsertBarcodeFromImage(pngDataURL(t, 4, 4))
	require.NoError(t, err)

	assert.Equal(t, shape.Barcode{Text: "hello", CodeFormat: shape.QRCode, Width: 132, Height: 132}, r.Body)
	assert.Equal(t, "#112233", r.Fill)
	assert.Equal(t, "#445566", r.Stroke)
	assert.Equal(t, 134.0, r.X)
	assert.Equal(t, 84.0, r.Y)
	assert.Equal(t, []string{"hello"}, codec.encoded)
	assert.Len(t, e.Shapes(), 1)
}

func TestFailedDecodeAddsNothing(t *testing.T) {
	codec := &fakeCodec{err: barcode.ErrNotFound}
	e := New(store.New(), WithCodec(codec))

	_, err := e.InsertBarcodeFromImage(pngDataURL(t, 4, 4))
	assert.ErrorIs(t, err, barcode.ErrNotFound)

	_, err = e.InsertBarcodeFromImage("data:text/plain,hello")
	assert.ErrorIs(t, err, adapt.ErrMalformedImage)

	codec.err = nil
	codec.result = barcode.Result{Text: "x", Format: "AZTEC"}
	_, err = e.InsertBarcodeFromImage(pngDataURL(t, 4, 4))
	assert.ErrorIs(t, err, adapt.ErrUnsupportedFormat)

	assert.Empty(t, e.Shapes())
	assert.False(t, e.Store().CanUndo())
}

func TestInsertImage(t *testing.T) {
	e := New(store.New(), WithCanvas(100, 100))
	r, err := e.InsertImage(pngDataURL(t, 20, 10), adapt.Drawing)
	require.NoError(t, err)

	assert.Equal(t, 40.0, r.X)
	assert.Equal(t, 45.0, r.Y)
	body := r.Body.(shape.Image)
	assert.True(t, body.IsDrawing)
	assert.Equal(t, 20.0, body.Width)

	_, err = e.InsertImage("data:image/png;base64,AAAA", adapt.Picture)
	assert.Error(t, err)
	assert.Len(t, e.Shapes(), 1)
}

func TestSaveLoad(t *testing.T) {
	e := New(store.New())
	draw(t, e, tool.Rectangle, shape.Point{}, shape.Point{X: 10, Y: 10})
	draw(t, e, tool.Arrow, shape.Point{}, shape.Point{X: 10, Y: 10})

	var buf bytes.Buffer
	require.NoError(t, e.Save(&buf))

	other := New(store.New())
	require.NoError(t, other.Load(&buf))
	assert.True(t, shape.EqualSequence(e.Shapes(), other.Shapes()))
	assert.True(t, other.Store().CanUndo())

	require.True(t, other.Undo())
	assert.Empty(t, other.Shapes())
}

func TestLoadRejectsInvalidDocument(t *testing.T) {
	e := New(store.New())
	draw(t, e, tool.Circle, shape.Point{}, shape.Point{X: 1, Y: 1})
	before := e.Shapes()

	doc := `[{"id":"a","type":"circle","x":0,"y":0,"radius":1},{"id":"a","type":"circle","x":0,"y":0,"radius":2}]`
	assert.Error(t, e.Load(strings.NewReader(doc)))
	assert.Error(t, e.Load(strings.NewReader(`{"not":"a list"}`)))
	assert.True(t, shape.EqualSequence(before, e.Shapes()))
}

func TestCopyPasteUsesFreshIDs(t *testing.T) {
	e := New(store.New())
	r := draw(t, e, tool.Rectangle, shape.Point{X: 5, Y: 5}, shape.Point{X: 15, Y: 15})
	e.SetTool(tool.Select)

	_, err := e.CopySelected()
	assert.ErrorIs(t, err, ErrNothing)

	e.Select(r.ID)
	data, err := e.CopySelected()
	require.NoError(t, err)

	pasted, err := e.Paste(data)
	require.NoError(t, err)
	require.Len(t, pasted, 1)
	assert.NotEqual(t, r.ID, pasted[0].ID)
	assert.Equal(t, r.X+PasteOffset, pasted[0].X)
	assert.Equal(t, []string{pasted[0].ID}, e.SelectedIDs())

	again, err := e.Paste(data)
	require.NoError(t, err)
	assert.NotEqual(t, pasted[0].ID, again[0].ID)
	assert.Len(t, e.Shapes(), 3)

	_, err = e.Paste([]byte("nonsense"))
	assert.Error(t, err)
}

func TestSetCanvasSize(t *testing.T) {
	e := New(store.New())
	assert.ErrorIs(t, e.SetCanvasSize(0, 10), ErrInvalidSize)
	assert.ErrorIs(t, e.SetCanvasSize(10, -1), ErrInvalidSize)
	require.NoError(t, e.SetCanvasSize(1024, 768))
	assert.Equal(t, adapt.Bounds{Width: 1024, Height: 768}, e.Canvas())
}

func TestSetText(t *testing.T) {
	e := New(store.New())
	r := draw(t, e, tool.Text, shape.Point{X: 3, Y: 3})
	assert.True(t, e.SetText(r.ID, "hello"))
	got, _ := e.Store().Find(r.ID)
	assert.Equal(t, "hello", got.Body.(shape.Text).Text)

	rect := draw(t, e, tool.Rectangle, shape.Point{}, shape.Point{X: 2, Y: 2})
	assert.False(t, e.SetText(rect.ID, "nope"))
}

func TestCodecErrorsAreWrapped(t *testing.T) {
	e := New(store.New(), WithCodec(&fakeCodec{err: errors.New("boom")}))
	_, err := e.InsertBarcodeFromImage(pngDataURL(t, 2, 2))
	assert.EqualError(t, err, "boom")
}

func TestInsertBarcodeRejectsUnencodablePayload(t *testing.T) {
	e := New(store.New())
	_, err := e.InsertBarcode("hello", shape.EAN13)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ean13")
	assert.Empty(t, e.Shapes())
	assert.False(t, e.Store().CanUndo())

	r, err := e.InsertBarcode("590123412345", shape.EAN13)
	require.NoError(t, err)
	assert.Equal(t, shape.KindBarcode, r.Type())
}

func TestApplyAttributesToCapturedSelection(t *testing.T) {
	e := New(store.New())
	a := draw(t, e, tool.Rectangle, shape.Point{}, shape.Point{X: 10, Y: 10})
	b := draw(t, e, tool.Rectangle, shape.Point{X: 20}, shape.Point{X: 30, Y: 10})
	e.SetTool(tool.Select)
	e.Select(b.ID)

	assert.True(t, e.ApplyAttributesTo([]string{a.ID, "gone"}, attrs.SetOpacity(0.4)))

	got, _ := e.Store().Find(a.ID)
	assert.Equal(t, 0.4, got.Opacity)
	got, _ = e.Store().Find(b.ID)
	assert.Equal(t, 1.0, got.Opacity)
	assert.Equal(t, []string{b.ID}, e.SelectedIDs())
}
