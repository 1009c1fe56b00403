package shape

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() []Record {
	return []Record{
		{ID: "r1", X: 10, Y: 10, Opacity: 1, Fill: "#ffffff", Stroke: "#000000", StrokeWidth: 2,
			Body: Rectangle{Width: 50, Height: 30}},
		{ID: "c1", X: 100, Y: 80, Opacity: 0.5, Fill: "#ff0000", StrokeWidth: 1,
			Body: Circle{Radius: 25}},
		{ID: "a1", Opacity: 1, Stroke: "#333333", StrokeWidth: 4,
			Body: Arrow{Points: []Point{{0, 0}, {40, 20}}}},
		{ID: "t1", X: 5, Y: 6, Opacity: 1, Fill: "#222222",
			Body: Text{Text: "hello", FontFamily: "Go", FontSize: 24, FontStyle: FontItalic,
				FontWeight: WeightBold, TextAlign: AlignCenter, TypeFace: "sans-serif"}},
		{ID: "i1", X: 1, Y: 2, Opacity: 1,
			Body: Image{DataURL: "data:image/png;base64,AAAA", IsDrawing: true, Width: 4, Height: 3}},
		{ID: "b1", X: 300, Y: 250, Opacity: 1, Fill: "#000000", Stroke: "#111111",
			Body: Barcode{Text: "hello", CodeFormat: QRCode, Width: 100, Height: 100}},
		{ID: "p1", Opacity: 0.8, Stroke: "#00ff00", StrokeWidth: 5,
			Body: Pencil{Points: []Point{{1, 1}, {2, 3}, {4, 9}}}},
		{ID: "e1", Opacity: 1, StrokeWidth: 20,
			Body: Eraser{Points: []Point{{7, 7}, {8, 8}}}},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := MarshalDocument(doc)
	require.NoError(t, err)

	got, err := UnmarshalDocument(data)
	require.NoError(t, err)
	require.Len(t, got, len(doc))
	assert.True(t, EqualSequence(doc, got))
	for i := range doc {
		assert.Equal(t, doc[i].Type(), got[i].Type(), "record %d", i)
	}
}

func TestRecordWireLayout(t *testing.T) {
	data, err := json.Marshal(sampleDocument()[3])
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "text", fields["type"])
	assert.Equal(t, "900", fields["fontWeight"])
	assert.Equal(t, "italic", fields["fontStyle"])
	assert.Equal(t, "sans-serif", fields["typeFace"])

	data, err = json.Marshal(sampleDocument()[6])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, []any{1.0, 1.0, 2.0, 3.0, 4.0, 9.0}, fields["points"])
}

func TestUnmarshalAcceptsNumericWeight(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"id":"t","type":"text","opacity":1,"fontWeight":400,"text":"x"}`), &r)
	require.NoError(t, err)
	assert.Equal(t, WeightRegular, r.Body.(Text).FontWeight)
}

func TestUnmarshalDocumentRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown type", `[{"id":"x","type":"hexagon","opacity":1}]`},
		{"duplicate id", `[{"id":"x","type":"circle","opacity":1},{"id":"x","type":"circle","opacity":1}]`},
		{"odd points", `[{"id":"x","type":"pencil","opacity":1,"points":[1,2,3]}]`},
		{"opacity", `[{"id":"x","type":"circle","opacity":2}]`},
		{"missing id", `[{"type":"circle","opacity":1}]`},
		{"bad barcode format", `[{"id":"x","type":"barcode","opacity":1,"text":"a","codeFormat":"morse"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDocument([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestUnmarshalEmptyDocument(t *testing.T) {
	got, err := UnmarshalDocument([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestValidate(t *testing.T) {
	ok := Record{ID: "a", Opacity: 1, Body: Circle{Radius: 3}}
	require.NoError(t, Validate(ok))

	bad := ok
	bad.StrokeWidth = -1
	assert.True(t, errors.Is(Validate(bad), ErrInvalid))

	bad = ok
	bad.X = math.NaN()
	assert.Error(t, Validate(bad))

	bad = ok
	bad.Body = Pencil{Points: []Point{{math.Inf(1), 0}}}
	assert.Error(t, Validate(bad))

	bad = ok
	bad.Body = nil
	assert.Error(t, Validate(bad))
}

func TestWithBodyKeepsKind(t *testing.T) {
	r := New(Rectangle{Width: 1, Height: 1})
	assert.Equal(t, KindRectangle, r.WithBody(Circle{Radius: 4}).Type())
	assert.Equal(t, Rectangle{Width: 9, Height: 1}, r.WithBody(Rectangle{Width: 9, Height: 1}).Body)
}

func TestCloneIsIndependent(t *testing.T) {
	r := Record{ID: "p", Opacity: 1, Body: Pencil{Points: []Point{{1, 1}}}}
	c := r.Clone()
	c.Body.(Pencil).Points[0] = Point{9, 9}
	assert.Equal(t, Point{1, 1}, r.Points()[0])
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := New(Circle{}).ID
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestParseSymbology(t *testing.T) {
	tests := []struct {
		in   string
		want Symbology
		ok   bool
	}{
		{"qrcode", QRCode, true},
		{"QR_CODE", QRCode, true},
		{"CODE_128", Code128, true},
		{"ean8", EAN8, true},
		{"EAN_13", EAN13, true},
		{"DATA_MATRIX", DataMatrix, true},
		{"aztec", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseSymbology(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestEqualSequenceTreatsEmptyPointsAsNil(t *testing.T) {
	a := []Record{{ID: "p", Body: Pencil{}}}
	b := []Record{{ID: "p", Body: Pencil{Points: []Point{}}}}
	assert.True(t, EqualSequence(a, b))
	b[0].Fill = "#fff"
	assert.False(t, EqualSequence(a, b))
}
