// Package attrs resolves the attribute values a control panel shows and
// applies panel edits to records.
package attrs

import (
	"inkboard/shape"
	"inkboard/tool"
)

// Panel is the attribute group a control panel shows.
type Panel string

const (
	PanelNone  Panel = ""
	PanelText  Panel = "text"
	PanelShape Panel = "shape"
	PanelBrush Panel = "brush"
)

func (p Panel) String() string {
	if p == PanelNone {
		return "none"
	}
	return string(p)
}

// Family groups record kinds that share one panel.
func Family(k shape.Kind) Panel {
	switch k {
	case shape.KindText:
		return PanelText
	case shape.KindPencil, shape.KindEraser:
		return PanelBrush
	case "":
		return PanelNone
	}
	return PanelShape
}

// PanelFor picks the panel for a selection. With nothing selected the active
// tool decides. A selection spanning more than one family has no panel.
func PanelFor(selected []shape.Record, active tool.Tool) Panel {
	if len(selected) == 0 {
		switch active {
		case tool.Text:
			return PanelText
		case tool.Pencil, tool.Eraser:
			return PanelBrush
		case tool.Rectangle, tool.Circle, tool.Arrow:
			return PanelShape
		}
		return PanelNone
	}

	panel := PanelNone
	for _, r := range selected {
		family := Family(r.Type())
		if panel == PanelNone {
			panel = family
		} else if panel != family {
			return PanelNone
		}
	}
	return panel
}

type Field int

const (
	FieldFill Field = iota
	FieldStroke
	FieldStrokeWidth
	FieldOpacity
	FieldFont
)

// Supports reports whether records of kind k carry field f. Edits to fields
// a kind does not carry are skipped for that record.
func Supports(k shape.Kind, f Field) bool {
	switch k {
	case shape.KindRectangle, shape.KindCircle, shape.KindArrow:
		return f != FieldFont
	case shape.KindText:
		return f == FieldFill || f == FieldOpacity || f == FieldFont
	case shape.KindBarcode:
		return f == FieldFill || f == FieldStroke || f == FieldOpacity
	case shape.KindImage:
		return f == FieldOpacity
	case shape.KindPencil, shape.KindEraser:
		return f == FieldStroke || f == FieldStrokeWidth || f == FieldOpacity
	}
	return false
}

// Attributes are the values shown in the control panels. With nothing
// selected they are the defaults stamped on the next new shape.
type Attributes struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	FontFamily  string
	FontSize    float64
	FontStyle   shape.FontStyle
	FontWeight  shape.FontWeight
	TextAlign   shape.TextAlign
	TypeFace    string
}

func Defaults() Attributes {
	return Attributes{
		Fill:        "#000000",
		Stroke:      "#000000",
		StrokeWidth: 2,
		Opacity:     1,
		FontFamily:  "Go",
		FontSize:    24,
		FontStyle:   shape.FontNormal,
		FontWeight:  shape.WeightRegular,
		TextAlign:   shape.AlignLeft,
		TypeFace:    "sans-serif",
	}
}

// Resolve returns the attributes to display: the first selected record's
// values where its kind carries them, and defaults for everything else.
func Resolve(selected []shape.Record, defaults Attributes) Attributes {
	if len(selected) == 0 {
		return defaults
	}
	first := selected[0]
	a := defaults
	k := first.Type()
	if Supports(k, FieldFill) {
		a.Fill = first.Fill
	}
	if Supports(k, FieldStroke) {
		a.Stroke = first.Stroke
	}
	if Supports(k, FieldStrokeWidth) {
		a.StrokeWidth = first.StrokeWidth
	}
	if Supports(k, FieldOpacity) {
		a.Opacity = first.Opacity
	}
	if t, ok := first.Body.(shape.Text); ok {
		a.FontFamily = t.FontFamily
		a.FontSize = t.FontSize
		a.FontStyle = t.FontStyle
		a.FontWeight = t.FontWeight
		a.TextAlign = t.TextAlign
		a.TypeFace = t.TypeFace
	}
	return a
}

// Stamp applies every default to a freshly created record.
func (a Attributes) Stamp(r shape.Record) shape.Record {
	return a.Patch().Apply(r)
}

// Patch returns a patch setting every attribute to a's values.
func (a Attributes) Patch() Patch {
	return Patch{
		Fill:        &a.Fill,
		Stroke:      &a.Stroke,
		StrokeWidth: &a.StrokeWidth,
		Opacity:     &a.Opacity,
		FontFamily:  &a.FontFamily,
		FontSize:    &a.FontSize,
		FontStyle:   &a.FontStyle,
		FontWeight:  &a.FontWeight,
		TextAlign:   &a.TextAlign,
		TypeFace:    &a.TypeFace,
	}
}
