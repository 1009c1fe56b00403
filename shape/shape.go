// Package shape defines the drawable records that make up a document.
//
// A Record carries the fields every shape has (id, position, opacity and
// colors) plus a Body holding the fields of exactly one kind. The set of
// bodies is closed: only the types in this package implement Body.
package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
	KindArrow     Kind = "arrow"
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindBarcode   Kind = "barcode"
	KindPencil    Kind = "pencil"
	KindEraser    Kind = "eraser"
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{
	KindRectangle, KindCircle, KindArrow, KindText,
	KindImage, KindBarcode, KindPencil, KindEraser,
}

func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

var ErrInvalid = errors.New("invalid shape record")

type Point struct {
	X, Y float64
}

// Body is the kind-specific part of a record.
type Body interface {
	Kind() Kind
	clone() Body
}

type Rectangle struct {
	Width  float64
	Height float64
}

type Circle struct {
	Radius float64
}

type Arrow struct {
	Points []Point
}

type FontStyle string

const (
	FontNormal FontStyle = "normal"
	FontItalic FontStyle = "italic"
)

type FontWeight int

const (
	WeightRegular FontWeight = 400
	WeightBold    FontWeight = 900
)

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

type Text struct {
	Text       string
	FontFamily string
	FontSize   float64
	FontStyle  FontStyle
	FontWeight FontWeight
	TextAlign  TextAlign
	TypeFace   string // category of the loaded font, e.g. "sans-serif"
}

type Image struct {
	DataURL   string
	IsDrawing bool // rasterized freehand drawing rather than an inserted picture
	Width     float64
	Height    float64
}

type Barcode struct {
	Text       string
	CodeFormat Symbology
	Width      float64
	Height     float64
}

type Pencil struct {
	Points []Point
}

// Eraser is a pencil stroke that removes pixels when composited.
type Eraser struct {
	Points []Point
}

func (Rectangle) Kind() Kind { return KindRectangle }
func (Circle) Kind() Kind    { return KindCircle }
func (Arrow) Kind() Kind     { return KindArrow }
func (Text) Kind() Kind      { return KindText }
func (Image) Kind() Kind     { return KindImage }
func (Barcode) Kind() Kind   { return KindBarcode }
func (Pencil) Kind() Kind    { return KindPencil }
func (Eraser) Kind() Kind    { return KindEraser }

func (b Rectangle) clone() Body { return b }
func (b Circle) clone() Body    { return b }
func (b Arrow) clone() Body     { return Arrow{Points: clonePoints(b.Points)} }
func (b Text) clone() Body      { return b }
func (b Image) clone() Body     { return b }
func (b Barcode) clone() Body   { return b }
func (b Pencil) clone() Body    { return Pencil{Points: clonePoints(b.Points)} }
func (b Eraser) clone() Body    { return Eraser{Points: clonePoints(b.Points)} }

func clonePoints(pts []Point) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}

// Record is one drawable entity. Records are values: a change to a record
// is made by building a new one, never by editing one held in a snapshot.
type Record struct {
	ID          string
	X           float64
	Y           float64
	Opacity     float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	Body        Body
}

// Type reports the record's kind. A record without a body has no kind.
func (r Record) Type() Kind {
	if r.Body == nil {
		return ""
	}
	return r.Body.Kind()
}

// Clone returns a copy sharing no mutable state with r.
func (r Record) Clone() Record {
	if r.Body != nil {
		r.Body = r.Body.clone()
	}
	return r
}

// WithBody returns r carrying body, or r unchanged when body is of a
// different kind. The kind of a record never changes after creation.
func (r Record) WithBody(body Body) Record {
	if body == nil || r.Type() != body.Kind() {
		return r
	}
	r.Body = body
	return r
}

// Points returns the stroke points of arrows, pencils and erasers.
func (r Record) Points() []Point {
	switch b := r.Body.(type) {
	case Arrow:
		return b.Points
	case Pencil:
		return b.Points
	case Eraser:
		return b.Points
	}
	return nil
}

// NewID returns a fresh record id.
func NewID() string {
	return uuid.NewString()
}

// New creates a record of body's kind with a fresh id and opaque defaults.
func New(body Body) Record {
	return Record{
		ID:      NewID(),
		Opacity: 1,
		Body:    body,
	}
}

// Validate checks the record invariants: a known kind, a non-empty id,
// opacity in [0,1], a non-negative stroke width and finite coordinates.
func Validate(r Record) error {
	if r.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if r.Body == nil || !r.Type().Valid() {
		return fmt.Errorf("%w: %s has no known type", ErrInvalid, r.ID)
	}
	if !finite(r.Opacity) || r.Opacity < 0 || r.Opacity > 1 {
		return fmt.Errorf("%w: %s opacity %v out of range", ErrInvalid, r.ID, r.Opacity)
	}
	if !finite(r.StrokeWidth) || r.StrokeWidth < 0 {
		return fmt.Errorf("%w: %s stroke width %v", ErrInvalid, r.ID, r.StrokeWidth)
	}
	if !finite(r.X) || !finite(r.Y) {
		return fmt.Errorf("%w: %s position is not finite", ErrInvalid, r.ID)
	}
	for _, p := range r.Points() {
		if !finite(p.X) || !finite(p.Y) {
			return fmt.Errorf("%w: %s has a non-finite point", ErrInvalid, r.ID)
		}
	}

	switch b := r.Body.(type) {
	case Rectangle:
		if !finite(b.Width) || !finite(b.Height) {
			return fmt.Errorf("%w: %s size is not finite", ErrInvalid, r.ID)
		}
	case Circle:
		if !finite(b.Radius) || b.Radius < 0 {
			return fmt.Errorf("%w: %s radius %v", ErrInvalid, r.ID, b.Radius)
		}
	case Text:
		if b.FontStyle != "" && b.FontStyle != FontNormal && b.FontStyle != FontItalic {
			return fmt.Errorf("%w: %s font style %q", ErrInvalid, r.ID, b.FontStyle)
		}
		if b.FontWeight != 0 && b.FontWeight != WeightRegular && b.FontWeight != WeightBold {
			return fmt.Errorf("%w: %s font weight %d", ErrInvalid, r.ID, b.FontWeight)
		}
		switch b.TextAlign {
		case "", AlignLeft, AlignCenter, AlignRight:
		default:
			return fmt.Errorf("%w: %s text align %q", ErrInvalid, r.ID, b.TextAlign)
		}
	case Image:
		if b.DataURL == "" {
			return fmt.Errorf("%w: %s image without data", ErrInvalid, r.ID)
		}
	case Barcode:
		if b.Text == "" {
			return fmt.Errorf("%w: %s barcode without payload", ErrInvalid, r.ID)
		}
		if !b.CodeFormat.Valid() {
			return fmt.Errorf("%w: %s barcode format %q", ErrInvalid, r.ID, b.CodeFormat)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
