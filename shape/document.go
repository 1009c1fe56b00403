package shape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// wireRecord is the flat, field-tagged layout a record is persisted in.
type wireRecord struct {
	ID          string  `json:"id"`
	Type        Kind    `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Opacity     float64 `json:"opacity"`
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth"`

	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Radius float64 `json:"radius,omitempty"`

	Points []float64 `json:"points,omitempty"`

	Text       string     `json:"text,omitempty"`
	FontFamily string     `json:"fontFamily,omitempty"`
	FontSize   float64    `json:"fontSize,omitempty"`
	FontStyle  FontStyle  `json:"fontStyle,omitempty"`
	FontWeight FontWeight `json:"fontWeight,omitempty"`
	TextAlign  TextAlign  `json:"textAlign,omitempty"`
	TypeFace   string     `json:"typeFace,omitempty"`

	DataURL   string `json:"dataURL,omitempty"`
	IsDrawing bool   `json:"isDrawing,omitempty"`

	CodeFormat Symbology `json:"codeFormat,omitempty"`
}

// MarshalJSON writes the weight the way the renderer expects it, as a
// quoted number.
func (w FontWeight) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.Itoa(int(w)))
}

func (w *FontWeight) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	switch s {
	case "", "null":
		*w = 0
		return nil
	case "bold":
		*w = WeightBold
		return nil
	case "normal":
		*w = WeightRegular
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("font weight %s: %w", data, err)
	}
	*w = FontWeight(n)
	return nil
}

func flatten(pts []Point) []float64 {
	if len(pts) == 0 {
		return nil
	}
	out := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		out = append(out, p.X, p.Y)
	}
	return out
}

func pair(flat []float64) ([]Point, error) {
	if len(flat) == 0 {
		return nil, nil
	}
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of point coordinates", ErrInvalid)
	}
	out := make([]Point, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		out = append(out, Point{X: flat[i], Y: flat[i+1]})
	}
	return out, nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	w := wireRecord{
		ID:          r.ID,
		Type:        r.Type(),
		X:           r.X,
		Y:           r.Y,
		Opacity:     r.Opacity,
		Fill:        r.Fill,
		Stroke:      r.Stroke,
		StrokeWidth: r.StrokeWidth,
	}

	switch b := r.Body.(type) {
	case Rectangle:
		w.Width, w.Height = b.Width, b.Height
	case Circle:
		w.Radius = b.Radius
	case Arrow:
		w.Points = flatten(b.Points)
	case Text:
		w.Text = b.Text
		w.FontFamily = b.FontFamily
		w.FontSize = b.FontSize
		w.FontStyle = b.FontStyle
		w.FontWeight = b.FontWeight
		w.TextAlign = b.TextAlign
		w.TypeFace = b.TypeFace
	case Image:
		w.DataURL = b.DataURL
		w.IsDrawing = b.IsDrawing
		w.Width, w.Height = b.Width, b.Height
	case Barcode:
		w.Text = b.Text
		w.CodeFormat = b.CodeFormat
		w.Width, w.Height = b.Width, b.Height
	case Pencil:
		w.Points = flatten(b.Points)
	case Eraser:
		w.Points = flatten(b.Points)
	default:
		return nil, fmt.Errorf("%w: %s has no body", ErrInvalid, r.ID)
	}
	return json.Marshal(w)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var body Body
	switch w.Type {
	case KindRectangle:
		body = Rectangle{Width: w.Width, Height: w.Height}
	case KindCircle:
		body = Circle{Radius: w.Radius}
	case KindArrow, KindPencil, KindEraser:
		pts, err := pair(w.Points)
		if err != nil {
			return err
		}
		switch w.Type {
		case KindArrow:
			body = Arrow{Points: pts}
		case KindPencil:
			body = Pencil{Points: pts}
		default:
			body = Eraser{Points: pts}
		}
	case KindText:
		body = Text{
			Text:       w.Text,
			FontFamily: w.FontFamily,
			FontSize:   w.FontSize,
			FontStyle:  w.FontStyle,
			FontWeight: w.FontWeight,
			TextAlign:  w.TextAlign,
			TypeFace:   w.TypeFace,
		}
	case KindImage:
		body = Image{DataURL: w.DataURL, IsDrawing: w.IsDrawing, Width: w.Width, Height: w.Height}
	case KindBarcode:
		body = Barcode{Text: w.Text, CodeFormat: w.CodeFormat, Width: w.Width, Height: w.Height}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, w.Type)
	}

	*r = Record{
		ID:          w.ID,
		X:           w.X,
		Y:           w.Y,
		Opacity:     w.Opacity,
		Fill:        w.Fill,
		Stroke:      w.Stroke,
		StrokeWidth: w.StrokeWidth,
		Body:        body,
	}
	return nil
}

// MarshalDocument encodes an ordered collection as a JSON array.
func MarshalDocument(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	return json.MarshalIndent(records, "", "  ")
}

// UnmarshalDocument decodes and validates a document. Every record must pass
// Validate and ids must be unique.
func UnmarshalDocument(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if err := Validate(r); err != nil {
			return nil, err
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalid, r.ID)
		}
		seen[r.ID] = true
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
