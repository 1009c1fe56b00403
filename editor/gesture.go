package editor

import (
	"math"

	"inkboard/shape"
	"inkboard/store"
	"inkboard/tool"
)

// BeginGesture starts drawing with the active tool at p.
func (e *Editor) BeginGesture(p shape.Point) bool {
	return e.tools.Begin(p)
}

func (e *Editor) ExtendGesture(p shape.Point) bool {
	return e.tools.Extend(p)
}

// CancelGesture drops the gesture in progress without adding anything.
func (e *Editor) CancelGesture() {
	e.tools.End()
}

// EndGesture finishes the gesture and appends the record it drew, stamped
// with the current defaults. Gestures too small to draw anything add
// nothing.
func (e *Editor) EndGesture() (shape.Record, bool) {
	g, ok := e.tools.End()
	if !ok {
		return shape.Record{}, false
	}
	r, ok := build(g)
	if !ok {
		return shape.Record{}, false
	}
	r = e.defaults.Stamp(r)
	if err := shape.Validate(r); err != nil {
		return shape.Record{}, false
	}
	e.store.SetShapes(store.Append(r))
	return r, true
}

// build turns a finished gesture into an unstyled record.
func build(g tool.Gesture) (shape.Record, bool) {
	if len(g.Points) == 0 {
		return shape.Record{}, false
	}
	start, end := g.Points[0], g.Points[len(g.Points)-1]

	switch g.Tool {
	case tool.Pencil, tool.Eraser:
		if len(g.Points) < 2 {
			return shape.Record{}, false
		}
		pts := append([]shape.Point(nil), g.Points...)
		if g.Tool == tool.Eraser {
			return shape.New(shape.Eraser{Points: pts}), true
		}
		return shape.New(shape.Pencil{Points: pts}), true

	case tool.Rectangle:
		w, h := math.Abs(end.X-start.X), math.Abs(end.Y-start.Y)
		if w == 0 || h == 0 {
			return shape.Record{}, false
		}
		r := shape.New(shape.Rectangle{Width: w, Height: h})
		r.X, r.Y = math.Min(start.X, end.X), math.Min(start.Y, end.Y)
		return r, true

	case tool.Circle:
		radius := math.Hypot(end.X-start.X, end.Y-start.Y)
		if radius == 0 {
			return shape.Record{}, false
		}
		r := shape.New(shape.Circle{Radius: radius})
		r.X, r.Y = start.X, start.Y
		return r, true

	case tool.Arrow:
		if start == end {
			return shape.Record{}, false
		}
		return shape.New(shape.Arrow{Points: []shape.Point{start, end}}), true

	case tool.Text:
		r := shape.New(shape.Text{Text: DefaultText})
		r.X, r.Y = end.X, end.Y
		return r, true
	}
	return shape.Record{}, false
}

// Gesture returns the gesture in progress, for previews.
func (e *Editor) Gesture() (tool.Gesture, bool) {
	return e.tools.Gesture()
}
