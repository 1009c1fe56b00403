package attrs

import "inkboard/shape"

// Patch is an attribute edit. Nil fields are left alone.
type Patch struct {
	Fill        *string
	Stroke      *string
	StrokeWidth *float64
	Opacity     *float64
	FontFamily  *string
	FontSize    *float64
	FontStyle   *shape.FontStyle
	FontWeight  *shape.FontWeight
	TextAlign   *shape.TextAlign
	TypeFace    *string
}

func SetFill(v string) Patch               { return Patch{Fill: &v} }
func SetStroke(v string) Patch             { return Patch{Stroke: &v} }
func SetStrokeWidth(v float64) Patch       { return Patch{StrokeWidth: &v} }
func SetOpacity(v float64) Patch           { return Patch{Opacity: &v} }
func SetFontSize(v float64) Patch          { return Patch{FontSize: &v} }
func SetTextAlign(v shape.TextAlign) Patch { return Patch{TextAlign: &v} }

func SetFontStyles(style shape.FontStyle, weight shape.FontWeight) Patch {
	return Patch{FontStyle: &style, FontWeight: &weight}
}

func SetFontFamily(family, typeFace string) Patch {
	return Patch{FontFamily: &family, TypeFace: &typeFace}
}

func (p Patch) Empty() bool {
	return p.Fill == nil && p.Stroke == nil && p.StrokeWidth == nil && p.Opacity == nil &&
		p.FontFamily == nil && p.FontSize == nil && p.FontStyle == nil &&
		p.FontWeight == nil && p.TextAlign == nil && p.TypeFace == nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Apply returns r with the patch applied to the fields its kind carries.
// The id and kind are never touched.
func (p Patch) Apply(r shape.Record) shape.Record {
	k := r.Type()
	if p.Fill != nil && Supports(k, FieldFill) {
		r.Fill = *p.Fill
	}
	if p.Stroke != nil && Supports(k, FieldStroke) {
		r.Stroke = *p.Stroke
	}
	if p.StrokeWidth != nil && Supports(k, FieldStrokeWidth) {
		if w := *p.StrokeWidth; w >= 0 {
			r.StrokeWidth = w
		} else {
			r.StrokeWidth = 0
		}
	}
	if p.Opacity != nil && Supports(k, FieldOpacity) {
		r.Opacity = clamp(*p.Opacity, 0, 1)
	}

	if t, ok := r.Body.(shape.Text); ok {
		if p.FontFamily != nil {
			t.FontFamily = *p.FontFamily
		}
		if p.TypeFace != nil {
			t.TypeFace = *p.TypeFace
		}
		if p.FontSize != nil && *p.FontSize > 0 {
			t.FontSize = *p.FontSize
		}
		if p.FontStyle != nil {
			t.FontStyle = *p.FontStyle
		}
		if p.FontWeight != nil {
			t.FontWeight = *p.FontWeight
		}
		if p.TextAlign != nil {
			t.TextAlign = *p.TextAlign
		}
		r = r.WithBody(t)
	}
	return r
}

// ApplyDefaults folds the patch into a set of tool defaults.
func (p Patch) ApplyDefaults(a Attributes) Attributes {
	if p.Fill != nil {
		a.Fill = *p.Fill
	}
	if p.Stroke != nil {
		a.Stroke = *p.Stroke
	}
	if p.StrokeWidth != nil {
		a.StrokeWidth = *p.StrokeWidth
		if a.StrokeWidth < 0 {
			a.StrokeWidth = 0
		}
	}
	if p.Opacity != nil {
		a.Opacity = clamp(*p.Opacity, 0, 1)
	}
	if p.FontFamily != nil {
		a.FontFamily = *p.FontFamily
	}
	if p.TypeFace != nil {
		a.TypeFace = *p.TypeFace
	}
	if p.FontSize != nil && *p.FontSize > 0 {
		a.FontSize = *p.FontSize
	}
	if p.FontStyle != nil {
		a.FontStyle = *p.FontStyle
	}
	if p.FontWeight != nil {
		a.FontWeight = *p.FontWeight
	}
	if p.TextAlign != nil {
		a.TextAlign = *p.TextAlign
	}
	return a
}

// Merge combines two patches; fields set in q win.
func (p Patch) Merge(q Patch) Patch {
	if q.Fill != nil {
		p.Fill = q.Fill
	}
	if q.Stroke != nil {
		p.Stroke = q.Stroke
	}
	if q.StrokeWidth != nil {
		p.StrokeWidth = q.StrokeWidth
	}
	if q.Opacity != nil {
		p.Opacity = q.Opacity
	}
	if q.FontFamily != nil {
		p.FontFamily = q.FontFamily
	}
	if q.FontSize != nil {
		p.FontSize = q.FontSize
	}
	if q.FontStyle != nil {
		p.FontStyle = q.FontStyle
	}
	if q.FontWeight != nil {
		p.FontWeight = q.FontWeight
	}
	if q.TextAlign != nil {
		p.TextAlign = q.TextAlign
	}
	if q.TypeFace != nil {
		p.TypeFace = q.TypeFace
	}
	return p
}
