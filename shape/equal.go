package shape

// Equal reports whether two records are field-for-field identical. A nil
// point list and an empty one compare equal.
func Equal(a, b Record) bool {
	if a.ID != b.ID || a.X != b.X || a.Y != b.Y || a.Opacity != b.Opacity ||
		a.Fill != b.Fill || a.Stroke != b.Stroke || a.StrokeWidth != b.StrokeWidth {
		return false
	}
	if a.Type() != b.Type() {
		return false
	}

	switch ab := a.Body.(type) {
	case Arrow:
		return equalPoints(ab.Points, b.Body.(Arrow).Points)
	case Pencil:
		return equalPoints(ab.Points, b.Body.(Pencil).Points)
	case Eraser:
		return equalPoints(ab.Points, b.Body.(Eraser).Points)
	case nil:
		return b.Body == nil
	default:
		// The remaining bodies hold only comparable fields.
		return a.Body == b.Body
	}
}

func equalPoints(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EqualSequence reports whether two collections hold equal records in the
// same order.
func EqualSequence(a, b []Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Index returns the position of the record with the given id, or -1.
func Index(records []Record, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// IDs returns the ids of records in order.
func IDs(records []Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

// CloneAll deep-copies a collection.
func CloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
