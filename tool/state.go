package tool

import "inkboard/shape"

// Gesture is a drawing interaction in progress.
type Gesture struct {
	Tool   Tool
	Points []shape.Point
}

// State is the active tool, the selected record ids and any in-progress
// gesture. Selection holds ids only; the store owns the records.
type State struct {
	tool     Tool
	selected []string
	gesture  *Gesture
}

func NewState(initial Tool) *State {
	return &State{tool: initial}
}

func (s *State) Tool() Tool { return s.tool }

// SetTool switches tools. Any in-progress gesture is dropped, and switching
// to a drawing tool clears the selection.
func (s *State) SetTool(t Tool) {
	s.tool = t
	s.gesture = nil
	if t.Drawing() {
		s.selected = nil
	}
}

// Draggable reports whether shapes may be dragged with the current tool.
func (s *State) Draggable() bool { return s.tool == Select }

// Selected returns the selected ids in the order they were selected.
func (s *State) Selected() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

func (s *State) IsSelected(id string) bool {
	for _, sel := range s.selected {
		if sel == id {
			return true
		}
	}
	return false
}

// Select replaces the selection. It is ignored unless the select tool is
// active.
func (s *State) Select(ids ...string) bool {
	if s.tool != Select {
		return false
	}
	s.selected = s.selected[:0]
	for _, id := range ids {
		if !s.IsSelected(id) {
			s.selected = append(s.selected, id)
		}
	}
	return true
}

// Toggle adds id to the selection or removes it.
func (s *State) Toggle(id string) bool {
	if s.tool != Select {
		return false
	}
	for i, sel := range s.selected {
		if sel == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return true
		}
	}
	s.selected = append(s.selected, id)
	return true
}

func (s *State) ClearSelection() {
	s.selected = nil
}

// Prune drops selected ids that are not present in records, which happens
// after undo or removal.
func (s *State) Prune(records []shape.Record) {
	live := make(map[string]bool, len(records))
	for _, r := range records {
		live[r.ID] = true
	}
	kept := s.selected[:0]
	for _, id := range s.selected {
		if live[id] {
			kept = append(kept, id)
		}
	}
	s.selected = kept
}

// SelectedRecords returns the selected records in selection order.
func (s *State) SelectedRecords(records []shape.Record) []shape.Record {
	out := make([]shape.Record, 0, len(s.selected))
	for _, id := range s.selected {
		if i := shape.Index(records, id); i >= 0 {
			out = append(out, records[i])
		}
	}
	return out
}

// Begin starts a gesture for the active drawing tool.
func (s *State) Begin(p shape.Point) bool {
	if !s.tool.Drawing() {
		return false
	}
	s.gesture = &Gesture{Tool: s.tool, Points: []shape.Point{p}}
	return true
}

func (s *State) Extend(p shape.Point) bool {
	if s.gesture == nil {
		return false
	}
	s.gesture.Points = append(s.gesture.Points, p)
	return true
}

// End finishes the gesture and hands it back.
func (s *State) End() (Gesture, bool) {
	if s.gesture == nil {
		return Gesture{}, false
	}
	g := *s.gesture
	s.gesture = nil
	return g, true
}

// Gesture returns the in-progress gesture, if any.
func (s *State) Gesture() (Gesture, bool) {
	if s.gesture == nil {
		return Gesture{}, false
	}
	g := *s.gesture
	g.Points = append([]shape.Point(nil), s.gesture.Points...)
	return g, true
}
