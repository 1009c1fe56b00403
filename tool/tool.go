// Package tool tracks the active tool and the current selection.
package tool

import (
	"errors"
	"fmt"
	"strings"

	"inkboard/shape"
)

type Tool string

const (
	None      Tool = ""
	Select    Tool = "select"
	Pencil    Tool = "pencil"
	Eraser    Tool = "eraser"
	Rectangle Tool = "rectangle"
	Circle    Tool = "circle"
	Arrow     Tool = "arrow"
	Text      Tool = "text"
)

var Tools = []Tool{Select, Pencil, Eraser, Rectangle, Circle, Arrow, Text}

var ErrUnknownTool = errors.New("unknown tool")

func Parse(name string) (Tool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return None, nil
	}
	for _, t := range Tools {
		if Tool(name) == t {
			return t, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// Drawing reports whether the tool creates shapes. Drawing and selecting are
// mutually exclusive.
func (t Tool) Drawing() bool {
	switch t {
	case Pencil, Eraser, Rectangle, Circle, Arrow, Text:
		return true
	}
	return false
}

// Kind is the record kind the tool draws, if any.
func (t Tool) Kind() (shape.Kind, bool) {
	switch t {
	case Pencil:
		return shape.KindPencil, true
	case Eraser:
		return shape.KindEraser, true
	case Rectangle:
		return shape.KindRectangle, true
	case Circle:
		return shape.KindCircle, true
	case Arrow:
		return shape.KindArrow, true
	case Text:
		return shape.KindText, true
	}
	return "", false
}

func (t Tool) String() string {
	if t == None {
		return "none"
	}
	return string(t)
}
