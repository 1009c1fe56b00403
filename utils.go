package main

import (
	"math"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"inkboard/shape"
)

// canvasArea is the number of terminal cells the preview occupies.
func (m *model) canvasArea() (int, int) {
	w := m.width
	h := m.height - panelHeight - statusHeight
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// cellScale is the size of one terminal cell in canvas units.
func (m *model) cellScale() (float64, float64) {
	canvas := m.editor.Canvas()
	w, h := m.canvasArea()
	return canvas.Width / float64(w), canvas.Height / float64(h)
}

// toCanvas maps the center of a terminal cell to canvas coordinates.
func (m *model) toCanvas(cellX, cellY int) shape.Point {
	sx, sy := m.cellScale()
	return shape.Point{X: (float64(cellX) + 0.5) * sx, Y: (float64(cellY) + 0.5) * sy}
}

func (m *model) toCell(p shape.Point) (int, int) {
	sx, sy := m.cellScale()
	return int(math.Floor(p.X / sx)), int(math.Floor(p.Y / sy))
}

func (m *model) cursorPoint() shape.Point {
	return m.toCanvas(m.cursorX, m.cursorY)
}

// recordBounds is the axis-aligned box a record covers on the canvas.
func recordBounds(r shape.Record) (minX, minY, maxX, maxY float64) {
	switch b := r.Body.(type) {
	case shape.Rectangle:
		return r.X, r.Y, r.X + b.Width, r.Y + b.Height
	case shape.Circle:
		return r.X - b.Radius, r.Y - b.Radius, r.X + b.Radius, r.Y + b.Radius
	case shape.Text:
		lines := strings.Split(b.Text, "\n")
		longest := 0
		for _, line := range lines {
			if n := len([]rune(line)); n > longest {
				longest = n
			}
		}
		return r.X, r.Y, r.X + float64(longest)*b.FontSize*0.6, r.Y + float64(len(lines))*b.FontSize
	case shape.Image:
		return r.X, r.Y, r.X + b.Width, r.Y + b.Height
	case shape.Barcode:
		return r.X, r.Y, r.X + b.Width, r.Y + b.Height
	}

	pts := r.Points()
	if len(pts) == 0 {
		return r.X, r.Y, r.X, r.Y
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return r.X + minX, r.Y + minY, r.X + maxX, r.Y + maxY
}

// recordAt returns the topmost record under p. slackX and slackY widen
// every record by that much so thin strokes can be hit.
func recordAt(records []shape.Record, p shape.Point, slackX, slackY float64) (shape.Record, bool) {
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.Type() == shape.KindEraser {
			continue
		}
		minX, minY, maxX, maxY := recordBounds(r)
		if p.X >= minX-slackX && p.X <= maxX+slackX && p.Y >= minY-slackY && p.Y <= maxY+slackY {
			return r, true
		}
	}
	return shape.Record{}, false
}

func (m *model) recordUnderCursor() (shape.Record, bool) {
	sx, sy := m.cellScale()
	return recordAt(m.editor.Shapes(), m.cursorPoint(), sx/2, sy/2)
}

// scanDocuments lists saved documents in the save directory.
func (m *model) scanDocuments() {
	m.fileList = []string{}

	dir := m.config.SaveDirectory
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			m.selectedFileIndex = -1
			return
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), documentExt) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.input = strings.TrimSuffix(m.fileList[0], documentExt)
	} else {
		m.selectedFileIndex = -1
	}
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// cleanClipboardText drops control characters other than line breaks and
// tabs, and normalizes line endings.
func cleanClipboardText(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := strings.ReplaceAll(result.String(), "\r\n", "\n")
	return strings.ReplaceAll(normalized, "\r", "\n")
}

func withExt(name string) string {
	if strings.HasSuffix(strings.ToLower(name), documentExt) {
		return name
	}
	return name + documentExt
}
