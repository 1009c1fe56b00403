package main

import (
	"math"
	"strings"

	"inkboard/shape"
	"inkboard/tool"
)

// grid is a character-cell approximation of the canvas. It is only a
// preview; records keep their exact geometry.
type grid [][]rune

func newGrid(width, height int) grid {
	g := make(grid, height)
	for y := range g {
		g[y] = []rune(strings.Repeat(" ", width))
	}
	return g
}

func (g grid) set(x, y int, r rune) {
	if y >= 0 && y < len(g) && x >= 0 && x < len(g[y]) {
		g[y][x] = r
	}
}

func (g grid) line(x0, y0, x1, y1 int, r rune) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		g.set(x0, y0, r)
		if x0 == x1 && y0 == y1 {
			return
		}
		if e2 := 2 * e; e2 >= dy {
			e += dy
			x0 += sx
		} else {
			e += dx
			y0 += sy
		}
	}
}

func (g grid) box(x0, y0, x1, y1 int, selected bool) {
	corner, horizontal, vertical := '+', '-', '|'
	if selected {
		corner, horizontal, vertical = '#', '#', '#'
	}
	for x := x0; x <= x1; x++ {
		g.set(x, y0, horizontal)
		g.set(x, y1, horizontal)
	}
	for y := y0; y <= y1; y++ {
		g.set(x0, y, vertical)
		g.set(x1, y, vertical)
	}
	g.set(x0, y0, corner)
	g.set(x1, y0, corner)
	g.set(x0, y1, corner)
	g.set(x1, y1, corner)
}

// text writes s from (x, y), clipped to maxX when maxX >= x.
func (g grid) text(x, y int, s string, maxX int) {
	for lineIdx, line := range strings.Split(s, "\n") {
		for i, char := range []rune(line) {
			if maxX >= x && x+i > maxX {
				break
			}
			g.set(x+i, y+lineIdx, char)
		}
	}
}

func (g grid) String() string {
	lines := make([]string, len(g))
	for i, row := range g {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func arrowHead(from, to shape.Point) rune {
	dx, dy := to.X-from.X, to.Y-from.Y
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return '>'
		}
		return '<'
	}
	if dy >= 0 {
		return 'v'
	}
	return '^'
}

// renderCanvas draws every record in paint order, then the drag and
// gesture previews.
func (m *model) renderCanvas() grid {
	w, h := m.canvasArea()
	g := newGrid(w, h)

	for _, r := range m.editor.Shapes() {
		m.drawRecord(g, r, m.isSelected(r.ID))
	}

	if m.drag != nil {
		if r, ok := m.editor.Store().Find(m.drag.id); ok {
			r.X, r.Y = m.drag.position()
			minX, minY, maxX, maxY := recordBounds(r)
			x0, y0 := m.toCell(shape.Point{X: minX, Y: minY})
			x1, y1 := m.toCell(shape.Point{X: maxX, Y: maxY})
			g.box(x0, y0, x1, y1, false)
		}
	}

	if gesture, ok := m.editor.Gesture(); ok {
		m.drawGesture(g, gesture)
	}
	return g
}

func (m *model) isSelected(id string) bool {
	for _, sel := range m.editor.SelectedIDs() {
		if sel == id {
			return true
		}
	}
	return false
}

func (m *model) drawRecord(g grid, r shape.Record, selected bool) {
	minX, minY, maxX, maxY := recordBounds(r)
	x0, y0 := m.toCell(shape.Point{X: minX, Y: minY})
	x1, y1 := m.toCell(shape.Point{X: maxX, Y: maxY})

	switch b := r.Body.(type) {
	case shape.Rectangle:
		g.box(x0, y0, x1, y1, selected)
		return

	case shape.Circle:
		steps := 8 * (x1 - x0 + y1 - y0 + 2)
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			cx, cy := m.toCell(shape.Point{X: r.X + b.Radius*math.Cos(a), Y: r.Y + b.Radius*math.Sin(a)})
			g.set(cx, cy, 'o')
		}

	case shape.Arrow, shape.Pencil, shape.Eraser:
		ch := '*'
		switch r.Type() {
		case shape.KindPencil:
			ch = '.'
		case shape.KindEraser:
			ch = ' '
		}
		pts := r.Points()
		for i := 1; i < len(pts); i++ {
			ax, ay := m.toCell(shape.Point{X: r.X + pts[i-1].X, Y: r.Y + pts[i-1].Y})
			bx, by := m.toCell(shape.Point{X: r.X + pts[i].X, Y: r.Y + pts[i].Y})
			g.line(ax, ay, bx, by, ch)
		}
		if a, ok := b.(shape.Arrow); ok && len(a.Points) >= 2 {
			tail, head := a.Points[len(a.Points)-2], a.Points[len(a.Points)-1]
			hx, hy := m.toCell(shape.Point{X: r.X + head.X, Y: r.Y + head.Y})
			g.set(hx, hy, arrowHead(tail, head))
		}

	case shape.Text:
		g.text(x0, y0, b.Text, -1)

	case shape.Image:
		label := "[image]"
		if b.IsDrawing {
			label = "[drawing]"
		}
		g.box(x0, y0, x1, y1, selected)
		g.text(x0+1, y0+1, label, x1-1)
		return

	case shape.Barcode:
		g.box(x0, y0, x1, y1, selected)
		g.text(x0+1, y0+1, "["+b.CodeFormat.String()+"] "+b.Text, x1-1)
		return
	}

	if selected {
		// Mark the corners of shapes that have no frame of their own.
		g.set(x0-1, y0-1, '#')
		g.set(x1+1, y0-1, '#')
		g.set(x0-1, y1+1, '#')
		g.set(x1+1, y1+1, '#')
	}
}

func (m *model) drawGesture(g grid, gesture tool.Gesture) {
	if len(gesture.Points) == 0 {
		return
	}
	start, end := gesture.Points[0], gesture.Points[len(gesture.Points)-1]
	sx, sy := m.toCell(start)
	ex, ey := m.toCell(end)

	switch gesture.Tool {
	case tool.Rectangle:
		g.box(min(sx, ex), min(sy, ey), max(sx, ex), max(sy, ey), false)
	case tool.Circle, tool.Arrow:
		g.line(sx, sy, ex, ey, ':')
	case tool.Text:
		g.set(ex, ey, '_')
	default:
		for i := 1; i < len(gesture.Points); i++ {
			ax, ay := m.toCell(gesture.Points[i-1])
			bx, by := m.toCell(gesture.Points[i])
			g.line(ax, ay, bx, by, ':')
		}
	}
}
