package canvas

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize      = errors.New("canvas size must be positive")
	ErrOutOfCanvas      = errors.New("coordinates out of canvas")
	ErrInvalidDirection = errors.New("invalid directions")
	ErrUnknownColor     = errors.New("invalid color")
)

// Canvas is the turtle engine: an N×N grid of cells, a cursor and a brush.
// N is fixed for the lifetime of the value; resizing means building a new one.
type Canvas struct {
	size  int
	cells []Color
	x, y  int
	brush Color
	width int
}

func New(size int) (*Canvas, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	g := Blank(size)
	return &Canvas{size: size, cells: g.Cells, brush: Transparent, width: 1}, nil
}

func (c *Canvas) Size() int { return c.size }

func (c *Canvas) Cursor() (int, int) { return c.x, c.y }

func (c *Canvas) BrushColor() Color { return c.brush }

func (c *Canvas) BrushSize() int { return c.width }

func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.size && y < c.size
}

// At reports the color of a cell; ok is false when (x, y) is off the grid.
func (c *Canvas) At(x, y int) (Color, bool) {
	if !c.InBounds(x, y) {
		return Transparent, false
	}
	return c.cells[y*c.size+x], true
}

// Snapshot returns a copy that later drawing does not affect.
func (c *Canvas) Snapshot() Grid {
	cells := make([]Color, len(c.cells))
	copy(cells, c.cells)
	return Grid{Size: c.size, Cells: cells}
}

func (c *Canvas) Spawn(x, y int) error {
	if !c.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfCanvas, x, y)
	}
	c.x, c.y = x, y
	return nil
}

func (c *Canvas) SetColor(name string) error {
	col, ok := ParseColor(name)
	if !ok {
		return fmt.Errorf("%w, %s not found", ErrUnknownColor, name)
	}
	c.brush = col
	return nil
}

// SetSize never fails: non-positive sizes become 1 and even sizes drop to
// the next odd value below.
func (c *Canvas) SetSize(n int) {
	switch {
	case n <= 0:
		c.width = 1
	case n%2 == 0:
		c.width = n - 1
	default:
		c.width = n
	}
}

// DrawLine paints dist+1 brush footprints starting at the cursor. The cursor
// moves to the last point only when that point is on the grid.
func (c *Canvas) DrawLine(dx, dy, dist int) error {
	if !validDir(dx, dy) || (dx == 0 && dy == 0) {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidDirection, dx, dy)
	}
	if dist < 0 {
		dist = 0
	}

	x, y := c.x, c.y
	for range dist {
		c.PaintBrush(x, y)
		x += dx
		y += dy
	}
	c.PaintBrush(x, y)
	c.moveIfInBounds(x, y)
	return nil
}

// DrawCircle paints a ring around cursor+(dx,dy)*radius. A cell at offset
// (x,y) is painted when |x²+y²−r²| ≤ r.
func (c *Canvas) DrawCircle(dx, dy, radius int) error {
	if !validDir(dx, dy) {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidDirection, dx, dy)
	}
	if radius < 0 {
		radius = 0
	}

	cx := c.x + dx*radius
	cy := c.y + dy*radius
	target := radius * radius
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			if abs(x*x+y*y-target) <= radius {
				c.PaintBrush(cx+x, cy+y)
			}
		}
	}
	c.moveIfInBounds(cx, cy)
	return nil
}

// DrawRectangle outlines a width×height box. The center offset uses
// (dy, dx)*dist, with the axes swapped relative to DrawLine and DrawCircle.
func (c *Canvas) DrawRectangle(dx, dy, dist, width, height int) error {
	if !validDir(dx, dy) {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidDirection, dx, dy)
	}
	dist = max(dist, 0)
	width = max(width, 0)
	height = max(height, 0)

	cx := c.x + dy*dist
	cy := c.y + dx*dist
	left, right := cx-width/2, cx+width/2
	up, down := cy-height/2, cy+height/2

	for x := left; x <= right; x++ {
		c.PaintBrush(x, up)
		c.PaintBrush(x, down)
	}
	for y := up + 1; y <= down; y++ {
		c.PaintBrush(left, y)
		c.PaintBrush(right, y)
	}
	c.moveIfInBounds(cx, cy)
	return nil
}

// Fill repaints the 4-connected region sharing the cursor cell's color.
func (c *Canvas) Fill() {
	origin := c.cells[c.y*c.size+c.x]
	if origin == c.brush || c.brush == Transparent {
		return
	}

	visited := make([]bool, len(c.cells))
	start := c.y*c.size + c.x
	queue := []int{start}
	visited[start] = true
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		x, y := idx%c.size, idx/c.size
		c.PaintCell(x, y)
		for _, n := range [4][2]int{{x + 1, y}, {x - 1, y}, {x, y + 1}, {x, y - 1}} {
			if !c.InBounds(n[0], n[1]) {
				continue
			}
			ni := n[1]*c.size + n[0]
			if visited[ni] || c.cells[ni] != origin {
				continue
			}
			visited[ni] = true
			queue = append(queue, ni)
		}
	}
}

// PaintBrush paints a brush-size square centered on (cx, cy), clipped to the grid.
func (c *Canvas) PaintBrush(cx, cy int) {
	if c.brush == Transparent {
		return
	}
	half := c.width / 2
	for dx := -half; dx <= half; dx++ {
		for dy := -half; dy <= half; dy++ {
			c.PaintCell(cx+dx, cy+dy)
		}
	}
}

func (c *Canvas) PaintCell(x, y int) {
	if !c.InBounds(x, y) || c.brush == Transparent {
		return
	}
	c.cells[y*c.size+x] = c.brush
}

// CountColor counts cells of color col inside the rectangle spanned by
// (x1,y1) and (x2,y2), corners in any order. It returns 0 when either corner
// is off the grid.
func (c *Canvas) CountColor(col Color, x1, x2, y1, y2 int) int {
	if !c.InBounds(x1, y1) || !c.InBounds(x2, y2) {
		return 0
	}
	minX, maxX := min(x1, x2), max(x1, x2)
	minY, maxY := min(y1, y2), max(y1, y2)
	n := 0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if c.cells[y*c.size+x] == col {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) moveIfInBounds(x, y int) {
	if c.InBounds(x, y) {
		c.x, c.y = x, y
	}
}

func validDir(dx, dy int) bool {
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
