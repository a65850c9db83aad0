package canvas

// Grid is an immutable snapshot of a canvas. Cells are row-major: the cell
// at column x, row y lives at index y*Size+x.
type Grid struct {
	Size  int
	Cells []Color
}

func (g Grid) At(x, y int) Color {
	if x < 0 || y < 0 || x >= g.Size || y >= g.Size {
		return Transparent
	}
	return g.Cells[y*g.Size+x]
}

func (g Grid) Count(c Color) int {
	n := 0
	for _, cell := range g.Cells {
		if cell == c {
			n++
		}
	}
	return n
}

func (g Grid) Equal(o Grid) bool {
	if g.Size != o.Size || len(g.Cells) != len(o.Cells) {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != o.Cells[i] {
			return false
		}
	}
	return true
}

// Blank returns a fresh all-White grid of the given size.
func Blank(size int) Grid {
	if size <= 0 {
		return Grid{}
	}
	cells := make([]Color, size*size)
	for i := range cells {
		cells[i] = White
	}
	return Grid{Size: size, Cells: cells}
}
