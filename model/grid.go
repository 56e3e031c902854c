package model

// UnitGrid buckets a snapshot's units into square cells so nearest-unit
// queries only visit cells that can still hold a closer unit. Results match
// NearestUnit exactly, including the earliest-index tie-break.
type UnitGrid struct {
	Cols     int
	Rows     int
	CellSize int
	MinX     int
	MinY     int
	units    []Unit
	cells    [][]int // row-major: cells[row*Cols + col], unit indexes ascending
}

// NewUnitGrid indexes units. cellSize below 1 is treated as 1.
func NewUnitGrid(units []Unit, cellSize int) *UnitGrid {
	if cellSize < 1 {
		cellSize = 1
	}
	g := &UnitGrid{CellSize: cellSize, units: units}
	if len(units) == 0 {
		return g
	}
	minX, minY, maxX, maxY := units[0].X, units[0].Y, units[0].X, units[0].Y
	for _, u := range units[1:] {
		minX = min(minX, u.X)
		minY = min(minY, u.Y)
		maxX = max(maxX, u.X)
		maxY = max(maxY, u.Y)
	}
	g.MinX, g.MinY = minX, minY
	g.Cols = (maxX-minX)/cellSize + 1
	g.Rows = (maxY-minY)/cellSize + 1
	g.cells = make([][]int, g.Cols*g.Rows)
	for i, u := range units {
		col, row := g.cellOf(u.X, u.Y)
		g.cells[row*g.Cols+col] = append(g.cells[row*g.Cols+col], i)
	}
	return g
}

func (g *UnitGrid) cellOf(x, y int) (int, int) {
	return (x - g.MinX) / g.CellSize, (y - g.MinY) / g.CellSize
}

func (g *UnitGrid) contains(x, y int) bool {
	return x >= g.MinX && y >= g.MinY &&
		x < g.MinX+g.Cols*g.CellSize && y < g.MinY+g.Rows*g.CellSize
}

// At returns the snapshot indexes of the units in cell (col, row).
// Returns nil for out-of-bounds cells.
func (g *UnitGrid) At(col, row int) []int {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return nil
	}
	return g.cells[row*g.Cols+col]
}

// Nearest returns the matching unit closest to (x, y) by Manhattan distance.
func (g *UnitGrid) Nearest(x, y int, match func(Unit) bool) (Unit, bool) {
	if len(g.units) == 0 {
		return Unit{}, false
	}
	// Ring pruning needs the query inside the grid.
	if !g.contains(x, y) {
		return NearestUnit(g.units, x, y, match)
	}

	qc, qr := g.cellOf(x, y)
	best, bestD := -1, 0
	consider := func(i int) {
		u := g.units[i]
		if !match(u) {
			return
		}
		d := Manhattan(x, y, u.X, u.Y)
		if best < 0 || d < bestD || (d == bestD && i < best) {
			best, bestD = i, d
		}
	}

	rings := max(qc, g.Cols-1-qc, qr, g.Rows-1-qr)
	for r := 0; r <= rings; r++ {
		// Any cell on ring r is at least (r-1)*CellSize+1 away on one axis.
		if best >= 0 && r > 0 && (r-1)*g.CellSize+1 > bestD {
			break
		}
		g.visitRing(qc, qr, r, consider)
	}
	if best < 0 {
		return Unit{}, false
	}
	return g.units[best], true
}

func (g *UnitGrid) visitRing(qc, qr, r int, fn func(int)) {
	visit := func(col, row int) {
		for _, i := range g.At(col, row) {
			fn(i)
		}
	}
	if r == 0 {
		visit(qc, qr)
		return
	}
	for dc := -r; dc <= r; dc++ {
		visit(qc+dc, qr-r)
		visit(qc+dc, qr+r)
	}
	for dr := -r + 1; dr <= r-1; dr++ {
		visit(qc-r, qr+dr)
		visit(qc+r, qr+dr)
	}
}

// NearestUnit scans units in order and returns the matching unit closest to
// (x, y). The first unit at the minimum distance wins.
func NearestUnit(units []Unit, x, y int, match func(Unit) bool) (Unit, bool) {
	best, bestD := -1, 0
	for i, u := range units {
		if !match(u) {
			continue
		}
		d := Manhattan(x, y, u.X, u.Y)
		if best < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return Unit{}, false
	}
	return units[best], true
}
