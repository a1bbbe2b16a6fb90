// Package systems implements the per-step simulation algorithms: grid
// geometry, metabolism, feeding, photosynthesis, breeding, movement and the
// predation ledger. Each system is a small struct holding the ECS maps it
// needs; the sim package drives them in a fixed order.
package systems

import "fmt"

// Domain is the rectangular world extent divided into nx×ny uniform cells,
// laid out row-major.
type Domain struct {
	XLength, YLength float64
	NX, NY           int
}

// NewDomain validates the extent and cell counts.
func NewDomain(xLength, yLength float64, nx, ny int) (*Domain, error) {
	if xLength <= 0 || yLength <= 0 {
		return nil, fmt.Errorf("domain extent must be positive, got %g x %g", xLength, yLength)
	}
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("cell counts must be positive, got %d x %d", nx, ny)
	}
	return &Domain{XLength: xLength, YLength: yLength, NX: nx, NY: ny}, nil
}

// NumCells returns the total cell count.
func (d *Domain) NumCells() int { return d.NX * d.NY }

// CellIndexOf maps continuous coordinates to a row-major cell index.
// Callers must keep (x, y) within [0, XLength] x [0, YLength]; coordinates
// exactly on the upper boundary clamp to the last row/column.
func (d *Domain) CellIndexOf(x, y float64) int {
	col := int(x / d.XLength * float64(d.NX))
	if col >= d.NX {
		col = d.NX - 1
	}
	row := int(y / d.YLength * float64(d.NY))
	if row >= d.NY {
		row = d.NY - 1
	}
	return row*d.NX + col
}

// CellBounds returns the spatial extent [x0,x1) x [y0,y1) of a cell index.
func (d *Domain) CellBounds(index int) (x0, y0, x1, y1 float64) {
	w := d.XLength / float64(d.NX)
	h := d.YLength / float64(d.NY)
	col := index % d.NX
	row := index / d.NX
	x0 = float64(col) * w
	y0 = float64(row) * h
	return x0, y0, x0 + w, y0 + h
}
