package grid2D

import (
	"fmt"
	"math"
)

/*
A single uniform Cartesian patch with a ghost halo Ng cells wide on every side.
Indices are absolute, ghosts included:

	0 .. Ng-1          lower ghosts
	Ilo .. Ihi         interior, Ilo = Ng, Ihi = Ng+Nx-1
	Ihi+1 .. Qx-1      upper ghosts

and the same along y with Jlo, Jhi, Qy.
*/
type Grid2D struct {
	Nx, Ny, Ng             int
	Qx, Qy                 int // Total cells along each direction, ghosts included
	Ilo, Ihi, Jlo, Jhi     int // Inclusive interior bounds
	Xmin, Xmax, Ymin, Ymax float64
	Dx, Dy                 float64
	X, Y                   []float64 // Cell centers, ghosts included, len Qx and Qy
}

func NewGrid2D(nx, ny, ng int, xmin, xmax, ymin, ymax float64) (g *Grid2D, err error) {
	switch {
	case nx < 1 || ny < 1:
		return nil, fmt.Errorf("grid dimensions must be positive, have nx = %d, ny = %d", nx, ny)
	case ng < 1:
		return nil, fmt.Errorf("ghost cell count must be positive, have ng = %d", ng)
	case !(xmax > xmin) || !(ymax > ymin):
		return nil, fmt.Errorf("grid extents are empty: x [%v,%v], y [%v,%v]", xmin, xmax, ymin, ymax)
	case math.IsInf(xmax-xmin, 0) || math.IsInf(ymax-ymin, 0):
		return nil, fmt.Errorf("grid extents must be finite: x [%v,%v], y [%v,%v]", xmin, xmax, ymin, ymax)
	}
	g = &Grid2D{
		Nx: nx, Ny: ny, Ng: ng,
		Qx: nx + 2*ng, Qy: ny + 2*ng,
		Ilo: ng, Ihi: ng + nx - 1,
		Jlo: ng, Jhi: ng + ny - 1,
		Xmin: xmin, Xmax: xmax,
		Ymin: ymin, Ymax: ymax,
		Dx: (xmax - xmin) / float64(nx),
		Dy: (ymax - ymin) / float64(ny),
	}
	g.X = make([]float64, g.Qx)
	for i := range g.X {
		g.X[i] = xmin + (float64(i-ng)+0.5)*g.Dx
	}
	g.Y = make([]float64, g.Qy)
	for j := range g.Y {
		g.Y[j] = ymin + (float64(j-ng)+0.5)*g.Dy
	}
	return
}

func (g *Grid2D) String() string {
	return fmt.Sprintf("2-d grid: nx = %d, ny = %d, ng = %d, x [%v,%v], y [%v,%v]",
		g.Nx, g.Ny, g.Ng, g.Xmin, g.Xmax, g.Ymin, g.Ymax)
}

// InBounds reports whether (i,j) is a valid absolute index, ghosts included
func (g *Grid2D) InBounds(i, j int) bool {
	return i >= 0 && i < g.Qx && j >= 0 && j < g.Qy
}

// Equal compares geometry, not identity
func (g *Grid2D) Equal(o *Grid2D) bool {
	if g == o {
		return true
	}
	if g == nil || o == nil {
		return false
	}
	return g.Nx == o.Nx && g.Ny == o.Ny && g.Ng == o.Ng &&
		g.Xmin == o.Xmin && g.Xmax == o.Xmax && g.Ymin == o.Ymin && g.Ymax == o.Ymax
}
