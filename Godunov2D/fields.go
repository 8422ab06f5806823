package Godunov2D

import (
	"fmt"

	"github.com/spmuppar/twodthermocode/grid2D"
	"github.com/spmuppar/twodthermocode/utils"
)

type Direction uint8

const (
	XDir Direction = iota
	YDir
)

func (d Direction) String() string {
	if d == XDir {
		return "x"
	}
	return "y"
}

// FluxField holds the fluxes through one family of interfaces, interior only.
// For XDir the shape is (Nx+1) x Ny and At(n,i,j) is the flux of variable n
// through the left face of interior cell (i,j), zero based. YDir is Nx x (Ny+1)
// with At(n,i,j) on the bottom face.
type FluxField struct {
	Dir    Direction
	Ni, Nj int
	Vars   *grid2D.VariableIndex
	Data   []utils.Matrix
}

func NewFluxField(dir Direction, g *grid2D.Grid2D, vars *grid2D.VariableIndex) (ff *FluxField) {
	ff = &FluxField{
		Dir:  dir,
		Ni:   g.Nx,
		Nj:   g.Ny,
		Vars: vars,
		Data: make([]utils.Matrix, vars.Nvar),
	}
	if dir == XDir {
		ff.Ni++
	} else {
		ff.Nj++
	}
	for n := range ff.Data {
		ff.Data[n] = utils.NewMatrix(ff.Ni, ff.Nj)
	}
	return
}

func (ff *FluxField) At(n, i, j int) float64 { return ff.Data[n].DataP[i*ff.Nj+j] }

func (ff *FluxField) Set(n, i, j int, val float64) { ff.Data[n].DataP[i*ff.Nj+j] = val }

func (ff *FluxField) Add(n, i, j int, val float64) { ff.Data[n].DataP[i*ff.Nj+j] += val }

// Divergence returns the net outflow of variable n from interior cell (i,j)
// per unit volume, given both flux families
func Divergence(Fx, Fy *FluxField, g *grid2D.Grid2D, n, i, j int) float64 {
	return (Fx.At(n, i+1, j)-Fx.At(n, i, j))/g.Dx + (Fy.At(n, i, j+1)-Fy.At(n, i, j))/g.Dy
}

// SolidMask flags interfaces where the normal velocity is forced to zero.
// X is (Nx+1) x Ny, Y is Nx x (Ny+1), indexed like FluxField.
type SolidMask struct {
	Nx, Ny int
	X, Y   [][]bool
}

// NewSolidMask marks whole domain sides: xl, xr the left and right x faces,
// yl, yr the bottom and top y faces
func NewSolidMask(g *grid2D.Grid2D, xl, xr, yl, yr bool) (sm *SolidMask) {
	sm = &SolidMask{
		Nx: g.Nx, Ny: g.Ny,
		X: make([][]bool, g.Nx+1),
		Y: make([][]bool, g.Nx),
	}
	for i := range sm.X {
		sm.X[i] = make([]bool, g.Ny)
	}
	for i := range sm.Y {
		sm.Y[i] = make([]bool, g.Ny+1)
	}
	for j := 0; j < g.Ny; j++ {
		sm.X[0][j], sm.X[g.Nx][j] = xl, xr
	}
	for i := 0; i < g.Nx; i++ {
		sm.Y[i][0], sm.Y[i][g.Ny] = yl, yr
	}
	return
}

func (sm *SolidMask) SetX(i, j int, solid bool) { sm.X[i][j] = solid }

func (sm *SolidMask) SetY(i, j int, solid bool) { sm.Y[i][j] = solid }

func (sm *SolidMask) check(g *grid2D.Grid2D) (err error) {
	if sm.Nx != g.Nx || sm.Ny != g.Ny || len(sm.X) != g.Nx+1 || len(sm.Y) != g.Nx {
		return fmt.Errorf("solid mask is %dx%d, grid is %dx%d", sm.Nx, sm.Ny, g.Nx, g.Ny)
	}
	for i := range sm.X {
		if len(sm.X[i]) != g.Ny {
			return fmt.Errorf("solid mask x row %d has length %d, want %d", i, len(sm.X[i]), g.Ny)
		}
	}
	for i := range sm.Y {
		if len(sm.Y[i]) != g.Ny+1 {
			return fmt.Errorf("solid mask y row %d has length %d, want %d", i, len(sm.Y[i]), g.Ny+1)
		}
	}
	return
}

// at answers for an interface given in absolute grid indices. Interfaces off
// the domain boundary are never solid, tangential indices outside the
// interior take the value of the nearest interior interface.
func (sm *SolidMask) at(dir Direction, g *grid2D.Grid2D, i, j int) bool {
	if sm == nil {
		return false
	}
	clamp := func(k, n int) int {
		if k < 0 {
			return 0
		}
		if k > n-1 {
			return n - 1
		}
		return k
	}
	ii, jj := i-g.Ilo, j-g.Jlo
	if dir == XDir {
		if ii < 0 || ii > g.Nx {
			return false
		}
		return sm.X[ii][clamp(jj, g.Ny)]
	}
	if jj < 0 || jj > g.Ny {
		return false
	}
	return sm.Y[clamp(ii, g.Nx)][jj]
}
