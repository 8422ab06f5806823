package grid2D

import (
	"fmt"

	"github.com/spmuppar/twodthermocode/utils"
)

// Array is one scalar over the whole patch, ghosts included, addressed by
// absolute (i,j). Storage is row major in i.
type Array struct {
	G    *Grid2D
	M    utils.Matrix
	name string
}

func NewArray(g *Grid2D, name string) (a Array) {
	a = Array{
		G:    g,
		M:    utils.NewMatrix(g.Qx, g.Qy),
		name: name,
	}
	return
}

func (a Array) Name() string { return a.name }

func (a Array) index(i, j int) int {
	if utils.Debug {
		if !a.G.InBounds(i, j) {
			panic(fmt.Errorf("index (%d,%d) out of bounds for %q, shape [%d,%d]",
				i, j, a.name, a.G.Qx, a.G.Qy))
		}
	}
	return i*a.G.Qy + j
}

func (a Array) At(i, j int) float64 { return a.M.DataP[a.index(i, j)] }

func (a Array) Set(i, j int, val float64) {
	if utils.Debug && a.M.IsReadOnly() {
		panic(fmt.Errorf("attempt to write to read only array %q at (%d,%d)", a.name, i, j))
	}
	a.M.DataP[a.index(i, j)] = val
}

func (a Array) Add(i, j int, val float64) {
	if utils.Debug && a.M.IsReadOnly() {
		panic(fmt.Errorf("attempt to write to read only array %q at (%d,%d)", a.name, i, j))
	}
	a.M.DataP[a.index(i, j)] += val
}

func (a Array) Fill(val float64) Array {
	a.M.Fill(val)
	return a
}

func (a Array) Copy() (R Array) {
	R = Array{G: a.G, M: a.M.Copy(), name: a.name}
	return
}

// Shift returns a read only view with V.At(i,j) = a.At(i+di, j+dj)
func (a Array) Shift(di, dj int) View {
	return View{a: a, di: di, dj: dj}
}

func (a Array) View() View { return View{a: a} }

type View struct {
	a      Array
	di, dj int
}

func (v View) At(i, j int) float64 { return v.a.At(i+v.di, j+v.dj) }

// Shift composes offsets
func (v View) Shift(di, dj int) View {
	return View{a: v.a, di: v.di + di, dj: v.dj + dj}
}
