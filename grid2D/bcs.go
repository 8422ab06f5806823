package grid2D

import (
	"fmt"

	"github.com/spmuppar/twodthermocode/utils"
)

// GhostFiller fills the ghost cells of one array in place, the interior is
// read only
type GhostFiller interface {
	FillGhosts(a Array) error
}

// GhostFillFunc adapts a plain function to a GhostFiller
type GhostFillFunc func(a Array) error

func (f GhostFillFunc) FillGhosts(a Array) error { return f(a) }

// BCSet applies one boundary treatment per domain side. The x sides are filled
// first over the interior rows in j, then the y sides over every i so the
// corners pick up the x fill.
type BCSet struct {
	XLower, XUpper, YLower, YUpper utils.BCType
	// Arrays named here change sign across a reflecting side
	OddX, OddY map[string]bool
}

func NewBCSet(xl, xr, yl, yr utils.BCType) (bc *BCSet, err error) {
	bc = &BCSet{
		XLower: xl, XUpper: xr, YLower: yl, YUpper: yr,
		OddX: map[string]bool{"x-momentum": true, "u": true},
		OddY: map[string]bool{"y-momentum": true, "v": true, "E_src": true},
	}
	if err = bc.Validate(); err != nil {
		return nil, err
	}
	return
}

// NewBCSetFromNames parses per side names, keys are xlb, xrb, ylb, yrb.
// Missing sides default to outflow.
func NewBCSetFromNames(names map[string]string) (bc *BCSet, err error) {
	var t [4]utils.BCType
	for n, key := range []string{"xlb", "xrb", "ylb", "yrb"} {
		t[n] = utils.BCOutflow
		if name, ok := names[key]; ok {
			if t[n], err = utils.ParseBCName(name); err != nil {
				return nil, fmt.Errorf("side %s: %w", key, err)
			}
		}
	}
	return NewBCSet(t[0], t[1], t[2], t[3])
}

func (bc *BCSet) Validate() (err error) {
	if (bc.XLower == utils.BCPeriodic) != (bc.XUpper == utils.BCPeriodic) {
		return fmt.Errorf("periodic x boundaries must be paired, have %s and %s", bc.XLower, bc.XUpper)
	}
	if (bc.YLower == utils.BCPeriodic) != (bc.YUpper == utils.BCPeriodic) {
		return fmt.Errorf("periodic y boundaries must be paired, have %s and %s", bc.YLower, bc.YUpper)
	}
	return
}

func (bc *BCSet) String() string {
	return fmt.Sprintf("x: [%s,%s], y: [%s,%s]", bc.XLower, bc.XUpper, bc.YLower, bc.YUpper)
}

func (bc *BCSet) FillGhosts(a Array) (err error) {
	var (
		g = a.G
	)
	if err = bc.Validate(); err != nil {
		return
	}
	for _, side := range []utils.BCType{bc.XLower, bc.XUpper, bc.YLower, bc.YUpper} {
		if side == utils.BCPeriodic || side == utils.BCReflect {
			if g.Ng > g.Nx || g.Ng > g.Ny {
				return fmt.Errorf("%s boundaries need at least ng = %d interior cells, grid is %dx%d",
					side, g.Ng, g.Nx, g.Ny)
			}
		}
	}
	px, py := 1., 1.
	if bc.OddX[a.Name()] {
		px = -1
	}
	if bc.OddY[a.Name()] {
		py = -1
	}
	for j := g.Jlo; j <= g.Jhi; j++ {
		for k := 0; k < g.Ng; k++ {
			il, iu := g.Ilo-1-k, g.Ihi+1+k
			switch bc.XLower {
			case utils.BCOutflow:
				a.Set(il, j, a.At(g.Ilo, j))
			case utils.BCPeriodic:
				a.Set(il, j, a.At(g.Ihi-k, j))
			case utils.BCReflect:
				a.Set(il, j, px*a.At(g.Ilo+k, j))
			}
			switch bc.XUpper {
			case utils.BCOutflow:
				a.Set(iu, j, a.At(g.Ihi, j))
			case utils.BCPeriodic:
				a.Set(iu, j, a.At(g.Ilo+k, j))
			case utils.BCReflect:
				a.Set(iu, j, px*a.At(g.Ihi-k, j))
			}
		}
	}
	for i := 0; i < g.Qx; i++ {
		for k := 0; k < g.Ng; k++ {
			jl, ju := g.Jlo-1-k, g.Jhi+1+k
			switch bc.YLower {
			case utils.BCOutflow:
				a.Set(i, jl, a.At(i, g.Jlo))
			case utils.BCPeriodic:
				a.Set(i, jl, a.At(i, g.Jhi-k))
			case utils.BCReflect:
				a.Set(i, jl, py*a.At(i, g.Jlo+k))
			}
			switch bc.YUpper {
			case utils.BCOutflow:
				a.Set(i, ju, a.At(i, g.Jhi))
			case utils.BCPeriodic:
				a.Set(i, ju, a.At(i, g.Jlo+k))
			case utils.BCReflect:
				a.Set(i, ju, py*a.At(i, g.Jhi-k))
			}
		}
	}
	return
}

// FillField runs the filler over every component of f
func FillField(f *Field, filler GhostFiller) (err error) {
	for _, c := range f.Comp {
		if err = filler.FillGhosts(c); err != nil {
			return fmt.Errorf("filling ghosts of %q: %w", c.Name(), err)
		}
	}
	return
}
