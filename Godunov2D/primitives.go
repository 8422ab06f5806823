package Godunov2D

import (
	"math"

	"github.com/spmuppar/twodthermocode/eos"
	"github.com/spmuppar/twodthermocode/grid2D"
	"github.com/spmuppar/twodthermocode/utils"
)

// DerivePrimitives converts a conserved field to (rho, u, v, p, X) over the
// whole grid, ghosts included. Pressure is floored at smallp.
func DerivePrimitives(U *grid2D.Field, e eos.EOS, smallp float64) (q *grid2D.Field, err error) {
	switch {
	case U == nil || U.G == nil:
		return nil, &ConfigError{Field: "U", Value: nil, Reason: "a conserved field on a grid is required"}
	case e == nil:
		return nil, &ConfigError{Field: "EOS", Value: nil, Reason: "an equation of state is required"}
	case !(smallp > 0):
		return nil, &ConfigError{Field: "SmallP", Value: smallp, Reason: "must be positive"}
	}
	if err = U.CheckShape(U.G); err != nil {
		return nil, &ConfigError{Field: "U", Value: U.G.String(), Reason: err.Error()}
	}
	opts := DefaultOptions()
	opts.SmallP = smallp
	return newFluxPass(opts, e, U.G, U.Vars, 1).primitives(U)
}

func (fp *fluxPass) primitives(U *grid2D.Field) (q *grid2D.Field, err error) {
	var (
		g      = fp.g
		v      = fp.vars
		smallp = fp.opts.SmallP
	)
	q = grid2D.NewPrimitiveField(g, v)
	err = fp.rows(0, g.Qx-1, func(i int) error {
		for j := 0; j < g.Qy; j++ {
			rho := U.Comp[v.IDens].At(i, j)
			mx, my := U.Comp[v.IXmom].At(i, j), U.Comp[v.IYmom].At(i, j)
			E := U.Comp[v.IEner].At(i, j)
			if !(rho > 0) || math.IsInf(rho, 0) {
				return &StateError{Stage: StagePrimitives, I: i, J: j,
					Values: map[string]float64{"density": rho}, Err: ErrDensity}
			}
			if !(E > 0) || math.IsInf(E, 0) {
				return &StateError{Stage: StagePrimitives, I: i, J: j,
					Values: map[string]float64{"density": rho, "energy": E}, Err: ErrEnergy}
			}
			u, vv := mx/rho, my/rho
			e := E/rho - 0.5*(u*u+vv*vv)
			p, err := fp.eos.Pressure(rho, e)
			if err != nil {
				return &StateError{Stage: StagePrimitives, I: i, J: j,
					Values: map[string]float64{"rho": rho, "e": e}, Err: err}
			}
			if !utils.IsFinite(p) {
				return &StateError{Stage: StagePrimitives, I: i, J: j,
					Values: map[string]float64{"rho": rho, "e": e, "p": p}, Err: ErrPressure}
			}
			q.Comp[v.IRho].Set(i, j, rho)
			q.Comp[v.IU].Set(i, j, u)
			q.Comp[v.IV].Set(i, j, vv)
			q.Comp[v.IP].Set(i, j, math.Max(p, smallp))
			for n := 0; n < v.NScalars; n++ {
				q.Comp[v.IX+n].Set(i, j, U.Comp[v.IRhoX+n].At(i, j)/rho)
			}
			if utils.Debug {
				utils.Assert(q.Comp[v.IRho].At(i, j) > 0, "density %v at (%d,%d)", rho, i, j)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return
}

// primToCons maps primitive states to conserved ones on the window
// [iMin,iMax] x [jMin,jMax] using the EOS caloric closure
func (fp *fluxPass) primToCons(q *grid2D.Field, iMin, iMax, jMin, jMax int) (U *grid2D.Field, err error) {
	var (
		v = fp.vars
	)
	U = grid2D.NewConservedField(fp.g, v)
	err = fp.rows(iMin, iMax, func(i int) error {
		for j := jMin; j <= jMax; j++ {
			rho := q.Comp[v.IRho].At(i, j)
			u, vv := q.Comp[v.IU].At(i, j), q.Comp[v.IV].At(i, j)
			p := q.Comp[v.IP].At(i, j)
			e, err := fp.eos.InternalEnergy(rho, p)
			if err != nil {
				return &StateError{Stage: StageStates, I: i, J: j,
					Values: map[string]float64{"rho": rho, "p": p}, Err: err}
			}
			U.Comp[v.IDens].Set(i, j, rho)
			U.Comp[v.IXmom].Set(i, j, rho*u)
			U.Comp[v.IYmom].Set(i, j, rho*vv)
			U.Comp[v.IEner].Set(i, j, rho*e+0.5*rho*(u*u+vv*vv))
			for n := 0; n < v.NScalars; n++ {
				U.Comp[v.IRhoX+n].Set(i, j, rho*q.Comp[v.IX+n].At(i, j))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return
}
