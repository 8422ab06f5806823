package Godunov2D

import (
	"fmt"
	"math"

	"github.com/spmuppar/twodthermocode/eos"
	"github.com/spmuppar/twodthermocode/grid2D"
	"github.com/spmuppar/twodthermocode/utils"
)

const (
	smallRho = 1.e-10
	smallC   = 1.e-10
)

// RiemannSolver computes the flux f through one interface along dir from the
// conserved states on either side. A solid interface is a reflecting wall.
type RiemannSolver interface {
	Solve(dir Direction, Ul, Ur, f []float64, solid bool) error
}

func NewRiemannSolver(rt RiemannType, e eos.EOS, vars *grid2D.VariableIndex, smallp float64) (rs RiemannSolver, err error) {
	if e == nil {
		return nil, &ConfigError{Field: "EOS", Value: nil, Reason: "an equation of state is required"}
	}
	base := riemannBase{eos: e, vars: vars, smallp: smallp}
	switch rt {
	case RiemannCGF:
		rs = &CGF{riemannBase: base}
	case RiemannHLLC:
		rs = &HLLC{riemannBase: base}
	default:
		err = &ConfigError{Field: "Riemann", Value: rt, Reason: "unknown Riemann solver"}
	}
	return
}

type riemannBase struct {
	eos    eos.EOS
	vars   *grid2D.VariableIndex
	smallp float64
}

// sideState is one side of an interface in normal/transverse components
type sideState struct {
	rho, un, ut float64
	rhoe, p     float64
	gamma       float64
}

// normal returns the slots of the normal and transverse momentum
func (rb *riemannBase) normal(dir Direction) (ixn, ixt int) {
	if dir == XDir {
		return rb.vars.IXmom, rb.vars.IYmom
	}
	return rb.vars.IYmom, rb.vars.IXmom
}

func (rb *riemannBase) side(dir Direction, U []float64) (s sideState, err error) {
	var (
		v        = rb.vars
		ixn, ixt = rb.normal(dir)
	)
	s.rho = U[v.IDens]
	if !(s.rho > 0) || math.IsInf(s.rho, 0) {
		return s, fmt.Errorf("density %v: %w", s.rho, ErrDensity)
	}
	s.un, s.ut = U[ixn]/s.rho, U[ixt]/s.rho
	s.rhoe = U[v.IEner] - 0.5*s.rho*(s.un*s.un+s.ut*s.ut)
	if s.p, err = rb.eos.Pressure(s.rho, s.rhoe/s.rho); err != nil {
		return
	}
	if !utils.IsFinite(s.p) {
		return s, fmt.Errorf("pressure %v from rho = %v, rhoe = %v: %w", s.p, s.rho, s.rhoe, ErrPressure)
	}
	s.p = math.Max(s.p, rb.smallp)
	s.gamma, err = rb.eos.EffectiveGamma(s.rho, s.p)
	return
}

// consFlux is the exact Euler flux of a conserved state along dir
func (rb *riemannBase) consFlux(dir Direction, U, F []float64) (err error) {
	var (
		v        = rb.vars
		ixn, ixt = rb.normal(dir)
		s        sideState
	)
	if s, err = rb.side(dir, U); err != nil {
		return
	}
	F[v.IDens] = U[v.IDens] * s.un
	F[ixn] = U[ixn]*s.un + s.p
	F[ixt] = U[ixt] * s.un
	F[v.IEner] = (U[v.IEner] + s.p) * s.un
	for n := 0; n < v.NScalars; n++ {
		F[v.IRhoX+n] = U[v.IRhoX+n] * s.un
	}
	return
}

// transverseFluxes is the first Riemann pass, over interfaces on
// [lo-1, hi+1] in both directions, stored on the left (bottom) edge in
// absolute indices
func (fp *fluxPass) transverseFluxes(dir Direction, Ul, Ur *grid2D.Field, solid *SolidMask) (F *grid2D.Field, err error) {
	g := fp.g
	F = grid2D.NewConservedField(g, fp.vars)
	err = fp.solveRange(dir, Ul, Ur, solid, g.Ilo-1, g.Ihi+1, g.Jlo-1, g.Jhi+1,
		func(n, i, j int, val float64) { F.Comp[n].Set(i, j, val) })
	return
}

// normalFluxes is the second Riemann pass, over the output interfaces only
func (fp *fluxPass) normalFluxes(dir Direction, Ul, Ur *grid2D.Field, solid *SolidMask) (F *FluxField, err error) {
	var (
		g                      = fp.g
		iMin, iMax, jMin, jMax = g.Ilo, g.Ihi + 1, g.Jlo, g.Jhi
	)
	if dir == YDir {
		iMax, jMax = g.Ihi, g.Jhi+1
	}
	F = NewFluxField(dir, g, fp.vars)
	err = fp.solveRange(dir, Ul, Ur, solid, iMin, iMax, jMin, jMax,
		func(n, i, j int, val float64) { F.Set(n, i-g.Ilo, j-g.Jlo, val) })
	return
}

func (fp *fluxPass) solveRange(dir Direction, Ul, Ur *grid2D.Field, solid *SolidMask,
	iMin, iMax, jMin, jMax int, store func(n, i, j int, val float64)) error {
	nvar := fp.vars.Nvar
	return fp.rows(iMin, iMax, func(i int) error {
		var (
			ul = make([]float64, nvar)
			ur = make([]float64, nvar)
			f  = make([]float64, nvar)
		)
		for j := jMin; j <= jMax; j++ {
			for n := 0; n < nvar; n++ {
				ul[n], ur[n] = Ul.Comp[n].At(i, j), Ur.Comp[n].At(i, j)
			}
			if err := fp.riemann.Solve(dir, ul, ur, f, solid.at(dir, fp.g, i, j)); err != nil {
				return &StateError{Stage: StageRiemann, I: i, J: j, Values: riemannValues(fp.vars, ul, ur), Err: err}
			}
			for n := 0; n < nvar; n++ {
				if !utils.IsFinite(f[n]) {
					return &StateError{Stage: StageRiemann, I: i, J: j, Values: riemannValues(fp.vars, ul, ur),
						Err: fmt.Errorf("%s flux %v: %w", dir, f[n], ErrNonFiniteFx)}
				}
				store(n, i, j, f[n])
			}
		}
		return nil
	})
}

func riemannValues(v *grid2D.VariableIndex, ul, ur []float64) (vals map[string]float64) {
	vals = make(map[string]float64)
	for n, name := range v.ConservedNames() {
		vals[name+"_l"], vals[name+"_r"] = ul[n], ur[n]
	}
	return
}
