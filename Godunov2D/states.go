package Godunov2D

import (
	"math"

	"github.com/spmuppar/twodthermocode/grid2D"
	"github.com/spmuppar/twodthermocode/utils"
)

// eigenSystem fills the eigenvalues and the left and right eigenvectors of the
// primitive system along dir. Rows are waves, columns variables. Passive
// scalars ride the contact, their eigenvectors are unit vectors.
func eigenSystem(dir Direction, v *grid2D.VariableIndex, un, rho, cs float64, eval []float64, lvec, rvec [][]float64) {
	var (
		in, it = v.IU, v.IV // Normal and transverse velocity slots
		cs2    = cs * cs
	)
	if dir == YDir {
		in, it = v.IV, v.IU
	}
	for m := range lvec {
		for n := range lvec[m] {
			lvec[m][n], rvec[m][n] = 0, 0
		}
	}
	eval[0], eval[1], eval[2], eval[3] = un-cs, un, un, un+cs

	lvec[0][in], lvec[0][v.IP] = -0.5*rho/cs, 0.5/cs2
	lvec[1][v.IRho], lvec[1][v.IP] = 1, -1/cs2
	lvec[2][it] = 1
	lvec[3][in], lvec[3][v.IP] = 0.5*rho/cs, 0.5/cs2

	rvec[0][v.IRho], rvec[0][in], rvec[0][v.IP] = 1, -cs/rho, cs2
	rvec[1][v.IRho] = 1
	rvec[2][it] = 1
	rvec[3][v.IRho], rvec[3][in], rvec[3][v.IP] = 1, cs/rho, cs2

	for n := 0; n < v.NScalars; n++ {
		m := v.IX + n
		eval[m] = un
		lvec[m][m], rvec[m][m] = 1, 1
	}
}

func signOf(a float64) float64 {
	if a < 0 {
		return -1
	}
	return 1
}

/*
states predicts the left and right interface states along dir at the half
time by characteristic tracing from the limited slopes ld. For the x
direction, from cell i:

	V_l(i+1) = V + 0.5*(1 - dt/dx*max(e_4, 0))*dV + sum_m betal_m r_m
	V_r(i)   = V - 0.5*(1 + dt/dx*min(e_1, 0))*dV + sum_m betar_m r_m

traced on cells [lo-2, hi+2], then converted to conserved states on
interfaces i in [ilo-1, ihi+2], j in [jlo-2, jhi+2] (transposed for y).
*/
func (fp *fluxPass) states(dir Direction, q *grid2D.Field, ld []grid2D.Array) (Ul, Ur *grid2D.Field, err error) {
	var (
		g      = fp.g
		v      = fp.vars
		nvar   = v.Nvar
		smallp = fp.opts.SmallP
		dtdx   = fp.dt / g.Dx
		di, dj = offsets(dir)
		in     = v.IU
		ql     = grid2D.NewPrimitiveField(g, v)
		qr     = grid2D.NewPrimitiveField(g, v)
	)
	if dir == YDir {
		dtdx, in = fp.dt/g.Dy, v.IV
	}
	dtdx4 := 0.25 * dtdx
	err = fp.rows(g.Ilo-2, g.Ihi+2, func(i int) error {
		var (
			qc    = make([]float64, nvar)
			dq    = make([]float64, nvar)
			eval  = make([]float64, nvar)
			betal = make([]float64, nvar)
			betar = make([]float64, nvar)
			lvec  = make([][]float64, nvar)
			rvec  = make([][]float64, nvar)
		)
		for m := range lvec {
			lvec[m], rvec[m] = make([]float64, nvar), make([]float64, nvar)
		}
		for j := g.Jlo - 2; j <= g.Jhi+2; j++ {
			for n := 0; n < nvar; n++ {
				qc[n], dq[n] = q.Comp[n].At(i, j), ld[n].At(i, j)
			}
			rho, p := qc[v.IRho], qc[v.IP]
			cs, err := fp.eos.SoundSpeed(p, rho)
			if err != nil {
				return &StateError{Stage: StageStates, I: i, J: j,
					Values: map[string]float64{"rho": rho, "p": p}, Err: err}
			}
			if !(cs > 0) || math.IsInf(cs, 0) {
				return &StateError{Stage: StageStates, I: i, J: j,
					Values: map[string]float64{"rho": rho, "p": p, "c": cs}, Err: ErrSoundSpeed}
			}
			eigenSystem(dir, v, qc[in], rho, cs, eval, lvec, rvec)

			e1, e4 := eval[0], eval[3]
			for m := 0; m < nvar; m++ {
				var sum float64
				for n := 0; n < nvar; n++ {
					sum += lvec[m][n] * dq[n]
				}
				betal[m] = dtdx4 * (e4 - eval[m]) * (signOf(eval[m]) + 1) * sum
				betar[m] = dtdx4 * (e1 - eval[m]) * (1 - signOf(eval[m])) * sum
			}
			factorL := 0.5 * (1 - dtdx*math.Max(e4, 0))
			factorR := 0.5 * (1 + dtdx*math.Min(e1, 0))
			for n := 0; n < nvar; n++ {
				var sumL, sumR float64
				for m := 0; m < nvar; m++ {
					sumL += betal[m] * rvec[m][n]
					sumR += betar[m] * rvec[m][n]
				}
				ql.Comp[n].Set(i+di, j+dj, qc[n]+factorL*dq[n]+sumL)
				qr.Comp[n].Set(i, j, qc[n]-factorR*dq[n]+sumR)
			}
		}
		return nil
	})
	if err != nil {
		return
	}

	// State window, one buffer cell around the interfaces the second pass uses
	iMin, iMax, jMin, jMax := g.Ilo-1, g.Ihi+2, g.Jlo-2, g.Jhi+2
	if dir == YDir {
		iMin, iMax, jMin, jMax = g.Ilo-2, g.Ihi+2, g.Jlo-1, g.Jhi+2
	}
	for _, qs := range []*grid2D.Field{ql, qr} {
		pa := qs.Comp[v.IP]
		if err = fp.rows(iMin, iMax, func(i int) error {
			for j := jMin; j <= jMax; j++ {
				pa.Set(i, j, math.Max(pa.At(i, j), smallp))
				if utils.Debug {
					utils.Assert(pa.At(i, j) >= smallp, "pressure %v below floor at (%d,%d)", pa.At(i, j), i, j)
				}
			}
			return nil
		}); err != nil {
			return
		}
	}
	if Ul, err = fp.primToCons(ql, iMin, iMax, jMin, jMax); err != nil {
		return
	}
	Ur, err = fp.primToCons(qr, iMin, iMax, jMin, jMax)
	return
}
