package Godunov2D

import (
	"math"
)

// HLLC is the Harten, Lax, van Leer solver with the contact restored (Toro,
// chapter 10). The star pressure estimate switches from the primitive
// variable solver to the two rarefaction or two shock approximations when the
// pressure ratio is large and the estimate falls outside the data.
type HLLC struct {
	riemannBase
}

func (hl *HLLC) Solve(dir Direction, Ul, Ur, F []float64, solid bool) (err error) {
	var (
		v        = hl.vars
		ixn, ixt = hl.normal(dir)
		l, r     sideState
	)
	if l, err = hl.side(dir, Ul); err != nil {
		return
	}
	if r, err = hl.side(dir, Ur); err != nil {
		return
	}
	var (
		cl    = math.Max(smallC, math.Sqrt(l.gamma*l.p/l.rho))
		cr    = math.Max(smallC, math.Sqrt(r.gamma*r.p/r.rho))
		gamma = 0.5 * (l.gamma + r.gamma)
		pMax  = math.Max(l.p, r.p)
		pMin  = math.Min(l.p, r.p)
		Q     = pMax / pMin
	)

	// primitive variable Riemann solver, Toro 9.3
	factor := 0.5 * (l.rho + r.rho) * 0.5 * (cl + cr)
	pstar := 0.5*(l.p+r.p) + 0.5*(l.un-r.un)*factor

	if Q > 2 && (pstar < pMin || pstar > pMax) {
		if pstar < pMin {
			// two rarefaction
			z := (gamma - 1) / (2 * gamma)
			plr := math.Pow(l.p/r.p, z)
			ustar := (plr*l.un/cl + r.un/cr + 2*(plr-1)/(gamma-1)) / (plr/cl + 1/cr)
			pstar = 0.5 * (l.p*math.Pow(1+(gamma-1)*(l.un-ustar)/(2*cl), 1/z) +
				r.p*math.Pow(1+(gamma-1)*(ustar-r.un)/(2*cr), 1/z))
		} else {
			// two shock
			Al, Bl := 2/((gamma+1)*l.rho), l.p*(gamma-1)/(gamma+1)
			Ar, Br := 2/((gamma+1)*r.rho), r.p*(gamma-1)/(gamma+1)
			pGuess := math.Max(0, pstar)
			gl := math.Sqrt(Al / (pGuess + Bl))
			gr := math.Sqrt(Ar / (pGuess + Br))
			pstar = (gl*l.p + gr*r.p - (r.un - l.un)) / (gl + gr)
		}
	}

	// nonlinear wave speed estimates
	Sl := l.un - cl
	if pstar > l.p {
		Sl = l.un - cl*math.Sqrt(1+((l.gamma+1)/(2*l.gamma))*(pstar/l.p-1))
	}
	Sr := r.un + cr
	if pstar > r.p {
		Sr = r.un + cr*math.Sqrt(1+((r.gamma+1)/(2*r.gamma))*(pstar/r.p-1))
	}

	// contact speed from the Rankine-Hugoniot conditions, Toro 10.58
	Sc := (r.p - l.p + l.rho*l.un*(Sl-l.un) - r.rho*r.un*(Sr-r.un)) /
		(l.rho*(Sl-l.un) - r.rho*(Sr-r.un))

	if solid {
		for n := range F {
			F[n] = 0
		}
		F[ixn] = math.Max(pstar, hl.smallp)
		return
	}

	starFlux := func(U []float64, s sideState, S float64) (err error) {
		if err = hl.consFlux(dir, U, F); err != nil {
			return
		}
		hllcFactor := s.rho * (S - s.un) / (S - Sc)
		state := make([]float64, len(U))
		state[v.IDens] = hllcFactor
		state[ixn] = hllcFactor * Sc
		state[ixt] = hllcFactor * s.ut
		state[v.IEner] = hllcFactor * (U[v.IEner]/s.rho + (Sc-s.un)*(Sc+s.p/(s.rho*(S-s.un))))
		for n := 0; n < v.NScalars; n++ {
			state[v.IRhoX+n] = hllcFactor * U[v.IRhoX+n] / s.rho
		}
		for n := range F {
			F[n] += S * (state[n] - U[n])
		}
		return
	}

	switch {
	case Sr <= 0:
		err = hl.consFlux(dir, Ur, F)
	case Sc <= 0:
		err = starFlux(Ur, r, Sr)
	case Sl < 0:
		err = starFlux(Ul, l, Sl)
	default:
		err = hl.consFlux(dir, Ul, F)
	}
	return
}
