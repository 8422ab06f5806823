package Godunov2D

import (
	"math"
)

/*
CGF is the Colella, Glaz and Ferguson approximate solver. The star state
comes from a linearized two shock approximation using the Lagrangian sound
speeds, then the state on the interface is picked by the wave pattern:

	ustar > 0   left state, left star state or the left rarefaction fan
	ustar < 0   right state, right star state or the right rarefaction fan
	ustar = 0   average of the two star states

Each side uses its own effective gamma from the EOS.
*/
type CGF struct {
	riemannBase
}

type interfaceState struct {
	rho, un, ut, p, rhoe float64
}

func (cg *CGF) Solve(dir Direction, Ul, Ur, F []float64, solid bool) (err error) {
	var (
		v        = cg.vars
		ixn, ixt = cg.normal(dir)
		l, r     sideState
		st       interfaceState
	)
	if l, err = cg.side(dir, Ul); err != nil {
		return
	}
	if r, err = cg.side(dir, Ur); err != nil {
		return
	}

	// Lagrangian and Eulerian sound speeds
	wl := math.Max(smallRho*smallC, math.Sqrt(l.gamma*l.p*l.rho))
	wr := math.Max(smallRho*smallC, math.Sqrt(r.gamma*r.p*r.rho))
	cl := math.Max(smallC, math.Sqrt(l.gamma*l.p/l.rho))
	cr := math.Max(smallC, math.Sqrt(r.gamma*r.p/r.rho))

	pstar := (wl*r.p + wr*l.p - wr*wl*(r.un-l.un)) / (wl + wr)
	pstar = math.Max(pstar, cg.smallp)
	ustar := (wl*l.un + wr*r.un + l.p - r.p) / (wl + wr)

	rhostarL := l.rho + (pstar-l.p)/(cl*cl)
	rhostarR := r.rho + (pstar-r.p)/(cr*cr)
	rhoestarL := l.rhoe + (pstar-l.p)*(l.rhoe/l.rho+l.p/l.rho)/(cl*cl)
	rhoestarR := r.rhoe + (pstar-r.p)*(r.rhoe/r.rho+r.p/r.rho)/(cr*cr)
	cstarL := math.Max(smallC, math.Sqrt(l.gamma*pstar/rhostarL))
	cstarR := math.Max(smallC, math.Sqrt(r.gamma*pstar/rhostarR))

	var outer, star interfaceState
	switch {
	case ustar > 0:
		outer = interfaceState{rho: l.rho, un: l.un, p: l.p, rhoe: l.rhoe}
		star = interfaceState{rho: rhostarL, un: ustar, p: pstar, rhoe: rhoestarL}
		st = pickState(l.un-cl, ustar-cstarL, pstar > l.p, outer, star, true)
		st.ut = l.ut
	case ustar < 0:
		outer = interfaceState{rho: r.rho, un: r.un, p: r.p, rhoe: r.rhoe}
		star = interfaceState{rho: rhostarR, un: ustar, p: pstar, rhoe: rhoestarR}
		st = pickState(r.un+cr, ustar+cstarR, pstar > r.p, outer, star, false)
		st.ut = r.ut
	default:
		st = interfaceState{
			rho:  0.5 * (rhostarL + rhostarR),
			un:   ustar,
			ut:   0.5 * (l.ut + r.ut),
			p:    pstar,
			rhoe: 0.5 * (rhoestarL + rhoestarR),
		}
	}
	if solid {
		st.un = 0
	}

	F[v.IDens] = st.rho * st.un
	F[ixn] = st.rho*st.un*st.un + st.p
	F[ixt] = st.rho * st.ut * st.un
	F[v.IEner] = st.rhoe*st.un + 0.5*st.rho*(st.un*st.un+st.ut*st.ut)*st.un + st.p*st.un
	for n := 0; n < v.NScalars; n++ {
		var xn float64
		switch {
		case ustar > 0:
			xn = Ul[v.IRhoX+n] / Ul[v.IDens]
		case ustar < 0:
			xn = Ur[v.IRhoX+n] / Ur[v.IDens]
		default:
			xn = 0.5 * (Ul[v.IRhoX+n]/Ul[v.IDens] + Ur[v.IRhoX+n]/Ur[v.IDens])
		}
		F[v.IRhoX+n] = F[v.IDens] * xn
	}
	return
}

/*
pickState resolves the wave between the outer state and the star state on
the side the contact moved away from. lambda is the outer characteristic
speed, lambdaStar the star one. For the left side (fromLeft) the outer
state is seen when the wave moves right, for the right side when it moves
left. A rarefaction spanning the interface is interpolated linearly.
*/
func pickState(lambda, lambdaStar float64, shock bool, outer, star interfaceState, fromLeft bool) interfaceState {
	if shock {
		sigma := 0.5 * (lambda + lambdaStar)
		if (sigma > 0) == fromLeft {
			return outer
		}
		return star
	}
	switch {
	case lambda < 0 && lambdaStar < 0:
		if fromLeft {
			return star
		}
		return outer
	case lambda > 0 && lambdaStar > 0:
		if fromLeft {
			return outer
		}
		return star
	}
	if lambda == lambdaStar {
		return star
	}
	alpha := lambda / (lambda - lambdaStar)
	return interfaceState{
		rho:  alpha*star.rho + (1-alpha)*outer.rho,
		un:   alpha*star.un + (1-alpha)*outer.un,
		p:    alpha*star.p + (1-alpha)*outer.p,
		rhoe: alpha*star.rhoe + (1-alpha)*outer.rhoe,
	}
}
