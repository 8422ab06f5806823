package sod_shock_tube

import (
	"fmt"
	"math"
)

// Sod is a shock tube initial state, a diaphragm at X0 separating a high
// pressure left state from a low pressure right state, both at rest
type Sod struct {
	RhoL, PL   float64
	RhoR, PR   float64
	Gamma      float64
	X0         float64
	Xmin, Xmax float64
}

func DefaultSod() Sod {
	return Sod{
		RhoL: 1, PL: 1,
		RhoR: 0.125, PR: 0.1,
		Gamma: 1.4,
		X0:    0.5,
		Xmin:  0, Xmax: 1,
	}
}

// Solution is the exact solution sampled at the region boundaries, X1 the
// rarefaction head, X2 its tail, X3 the contact and X4 the shock
type Solution struct {
	X, Rho, P, U, E []float64 // E is specific internal energy
	X1, X2, X3, X4  float64
	PPost, UPost    float64
	RhoMiddle       float64 // Between the rarefaction tail and the contact
	RhoPost         float64 // Between the contact and the shock
}

type waves struct {
	cl, mu2                 float64
	pPost, vPost, vShock    float64
	rhoMiddle, rhoPost, cTl float64
}

func (s Sod) validate() (err error) {
	switch {
	case !(s.Gamma > 1):
		err = fmt.Errorf("gamma must exceed 1, have %v", s.Gamma)
	case !(s.RhoL > 0) || !(s.RhoR > 0) || !(s.PR > 0):
		err = fmt.Errorf("densities and pressures must be positive, have rho = (%v,%v), p = (%v,%v)",
			s.RhoL, s.RhoR, s.PL, s.PR)
	case !(s.PL > s.PR):
		err = fmt.Errorf("left pressure %v must exceed right pressure %v", s.PL, s.PR)
	case !(s.Xmax > s.Xmin) || s.X0 <= s.Xmin || s.X0 >= s.Xmax:
		err = fmt.Errorf("diaphragm %v must lie inside [%v,%v]", s.X0, s.Xmin, s.Xmax)
	}
	return
}

// pressureBalance is zero at the post shock pressure, where the velocity
// behind the right moving shock matches the tail of the left rarefaction
func (s Sod) pressureBalance(P float64) float64 {
	var (
		g   = s.Gamma
		mu2 = (g - 1) / (g + 1)
		cl  = math.Sqrt(g * s.PL / s.RhoL)
	)
	shock := (P - s.PR) * math.Sqrt((1-mu2)/(s.RhoR*(P+mu2*s.PR)))
	raref := 2 * cl / (g - 1) * (1 - math.Pow(P/s.PL, (g-1)/(2*g)))
	return shock - raref
}

func (s Sod) waves() (w waves) {
	var (
		g      = s.Gamma
		lo, hi = s.PR, s.PL
	)
	w.mu2 = (g - 1) / (g + 1)
	w.cl = math.Sqrt(g * s.PL / s.RhoL)
	// The balance is increasing in P and changes sign on [PR, PL]
	for it := 0; it < 200 && hi-lo > 1.e-15*s.PL; it++ {
		mid := 0.5 * (lo + hi)
		if s.pressureBalance(mid) > 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	w.pPost = 0.5 * (lo + hi)
	w.vPost = 2 * w.cl / (g - 1) * (1 - math.Pow(w.pPost/s.PL, (g-1)/(2*g)))
	w.rhoPost = s.RhoR * ((w.pPost / s.PR) + w.mu2) / (1 + w.mu2*(w.pPost/s.PR))
	w.vShock = w.vPost * (w.rhoPost / s.RhoR) / ((w.rhoPost / s.RhoR) - 1)
	w.rhoMiddle = s.RhoL * math.Pow(w.pPost/s.PL, 1/g)
	w.cTl = w.cl - 0.5*(g-1)*w.vPost
	return
}

// Sample returns the exact primitive state at x and time t > 0
func (s Sod) Sample(x, t float64) (rho, u, p float64, err error) {
	if err = s.validate(); err != nil {
		return
	}
	if !(t > 0) {
		return 0, 0, 0, fmt.Errorf("time must be positive, have %v", t)
	}
	w := s.waves()
	rho, u, p = s.sample(w, x, t)
	return
}

func (s Sod) sample(w waves, x, t float64) (rho, u, p float64) {
	var (
		g  = s.Gamma
		x1 = s.X0 - w.cl*t
		x2 = s.X0 + t*(w.vPost-w.cTl)
		x3 = s.X0 + w.vPost*t
		x4 = s.X0 + w.vShock*t
	)
	switch {
	case x < x1:
		rho, u, p = s.RhoL, 0, s.PL
	case x <= x2:
		c := w.mu2*((s.X0-x)/t) + (1-w.mu2)*w.cl
		rho = s.RhoL * math.Pow(c/w.cl, 2/(g-1))
		p = s.PL * math.Pow(rho/s.RhoL, g)
		u = (1 - w.mu2) * ((x-s.X0)/t + w.cl)
	case x <= x3:
		rho, u, p = w.rhoMiddle, w.vPost, w.pPost
	case x <= x4:
		rho, u, p = w.rhoPost, w.vPost, w.pPost
	default:
		rho, u, p = s.RhoR, 0, s.PR
	}
	return
}

// Solve samples the exact solution at time t on the region boundaries, with
// nFan points across the rarefaction
func (s Sod) Solve(t float64, nFan int) (sol *Solution, err error) {
	if err = s.validate(); err != nil {
		return
	}
	if !(t > 0) {
		return nil, fmt.Errorf("time must be positive, have %v", t)
	}
	w := s.waves()
	sol = &Solution{
		X1:        s.X0 - w.cl*t,
		X2:        s.X0 + t*(w.vPost-w.cTl),
		X3:        s.X0 + w.vPost*t,
		X4:        s.X0 + w.vShock*t,
		PPost:     w.pPost,
		UPost:     w.vPost,
		RhoMiddle: w.rhoMiddle,
		RhoPost:   w.rhoPost,
	}
	tol := 1.e-8
	sol.X = []float64{s.Xmin, sol.X1 - tol}
	nFan = max(nFan, 2)
	for k := 0; k < nFan; k++ {
		sol.X = append(sol.X, sol.X1+(sol.X2-sol.X1)*float64(k)/float64(nFan-1))
	}
	sol.X = append(sol.X, sol.X2+tol, sol.X3-tol, sol.X3+tol, sol.X4-tol, sol.X4+tol, s.Xmax)
	for _, x := range sol.X {
		rho, u, p := s.sample(w, x, t)
		sol.Rho = append(sol.Rho, rho)
		sol.U = append(sol.U, u)
		sol.P = append(sol.P, p)
		sol.E = append(sol.E, p/((s.Gamma-1)*rho))
	}
	return
}

// Integrate returns the trapezoid rule integral of u over x
func Integrate(x, u []float64) (result float64) {
	for i := 0; i < len(x)-1; i++ {
		result += 0.5 * (u[i+1] + u[i]) * (x[i+1] - x[i])
	}
	return
}
