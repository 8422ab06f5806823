package eos

import (
	"fmt"
	"math"
)

const (
	RUniversal = 8.314462618 // J/(mol K)
	sqrt2      = math.Sqrt2
)

// Fluid holds the pure component constants of a Peng-Robinson fluid, SI units
type Fluid struct {
	Name  string  `yaml:"Name"`
	M     float64 `yaml:"M"`     // Molar mass, kg/mol
	Tc    float64 `yaml:"Tc"`    // Critical temperature, K
	Pc    float64 `yaml:"Pc"`    // Critical pressure, Pa
	Omega float64 `yaml:"Omega"` // Acentric factor
	CvIG  float64 `yaml:"CvIG"`  // Ideal gas specific heat at constant volume, J/(kg K), 2.5 R/M when zero
}

var Nitrogen = Fluid{
	Name:  "nitrogen",
	M:     0.0280134,
	Tc:    126.192,
	Pc:    3.3958e6,
	Omega: 0.0372,
}

/*
PengRobinson is the cubic equation of state

	p = R T / (v - b) - a alpha(T) / (v^2 + 2 b v - b^2),  v = 1/rho

with the caloric closure e(T,v) = cv_ig T + e_dep(T,v), where the departure
function follows from integrating T (dp/dT)_v - p from v = infinity.
*/
type PengRobinson struct {
	Fluid
	R     float64 // Specific gas constant
	A, B  float64
	Kappa float64
	MaxIt int
	Tol   float64
}

func NewPengRobinson(fl Fluid) (pr *PengRobinson, err error) {
	if !(fl.M > 0) || !(fl.Tc > 0) || !(fl.Pc > 0) {
		return nil, fmt.Errorf("peng-robinson fluid %q needs positive M, Tc and Pc", fl.Name)
	}
	R := RUniversal / fl.M
	if fl.CvIG == 0 {
		fl.CvIG = 2.5 * R
	}
	if !(fl.CvIG > 0) {
		return nil, fmt.Errorf("peng-robinson fluid %q needs a positive CvIG, have %v", fl.Name, fl.CvIG)
	}
	pr = &PengRobinson{
		Fluid: fl,
		R:     R,
		A:     0.45724 * R * R * fl.Tc * fl.Tc / fl.Pc,
		B:     0.07780 * R * fl.Tc / fl.Pc,
		Kappa: 0.37464 + 1.54226*fl.Omega - 0.26992*fl.Omega*fl.Omega,
		MaxIt: 100,
		Tol:   1.e-12,
	}
	return
}

func (pr *PengRobinson) Name() string { return "peng-robinson, " + pr.Fluid.Name }

// alpha and its first two temperature derivatives
func (pr *PengRobinson) alpha(T float64) (al, dal, d2al float64) {
	var (
		k     = pr.Kappa
		sqTTc = math.Sqrt(T * pr.Tc)
		f     = 1 + k*(1-math.Sqrt(T/pr.Tc))
	)
	al = f * f
	dal = -k * f / sqTTc
	d2al = k*k/(2*T*pr.Tc) + k*f/(2*T*sqTTc)
	return
}

func (pr *PengRobinson) denom(v float64) float64 { return v*v + 2*pr.B*v - pr.B*pr.B }

// depLog is the volume integral of 1/denom from infinity to v
func (pr *PengRobinson) depLog(v float64) float64 {
	b := pr.B
	return math.Log((v+(1-sqrt2)*b)/(v+(1+sqrt2)*b)) / (2 * sqrt2 * b)
}

func (pr *PengRobinson) volume(rho float64) (v float64, err error) {
	if !(rho > 0) || math.IsInf(rho, 0) {
		return 0, fmt.Errorf("density %v: %w", rho, ErrNonPhysical)
	}
	v = 1 / rho
	if v <= pr.B {
		return 0, fmt.Errorf("density %v exceeds the co-volume limit %v: %w", rho, 1/pr.B, ErrNonPhysical)
	}
	return
}

func (pr *PengRobinson) pressureTV(T, v float64) (p, dpdT, dpdv float64) {
	var (
		al, dal, _ = pr.alpha(T)
		D          = pr.denom(v)
		vb         = v - pr.B
	)
	p = pr.R*T/vb - pr.A*al/D
	dpdT = pr.R/vb - pr.A*dal/D
	dpdv = -pr.R*T/(vb*vb) + pr.A*al*(2*v+2*pr.B)/(D*D)
	return
}

func (pr *PengRobinson) energyTV(T, v float64) (e, cv float64) {
	var (
		al, dal, d2al = pr.alpha(T)
		L             = pr.depLog(v)
	)
	e = pr.CvIG*T + pr.A*(al-T*dal)*L
	cv = pr.CvIG - pr.A*T*d2al*L
	return
}

// newton solves f(T) = 0 for T > 0 given f and its derivative
func (pr *PengRobinson) newton(T0 float64, f func(T float64) (r, dr float64)) (T float64, err error) {
	T = T0
	for it := 0; it < pr.MaxIt; it++ {
		r, dr := f(T)
		if !(dr > 0) {
			return T, fmt.Errorf("non-monotone residual at T = %v: %w", T, ErrNonPhysical)
		}
		Tn := T - r/dr
		if Tn <= 0 {
			Tn = 0.5 * T
		}
		if math.Abs(Tn-T) <= pr.Tol*T {
			return Tn, nil
		}
		T = Tn
	}
	return T, ErrNoConvergence
}

// TemperatureFromEnergy inverts the caloric closure at fixed density
func (pr *PengRobinson) TemperatureFromEnergy(rho, e float64) (T float64, err error) {
	var v float64
	if v, err = pr.volume(rho); err != nil {
		return
	}
	k := pr.Kappa
	if eMin := pr.A * (1 + k) * (1 + k) * pr.depLog(v); e <= eMin {
		return 0, fmt.Errorf("energy %v at density %v is below the zero temperature limit %v: %w",
			e, rho, eMin, ErrNonPhysical)
	}
	eDepC, _ := pr.energyTV(pr.Tc, v)
	T0 := math.Max((e-(eDepC-pr.CvIG*pr.Tc))/pr.CvIG, 1.e-3*pr.Tc)
	T, err = pr.newton(T0, func(T float64) (r, dr float64) {
		ee, cv := pr.energyTV(T, v)
		return ee - e, cv
	})
	if err != nil {
		err = fmt.Errorf("temperature from rho = %v, e = %v: %w", rho, e, err)
	}
	return
}

// TemperatureFromPressure inverts the thermal equation at fixed density
func (pr *PengRobinson) TemperatureFromPressure(rho, p float64) (T float64, err error) {
	var v float64
	if v, err = pr.volume(rho); err != nil {
		return
	}
	if p0, _, _ := pr.pressureTV(0, v); p <= p0 {
		return 0, fmt.Errorf("pressure %v at density %v is below the zero temperature limit %v: %w",
			p, rho, p0, ErrNonPhysical)
	}
	T0 := math.Max((p+pr.A/pr.denom(v))*(v-pr.B)/pr.R, 1.e-3*pr.Tc)
	T, err = pr.newton(T0, func(T float64) (r, dr float64) {
		pp, dpdT, _ := pr.pressureTV(T, v)
		return pp - p, dpdT
	})
	if err != nil {
		err = fmt.Errorf("temperature from rho = %v, p = %v: %w", rho, p, err)
	}
	return
}

func (pr *PengRobinson) Pressure(rho, e float64) (p float64, err error) {
	var T float64
	if T, err = pr.TemperatureFromEnergy(rho, e); err != nil {
		return
	}
	p, _, _ = pr.pressureTV(T, 1/rho)
	return
}

func (pr *PengRobinson) InternalEnergy(rho, p float64) (e float64, err error) {
	var T float64
	if T, err = pr.TemperatureFromPressure(rho, p); err != nil {
		return
	}
	e, _ = pr.energyTV(T, 1/rho)
	return
}

// SoundSpeed uses c^2 = (dp/drho)_T + T (dp/dT)_v^2 / (rho^2 cv)
func (pr *PengRobinson) SoundSpeed(p, rho float64) (c float64, err error) {
	var T float64
	if T, err = pr.TemperatureFromPressure(rho, p); err != nil {
		return
	}
	v := 1 / rho
	_, dpdT, dpdv := pr.pressureTV(T, v)
	_, cv := pr.energyTV(T, v)
	c2 := -v*v*dpdv + T*dpdT*dpdT/(rho*rho*cv)
	if !(c2 > 0) {
		return 0, fmt.Errorf("sound speed squared %v at rho = %v, p = %v: %w", c2, rho, p, ErrNonPhysical)
	}
	c = math.Sqrt(c2)
	return
}

func (pr *PengRobinson) EffectiveGamma(rho, p float64) (gamma float64, err error) {
	var c float64
	if !(p > 0) {
		return 0, fmt.Errorf("effective gamma at p = %v: %w", p, ErrNonPhysical)
	}
	if c, err = pr.SoundSpeed(p, rho); err != nil {
		return
	}
	gamma = c * c * rho / p
	return
}
