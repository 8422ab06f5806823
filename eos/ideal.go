package eos

import (
	"fmt"
	"math"
)

// IdealGas is the gamma-law gas, p = (gamma-1) rho e
type IdealGas struct {
	Gamma float64
}

func NewIdealGas(gamma float64) (ig *IdealGas, err error) {
	if !(gamma > 1) || math.IsInf(gamma, 0) {
		return nil, fmt.Errorf("ideal gas needs gamma > 1, have %v", gamma)
	}
	return &IdealGas{Gamma: gamma}, nil
}

func (ig *IdealGas) Name() string { return fmt.Sprintf("ideal gas, gamma = %v", ig.Gamma) }

// Pressure may return a negative value for negative e, callers apply a floor
func (ig *IdealGas) Pressure(rho, e float64) (p float64, err error) {
	p = (ig.Gamma - 1) * rho * e
	return
}

func (ig *IdealGas) SoundSpeed(p, rho float64) (c float64, err error) {
	if !(rho > 0) || p < 0 {
		return 0, fmt.Errorf("sound speed at rho = %v, p = %v: %w", rho, p, ErrNonPhysical)
	}
	c = math.Sqrt(ig.Gamma * p / rho)
	return
}

func (ig *IdealGas) EffectiveGamma(rho, p float64) (gamma float64, err error) {
	return ig.Gamma, nil
}

func (ig *IdealGas) InternalEnergy(rho, p float64) (e float64, err error) {
	if !(rho > 0) {
		return 0, fmt.Errorf("internal energy at rho = %v: %w", rho, ErrNonPhysical)
	}
	e = p / ((ig.Gamma - 1) * rho)
	return
}
