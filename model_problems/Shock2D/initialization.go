package Shock2D

import (
	"fmt"
	"math"
	"strings"

	"github.com/spmuppar/twodthermocode/Godunov2D"
	"github.com/spmuppar/twodthermocode/InputParameters"
	"github.com/spmuppar/twodthermocode/eos"
	"github.com/spmuppar/twodthermocode/grid2D"
)

type ProblemType uint

const (
	SOD ProblemType = iota
	SHU_OSHER
)

var (
	ProblemNames = map[string]ProblemType{
		"sod":       SOD,
		"shocktube": SOD,
		"shu-osher": SHU_OSHER,
		"shu":       SHU_OSHER,
	}
	ProblemPrintNames = []string{"Sod Shock Tube", "Shu-Osher Shock / Entropy Wave"}
)

func (pt ProblemType) Print() (txt string) {
	if int(pt) < len(ProblemPrintNames) {
		txt = ProblemPrintNames[pt]
	}
	return
}

// NewProblemType parses labels like "sod-y" or "shu-osher". A trailing -x or
// -y sets the direction the tube runs in, x when absent.
func NewProblemType(label string) (pt ProblemType, dir Godunov2D.Direction, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	dir = Godunov2D.XDir
	switch {
	case strings.HasSuffix(label, "-x"):
		label = strings.TrimSuffix(label, "-x")
	case strings.HasSuffix(label, "-y"):
		label, dir = strings.TrimSuffix(label, "-y"), Godunov2D.YDir
	}
	if pt, ok = ProblemNames[label]; !ok {
		err = fmt.Errorf("unable to use problem named %q", label)
	}
	return
}

// InitialState is a one dimensional Riemann problem laid along Dir. Right of
// X0 the density carries the perturbation RhoR*(1 + Amplitude*sin(WaveNumber*s)).
type InitialState struct {
	Problem               ProblemType
	Dir                   Godunov2D.Direction
	RhoL, UL, PL          float64
	RhoR, UR, PR          float64
	X0                    float64
	Amplitude, WaveNumber float64
}

func NewInitialState(ip *InputParameters.InputParameters2D) (is InitialState, err error) {
	ip.SetDefaults()
	if is.Problem, is.Dir, err = NewProblemType(ip.Problem); err != nil {
		return
	}
	smin, smax := ip.Xmin, ip.Xmax
	if is.Dir == Godunov2D.YDir {
		smin, smax = ip.Ymin, ip.Ymax
	}
	switch is.Problem {
	case SOD:
		is.RhoL, is.UL, is.PL = 1, 0, 1
		is.RhoR, is.UR, is.PR = 0.125, 0, 0.1
		is.X0 = 0.5 * (smin + smax)
	case SHU_OSHER:
		// Mach 3 shock running into a density wave
		is.RhoL, is.UL, is.PL = 3.857143, 2.629369, 10.33333
		is.RhoR, is.UR, is.PR = 1, 0, 1
		is.X0 = smin + 0.1*(smax-smin)
		is.Amplitude, is.WaveNumber = 0.2, 5
	}
	if ip.RhoL != 0 {
		is.RhoL, is.UL, is.PL = ip.RhoL, ip.UL, ip.PL
		is.RhoR, is.UR, is.PR = ip.RhoR, ip.UR, ip.PR
	}
	if ip.X0 != nil {
		is.X0 = *ip.X0
	}
	if ip.Amplitude != 0 {
		is.Amplitude = ip.Amplitude
	}
	if ip.WaveNumber != 0 {
		is.WaveNumber = ip.WaveNumber
	}
	err = is.Validate()
	return
}

func (is InitialState) Validate() (err error) {
	switch {
	case !(is.RhoL > 0) || !(is.RhoR > 0):
		err = fmt.Errorf("initial densities must be positive, have %v and %v", is.RhoL, is.RhoR)
	case !(is.PL > 0) || !(is.PR > 0):
		err = fmt.Errorf("initial pressures must be positive, have %v and %v", is.PL, is.PR)
	case math.Abs(is.Amplitude) >= 1:
		err = fmt.Errorf("density perturbation amplitude must be below 1, have %v", is.Amplitude)
	}
	return
}

// State returns (rho, u, p) at coordinate s along the tube, u is the velocity
// along the tube
func (is InitialState) State(s float64) (rho, u, p float64) {
	if s < is.X0 {
		return is.RhoL, is.UL, is.PL
	}
	rho = is.RhoR * (1 + is.Amplitude*math.Sin(is.WaveNumber*s))
	return rho, is.UR, is.PR
}

// Initialize writes the conserved state of every cell of U, ghosts included
func (is InitialState) Initialize(U *grid2D.Field, e eos.EOS) (err error) {
	var (
		g = U.G
		v = U.Vars
	)
	for i := 0; i < g.Qx; i++ {
		for j := 0; j < g.Qy; j++ {
			s, iMom, tMom := g.X[i], v.IXmom, v.IYmom
			if is.Dir == Godunov2D.YDir {
				s, iMom, tMom = g.Y[j], v.IYmom, v.IXmom
			}
			rho, u, p := is.State(s)
			var ei float64
			if ei, err = e.InternalEnergy(rho, p); err != nil {
				return fmt.Errorf("initial state at (%d,%d), rho = %v, p = %v: %w", i, j, rho, p, err)
			}
			U.Comp[v.IDens].Set(i, j, rho)
			U.Comp[iMom].Set(i, j, rho*u)
			U.Comp[tMom].Set(i, j, 0)
			U.Comp[v.IEner].Set(i, j, rho*ei+0.5*rho*u*u)
		}
	}
	return
}
