package Godunov2D

import (
	"math"

	"github.com/spmuppar/twodthermocode/eos"
	"github.com/spmuppar/twodthermocode/grid2D"
	"github.com/spmuppar/twodthermocode/utils"
)

// StageObserver is told when each pipeline stage starts and ends. Calls come
// from the goroutine running Fluxes, never from workers.
type StageObserver interface {
	BeginStage(name string)
	EndStage(name string)
}

const (
	StagePrimitives = "primitives"
	StageFlattening = "flattening"
	StageLimiting   = "limiting"
	StageStates     = "interface states"
	StageSources    = "source terms"
	StageRiemann    = "riemann"
	StageTransverse = "transverse flux addition"
	StageViscosity  = "artificial viscosity"
	StageFluxes     = "unsplit fluxes"
)

// MinGhostCells is the halo width consumed by flattening, limiting and
// characteristic tracing together
const MinGhostCells = 4

/*
UnsplitFlux produces time centered fluxes at every interface of a patch for
one step of an unsplit second order Godunov scheme:

	primitives -> flattening -> limited slopes -> characteristic tracing
	-> gravity source -> Riemann (transverse) -> transverse correction
	-> Riemann (normal) -> artificial viscosity

It keeps no state between calls, so one value can serve concurrent callers.
*/
type UnsplitFlux struct {
	Opts     Options
	EOS      eos.EOS
	observer StageObserver
}

func NewUnsplitFlux(opts Options, e eos.EOS) (uf *UnsplitFlux, err error) {
	if err = opts.Validate(); err != nil {
		return
	}
	if e == nil {
		return nil, &ConfigError{Field: "EOS", Value: nil, Reason: "an equation of state is required"}
	}
	uf = &UnsplitFlux{
		Opts: opts,
		EOS:  e,
	}
	return
}

// SetObserver attaches stage instrumentation, nil detaches it
func (uf *UnsplitFlux) SetObserver(obs StageObserver) { uf.observer = obs }

// fluxPass carries the per call state of one Fluxes evaluation
type fluxPass struct {
	opts     Options
	eos      eos.EOS
	riemann  RiemannSolver
	observer StageObserver
	g        *grid2D.Grid2D
	vars     *grid2D.VariableIndex
	dt       float64
	pm       *utils.PartitionMap
}

func newFluxPass(opts Options, e eos.EOS, g *grid2D.Grid2D, vars *grid2D.VariableIndex, dt float64) (fp *fluxPass) {
	np := utils.ParallelDegreeFor(opts.ParallelDegree, g.Qx)
	fp = &fluxPass{
		opts: opts,
		eos:  e,
		g:    g,
		vars: vars,
		dt:   dt,
		pm:   utils.NewPartitionMap(np, g.Qx),
	}
	return
}

// rows runs f for every i in [iMin, iMax], the range split over the workers
// by absolute row index. A worker stops at its first error.
func (fp *fluxPass) rows(iMin, iMax int, f func(i int) error) error {
	return fp.pm.Run(func(np, kMin, kMax int) (err error) {
		lo, hi := max(kMin, iMin), min(kMax-1, iMax)
		for i := lo; i <= hi; i++ {
			if err = f(i); err != nil {
				return
			}
		}
		return
	})
}

func (fp *fluxPass) stage(name string, f func() error) error {
	if fp.observer != nil {
		fp.observer.BeginStage(name)
		defer fp.observer.EndStage(name)
	}
	return f()
}

// Fluxes computes the x and y interface fluxes for a step of size dt. The
// ghost cells of U must already be filled. solid may be nil when no interface
// is a wall. fill is used to fill the ghosts of the gravity source terms and
// may be nil when gravity is zero.
func (uf *UnsplitFlux) Fluxes(U *grid2D.Field, g *grid2D.Grid2D, dt float64,
	solid *SolidMask, fill grid2D.GhostFiller) (Fx, Fy *FluxField, err error) {
	switch {
	case g == nil:
		return nil, nil, &ConfigError{Field: "grid", Value: nil, Reason: "a grid is required"}
	case g.Ng < MinGhostCells:
		return nil, nil, &ConfigError{Field: "Ng", Value: g.Ng, Reason: "at least 4 ghost cells are required"}
	case !(dt > 0) || math.IsInf(dt, 0):
		return nil, nil, &ConfigError{Field: "dt", Value: dt, Reason: "must be positive and finite"}
	case uf.Opts.Gravity != 0 && fill == nil:
		return nil, nil, &ConfigError{Field: "fill", Value: nil, Reason: "a ghost filler is required when gravity is on"}
	}
	if err = U.CheckShape(g); err != nil {
		return nil, nil, &ConfigError{Field: "U", Value: g.String(), Reason: err.Error()}
	}
	if solid != nil {
		if err = solid.check(g); err != nil {
			return nil, nil, &ConfigError{Field: "solid", Value: g.String(), Reason: err.Error()}
		}
	}

	fp := newFluxPass(uf.Opts, uf.EOS, g, U.Vars, dt)
	fp.observer = uf.observer
	if fp.riemann, err = NewRiemannSolver(uf.Opts.Riemann, uf.EOS, U.Vars, uf.Opts.SmallP); err != nil {
		return nil, nil, err
	}

	err = fp.stage(StageFluxes, func() (err error) {
		Fx, Fy, err = fp.run(U, solid, fill)
		return
	})
	if err != nil {
		return nil, nil, err
	}
	return
}

func (fp *fluxPass) run(U *grid2D.Field, solid *SolidMask, fill grid2D.GhostFiller) (Fx, Fy *FluxField, err error) {
	var (
		q        *grid2D.Field
		xi       grid2D.Array
		ldx, ldy []grid2D.Array
		Uxl, Uxr *grid2D.Field
		Uyl, Uyr *grid2D.Field
		Fx1, Fy1 *grid2D.Field
	)
	if err = fp.stage(StagePrimitives, func() (err error) {
		q, err = fp.primitives(U)
		return
	}); err != nil {
		return
	}

	if err = fp.stage(StageFlattening, func() (err error) {
		xi, err = fp.flatten(q)
		return
	}); err != nil {
		return
	}

	if err = fp.stage(StageLimiting, func() (err error) {
		if ldx, err = fp.limitAll(q, XDir, xi); err != nil {
			return
		}
		ldy, err = fp.limitAll(q, YDir, xi)
		return
	}); err != nil {
		return
	}

	if err = fp.stage(StageStates, func() (err error) {
		if Uxl, Uxr, err = fp.states(XDir, q, ldx); err != nil {
			return
		}
		Uyl, Uyr, err = fp.states(YDir, q, ldy)
		return
	}); err != nil {
		return
	}

	if fp.opts.Gravity != 0 {
		if err = fp.stage(StageSources, func() error {
			return fp.sources(U, fill, Uxl, Uxr, Uyl, Uyr)
		}); err != nil {
			return
		}
	}

	if err = fp.stage(StageRiemann, func() (err error) {
		if Fx1, err = fp.transverseFluxes(XDir, Uxl, Uxr, solid); err != nil {
			return
		}
		Fy1, err = fp.transverseFluxes(YDir, Uyl, Uyr, solid)
		return
	}); err != nil {
		return
	}

	if err = fp.stage(StageTransverse, func() error {
		return fp.transverse(Fx1, Fy1, Uxl, Uxr, Uyl, Uyr)
	}); err != nil {
		return
	}

	if err = fp.stage(StageRiemann, func() (err error) {
		if Fx, err = fp.normalFluxes(XDir, Uxl, Uxr, solid); err != nil {
			return
		}
		Fy, err = fp.normalFluxes(YDir, Uyl, Uyr, solid)
		return
	}); err != nil {
		return
	}

	if fp.opts.CVisc > 0 {
		err = fp.stage(StageViscosity, func() error {
			return fp.artificialViscosity(U, q, Fx, Fy)
		})
	}
	return
}
