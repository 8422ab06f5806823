package Shock2D

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"gonum.org/v1/gonum/floats"

	"github.com/spmuppar/twodthermocode/Godunov2D"
	"github.com/spmuppar/twodthermocode/InputParameters"
	"github.com/spmuppar/twodthermocode/eos"
	"github.com/spmuppar/twodthermocode/grid2D"
	"github.com/spmuppar/twodthermocode/history"
	"github.com/spmuppar/twodthermocode/timers"
	"github.com/spmuppar/twodthermocode/utils"
)

const StageUpdate = "conservative update"

/*
Shock2D advances a shock tube laid along x or y on a single patch with the
unsplit Godunov fluxes and a forward Euler conservative update:

	U(i,j) -= dt * ((Fx(i+1/2) - Fx(i-1/2))/dx + (Fy(j+1/2) - Fy(j-1/2))/dy)

The step size follows the CFL condition on the interior.
*/
type Shock2D struct {
	Title          string
	CFL, FinalTime float64
	MaxIterations  int
	Init           InitialState
	G              *grid2D.Grid2D
	U              *grid2D.Field
	EOS            eos.EOS
	Flux           *Godunov2D.UnsplitFlux
	BCs            *grid2D.BCSet
	Solid          *Godunov2D.SolidMask // Reflecting sides are walls
	Partitions     *utils.PartitionMap
	Timers         *timers.TimerCollection
	Logger         *log.Logger
	History        *history.Store // Optional, nil turns recording off
	RunID          int64
	Out            io.Writer // Timing table destination, nil to skip
	Time           float64
	Steps          int
	chart          *chart2d.Chart2D
	colorMap       *utils2.ColorMap
	plotOnce       sync.Once
}

func NewShock2D(ip *InputParameters.InputParameters2D, logger *log.Logger) (c *Shock2D, err error) {
	var (
		opts Godunov2D.Options
	)
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	ip.SetDefaults()
	c = &Shock2D{
		Title:         ip.Title,
		CFL:           ip.CFL,
		FinalTime:     ip.FinalTime,
		MaxIterations: ip.MaxIterations,
		Timers:        timers.NewTimerCollection(),
		Logger:        logger,
	}
	if c.Init, err = NewInitialState(ip); err != nil {
		return nil, err
	}
	if opts, err = ip.Options(); err != nil {
		return nil, err
	}
	if c.EOS, err = eos.New(ip.EOSConfig()); err != nil {
		return nil, err
	}
	if c.G, err = ip.Grid(); err != nil {
		return nil, err
	}
	if c.BCs, err = ip.BCSet(); err != nil {
		return nil, err
	}
	if c.Flux, err = Godunov2D.NewUnsplitFlux(opts, c.EOS); err != nil {
		return nil, err
	}
	c.Flux.SetObserver(c.Timers)
	c.Solid = Godunov2D.NewSolidMask(c.G,
		c.BCs.XLower == utils.BCReflect, c.BCs.XUpper == utils.BCReflect,
		c.BCs.YLower == utils.BCReflect, c.BCs.YUpper == utils.BCReflect)
	c.Partitions = utils.NewPartitionMap(utils.ParallelDegreeFor(opts.ParallelDegree, c.G.Qx), c.G.Qx)
	c.U = grid2D.NewConservedField(c.G, grid2D.NewVariableIndex())
	if err = c.Init.Initialize(c.U, c.EOS); err != nil {
		return nil, err
	}
	if len(ip.History) != 0 {
		if c.History, err = history.Open(ip.History); err != nil {
			return nil, err
		}
	}
	c.Logger.Debug("initialized", "problem", c.Init.Problem.Print(), "direction", c.Init.Dir,
		"eos", c.EOS.Name(), "grid", c.G.String(), "bcs", c.BCs.String(),
		"goroutines", c.Partitions.ParallelDegree)
	return
}

// Close releases the history store
func (c *Shock2D) Close() error {
	if c.History != nil {
		return c.History.Close()
	}
	return nil
}

// TimeStep fills the ghosts and returns the CFL limited step, clipped so the
// run ends on FinalTime
func (c *Shock2D) TimeStep() (dt float64, err error) {
	var (
		g    = c.G
		q    *grid2D.Field
		v    = c.U.Vars
		NP   = c.Partitions.ParallelDegree
		mins = make([]float64, NP)
	)
	if err = grid2D.FillField(c.U, c.BCs); err != nil {
		return
	}
	if q, err = Godunov2D.DerivePrimitives(c.U, c.EOS, c.Flux.Opts.SmallP); err != nil {
		return
	}
	err = c.Partitions.Run(func(np, kMin, kMax int) (err error) {
		mins[np] = math.Inf(1)
		for i := max(kMin, g.Ilo); i <= min(kMax-1, g.Ihi); i++ {
			for j := g.Jlo; j <= g.Jhi; j++ {
				rho, p := q.Comp[v.IRho].At(i, j), q.Comp[v.IP].At(i, j)
				var cs float64
				if cs, err = c.EOS.SoundSpeed(p, rho); err != nil {
					return fmt.Errorf("sound speed at (%d,%d): %w", i, j, err)
				}
				tx := g.Dx / (math.Abs(q.Comp[v.IU].At(i, j)) + cs)
				ty := g.Dy / (math.Abs(q.Comp[v.IV].At(i, j)) + cs)
				mins[np] = math.Min(mins[np], math.Min(tx, ty))
			}
		}
		return
	})
	if err != nil {
		return
	}
	dt = c.CFL * floats.Min(mins)
	if c.Time+dt > c.FinalTime {
		dt = c.FinalTime - c.Time
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		err = fmt.Errorf("time step %v at t = %v is not usable", dt, c.Time)
	}
	return
}

// Step fills the ghosts, gets the fluxes and updates the interior
func (c *Shock2D) Step(dt float64) (err error) {
	var (
		g      = c.G
		Fx, Fy *Godunov2D.FluxField
	)
	if err = grid2D.FillField(c.U, c.BCs); err != nil {
		return
	}
	if Fx, Fy, err = c.Flux.Fluxes(c.U, g, dt, c.Solid, c.BCs); err != nil {
		return
	}
	c.Timers.BeginStage(StageUpdate)
	err = c.Partitions.Run(func(np, kMin, kMax int) (err error) {
		for i := max(kMin, g.Ilo); i <= min(kMax-1, g.Ihi); i++ {
			for j := g.Jlo; j <= g.Jhi; j++ {
				for n := range c.U.Comp {
					c.U.Comp[n].Add(i, j, -dt*Godunov2D.Divergence(Fx, Fy, g, n, i-g.Ilo, j-g.Jlo))
				}
			}
		}
		return
	})
	c.Timers.EndStage(StageUpdate)
	if err != nil {
		return
	}
	c.Time += dt
	c.Steps++
	return
}

// Integrals are taken over the interior
type Integrals struct {
	Mass, Energy   float64
	RhoMin, RhoMax float64
}

func (c *Shock2D) Diagnostics() (d Integrals) {
	var (
		g      = c.G
		v      = c.U.Vars
		rho    = utils.NewMatrix(g.Nx, g.Ny)
		energy = utils.NewMatrix(g.Nx, g.Ny)
	)
	for i := g.Ilo; i <= g.Ihi; i++ {
		for j := g.Jlo; j <= g.Jhi; j++ {
			rho.Set(i-g.Ilo, j-g.Jlo, c.U.Comp[v.IDens].At(i, j))
			energy.Set(i-g.Ilo, j-g.Jlo, c.U.Comp[v.IEner].At(i, j))
		}
	}
	vol := g.Dx * g.Dy
	d.Mass, d.Energy = floats.Sum(rho.DataP)*vol, floats.Sum(energy.DataP)*vol
	d.RhoMin, d.RhoMax = rho.Min(), rho.Max()
	return
}

func (c *Shock2D) CheckIfFinished() (finished bool) {
	if c.Time >= c.FinalTime*(1-1.e-12) || c.Steps >= c.MaxIterations {
		finished = true
	}
	return
}

func (c *Shock2D) Solve(pm *PlotMeta) (err error) {
	var (
		dt       float64
		finished bool
	)
	if pm == nil {
		pm = &PlotMeta{}
	}
	if pm.StepsBeforePlot < 1 {
		pm.StepsBeforePlot = 1
	}
	c.PrintInitialization()
	if c.History != nil {
		if c.RunID, err = c.History.StartRun(c.Title, c.problemLabel(), c.G.Nx, c.G.Ny, c.EOS.Name()); err != nil {
			return
		}
	}
	elapsed := time.Duration(0)
	var start time.Time
	for !finished {
		if dt, err = c.TimeStep(); err != nil {
			return fmt.Errorf("step %d: %w", c.Steps+1, err)
		}
		start = time.Now()
		if err = c.Step(dt); err != nil {
			return fmt.Errorf("step %d at t = %v: %w", c.Steps+1, c.Time, err)
		}
		elapsed += time.Since(start)
		d := c.Diagnostics()
		if c.History != nil {
			if err = c.History.RecordStep(history.StepRecord{
				RunID: c.RunID, Step: c.Steps, Time: c.Time, Dt: dt,
				Mass: d.Mass, Energy: d.Energy, RhoMin: d.RhoMin, RhoMax: d.RhoMax,
			}); err != nil {
				return
			}
		}
		finished = c.CheckIfFinished()
		if finished || c.Steps%pm.StepsBeforePlot == 0 || c.Steps == 1 {
			c.PrintUpdate(dt, d, pm)
		}
	}
	if c.History != nil {
		if err = c.History.FinishRun(c.RunID, c.Steps, elapsed); err != nil {
			return
		}
	}
	c.PrintFinal(elapsed)
	return
}

func (c *Shock2D) problemLabel() string {
	return fmt.Sprintf("%s (%s)", c.Init.Problem.Print(), c.Init.Dir)
}

func (c *Shock2D) PrintInitialization() {
	c.Logger.Info("solving", "problem", c.problemLabel(), "eos", c.EOS.Name(),
		"nx", c.G.Nx, "ny", c.G.Ny, "cfl", c.CFL, "final time", c.FinalTime)
}

func (c *Shock2D) PrintUpdate(dt float64, d Integrals, pm *PlotMeta) {
	if pm.Plot {
		c.Plot(pm)
	}
	c.Logger.Info("step", "iter", c.Steps,
		"time", fmt.Sprintf("%8.5f", c.Time), "dt", fmt.Sprintf("%8.5f", dt),
		"mass", fmt.Sprintf("%11.4e", d.Mass), "energy", fmt.Sprintf("%11.4e", d.Energy),
		"rho min", fmt.Sprintf("%8.5f", d.RhoMin), "rho max", fmt.Sprintf("%8.5f", d.RhoMax))
}

func (c *Shock2D) PrintFinal(elapsed time.Duration) {
	var rate float64
	if c.Steps > 0 {
		rate = float64(elapsed.Microseconds()) / float64(c.G.Nx*c.G.Ny*c.Steps)
	}
	c.Logger.Info("finished", "iterations", c.Steps, "time", c.Time,
		"rate", fmt.Sprintf("%8.5f us/(cell*iteration)", rate), "memory", utils.GetMemUsage())
	c.Timers.Report(c.Logger)
	if c.Out != nil {
		fmt.Fprintln(c.Out, c.Timers.Render())
	}
}
