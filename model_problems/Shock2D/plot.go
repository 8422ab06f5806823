package Shock2D

import (
	"fmt"
	"math"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/spmuppar/twodthermocode/Godunov2D"
	"github.com/spmuppar/twodthermocode/eos"
	"github.com/spmuppar/twodthermocode/grid2D"
	"github.com/spmuppar/twodthermocode/sod_shock_tube"
)

type PlotMeta struct {
	Plot            bool
	StepsBeforePlot int
	FrameTime       time.Duration
	FieldMin        float32
	FieldMax        float32
}

// Centerline samples the primitive state along the middle row (column for a
// tube in y) of the interior. s is the coordinate along the tube, u the
// velocity along it.
func (c *Shock2D) Centerline() (s, rho, u, p []float64, err error) {
	var (
		g = c.G
		v = c.U.Vars
		q *grid2D.Field
	)
	if err = grid2D.FillField(c.U, c.BCs); err != nil {
		return
	}
	if q, err = Godunov2D.DerivePrimitives(c.U, c.EOS, c.Flux.Opts.SmallP); err != nil {
		return
	}
	if c.Init.Dir == Godunov2D.XDir {
		j := g.Jlo + g.Ny/2
		for i := g.Ilo; i <= g.Ihi; i++ {
			s = append(s, g.X[i])
			rho = append(rho, q.Comp[v.IRho].At(i, j))
			u = append(u, q.Comp[v.IU].At(i, j))
			p = append(p, q.Comp[v.IP].At(i, j))
		}
		return
	}
	i := g.Ilo + g.Nx/2
	for j := g.Jlo; j <= g.Jhi; j++ {
		s = append(s, g.Y[j])
		rho = append(rho, q.Comp[v.IRho].At(i, j))
		u = append(u, q.Comp[v.IV].At(i, j))
		p = append(p, q.Comp[v.IP].At(i, j))
	}
	return
}

// AnalyticSod returns the exact solution matching the run, only an ideal gas
// Sod problem at rest has one
func (c *Shock2D) AnalyticSod() (sod sod_shock_tube.Sod, err error) {
	ig, ok := c.EOS.(*eos.IdealGas)
	switch {
	case c.Init.Problem != SOD:
		err = fmt.Errorf("no exact solution for %s", c.Init.Problem.Print())
	case !ok:
		err = fmt.Errorf("no exact solution for %s", c.EOS.Name())
	case c.Init.UL != 0 || c.Init.UR != 0:
		err = fmt.Errorf("exact solution needs both states at rest, have u = %v, %v", c.Init.UL, c.Init.UR)
	}
	if err != nil {
		return
	}
	sod = sod_shock_tube.Sod{
		RhoL: c.Init.RhoL, PL: c.Init.PL,
		RhoR: c.Init.RhoR, PR: c.Init.PR,
		Gamma: ig.Gamma,
		X0:    c.Init.X0,
		Xmin:  c.G.Xmin, Xmax: c.G.Xmax,
	}
	if c.Init.Dir == Godunov2D.YDir {
		sod.Xmin, sod.Xmax = c.G.Ymin, c.G.Ymax
	}
	return
}

// SodError is the mean absolute density error along the centerline
func (c *Shock2D) SodError() (l1 float64, err error) {
	var (
		sod      sod_shock_tube.Sod
		s, rho   []float64
		rhoExact float64
	)
	if sod, err = c.AnalyticSod(); err != nil {
		return
	}
	if s, rho, _, _, err = c.Centerline(); err != nil {
		return
	}
	for k := range s {
		if rhoExact, _, _, err = sod.Sample(s[k], c.Time); err != nil {
			return
		}
		l1 += math.Abs(rho[k] - rhoExact)
	}
	l1 /= float64(len(s))
	return
}

func (c *Shock2D) Plot(pm *PlotMeta) {
	var (
		fmin, fmax = pm.FieldMin, pm.FieldMax
	)
	s, rho, u, p, err := c.Centerline()
	if err != nil {
		c.Logger.Error("unable to plot", "err", err)
		return
	}
	if fmin == fmax {
		fmin, fmax = -0.1, 1.1*float32(math.Max(rho[0], math.Max(p[0], rho[len(rho)-1])))
	}
	c.plotOnce.Do(func() {
		c.chart = chart2d.NewChart2D(1920, 1280, float32(s[0]), float32(s[len(s)-1]), fmin, fmax)
		c.colorMap = utils2.NewColorMap(-1, 1, 1)
		go c.chart.Plot()
	})
	pSeries := func(field []float64, name string, color float32, gl chart2d.GlyphType) {
		if err := c.chart.AddSeries(name, s, field, gl, chart2d.Solid, c.colorMap.GetRGB(color)); err != nil {
			panic("unable to add graph series")
		}
	}
	pSeries(rho, "Rho", -0.7, chart2d.NoGlyph)
	pSeries(u, "U", 0.0, chart2d.NoGlyph)
	pSeries(p, "P", 0.7, chart2d.NoGlyph)
	if sod, err := c.AnalyticSod(); err == nil && c.Time > 0 {
		AddAnalyticSod(c.chart, c.colorMap, sod, c.Time)
	}
	if pm.FrameTime != 0 {
		time.Sleep(pm.FrameTime)
	}
}

func AddAnalyticSod(chart *chart2d.Chart2D, colorMap *utils2.ColorMap, sod sod_shock_tube.Sod, timeT float64) {
	sol, err := sod.Solve(timeT, 50)
	if err != nil {
		panic(err)
	}
	if err := chart.AddSeries("ExactRho", sol.X, sol.Rho, chart2d.XGlyph, chart2d.NoLine, colorMap.GetRGB(-0.7)); err != nil {
		panic("unable to add exact solution Rho")
	}
	if err := chart.AddSeries("ExactU", sol.X, sol.U, chart2d.XGlyph, chart2d.NoLine, colorMap.GetRGB(0.0)); err != nil {
		panic("unable to add exact solution U")
	}
	if err := chart.AddSeries("ExactP", sol.X, sol.P, chart2d.XGlyph, chart2d.NoLine, colorMap.GetRGB(0.7)); err != nil {
		panic("unable to add exact solution P")
	}
}
