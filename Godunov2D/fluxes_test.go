package Godunov2D

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spmuppar/twodthermocode/eos"
	"github.com/spmuppar/twodthermocode/grid2D"
	"github.com/spmuppar/twodthermocode/utils"
)

const gamma = 1.4

type primState func(x, y float64) (rho, u, v, p float64)

// newState builds a conserved field for an ideal gas from a primitive profile
// evaluated at cell centers, ghosts included
func newState(t *testing.T, nx, ny int, prim primState, scalarNames ...string) (g *grid2D.Grid2D, U *grid2D.Field) {
	var err error
	g, err = grid2D.NewGrid2D(nx, ny, 4, 0, 1, 0, float64(ny)/float64(nx))
	require.NoError(t, err)
	vars := grid2D.NewVariableIndex(scalarNames...)
	U = grid2D.NewConservedField(g, vars)
	for i := 0; i < g.Qx; i++ {
		for j := 0; j < g.Qy; j++ {
			rho, u, v, p := prim(g.X[i], g.Y[j])
			U.Comp[vars.IDens].Set(i, j, rho)
			U.Comp[vars.IXmom].Set(i, j, rho*u)
			U.Comp[vars.IYmom].Set(i, j, rho*v)
			U.Comp[vars.IEner].Set(i, j, p/(gamma-1)+0.5*rho*(u*u+v*v))
			for n := 0; n < vars.NScalars; n++ {
				U.Comp[vars.IRhoX+n].Set(i, j, rho*float64(n+1)*0.1)
			}
		}
	}
	return
}

func newIdeal(t *testing.T) eos.EOS {
	ig, err := eos.NewIdealGas(gamma)
	require.NoError(t, err)
	return ig
}

func sod(x, y float64) (rho, u, v, p float64) {
	if x < 0.5 {
		return 1, 0, 0, 1
	}
	return 0.125, 0, 0, 0.1
}

func smooth(x, y float64) (rho, u, v, p float64) {
	rho = 1 + 0.2*math.Sin(2*math.Pi*x)*math.Cos(2*math.Pi*y)
	u = 0.5 + 0.1*math.Cos(2*math.Pi*y)
	v = -0.3 + 0.1*math.Sin(2*math.Pi*x)
	p = 1 + 0.1*math.Cos(2*math.Pi*(x+y))
	return
}

func mustBCs(t *testing.T, xl, xr, yl, yr utils.BCType) *grid2D.BCSet {
	bc, err := grid2D.NewBCSet(xl, xr, yl, yr)
	require.NoError(t, err)
	return bc
}

// update advances U in place by one conservative step on the interior
func update(U *grid2D.Field, g *grid2D.Grid2D, Fx, Fy *FluxField, dt float64) {
	for n := range U.Comp {
		for i := g.Ilo; i <= g.Ihi; i++ {
			for j := g.Jlo; j <= g.Jhi; j++ {
				U.Comp[n].Add(i, j, -dt*Divergence(Fx, Fy, g, n, i-g.Ilo, j-g.Jlo))
			}
		}
	}
}

func maxSignalSpeed(U *grid2D.Field, g *grid2D.Grid2D) (s float64) {
	v := U.Vars
	for i := g.Ilo; i <= g.Ihi; i++ {
		for j := g.Jlo; j <= g.Jhi; j++ {
			rho := U.Comp[v.IDens].At(i, j)
			u, vv := U.Comp[v.IXmom].At(i, j)/rho, U.Comp[v.IYmom].At(i, j)/rho
			p := (gamma - 1) * (U.Comp[v.IEner].At(i, j) - 0.5*rho*(u*u+vv*vv))
			c := math.Sqrt(gamma * p / rho)
			s = math.Max(s, math.Max(math.Abs(u), math.Abs(vv))+c)
		}
	}
	return
}

func TestOptions(t *testing.T) {
	{ // Defaults
		o := DefaultOptions()
		assert.NoError(t, o.Validate())
		assert.Equal(t, LimiterMC4, o.Limiter)
		assert.Equal(t, RiemannCGF, o.Riemann)
		assert.Equal(t, 1.e-10, o.SmallP)
	}
	{ // Names
		lt, err := NewLimiterType(" MC2 ")
		assert.NoError(t, err)
		assert.Equal(t, LimiterMC2, lt)
		rt, err := NewRiemannType("hllc")
		assert.NoError(t, err)
		assert.Equal(t, RiemannHLLC, rt)
		_, err = NewRiemannType("roe")
		var ce *ConfigError
		assert.True(t, errors.As(err, &ce))
		assert.Equal(t, "Riemann", ce.Field)
	}
	{ // Rejections
		var ce *ConfigError
		bad := []func(o *Options){
			func(o *Options) { o.Limiter = 3 },
			func(o *Options) { o.Riemann = 7 },
			func(o *Options) { o.CVisc = -1 },
			func(o *Options) { o.SmallP = 0 },
			func(o *Options) { o.Z1 = o.Z0 },
			func(o *Options) { o.Gravity = math.NaN() },
		}
		for _, f := range bad {
			o := DefaultOptions()
			f(&o)
			_, err := NewUnsplitFlux(o, newIdeal(t))
			assert.True(t, errors.As(err, &ce), "%+v", o)
		}
		_, err := NewUnsplitFlux(DefaultOptions(), nil)
		assert.True(t, errors.As(err, &ce))
		o := DefaultOptions()
		o.Delta = math.Inf(1)
		assert.NoError(t, o.Validate())
	}
}

func TestFluxesArguments(t *testing.T) {
	g, U := newState(t, 8, 8, smooth)
	uf, err := NewUnsplitFlux(DefaultOptions(), newIdeal(t))
	require.NoError(t, err)
	var ce *ConfigError
	{ // Narrow halo
		g3, err := grid2D.NewGrid2D(8, 8, 3, 0, 1, 0, 1)
		require.NoError(t, err)
		U3 := grid2D.NewConservedField(g3, grid2D.NewVariableIndex())
		_, _, err = uf.Fluxes(U3, g3, 0.01, nil, nil)
		assert.True(t, errors.As(err, &ce))
		assert.Equal(t, "Ng", ce.Field)
	}
	{ // Bad step
		_, _, err = uf.Fluxes(U, g, 0, nil, nil)
		assert.True(t, errors.As(err, &ce))
		_, _, err = uf.Fluxes(U, g, math.NaN(), nil, nil)
		assert.True(t, errors.As(err, &ce))
	}
	{ // Grid and mask mismatch
		g2, _ := grid2D.NewGrid2D(8, 6, 4, 0, 1, 0, 1)
		_, _, err = uf.Fluxes(U, g2, 0.01, nil, nil)
		assert.True(t, errors.As(err, &ce))
		_, _, err = uf.Fluxes(U, g, 0.01, NewSolidMask(g2, true, true, false, false), nil)
		assert.True(t, errors.As(err, &ce))
		assert.Equal(t, "solid", ce.Field)
	}
	{ // Gravity needs a ghost filler
		o := DefaultOptions()
		o.Gravity = -1
		ufg, err := NewUnsplitFlux(o, newIdeal(t))
		require.NoError(t, err)
		_, _, err = ufg.Fluxes(U, g, 0.01, nil, nil)
		assert.True(t, errors.As(err, &ce))
		assert.Equal(t, "fill", ce.Field)
	}
}

func TestFluxesStateErrors(t *testing.T) {
	{ // Non positive density in a ghost cell
		g, U := newState(t, 8, 8, smooth)
		U.Comp[0].Set(1, 6, -0.5)
		uf, _ := NewUnsplitFlux(DefaultOptions(), newIdeal(t))
		_, _, err := uf.Fluxes(U, g, 0.001, nil, nil)
		var se *StateError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, StagePrimitives, se.Stage)
		assert.Equal(t, 1, se.I)
		assert.Equal(t, 6, se.J)
		assert.True(t, errors.Is(err, ErrDensity))
		assert.Equal(t, -0.5, se.Values["density"])
	}
	{ // Zero energy
		g, U := newState(t, 8, 8, smooth)
		U.Comp[3].Set(5, 5, 0)
		uf, _ := NewUnsplitFlux(DefaultOptions(), newIdeal(t))
		_, _, err := uf.Fluxes(U, g, 0.001, nil, nil)
		assert.True(t, errors.Is(err, ErrEnergy))
	}
	{ // EOS failures are wrapped, not swallowed
		g, U := newState(t, 8, 8, smooth)
		tb, err := eos.NewTabulated(newIdeal(t), eos.TableSpec{
			NRho: 5, NE: 5, NP: 5,
			RhoMin: 0.9, RhoMax: 1.1, EMin: 2, EMax: 3, PMin: 0.9, PMax: 1.1,
		})
		require.NoError(t, err)
		uf, _ := NewUnsplitFlux(DefaultOptions(), tb)
		_, _, err = uf.Fluxes(U, g, 0.001, nil, nil)
		var se *StateError
		assert.True(t, errors.As(err, &se))
		assert.True(t, errors.Is(err, eos.ErrOutOfRange))
	}
	{ // Same failure with many workers reports the same cell
		g, U := newState(t, 16, 8, smooth)
		U.Comp[0].Set(9, 7, math.NaN())
		U.Comp[0].Set(14, 3, math.NaN())
		for _, np := range []int{1, 3, 8} {
			o := DefaultOptions()
			o.ParallelDegree = np
			uf, _ := NewUnsplitFlux(o, newIdeal(t))
			_, _, err := uf.Fluxes(U, g, 0.001, nil, nil)
			var se *StateError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, 9, se.I)
			assert.Equal(t, 7, se.J)
		}
	}
}

func TestConstantState(t *testing.T) {
	uniform := func(x, y float64) (rho, u, v, p float64) { return 1.3, 0.4, -0.2, 2.1 }
	for _, lim := range []LimiterType{LimiterNone, LimiterMC2, LimiterMC4} {
		for _, rt := range []RiemannType{RiemannCGF, RiemannHLLC} {
			g, U := newState(t, 12, 10, uniform, "dye")
			o := DefaultOptions()
			o.Limiter, o.Riemann = lim, rt
			uf, err := NewUnsplitFlux(o, newIdeal(t))
			require.NoError(t, err)
			Fx, Fy, err := uf.Fluxes(U, g, 0.01, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, g.Nx+1, Fx.Ni)
			assert.Equal(t, g.Ny, Fx.Nj)
			assert.Equal(t, g.Nx, Fy.Ni)
			assert.Equal(t, g.Ny+1, Fy.Nj)
			for n := 0; n < U.Vars.Nvar; n++ {
				for i := 0; i < g.Nx; i++ {
					for j := 0; j < g.Ny; j++ {
						assert.Equal(t, 0., Divergence(Fx, Fy, g, n, i, j))
					}
				}
			}
			rho, u, v, p := 1.3, 0.4, -0.2, 2.1
			E := p/(gamma-1) + 0.5*rho*(u*u+v*v)
			assert.InDelta(t, rho*u, Fx.At(0, 3, 4), 1e-12)
			assert.InDelta(t, rho*u*u+p, Fx.At(1, 3, 4), 1e-12)
			assert.InDelta(t, rho*u*v, Fx.At(2, 3, 4), 1e-12)
			assert.InDelta(t, (E+p)*u, Fx.At(3, 3, 4), 1e-12)
			assert.InDelta(t, rho*v*0.1, Fy.At(4, 5, 2), 1e-12)
			assert.InDelta(t, rho*v*v+p, Fy.At(2, 5, 2), 1e-12)
		}
	}
}

func TestPeriodicConservation(t *testing.T) {
	for _, rt := range []RiemannType{RiemannCGF, RiemannHLLC} {
		g, U := newState(t, 16, 16, smooth)
		bc := mustBCs(t, utils.BCPeriodic, utils.BCPeriodic, utils.BCPeriodic, utils.BCPeriodic)
		require.NoError(t, grid2D.FillField(U, bc))
		o := DefaultOptions()
		o.Riemann = rt
		uf, _ := NewUnsplitFlux(o, newIdeal(t))
		Fx, Fy, err := uf.Fluxes(U, g, 0.4*g.Dx/maxSignalSpeed(U, g), nil, bc)
		require.NoError(t, err)
		for n := 0; n < U.Vars.Nvar; n++ {
			var total float64
			for i := 0; i < g.Nx; i++ {
				for j := 0; j < g.Ny; j++ {
					total += Divergence(Fx, Fy, g, n, i, j) * g.Dx * g.Dy
				}
			}
			assert.InDelta(t, 0, total, 1e-12, "variable %d", n)
			for j := 0; j < g.Ny; j++ {
				assert.InDelta(t, Fx.At(n, 0, j), Fx.At(n, g.Nx, j), 1e-13)
			}
			for i := 0; i < g.Nx; i++ {
				assert.InDelta(t, Fy.At(n, i, 0), Fy.At(n, i, g.Ny), 1e-13)
			}
		}
	}
}

func TestSodShockTube(t *testing.T) {
	var (
		g, U = newState(t, 64, 4, sod)
		bc   = mustBCs(t, utils.BCOutflow, utils.BCOutflow, utils.BCOutflow, utils.BCOutflow)
		tol  = 5.e-3
	)
	uf, err := NewUnsplitFlux(DefaultOptions(), newIdeal(t))
	require.NoError(t, err)
	var massBefore float64
	for i := g.Ilo; i <= g.Ihi; i++ {
		for j := g.Jlo; j <= g.Jhi; j++ {
			massBefore += U.Comp[0].At(i, j)
		}
	}
	for step := 0; step < 12; step++ {
		require.NoError(t, grid2D.FillField(U, bc))
		dt := 0.5 * g.Dx / maxSignalSpeed(U, g)
		Fx, Fy, err := uf.Fluxes(U, g, dt, nil, bc)
		require.NoError(t, err)
		update(U, g, Fx, Fy, dt)
	}
	var massAfter float64
	for i := g.Ilo; i <= g.Ihi; i++ {
		for j := g.Jlo; j <= g.Jhi; j++ {
			rho := U.Comp[0].At(i, j)
			massAfter += rho
			assert.True(t, rho >= 0.125-tol && rho <= 1+tol, "rho = %v at (%d,%d)", rho, i, j)
			assert.InDelta(t, U.Comp[0].At(i, g.Jlo), rho, 1e-12)
			assert.InDelta(t, 0, U.Comp[2].At(i, j), 1e-12)
		}
	}
	assert.InDelta(t, massBefore, massAfter, 1e-12*massBefore)
	// No interior extrema along the tube
	for i := g.Ilo + 1; i < g.Ihi; i++ {
		rho, l, r := U.Comp[0].At(i, g.Jlo), U.Comp[0].At(i-1, g.Jlo), U.Comp[0].At(i+1, g.Jlo)
		assert.False(t, rho > math.Max(l, r)+tol, "local maximum %v at i = %d", rho, i)
		assert.False(t, rho < math.Min(l, r)-tol, "local minimum %v at i = %d", rho, i)
	}
	// The wave has moved mass to the right
	assert.True(t, U.Comp[0].At(g.Ilo+g.Nx/2+2, g.Jlo) > 0.13)
	assert.True(t, U.Comp[1].At(g.Ilo+g.Nx/2, g.Jlo) > 0)
}

func TestFlatteningDisabledMatchesInfiniteDelta(t *testing.T) {
	g, U := newState(t, 32, 8, sod)
	off := DefaultOptions()
	off.UseFlattening = false
	on := DefaultOptions()
	on.Delta = math.Inf(1)
	ufOff, _ := NewUnsplitFlux(off, newIdeal(t))
	ufOn, _ := NewUnsplitFlux(on, newIdeal(t))
	Fx1, Fy1, err := ufOff.Fluxes(U, g, 0.005, nil, nil)
	require.NoError(t, err)
	Fx2, Fy2, err := ufOn.Fluxes(U, g, 0.005, nil, nil)
	require.NoError(t, err)
	for n := range Fx1.Data {
		assert.Equal(t, Fx1.Data[n].DataP, Fx2.Data[n].DataP)
		assert.Equal(t, Fy1.Data[n].DataP, Fy2.Data[n].DataP)
	}
}

func TestParallelDegreeDeterminism(t *testing.T) {
	g, U := newState(t, 24, 16, func(x, y float64) (rho, u, v, p float64) {
		rho, u, v, p = smooth(x, y)
		if x+y < 0.6 {
			p *= 5
		}
		return
	})
	var ref *FluxField
	for _, np := range []int{1, 2, 5, 32} {
		o := DefaultOptions()
		o.ParallelDegree = np
		uf, _ := NewUnsplitFlux(o, newIdeal(t))
		Fx, _, err := uf.Fluxes(U, g, 0.002, nil, nil)
		require.NoError(t, err)
		if ref == nil {
			ref = Fx
			continue
		}
		for n := range Fx.Data {
			assert.Equal(t, ref.Data[n].DataP, Fx.Data[n].DataP, "parallel degree %d", np)
		}
	}
}

func TestPressureFloor(t *testing.T) {
	vacuum := func(x, y float64) (rho, u, v, p float64) { return 1, 0, 0, 1.e-20 }
	g, U := newState(t, 8, 8, vacuum)
	{
		q, err := DerivePrimitives(U, newIdeal(t), 1.e-10)
		require.NoError(t, err)
		for i := 0; i < g.Qx; i++ {
			for j := 0; j < g.Qy; j++ {
				assert.Equal(t, 1.e-10, q.Comp[U.Vars.IP].At(i, j))
			}
		}
	}
	{
		uf, _ := NewUnsplitFlux(DefaultOptions(), newIdeal(t))
		Fx, Fy, err := uf.Fluxes(U, g, 0.01, nil, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0, Fx.At(0, 2, 2), 1e-15)
		assert.InDelta(t, 1.e-10, Fx.At(1, 2, 2), 1e-16)
		assert.InDelta(t, 1.e-10, Fy.At(2, 2, 2), 1e-16)
	}
	{
		_, err := DerivePrimitives(U, newIdeal(t), 0)
		var ce *ConfigError
		assert.True(t, errors.As(err, &ce))
	}
}

func TestSolidWalls(t *testing.T) {
	rest := func(x, y float64) (rho, u, v, p float64) { return 1, 0, 0, 1 }
	for _, rt := range []RiemannType{RiemannCGF, RiemannHLLC} {
		g, U := newState(t, 8, 8, rest)
		bc := mustBCs(t, utils.BCReflect, utils.BCReflect, utils.BCReflect, utils.BCReflect)
		require.NoError(t, grid2D.FillField(U, bc))
		o := DefaultOptions()
		o.Riemann = rt
		uf, _ := NewUnsplitFlux(o, newIdeal(t))
		solid := NewSolidMask(g, true, true, true, true)
		Fx, Fy, err := uf.Fluxes(U, g, 0.01, solid, bc)
		require.NoError(t, err)
		for j := 0; j < g.Ny; j++ {
			assert.Equal(t, 0., Fx.At(0, 0, j))
			assert.Equal(t, 0., Fx.At(0, g.Nx, j))
			assert.InDelta(t, 1, Fx.At(1, 0, j), 1e-12)
		}
		for i := 0; i < g.Nx; i++ {
			assert.Equal(t, 0., Fy.At(0, i, g.Ny))
			assert.InDelta(t, 1, Fy.At(2, i, 0), 1e-12)
		}
	}
}

func TestGravitySource(t *testing.T) {
	g, U := newState(t, 8, 8, smooth)
	bc := mustBCs(t, utils.BCOutflow, utils.BCOutflow, utils.BCReflect, utils.BCReflect)
	var filled []string
	fill := grid2D.GhostFillFunc(func(a grid2D.Array) error {
		filled = append(filled, a.Name())
		return bc.FillGhosts(a)
	})
	o := DefaultOptions()
	o.Gravity = -1
	uf, _ := NewUnsplitFlux(o, newIdeal(t))
	Fx, _, err := uf.Fluxes(U, g, 0.01, nil, fill)
	require.NoError(t, err)
	assert.Equal(t, []string{"ymom_src", "E_src"}, filled)

	o.Gravity = 0
	uf0, _ := NewUnsplitFlux(o, newIdeal(t))
	Fx0, _, err := uf0.Fluxes(U, g, 0.01, nil, nil)
	require.NoError(t, err)
	assert.NotEqual(t, Fx0.Data[2].DataP, Fx.Data[2].DataP)

	{ // Filler failures surface
		o.Gravity = -1
		ufg, _ := NewUnsplitFlux(o, newIdeal(t))
		boom := errors.New("boom")
		_, _, err = ufg.Fluxes(U, g, 0.01, nil, grid2D.GhostFillFunc(func(grid2D.Array) error { return boom }))
		assert.True(t, errors.Is(err, boom))
	}
}

func TestSourceDonorCells(t *testing.T) {
	var (
		g, U = newState(t, 8, 6, smooth)
		v    = U.Vars
		dt   = 0.1
		grav = -2.
	)
	for i := 0; i < g.Qx; i++ {
		for j := 0; j < g.Qy; j++ {
			U.Comp[v.IDens].Set(i, j, float64(1+10*i+j))
			U.Comp[v.IYmom].Set(i, j, 0.5*float64(i)-3*float64(j))
		}
	}
	o := DefaultOptions()
	o.Gravity = grav
	fp := newFluxPass(o, newIdeal(t), g, v, dt)
	Uxl, Uxr := grid2D.NewConservedField(g, v), grid2D.NewConservedField(g, v)
	Uyl, Uyr := grid2D.NewConservedField(g, v), grid2D.NewConservedField(g, v)
	noop := grid2D.GhostFillFunc(func(grid2D.Array) error { return nil })
	require.NoError(t, fp.sources(U, noop, Uxl, Uxr, Uyl, Uyr))

	src := func(i, j int) (ym, en float64) {
		return 0.5 * dt * U.Comp[v.IDens].At(i, j) * grav, 0.5 * dt * U.Comp[v.IYmom].At(i, j) * grav
	}
	check := func(F *grid2D.Field, i, j, si, sj int, name string) {
		ym, en := src(si, sj)
		assert.InDelta(t, ym, F.Comp[v.IYmom].At(i, j), 1.e-14, "%s ymom at (%d,%d)", name, i, j)
		assert.InDelta(t, en, F.Comp[v.IEner].At(i, j), 1.e-14, "%s energy at (%d,%d)", name, i, j)
		assert.Equal(t, 0., F.Comp[v.IDens].At(i, j))
		assert.Equal(t, 0., F.Comp[v.IXmom].At(i, j))
	}
	// Left states come from the cell below the interface in their direction
	for i := g.Ilo + 1; i <= g.Ihi; i++ {
		for j := g.Jlo + 1; j <= g.Jhi; j++ {
			check(Uxl, i, j, i-1, j, "xl")
			check(Uxr, i, j, i, j, "xr")
			check(Uyl, i, j, i, j-1, "yl")
			check(Uyr, i, j, i, j, "yr")
		}
	}
}

func TestTransverseOffsets(t *testing.T) {
	var (
		g, U = newState(t, 8, 6, smooth)
		v    = U.Vars
		dt   = 0.1
		hdtx = 0.5 * dt / g.Dx
		hdty = 0.5 * dt / g.Dy
	)
	fp := newFluxPass(DefaultOptions(), newIdeal(t), g, v, dt)
	Fx, Fy := grid2D.NewConservedField(g, v), grid2D.NewConservedField(g, v)
	// Differences of these pick out which row and column were used
	for i := 0; i < g.Qx; i++ {
		for j := 0; j < g.Qy; j++ {
			Fx.Comp[0].Set(i, j, float64(i*i*(j+1)))
			Fy.Comp[0].Set(i, j, float64((i+1)*j*j))
		}
	}
	Uxl, Uxr := grid2D.NewConservedField(g, v), grid2D.NewConservedField(g, v)
	Uyl, Uyr := grid2D.NewConservedField(g, v), grid2D.NewConservedField(g, v)
	require.NoError(t, fp.transverse(Fx, Fy, Uxl, Uxr, Uyl, Uyr))

	for i := g.Ilo; i <= g.Ihi+1; i++ {
		for j := g.Jlo; j <= g.Jhi; j++ {
			// Fy(i-1,j+1) - Fy(i-1,j) and Fy(i,j+1) - Fy(i,j)
			assert.InDelta(t, -hdty*float64(i*(2*j+1)), Uxl.Comp[0].At(i, j), 1.e-12, "xl at (%d,%d)", i, j)
			assert.InDelta(t, -hdty*float64((i+1)*(2*j+1)), Uxr.Comp[0].At(i, j), 1.e-12, "xr at (%d,%d)", i, j)
		}
	}
	for i := g.Ilo; i <= g.Ihi; i++ {
		for j := g.Jlo; j <= g.Jhi+1; j++ {
			// Fx(i+1,j-1) - Fx(i,j-1) and Fx(i+1,j) - Fx(i,j)
			assert.InDelta(t, -hdtx*float64((2*i+1)*j), Uyl.Comp[0].At(i, j), 1.e-12, "yl at (%d,%d)", i, j)
			assert.InDelta(t, -hdtx*float64((2*i+1)*(j+1)), Uyr.Comp[0].At(i, j), 1.e-12, "yr at (%d,%d)", i, j)
		}
	}
	// Only the second pass interfaces move
	assert.Equal(t, 0., Uxl.Comp[0].At(g.Ilo-1, g.Jlo))
	assert.Equal(t, 0., Uyl.Comp[0].At(g.Ilo, g.Jhi+2))
	assert.Equal(t, 0., Uxr.Comp[1].At(g.Ilo+2, g.Jlo+2))
}

type recorder struct {
	events []string
}

func (r *recorder) BeginStage(name string) { r.events = append(r.events, "+"+name) }
func (r *recorder) EndStage(name string)   { r.events = append(r.events, "-"+name) }

func TestObserver(t *testing.T) {
	g, U := newState(t, 8, 8, smooth)
	uf, _ := NewUnsplitFlux(DefaultOptions(), newIdeal(t))
	rec := &recorder{}
	uf.SetObserver(rec)
	_, _, err := uf.Fluxes(U, g, 0.01, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"+" + StageFluxes,
		"+" + StagePrimitives, "-" + StagePrimitives,
		"+" + StageFlattening, "-" + StageFlattening,
		"+" + StageLimiting, "-" + StageLimiting,
		"+" + StageStates, "-" + StageStates,
		"+" + StageRiemann, "-" + StageRiemann,
		"+" + StageTransverse, "-" + StageTransverse,
		"+" + StageRiemann, "-" + StageRiemann,
		"+" + StageViscosity, "-" + StageViscosity,
		"-" + StageFluxes,
	}, rec.events)
}
