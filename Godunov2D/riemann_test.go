package Godunov2D

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spmuppar/twodthermocode/grid2D"
)

func conserved(rho, u, v, p float64) []float64 {
	return []float64{rho, rho * u, rho * v, p/(gamma-1) + 0.5*rho*(u*u+v*v)}
}

func exactFlux(rho, u, v, p float64) []float64 {
	E := p/(gamma-1) + 0.5*rho*(u*u+v*v)
	return []float64{rho * u, rho*u*u + p, rho * u * v, (E + p) * u}
}

func TestRiemannSolvers(t *testing.T) {
	vars := grid2D.NewVariableIndex()
	solvers := map[string]RiemannSolver{}
	for _, rt := range []RiemannType{RiemannCGF, RiemannHLLC} {
		rs, err := NewRiemannSolver(rt, newIdeal(t), vars, 1.e-10)
		require.NoError(t, err)
		solvers[strings.ToLower(rt.Print())] = rs
	}
	{ // Unknown solver and missing EOS
		var ce *ConfigError
		_, err := NewRiemannSolver(RiemannType(9), newIdeal(t), vars, 1.e-10)
		assert.True(t, errors.As(err, &ce))
		_, err = NewRiemannSolver(RiemannCGF, nil, vars, 1.e-10)
		assert.True(t, errors.As(err, &ce))
	}
	{ // Identical states give the physical flux
		for name, rs := range solvers {
			f := make([]float64, 4)
			U := conserved(0.7, 0.3, -0.4, 1.9)
			require.NoError(t, rs.Solve(XDir, U, U, f, false))
			assert.InDeltaSlice(t, exactFlux(0.7, 0.3, -0.4, 1.9), f, 1e-12, name)
			// Along y the roles of u and v swap
			require.NoError(t, rs.Solve(YDir, U, U, f, false))
			assert.InDelta(t, 0.7*-0.4, f[0], 1e-12, name)
			assert.InDelta(t, 0.7*0.3*-0.4, f[1], 1e-12, name)
			assert.InDelta(t, 0.7*0.16+1.9, f[2], 1e-12, name)
		}
	}
	{ // Supersonic flow takes the upwind state
		for name, rs := range solvers {
			f := make([]float64, 4)
			require.NoError(t, rs.Solve(XDir, conserved(1, 3, 0, 1), conserved(0.5, 2.9, 0, 0.8), f, false))
			assert.InDeltaSlice(t, exactFlux(1, 3, 0, 1), f, 1e-12, name)
			require.NoError(t, rs.Solve(XDir, conserved(1, -2.9, 0, 1), conserved(0.5, -3, 0, 0.8), f, false))
			assert.InDeltaSlice(t, exactFlux(0.5, -3, 0, 0.8), f, 1e-12, name)
		}
	}
	{ // Both solvers resolve an isolated contact exactly
		for _, u := range []float64{0, 0.2, -0.2} {
			Ul, Ur := conserved(1, u, 0.3, 1), conserved(0.125, u, -0.2, 1)
			fc, fh := make([]float64, 4), make([]float64, 4)
			require.NoError(t, solvers["cgf"].Solve(XDir, Ul, Ur, fc, false))
			require.NoError(t, solvers["hllc"].Solve(XDir, Ul, Ur, fh, false))
			assert.InDeltaSlice(t, fc, fh, 1e-12, "u = %v", u)
			switch {
			case u > 0:
				assert.InDeltaSlice(t, exactFlux(1, u, 0.3, 1), fc, 1e-12)
			case u < 0:
				assert.InDeltaSlice(t, exactFlux(0.125, u, -0.2, 1), fc, 1e-12)
			default:
				assert.InDelta(t, 0, fc[0], 1e-14)
				assert.InDelta(t, 1, fc[1], 1e-12)
			}
		}
	}
	{ // Solid interface passes pressure and nothing else
		for name, rs := range solvers {
			f := make([]float64, 4)
			U := conserved(1, 0, 0.5, 2)
			require.NoError(t, rs.Solve(XDir, U, U, f, true))
			assert.Equal(t, 0., f[0], name)
			assert.InDelta(t, 2, f[1], 1e-12, name)
			assert.InDelta(t, 0, f[3], 1e-12, name)
		}
	}
	{ // Sod interface, star region pressure lies between the two sides
		for name, rs := range solvers {
			f := make([]float64, 4)
			require.NoError(t, rs.Solve(XDir, conserved(1, 0, 0, 1), conserved(0.125, 0, 0, 0.1), f, false))
			assert.True(t, f[0] > 0, name)
			assert.True(t, f[1] > 0.1 && f[1] < 1, "%s: %v", name, f[1])
			assert.True(t, f[3] > 0, name)
		}
	}
	{ // Passive scalars ride the contact
		sv := grid2D.NewVariableIndex("fuel")
		for _, rt := range []RiemannType{RiemannCGF, RiemannHLLC} {
			rs, err := NewRiemannSolver(rt, newIdeal(t), sv, 1.e-10)
			require.NoError(t, err)
			Ul := append(conserved(1, 0.4, 0, 1), 1*0.9)
			Ur := append(conserved(0.5, 0.4, 0, 1), 0.5*0.1)
			f := make([]float64, 5)
			require.NoError(t, rs.Solve(XDir, Ul, Ur, f, false))
			assert.InDelta(t, 0.9, f[4]/f[0], 1e-12, rt.Print())
		}
	}
	{ // Bad input is reported, never turned into a flux
		for name, rs := range solvers {
			f := make([]float64, 4)
			err := rs.Solve(XDir, conserved(-1, 0, 0, 1), conserved(1, 0, 0, 1), f, false)
			assert.True(t, errors.Is(err, ErrDensity), name)
			bad := conserved(1, 0, 0, 1)
			bad[3] = math.NaN()
			assert.Error(t, rs.Solve(XDir, bad, conserved(1, 0, 0, 1), f, false), name)
		}
	}
}
