package eos

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestIdealGas(t *testing.T) {
	ig, err := NewIdealGas(1.4)
	require.NoError(t, err)
	{ // Closure
		p, err := ig.Pressure(1, 2.5)
		assert.NoError(t, err)
		assert.InDelta(t, 1.0, p, 1e-15)
		c, err := ig.SoundSpeed(1, 1)
		assert.NoError(t, err)
		assert.InDelta(t, math.Sqrt(1.4), c, 1e-15)
		e, err := ig.InternalEnergy(1, 1)
		assert.NoError(t, err)
		assert.InDelta(t, 2.5, e, 1e-15)
		g, err := ig.EffectiveGamma(0.3, 7)
		assert.NoError(t, err)
		assert.Equal(t, 1.4, g)
	}
	{ // Bad input
		_, err := NewIdealGas(1)
		assert.Error(t, err)
		_, err = ig.SoundSpeed(1, 0)
		assert.True(t, errors.Is(err, ErrNonPhysical))
	}
}

func TestPengRobinson(t *testing.T) {
	pr, err := NewPengRobinson(Nitrogen)
	require.NoError(t, err)
	{ // Dilute limit approaches the ideal gas with gamma 7/5
		var (
			rho = 1.e-3
			T   = 300.
			p   = rho * pr.R * T
		)
		e, err := pr.InternalEnergy(rho, p)
		require.NoError(t, err)
		assert.True(t, near(pr.CvIG*T, e, 1.e-4), "e = %v", e)
		c, err := pr.SoundSpeed(p, rho)
		require.NoError(t, err)
		assert.True(t, near(math.Sqrt(1.4*pr.R*T), c, 1.e-4), "c = %v", c)
		g, err := pr.EffectiveGamma(rho, p)
		require.NoError(t, err)
		assert.InDelta(t, 1.4, g, 1.e-4)
	}
	{ // Round trips at dense conditions
		for _, st := range [][2]float64{{50, 5.e6}, {200, 2.e7}, {400, 5.e7}} {
			rho, p := st[0], st[1]
			e, err := pr.InternalEnergy(rho, p)
			require.NoError(t, err)
			pp, err := pr.Pressure(rho, e)
			require.NoError(t, err)
			assert.True(t, near(p, pp, 1.e-9), "rho = %v, p = %v, p' = %v", rho, p, pp)
			T, err := pr.TemperatureFromPressure(rho, p)
			require.NoError(t, err)
			T2, err := pr.TemperatureFromEnergy(rho, e)
			require.NoError(t, err)
			assert.True(t, near(T, T2, 1.e-9))
			c, err := pr.SoundSpeed(p, rho)
			require.NoError(t, err)
			assert.True(t, c > 0)
		}
	}
	{ // Non physical states
		_, err := pr.Pressure(1.1/pr.B, 1.e5)
		assert.True(t, errors.Is(err, ErrNonPhysical))
		_, err = pr.Pressure(10, -1.e9)
		assert.True(t, errors.Is(err, ErrNonPhysical))
		_, err = pr.InternalEnergy(-1, 1.e5)
		assert.True(t, errors.Is(err, ErrNonPhysical))
	}
}

func TestTabulated(t *testing.T) {
	ig, _ := NewIdealGas(1.4)
	spec := TableSpec{
		NRho: 11, NE: 21, NP: 21,
		RhoMin: 0.1, RhoMax: 1.1,
		EMin: 0.1, EMax: 4.1,
		PMin: 0.01, PMax: 2.01,
	}
	tb, err := NewTabulated(ig, spec)
	require.NoError(t, err)
	{ // p = (gamma-1) rho e is bilinear, so interpolation is exact
		p, err := tb.Pressure(0.537, 2.71)
		require.NoError(t, err)
		assert.InDelta(t, 0.4*0.537*2.71, p, 1e-12)
		e, err := tb.InternalEnergy(0.6, 1.01)
		require.NoError(t, err)
		assert.InDelta(t, 1.01/(0.4*0.6), e, 1e-12)
		c, err := tb.SoundSpeed(1.0, 0.5)
		require.NoError(t, err)
		assert.InDelta(t, math.Sqrt(1.4*1.0/0.5), c, 1e-2)
		// Corners are in range
		_, err = tb.Pressure(1.1, 4.1)
		assert.NoError(t, err)
	}
	{ // Out of range
		_, err := tb.Pressure(2, 1)
		assert.True(t, errors.Is(err, ErrOutOfRange))
		_, err = tb.SoundSpeed(3, 0.5)
		assert.True(t, errors.Is(err, ErrOutOfRange))
		_, err = tb.Pressure(math.NaN(), 1)
		assert.True(t, errors.Is(err, ErrOutOfRange))
	}
	{ // Save and load
		fileName := filepath.Join(t.TempDir(), "ideal.yaml")
		require.NoError(t, tb.Save(fileName))
		tb2, err := LoadTable(fileName)
		require.NoError(t, err)
		assert.Equal(t, tb.Spec, tb2.Spec)
		assert.Equal(t, tb.Source, tb2.Source)
		p1, _ := tb.Pressure(0.77, 1.3)
		p2, _ := tb2.Pressure(0.77, 1.3)
		assert.InDelta(t, p1, p2, 1e-14)
	}
	{ // Bad spec
		_, err := NewTabulated(ig, TableSpec{NRho: 1})
		assert.Error(t, err)
	}
}

func TestNew(t *testing.T) {
	{
		e, err := New(Config{})
		require.NoError(t, err)
		assert.IsType(t, &IdealGas{}, e)
	}
	{
		e, err := New(Config{Type: "Peng-Robinson"})
		require.NoError(t, err)
		assert.Equal(t, "peng-robinson, nitrogen", e.Name())
	}
	{
		e, err := New(Config{Type: "table", Gamma: 1.4, Table: &TableConfig{
			Source: "ideal",
			TableSpec: TableSpec{NRho: 3, NE: 3, NP: 3, RhoMin: 0.1, RhoMax: 1,
				EMin: 0.1, EMax: 1, PMin: 0.1, PMax: 1},
		}})
		require.NoError(t, err)
		assert.IsType(t, &Tabulated{}, e)
	}
	{
		_, err := New(Config{Type: "van-der-waals"})
		assert.Error(t, err)
		_, err = New(Config{Type: "table"})
		assert.Error(t, err)
		_, err = New(Config{Type: "table", Table: &TableConfig{Source: "table"}})
		assert.Error(t, err)
	}
}
