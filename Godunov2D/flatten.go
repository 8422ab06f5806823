package Godunov2D

import (
	"math"

	"github.com/spmuppar/twodthermocode/grid2D"
)

func offsets(dir Direction) (di, dj int) {
	if dir == XDir {
		return 1, 0
	}
	return 0, 1
}

// flatten returns the multidimensional flattening coefficient, 1 everywhere
// when flattening is off
func (fp *fluxPass) flatten(q *grid2D.Field) (xi grid2D.Array, err error) {
	var (
		v        = fp.vars
		p        = q.Comp[v.IP]
		xiX, xiY grid2D.Array
	)
	if !fp.opts.UseFlattening {
		return grid2D.NewArray(fp.g, "xi").Fill(1), nil
	}
	if xiX, err = fp.flatten1D(XDir, p, q.Comp[v.IU]); err != nil {
		return
	}
	if xiY, err = fp.flatten1D(YDir, p, q.Comp[v.IV]); err != nil {
		return
	}
	return fp.flattenMultiD(xiX, xiY, p)
}

/*
flatten1D is the Colella and Woodward shock detector along dir, on cells
[lo-2, hi+2] in both directions and 1 elsewhere:

	z  = |p(+1) - p(-1)| / max(|p(+2) - p(-2)|, smallp)
	xi = clamp(1 - (z - z0)/(z1 - z0), 0, 1)

applied only where the flow converges and the pressure jump is strong.
*/
func (fp *fluxPass) flatten1D(dir Direction, p, vel grid2D.Array) (xi grid2D.Array, err error) {
	var (
		g          = fp.g
		o          = fp.opts
		di, dj     = offsets(dir)
		pp1, pm1   = p.Shift(di, dj), p.Shift(-di, -dj)
		pp2, pm2   = p.Shift(2*di, 2*dj), p.Shift(-2*di, -2*dj)
		velp, velm = vel.Shift(di, dj), vel.Shift(-di, -dj)
	)
	xi = grid2D.NewArray(g, "xi_"+dir.String()).Fill(1)
	err = fp.rows(g.Ilo-2, g.Ihi+2, func(i int) error {
		for j := g.Jlo - 2; j <= g.Jhi+2; j++ {
			dp := math.Abs(pp1.At(i, j) - pm1.At(i, j))
			dp2 := math.Abs(pp2.At(i, j) - pm2.At(i, j))
			z := dp / math.Max(dp2, o.SmallP)
			converging := velm.At(i, j)-velp.At(i, j) > 0
			strong := dp/math.Min(pp1.At(i, j), pm1.At(i, j)) > o.Delta
			if converging && strong {
				xi.Set(i, j, math.Min(1, math.Max(0, 1-(z-o.Z0)/(o.Z1-o.Z0))))
			}
		}
		return nil
	})
	return
}

// flattenMultiD takes the most restrictive coefficient of the cell and its
// upstream neighbors, upstream judged by the sign of the pressure gradient
func (fp *fluxPass) flattenMultiD(xiX, xiY, p grid2D.Array) (xi grid2D.Array, err error) {
	var (
		g = fp.g
	)
	sign := func(a float64) int {
		if a < 0 {
			return -1
		}
		return 1
	}
	xi = grid2D.NewArray(g, "xi").Fill(1)
	err = fp.rows(g.Ilo-2, g.Ihi+2, func(i int) error {
		for j := g.Jlo - 2; j <= g.Jhi+2; j++ {
			sx := sign(p.At(i+1, j) - p.At(i-1, j))
			sy := sign(p.At(i, j+1) - p.At(i, j-1))
			xi.Set(i, j, math.Min(
				math.Min(xiX.At(i, j), xiY.At(i, j)),
				math.Min(xiX.At(i-sx, j), xiY.At(i, j-sy))))
		}
		return nil
	})
	return
}
