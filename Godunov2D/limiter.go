package Godunov2D

import (
	"math"

	"github.com/spmuppar/twodthermocode/grid2D"
)

// minmag returns the argument of smaller magnitude, b on ties
func minmag(a, b float64) float64 {
	if math.Abs(a) < math.Abs(b) {
		return a
	}
	return b
}

// limitAll returns xi times the limited slope of every primitive along dir
func (fp *fluxPass) limitAll(q *grid2D.Field, dir Direction, xi grid2D.Array) (ld []grid2D.Array, err error) {
	ld = make([]grid2D.Array, len(q.Comp))
	for n, a := range q.Comp {
		if ld[n], err = fp.limit(a, dir, fp.opts.Limiter); err != nil {
			return
		}
		if err = fp.rows(0, fp.g.Qx-1, func(i int) error {
			for j := 0; j < fp.g.Qy; j++ {
				ld[n].Set(i, j, xi.At(i, j)*ld[n].At(i, j))
			}
			return nil
		}); err != nil {
			return
		}
	}
	return
}

/*
limit computes the slope of a along dir where the stencil stays inside the
grid and leaves zero elsewhere.

	LimiterNone  centered difference, 0.5*(a(+1) - a(-1))
	LimiterMC2   monotonized central
	LimiterMC4   fourth order monotonized central, built on the MC2 slopes
*/
func (fp *fluxPass) limit(a grid2D.Array, dir Direction, mode LimiterType) (lda grid2D.Array, err error) {
	var (
		g        = fp.g
		di, dj   = offsets(dir)
		ap, am   = a.Shift(di, dj), a.Shift(-di, -dj)
		iMin     = 0
		iMax     = g.Qx - 1
		jMin     = 0
		jMax     = g.Qy - 1
		margin   = 1
		s2       grid2D.Array
		s2p, s2m grid2D.View
	)
	if mode == LimiterMC4 {
		if s2, err = fp.limit(a, dir, LimiterMC2); err != nil {
			return
		}
		s2p, s2m = s2.Shift(di, dj), s2.Shift(-di, -dj)
		margin = 2
	}
	if dir == XDir {
		iMin, iMax = margin, g.Qx-1-margin
	} else {
		jMin, jMax = margin, g.Qy-1-margin
	}
	lda = grid2D.NewArray(g, "ld_"+a.Name()+"_"+dir.String())
	err = fp.rows(iMin, iMax, func(i int) error {
		for j := jMin; j <= jMax; j++ {
			var dc float64
			if mode == LimiterMC4 {
				dc = (2. / 3.) * (ap.At(i, j) - am.At(i, j) - 0.25*(s2p.At(i, j)+s2m.At(i, j)))
			} else {
				dc = 0.5 * (ap.At(i, j) - am.At(i, j))
			}
			if mode == LimiterNone {
				lda.Set(i, j, dc)
				continue
			}
			dl := ap.At(i, j) - a.At(i, j)
			dr := a.At(i, j) - am.At(i, j)
			if dl*dr > 0 {
				lda.Set(i, j, minmag(dc, 2*minmag(dl, dr)))
			}
		}
		return nil
	})
	return
}
