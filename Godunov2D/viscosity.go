package Godunov2D

import (
	"math"

	"github.com/spmuppar/twodthermocode/grid2D"
)

// viscosityCoefficients returns cvisc*max(-div(u)*h, 0) at the x interface
// (i-1/2, j) and the y interface (i, j-1/2). The normal derivative is the
// difference across the face, the transverse one averages the four
// neighbours to the face's end nodes.
func viscosityCoefficients(u, v grid2D.Array, dx, dy, cvisc float64, i, j int) (avx, avy float64) {
	divUx := (u.At(i, j)-u.At(i-1, j))/dx +
		0.25*(v.At(i, j+1)+v.At(i-1, j+1)-v.At(i, j-1)-v.At(i-1, j-1))/dy
	divUy := 0.25*(u.At(i+1, j)+u.At(i+1, j-1)-u.At(i-1, j)-u.At(i-1, j-1))/dx +
		(v.At(i, j)-v.At(i, j-1))/dy
	avx = cvisc * math.Max(-divUx*dx, 0)
	avy = cvisc * math.Max(-divUy*dy, 0)
	return
}

// artificialViscosity adds avx*(U(i-1,j) - U(i,j)) to Fx and
// avy*(U(i,j-1) - U(i,j)) to Fy on the output interfaces
func (fp *fluxPass) artificialViscosity(U, q *grid2D.Field, Fx, Fy *FluxField) error {
	var (
		g     = fp.g
		v     = fp.vars
		u, vv = q.Comp[v.IU], q.Comp[v.IV]
		cvisc = fp.opts.CVisc
	)
	return fp.rows(g.Ilo, g.Ihi+1, func(i int) error {
		for j := g.Jlo; j <= g.Jhi+1; j++ {
			avx, avy := viscosityCoefficients(u, vv, g.Dx, g.Dy, cvisc, i, j)
			for n := 0; n < v.Nvar; n++ {
				c := U.Comp[n]
				if j <= g.Jhi {
					Fx.Add(n, i-g.Ilo, j-g.Jlo, avx*(c.At(i-1, j)-c.At(i, j)))
				}
				if i <= g.Ihi {
					Fy.Add(n, i-g.Ilo, j-g.Jlo, avy*(c.At(i, j-1)-c.At(i, j)))
				}
			}
		}
		return nil
	})
}
