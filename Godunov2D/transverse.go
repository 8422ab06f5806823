package Godunov2D

import (
	"github.com/spmuppar/twodthermocode/grid2D"
)

/*
transverse corrects the interface states with the difference of the first
pass fluxes in the other direction. Fluxes live on the left (bottom) edge:

	U_xl(i,j) -= 0.5 dt/dy (Fy(i-1,j+1) - Fy(i-1,j))
	U_xr(i,j) -= 0.5 dt/dy (Fy(i,j+1)   - Fy(i,j))
	U_yl(i,j) -= 0.5 dt/dx (Fx(i+1,j-1) - Fx(i,j-1))
	U_yr(i,j) -= 0.5 dt/dx (Fx(i+1,j)   - Fx(i,j))

Only the interfaces of the second pass are touched.
*/
func (fp *fluxPass) transverse(Fx, Fy *grid2D.Field, Uxl, Uxr, Uyl, Uyr *grid2D.Field) error {
	var (
		g    = fp.g
		hdtx = 0.5 * fp.dt / g.Dx
		hdty = 0.5 * fp.dt / g.Dy
	)
	return fp.rows(g.Ilo, g.Ihi+1, func(i int) error {
		for n := 0; n < fp.vars.Nvar; n++ {
			var (
				fx, fy    = Fx.Comp[n], Fy.Comp[n]
				fyW, fyWN = fy.Shift(-1, 0), fy.Shift(-1, 1)
				fyN       = fy.Shift(0, 1)
				fxS, fxES = fx.Shift(0, -1), fx.Shift(1, -1)
				fxE       = fx.Shift(1, 0)
				xl, xr    = Uxl.Comp[n], Uxr.Comp[n]
				yl, yr    = Uyl.Comp[n], Uyr.Comp[n]
			)
			// x interfaces, i in [ilo, ihi+1], j in [jlo, jhi]
			for j := g.Jlo; j <= g.Jhi; j++ {
				xl.Add(i, j, -hdty*(fyWN.At(i, j)-fyW.At(i, j)))
				xr.Add(i, j, -hdty*(fyN.At(i, j)-fy.At(i, j)))
			}
			// y interfaces, i in [ilo, ihi], j in [jlo, jhi+1]
			if i > g.Ihi {
				continue
			}
			for j := g.Jlo; j <= g.Jhi+1; j++ {
				yl.Add(i, j, -hdtx*(fxES.At(i, j)-fxS.At(i, j)))
				yr.Add(i, j, -hdtx*(fxE.At(i, j)-fx.At(i, j)))
			}
		}
		return nil
	})
}
