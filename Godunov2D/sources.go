package Godunov2D

import (
	"fmt"

	"github.com/spmuppar/twodthermocode/grid2D"
)

// sources adds half a step of the gravity source, rho*g to y-momentum and
// ymom*g to energy, to the interface states on [lo-1, hi+1]. Each state takes
// the source of the cell it was traced from.
func (fp *fluxPass) sources(U *grid2D.Field, fill grid2D.GhostFiller, Uxl, Uxr, Uyl, Uyr *grid2D.Field) (err error) {
	var (
		g       = fp.g
		v       = fp.vars
		grav    = fp.opts.Gravity
		hdt     = 0.5 * fp.dt
		ymomSrc = grid2D.NewArray(g, "ymom_src")
		eSrc    = grid2D.NewArray(g, "E_src")
	)
	if err = fp.rows(g.Ilo, g.Ihi, func(i int) error {
		for j := g.Jlo; j <= g.Jhi; j++ {
			ymomSrc.Set(i, j, U.Comp[v.IDens].At(i, j)*grav)
			eSrc.Set(i, j, U.Comp[v.IYmom].At(i, j)*grav)
		}
		return nil
	}); err != nil {
		return
	}
	for _, src := range []grid2D.Array{ymomSrc, eSrc} {
		if err = fill.FillGhosts(src); err != nil {
			return fmt.Errorf("filling ghost cells of %s: %w", src.Name(), err)
		}
	}
	type target struct {
		U      *grid2D.Field
		di, dj int
	}
	targets := []target{{Uxl, -1, 0}, {Uxr, 0, 0}, {Uyl, 0, -1}, {Uyr, 0, 0}}
	return fp.rows(g.Ilo-1, g.Ihi+1, func(i int) error {
		for _, t := range targets {
			ym, en := ymomSrc.Shift(t.di, t.dj), eSrc.Shift(t.di, t.dj)
			for j := g.Jlo - 1; j <= g.Jhi+1; j++ {
				t.U.Comp[v.IYmom].Add(i, j, hdt*ym.At(i, j))
				t.U.Comp[v.IEner].Add(i, j, hdt*en.At(i, j))
			}
		}
		return nil
	})
}
