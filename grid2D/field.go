package grid2D

import "fmt"

// VariableIndex maps logical variable names to component slots. Conserved
// and primitive fields share the slot layout:
//
//	slot  conserved     primitive
//	0     density       rho
//	1     x-momentum    u
//	2     y-momentum    v
//	3     energy        p
//	4..   rho*X_s       X_s (passive scalars)
type VariableIndex struct {
	Nvar                       int
	IDens, IXmom, IYmom, IEner int
	IRho, IU, IV, IP           int
	IRhoX, IX                  int // First passive scalar slot, -1 when there are none
	NScalars                   int
	ScalarNames                []string
}

func NewVariableIndex(scalarNames ...string) (vi *VariableIndex) {
	vi = &VariableIndex{
		IDens: 0, IXmom: 1, IYmom: 2, IEner: 3,
		IRho: 0, IU: 1, IV: 2, IP: 3,
		IRhoX: -1, IX: -1,
		NScalars:    len(scalarNames),
		ScalarNames: append([]string(nil), scalarNames...),
	}
	vi.Nvar = 4 + vi.NScalars
	if vi.NScalars > 0 {
		vi.IRhoX, vi.IX = 4, 4
	}
	return
}

func (vi *VariableIndex) ConservedNames() (names []string) {
	names = []string{"density", "x-momentum", "y-momentum", "energy"}
	for _, s := range vi.ScalarNames {
		names = append(names, "rho_"+s)
	}
	return
}

func (vi *VariableIndex) PrimitiveNames() (names []string) {
	names = []string{"rho", "u", "v", "p"}
	names = append(names, vi.ScalarNames...)
	return
}

// Field is a set of Nvar Arrays over one grid
type Field struct {
	G    *Grid2D
	Vars *VariableIndex
	Comp []Array
}

func newField(g *Grid2D, vi *VariableIndex, names []string) (f *Field) {
	f = &Field{
		G:    g,
		Vars: vi,
		Comp: make([]Array, vi.Nvar),
	}
	for n := range f.Comp {
		f.Comp[n] = NewArray(g, names[n])
	}
	return
}

func NewConservedField(g *Grid2D, vi *VariableIndex) *Field {
	return newField(g, vi, vi.ConservedNames())
}

func NewPrimitiveField(g *Grid2D, vi *VariableIndex) *Field {
	return newField(g, vi, vi.PrimitiveNames())
}

func (f *Field) Get(n int) Array { return f.Comp[n] }

func (f *Field) GetByName(name string) (a Array, err error) {
	for _, c := range f.Comp {
		if c.Name() == name {
			return c, nil
		}
	}
	err = fmt.Errorf("no variable named %q", name)
	return
}

func (f *Field) Copy() (R *Field) {
	R = &Field{G: f.G, Vars: f.Vars, Comp: make([]Array, len(f.Comp))}
	for n, c := range f.Comp {
		R.Comp[n] = c.Copy()
	}
	return
}

// CheckShape verifies the field was built on a grid with the geometry of g
// and carries one component per variable
func (f *Field) CheckShape(g *Grid2D) (err error) {
	switch {
	case f == nil:
		err = fmt.Errorf("field is nil")
	case !f.G.Equal(g):
		err = fmt.Errorf("field grid [%s] does not match [%s]", f.G, g)
	case f.Vars == nil:
		err = fmt.Errorf("field has no variable index")
	case len(f.Comp) != f.Vars.Nvar:
		err = fmt.Errorf("field has %d components, variable index wants %d", len(f.Comp), f.Vars.Nvar)
	}
	return
}
