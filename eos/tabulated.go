package eos

import (
	"fmt"
	"math"
	"os"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/floats"

	"github.com/spmuppar/twodthermocode/utils"
)

// TableSpec lays out the uniform sample axes of a Tabulated EOS
type TableSpec struct {
	NRho   int     `yaml:"NRho"`
	NE     int     `yaml:"NE"`
	NP     int     `yaml:"NP"`
	RhoMin float64 `yaml:"RhoMin"`
	RhoMax float64 `yaml:"RhoMax"`
	EMin   float64 `yaml:"EMin"`
	EMax   float64 `yaml:"EMax"`
	PMin   float64 `yaml:"PMin"`
	PMax   float64 `yaml:"PMax"`
}

func (ts TableSpec) Validate() (err error) {
	switch {
	case ts.NRho < 2 || ts.NE < 2 || ts.NP < 2:
		err = fmt.Errorf("table needs at least two samples per axis, have NRho = %d, NE = %d, NP = %d",
			ts.NRho, ts.NE, ts.NP)
	case !(ts.RhoMax > ts.RhoMin) || !(ts.RhoMin > 0):
		err = fmt.Errorf("table density axis [%v,%v] must be positive and increasing", ts.RhoMin, ts.RhoMax)
	case !(ts.EMax > ts.EMin):
		err = fmt.Errorf("table energy axis [%v,%v] must be increasing", ts.EMin, ts.EMax)
	case !(ts.PMax > ts.PMin) || !(ts.PMin > 0):
		err = fmt.Errorf("table pressure axis [%v,%v] must be positive and increasing", ts.PMin, ts.PMax)
	}
	return
}

/*
Tabulated interpolates bilinearly in three uniform tables:

	P(rho, e)   pressure
	C(rho, p)   sound speed
	E(rho, p)   internal energy

Queries outside the sampled range fail with ErrOutOfRange.
*/
type Tabulated struct {
	Source string
	Spec   TableSpec
	Rho    []float64
	E, P   []float64
	PTable utils.Matrix // NRho x NE
	CTable utils.Matrix // NRho x NP
	ETable utils.Matrix // NRho x NP
	dRho   float64
	dE, dP float64
}

// NewTabulated samples src on the axes of spec
func NewTabulated(src EOS, spec TableSpec) (tb *Tabulated, err error) {
	if err = spec.Validate(); err != nil {
		return
	}
	tb = newTabulated(src.Name(), spec)
	for ir, rho := range tb.Rho {
		for ie, e := range tb.E {
			var p float64
			if p, err = src.Pressure(rho, e); err != nil {
				return nil, fmt.Errorf("sampling %s at rho = %v, e = %v: %w", src.Name(), rho, e, err)
			}
			tb.PTable.Set(ir, ie, p)
		}
		for ip, p := range tb.P {
			var c, e float64
			if c, err = src.SoundSpeed(p, rho); err != nil {
				return nil, fmt.Errorf("sampling %s at rho = %v, p = %v: %w", src.Name(), rho, p, err)
			}
			if e, err = src.InternalEnergy(rho, p); err != nil {
				return nil, fmt.Errorf("sampling %s at rho = %v, p = %v: %w", src.Name(), rho, p, err)
			}
			tb.CTable.Set(ir, ip, c)
			tb.ETable.Set(ir, ip, e)
		}
	}
	tb.setReadOnly()
	return
}

func newTabulated(source string, spec TableSpec) (tb *Tabulated) {
	tb = &Tabulated{
		Source: source,
		Spec:   spec,
		Rho:    floats.Span(make([]float64, spec.NRho), spec.RhoMin, spec.RhoMax),
		E:      floats.Span(make([]float64, spec.NE), spec.EMin, spec.EMax),
		P:      floats.Span(make([]float64, spec.NP), spec.PMin, spec.PMax),
		PTable: utils.NewMatrix(spec.NRho, spec.NE),
		CTable: utils.NewMatrix(spec.NRho, spec.NP),
		ETable: utils.NewMatrix(spec.NRho, spec.NP),
		dRho:   (spec.RhoMax - spec.RhoMin) / float64(spec.NRho-1),
		dE:     (spec.EMax - spec.EMin) / float64(spec.NE-1),
		dP:     (spec.PMax - spec.PMin) / float64(spec.NP-1),
	}
	return
}

func (tb *Tabulated) setReadOnly() {
	tb.PTable.SetReadOnly("PTable")
	tb.CTable.SetReadOnly("CTable")
	tb.ETable.SetReadOnly("ETable")
}

func (tb *Tabulated) Name() string { return "table of " + tb.Source }

// locate returns the lower sample index and the fractional offset of x on a
// uniform axis
func locate(x, x0, x1, dx float64, n int) (k int, f float64, ok bool) {
	if math.IsNaN(x) || x < x0 || x > x1 {
		return
	}
	s := (x - x0) / dx
	k = int(s)
	if k >= n-1 {
		k = n - 2
	}
	f, ok = s-float64(k), true
	return
}

func bilinear(T utils.Matrix, i, j int, fi, fj float64) float64 {
	return (1-fi)*((1-fj)*T.At(i, j)+fj*T.At(i, j+1)) +
		fi*((1-fj)*T.At(i+1, j)+fj*T.At(i+1, j+1))
}

func (tb *Tabulated) lookup(T utils.Matrix, name string, rho, y, y0, y1, dy float64, ny int) (val float64, err error) {
	ir, fr, okR := locate(rho, tb.Spec.RhoMin, tb.Spec.RhoMax, tb.dRho, tb.Spec.NRho)
	iy, fy, okY := locate(y, y0, y1, dy, ny)
	if !okR || !okY {
		return 0, fmt.Errorf("%s lookup at (%v, %v): %w", name, rho, y, ErrOutOfRange)
	}
	val = bilinear(T, ir, iy, fr, fy)
	return
}

func (tb *Tabulated) Pressure(rho, e float64) (p float64, err error) {
	return tb.lookup(tb.PTable, "pressure", rho, e, tb.Spec.EMin, tb.Spec.EMax, tb.dE, tb.Spec.NE)
}

func (tb *Tabulated) SoundSpeed(p, rho float64) (c float64, err error) {
	return tb.lookup(tb.CTable, "sound speed", rho, p, tb.Spec.PMin, tb.Spec.PMax, tb.dP, tb.Spec.NP)
}

func (tb *Tabulated) InternalEnergy(rho, p float64) (e float64, err error) {
	return tb.lookup(tb.ETable, "internal energy", rho, p, tb.Spec.PMin, tb.Spec.PMax, tb.dP, tb.Spec.NP)
}

func (tb *Tabulated) EffectiveGamma(rho, p float64) (gamma float64, err error) {
	var c float64
	if c, err = tb.SoundSpeed(p, rho); err != nil {
		return
	}
	gamma = c * c * rho / p
	return
}

// tableFile is the on-disk YAML form
type tableFile struct {
	Source string    `yaml:"Source"`
	Spec   TableSpec `yaml:"Spec"`
	P      []float64 `yaml:"P"`
	C      []float64 `yaml:"C"`
	E      []float64 `yaml:"E"`
}

func (tb *Tabulated) Save(fileName string) (err error) {
	var data []byte
	tf := tableFile{
		Source: tb.Source,
		Spec:   tb.Spec,
		P:      tb.PTable.Data(),
		C:      tb.CTable.Data(),
		E:      tb.ETable.Data(),
	}
	if data, err = yaml.Marshal(tf); err != nil {
		return
	}
	return os.WriteFile(fileName, data, 0644)
}

func LoadTable(fileName string) (tb *Tabulated, err error) {
	var (
		data []byte
		tf   tableFile
	)
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	if err = yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("reading table %s: %w", fileName, err)
	}
	if err = tf.Spec.Validate(); err != nil {
		return nil, fmt.Errorf("reading table %s: %w", fileName, err)
	}
	s := tf.Spec
	if len(tf.P) != s.NRho*s.NE || len(tf.C) != s.NRho*s.NP || len(tf.E) != s.NRho*s.NP {
		return nil, fmt.Errorf("reading table %s: table sizes do not match the axes", fileName)
	}
	tb = newTabulated(tf.Source, s)
	tb.PTable = utils.NewMatrix(s.NRho, s.NE, tf.P)
	tb.CTable = utils.NewMatrix(s.NRho, s.NP, tf.C)
	tb.ETable = utils.NewMatrix(s.NRho, s.NP, tf.E)
	tb.setReadOnly()
	return
}
