package eos

import (
	"errors"
	"fmt"
	"strings"
)

// EOS closes the Euler system. Arguments are specific quantities, e is the
// specific internal energy. Implementations are stateless after construction
// and safe for concurrent use.
type EOS interface {
	Pressure(rho, e float64) (p float64, err error)
	SoundSpeed(p, rho float64) (c float64, err error)
	EffectiveGamma(rho, p float64) (gamma float64, err error)
	InternalEnergy(rho, p float64) (e float64, err error)
	Name() string
}

var (
	ErrNoConvergence = errors.New("eos: iteration did not converge")
	ErrOutOfRange    = errors.New("eos: state outside of table")
	ErrNonPhysical   = errors.New("eos: non-physical state")
)

type EOSType uint8

const (
	IDEAL EOSType = iota
	PENG_ROBINSON
	TABLE
)

var (
	EOSNames = map[string]EOSType{
		"ideal":         IDEAL,
		"gamma-law":     IDEAL,
		"peng-robinson": PENG_ROBINSON,
		"pr":            PENG_ROBINSON,
		"table":         TABLE,
		"tabulated":     TABLE,
	}
	EOSPrintNames = []string{"Ideal Gas", "Peng-Robinson", "Tabulated"}
)

func (et EOSType) Print() (txt string) {
	if int(et) < len(EOSPrintNames) {
		txt = EOSPrintNames[et]
	}
	return
}

func NewEOSType(label string) (et EOSType, err error) {
	var (
		ok bool
	)
	if len(label) == 0 {
		return IDEAL, nil
	}
	label = strings.ToLower(strings.TrimSpace(label))
	if et, ok = EOSNames[label]; !ok {
		err = fmt.Errorf("unable to use equation of state named %q", label)
	}
	return
}

// Config selects and parameterizes one EOS for the whole run
type Config struct {
	Type  string       `yaml:"Type"`
	Gamma float64      `yaml:"Gamma"`
	Fluid *Fluid       `yaml:"Fluid"` // Peng-Robinson constants, nitrogen when absent
	Table *TableConfig `yaml:"Table"`
}

type TableConfig struct {
	File      string `yaml:"File"`   // Load a saved table when set
	Source    string `yaml:"Source"` // Otherwise sample this EOS type
	TableSpec `yaml:",inline"`
}

// New builds the EOS named in cfg, selection happens once per run
func New(cfg Config) (e EOS, err error) {
	var (
		et EOSType
	)
	if et, err = NewEOSType(cfg.Type); err != nil {
		return
	}
	switch et {
	case IDEAL:
		gamma := cfg.Gamma
		if gamma == 0 {
			gamma = 1.4
		}
		return NewIdealGas(gamma)
	case PENG_ROBINSON:
		fluid := Nitrogen
		if cfg.Fluid != nil {
			fluid = *cfg.Fluid
		}
		return NewPengRobinson(fluid)
	case TABLE:
		if cfg.Table == nil {
			return nil, fmt.Errorf("table equation of state needs a Table section")
		}
		if len(cfg.Table.File) != 0 {
			return LoadTable(cfg.Table.File)
		}
		if len(cfg.Table.Source) == 0 {
			return nil, fmt.Errorf("table equation of state needs either File or Source")
		}
		var src EOS
		srcCfg := cfg
		srcCfg.Type, srcCfg.Table = cfg.Table.Source, nil
		if et, err = NewEOSType(srcCfg.Type); err != nil {
			return
		}
		if et == TABLE {
			return nil, fmt.Errorf("table source can not itself be a table")
		}
		if src, err = New(srcCfg); err != nil {
			return
		}
		return NewTabulated(src, cfg.Table.TableSpec)
	}
	return nil, fmt.Errorf("unknown equation of state type %d", et)
}
