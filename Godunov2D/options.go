package Godunov2D

import (
	"fmt"
	"math"
	"strings"
)

type LimiterType uint8

const (
	LimiterNone LimiterType = iota // Unlimited centered difference
	LimiterMC2                     // 2nd order monotonized central
	LimiterMC4                     // 4th order monotonized central
)

var (
	LimiterNames = map[string]LimiterType{
		"none":     LimiterNone,
		"centered": LimiterNone,
		"0":        LimiterNone,
		"mc":       LimiterMC2,
		"mc2":      LimiterMC2,
		"1":        LimiterMC2,
		"mc4":      LimiterMC4,
		"2":        LimiterMC4,
	}
	LimiterPrintNames = []string{"None (centered)", "2nd order MC", "4th order MC"}
)

func (lt LimiterType) Print() (txt string) {
	if int(lt) < len(LimiterPrintNames) {
		txt = LimiterPrintNames[lt]
	} else {
		txt = fmt.Sprintf("Unknown limiter %d", lt)
	}
	return
}

func NewLimiterType(label string) (lt LimiterType, err error) {
	var (
		ok bool
	)
	if len(label) == 0 {
		return LimiterMC4, nil
	}
	label = strings.ToLower(strings.TrimSpace(label))
	if lt, ok = LimiterNames[label]; !ok {
		err = &ConfigError{Field: "Limiter", Value: label, Reason: "unknown limiter"}
	}
	return
}

type RiemannType uint8

const (
	RiemannCGF RiemannType = iota // Colella, Glaz and Ferguson two shock approximation
	RiemannHLLC
)

var (
	RiemannNames = map[string]RiemannType{
		"cgf":  RiemannCGF,
		"hllc": RiemannHLLC,
	}
	RiemannPrintNames = []string{"CGF", "HLLC"}
)

func (rt RiemannType) Print() (txt string) {
	if int(rt) < len(RiemannPrintNames) {
		txt = RiemannPrintNames[rt]
	} else {
		txt = fmt.Sprintf("Unknown Riemann solver %d", rt)
	}
	return
}

func NewRiemannType(label string) (rt RiemannType, err error) {
	var (
		ok bool
	)
	if len(label) == 0 {
		return RiemannCGF, nil
	}
	label = strings.ToLower(strings.TrimSpace(label))
	if rt, ok = RiemannNames[label]; !ok {
		err = &ConfigError{Field: "Riemann", Value: label, Reason: "unknown Riemann solver"}
	}
	return
}

// Options parameterize one UnsplitFlux, fixed after construction
type Options struct {
	Limiter        LimiterType
	Riemann        RiemannType
	UseFlattening  bool
	Delta, Z0, Z1  float64 // Flattening shock detector thresholds
	Gravity        float64 // Acceleration along +y
	CVisc          float64 // Artificial viscosity coefficient
	SmallP         float64 // Pressure floor
	ParallelDegree int     // Worker count, zero means one per CPU
}

func DefaultOptions() Options {
	return Options{
		Limiter:       LimiterMC4,
		Riemann:       RiemannCGF,
		UseFlattening: true,
		Delta:         0.33,
		Z0:            0.75,
		Z1:            0.85,
		CVisc:         0.1,
		SmallP:        1.e-10,
	}
}

func (o Options) Validate() (err error) {
	finite := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ConfigError{Field: name, Value: v, Reason: "must be finite"}
		}
		return nil
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"Delta", o.Delta}, {"Z0", o.Z0}, {"Z1", o.Z1}, {"Gravity", o.Gravity}, {"CVisc", o.CVisc}, {"SmallP", o.SmallP}} {
		// Delta may be +Inf, which switches the shock detector off
		if f.name == "Delta" && math.IsInf(f.v, 1) {
			continue
		}
		if err = finite(f.name, f.v); err != nil {
			return
		}
	}
	switch {
	case o.Limiter > LimiterMC4:
		err = &ConfigError{Field: "Limiter", Value: o.Limiter, Reason: "unknown limiter"}
	case o.Riemann > RiemannHLLC:
		err = &ConfigError{Field: "Riemann", Value: o.Riemann, Reason: "unknown Riemann solver"}
	case o.CVisc < 0:
		err = &ConfigError{Field: "CVisc", Value: o.CVisc, Reason: "must be non-negative"}
	case !(o.SmallP > 0):
		err = &ConfigError{Field: "SmallP", Value: o.SmallP, Reason: "must be positive"}
	case o.UseFlattening && !(o.Z1 > o.Z0):
		err = &ConfigError{Field: "Z1", Value: o.Z1, Reason: fmt.Sprintf("must exceed Z0 = %v", o.Z0)}
	case o.ParallelDegree < 0:
		err = &ConfigError{Field: "ParallelDegree", Value: o.ParallelDegree, Reason: "must be non-negative"}
	}
	return
}

func (o Options) Print() {
	fmt.Printf("[%s]\t\t= Limiter\n", o.Limiter.Print())
	fmt.Printf("[%s]\t\t\t= Riemann Solver\n", o.Riemann.Print())
	fmt.Printf("%v\t\t\t= Flattening\n", o.UseFlattening)
	if o.UseFlattening {
		fmt.Printf("%8.5f, %8.5f, %8.5f\t= Delta, Z0, Z1\n", o.Delta, o.Z0, o.Z1)
	}
	fmt.Printf("%8.5f\t\t= Gravity\n", o.Gravity)
	fmt.Printf("%8.5f\t\t= Artificial Viscosity\n", o.CVisc)
	fmt.Printf("%8.3g\t\t= Pressure Floor\n", o.SmallP)
}
