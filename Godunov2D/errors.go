package Godunov2D

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrDensity     = errors.New("density must be positive and finite")
	ErrEnergy      = errors.New("total energy must be positive and finite")
	ErrPressure    = errors.New("pressure is not finite")
	ErrSoundSpeed  = errors.New("sound speed must be positive and finite")
	ErrNonFiniteFx = errors.New("flux is not finite")
)

// ConfigError reports an option or argument rejected before any grid work
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s = %v: %s", e.Field, e.Value, e.Reason)
}

// StateError reports a cell or interface whose state breaks a physical
// invariant, or where the EOS failed. I, J are absolute grid indices.
type StateError struct {
	Stage  string
	I, J   int
	Values map[string]float64
	Err    error
}

func (e *StateError) Error() string {
	var (
		keys = make([]string, 0, len(e.Values))
		vals = make([]string, 0, len(e.Values))
	)
	for k := range e.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		vals = append(vals, fmt.Sprintf("%s = %v", k, e.Values[k]))
	}
	return fmt.Sprintf("%s: bad state at (%d,%d) [%s]: %v",
		e.Stage, e.I, e.J, strings.Join(vals, ", "), e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }
