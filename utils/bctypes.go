package utils

import (
	"fmt"
	"strings"
)

// BCType names the ghost cell treatment applied along one side of a patch
type BCType uint8

const (
	BCNone     BCType = iota // Ghosts are left as they are
	BCOutflow                // Zero gradient
	BCPeriodic               // Wrap to the opposite side
	BCReflect                // Mirror, odd in the normal velocity (slip wall)
)

// String returns the string representation of a BCType
func (bc BCType) String() string {
	names := map[BCType]string{
		BCNone:     "None",
		BCOutflow:  "Outflow",
		BCPeriodic: "Periodic",
		BCReflect:  "Reflect",
	}
	if name, ok := names[bc]; ok {
		return name
	}
	return "Unknown"
}

// BCNameMap provides a mapping from common boundary condition names to BCType
// Keys are lowercase for case-insensitive matching
var BCNameMap = map[string]BCType{
	"none": BCNone,

	"outflow": BCOutflow,
	"outlet":  BCOutflow,
	"exit":    BCOutflow,

	"periodic": BCPeriodic,

	"reflect":       BCReflect,
	"reflect-odd":   BCReflect,
	"slip":          BCReflect,
	"slip_wall":     BCReflect,
	"inviscid_wall": BCReflect,
	"wall":          BCReflect,
	"symmetry":      BCReflect,
}

// ParseBCName converts a boundary condition name string to BCType
// The matching is case-insensitive and trims whitespace
func ParseBCName(name string) (bc BCType, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown boundary condition %q", name)
	}
	return
}
