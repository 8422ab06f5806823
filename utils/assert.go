package utils

import "fmt"

// Assert panics with the formatted message when cond is false. Callers guard
// it with Debug so the check and its arguments vanish from release builds:
//
//	if utils.Debug {
//		utils.Assert(rho > 0, "rho = %v at (%d,%d)", rho, i, j)
//	}
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}
