//go:build debug

package utils

// Debug enables the invariant checks in Assert and the bounds checks on
// ghost-aware arrays. Build with -tags debug to turn them on.
const Debug = true
