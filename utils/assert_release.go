//go:build !debug

package utils

const Debug = false
