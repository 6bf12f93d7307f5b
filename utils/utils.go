// Package utils implements small generic helpers shared across the library.
package utils

import (
	"golang.org/x/exp/constraints"
)

// Min returns the minimum of x and y.
func Min[T constraints.Ordered](x, y T) T {
	if x > y {
		return y
	}

	return x
}

// Max returns the maximum of x and y.
func Max[T constraints.Ordered](x, y T) T {
	if x < y {
		return y
	}

	return x
}

// Alias1D returns true if x and y share the same base array.
// Taken from http://golang.org/src/pkg/math/big/nat.go#L340 .
func Alias1D[V any](x, y []V) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}
