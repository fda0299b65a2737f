// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

import "math"

// boundCount aggregates how many entries of a bound pair are active.
type boundCount struct {
	low, upp int64
	// lowUpp counts entries bounded on both sides.
	lowUpp int64
}

// finiteLow reports whether b encodes an actual lower bound.
func finiteLow(b float64) bool { return b > -Infinity && math.Abs(b) < Infinity }

// finiteUpp reports whether b encodes an actual upper bound.
func finiteUpp(b float64) bool { return b < Infinity && math.Abs(b) < Infinity }

// classifyBounds derives the 0/1 finiteness indicators for a pair of bound
// vectors and counts the active bounds. A bound is free exactly when its
// magnitude meets or exceeds the Infinity sentinel. Classification is local
// to the slice it is handed: on distributed problems the caller reduces the
// counts across ranks. Malformed bounds (NaN, lower above upper) are a
// caller contract violation and are not detected here.
func classifyBounds(lower, upper, indLow, indUpp []float64) boundCount {
	if len(lower) != len(upper) || len(lower) != len(indLow) || len(lower) != len(indUpp) {
		panic("bound check error")
	}
	var c boundCount
	for i, lo := range lower {
		l, u := finiteLow(lo), finiteUpp(upper[i])
		indLow[i], indUpp[i] = 0, 0
		if l {
			indLow[i] = 1
			c.low++
		}
		if u {
			indUpp[i] = 1
			c.upp++
		}
		if l && u {
			c.lowUpp++
		}
	}
	return c
}
