// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package fixedpoint converts the 16.16 fixed-point values the drawing
// property format uses for fractional quantities (gradient stop
// positions, relative offsets).
package fixedpoint

import "math"

const one = 1 << 16

// ToFloat interprets raw as a signed 16.16 fixed-point value.
func ToFloat(raw uint32) float64 {
	return float64(int32(raw)) / one
}

// FromFloat encodes f as a signed 16.16 fixed-point value, rounding to
// the nearest representable fraction.
func FromFloat(f float64) uint32 {
	return uint32(int32(math.Round(f * one)))
}
