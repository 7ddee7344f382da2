// SPDX-License-Identifier: EPL-2.0

package utils

// Float is the sample type accepted by the interpolation helpers.
type Float interface {
	~float32 | ~float64
}

// CubicInterpolate evaluates the Catmull-Rom spline through four consecutive
// samples at fractional position x in [0, 1] between y1 and y2.
func CubicInterpolate[T Float](y0, y1, y2, y3, x T) T {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*x+a1)*x+a2)*x + a3
}

// SampleAt reads data at a fractional index with cubic interpolation.
// Positions outside the slice read as silence.
func SampleAt[T Float](data []T, pos T) T {
	i := int(pos)
	if pos < 0 {
		i-- // floor for negative positions
	}
	frac := pos - T(i)

	return CubicInterpolate(at(data, i-1), at(data, i), at(data, i+1), at(data, i+2), frac)
}

func at[T Float](data []T, i int) T {
	if i < 0 || i >= len(data) {
		return 0
	}
	return data[i]
}
