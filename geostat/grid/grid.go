package grid

import (
	"errors"
	"fmt"
	"math"
)

// Package-level errors for shape contract violations.
var (
	ErrEmptyShape   = errors.New("grid: empty shape")
	ErrInvalidShape = errors.New("grid: shape extents must be positive")
)

// Validate checks that shape has at least one dimension and only positive
// extents.
func Validate(shape []int) error {
	if len(shape) == 0 {
		return ErrEmptyShape
	}
	for i, n := range shape {
		if n <= 0 {
			return fmt.Errorf("%w: axis %d has extent %d", ErrInvalidShape, i, n)
		}
	}
	return nil
}

// ElementCount returns the total number of grid cells, the product of all
// extents. Returns 0 for an empty shape.
func ElementCount(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

// Strides returns the row-major strides of shape: the distance in flat
// elements between neighbors along each axis. The last axis has stride 1.
func Strides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// Unravel converts a flat row-major index into per-axis coordinates,
// written into coord. coord must have the same length as shape.
func Unravel(index int, shape, coord []int) {
	for i := len(shape) - 1; i >= 0; i-- {
		coord[i] = index % shape[i]
		index /= shape[i]
	}
}

// ToroidalLag builds the wrap-around lag-distance array for shape.
//
// Each coordinate c along an axis of extent n is replaced by its toroidal
// distance to the origin, min(c, n-c), and the returned value is the
// Euclidean norm of those wrapped coordinates. The result has one entry per
// grid cell in row-major order and is symmetric under the wrap-around
// mapping along every axis.
func ToroidalLag(shape []int) ([]float64, error) {
	if err := Validate(shape); err != nil {
		return nil, err
	}

	total := ElementCount(shape)
	out := make([]float64, total)
	coord := make([]int, len(shape))
	for idx := range out {
		Unravel(idx, shape, coord)
		sum := 0.0
		for d, c := range coord {
			w := c
			if wrapped := shape[d] - c; wrapped < w {
				w = wrapped
			}
			fw := float64(w)
			sum += fw * fw
		}
		out[idx] = math.Sqrt(sum)
	}
	return out, nil
}

// Crop extracts the leading sub-block of extent to from a flat row-major
// array of extent from, returning a new flat array of shape to.
//
// to must not exceed from along any axis. The entry order of the result is
// row-major over to.
func Crop(src []float64, from, to []int) ([]float64, error) {
	if err := Validate(from); err != nil {
		return nil, err
	}
	if err := Validate(to); err != nil {
		return nil, err
	}
	if len(from) != len(to) {
		return nil, fmt.Errorf("%w: rank mismatch %d != %d", ErrInvalidShape, len(from), len(to))
	}
	for i := range from {
		if to[i] > from[i] {
			return nil, fmt.Errorf("%w: crop extent %d exceeds source extent %d on axis %d", ErrInvalidShape, to[i], from[i], i)
		}
	}
	if len(src) != ElementCount(from) {
		return nil, fmt.Errorf("%w: source length %d does not match shape", ErrInvalidShape, len(src))
	}

	srcStrides := Strides(from)
	out := make([]float64, ElementCount(to))
	coord := make([]int, len(to))
	for idx := range out {
		Unravel(idx, to, coord)
		srcIdx := 0
		for d, c := range coord {
			srcIdx += c * srcStrides[d]
		}
		out[idx] = src[srcIdx]
	}
	return out, nil
}

// Coordinates returns the integer coordinate tuple of every grid cell of
// shape in row-major order. Useful for plotting realizations against their
// cell positions.
func Coordinates(shape []int) ([][]int, error) {
	if err := Validate(shape); err != nil {
		return nil, err
	}
	total := ElementCount(shape)
	out := make([][]int, total)
	backing := make([]int, total*len(shape))
	for idx := range out {
		coord := backing[idx*len(shape) : (idx+1)*len(shape)]
		Unravel(idx, shape, coord)
		out[idx] = coord
	}
	return out, nil
}
