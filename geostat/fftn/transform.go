package fftn

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-geostat/geostat/grid"
)

// ErrLengthMismatch reports an array that does not match the planned shape.
var ErrLengthMismatch = errors.New("fftn: array length does not match shape")

// Transform holds per-axis FFT plans for one fixed N-dimensional shape.
//
// A Transform is reusable across any number of arrays of that shape. It is
// not safe for concurrent use; the underlying 1-D plans carry scratch
// buffers.
type Transform struct {
	shape   []int
	strides []int
	total   int
	plans   []*algofft.Plan[complex128]
}

// New plans an N-dimensional transform for shape.
func New(shape []int) (*Transform, error) {
	if err := grid.Validate(shape); err != nil {
		return nil, fmt.Errorf("fftn: %w", err)
	}

	t := &Transform{
		shape:   append([]int(nil), shape...),
		strides: grid.Strides(shape),
		total:   grid.ElementCount(shape),
		plans:   make([]*algofft.Plan[complex128], len(shape)),
	}

	// Axes of equal extent share one plan.
	bySize := make(map[int]*algofft.Plan[complex128], len(shape))
	for axis, n := range t.shape {
		if plan, ok := bySize[n]; ok {
			t.plans[axis] = plan
			continue
		}
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("fftn: failed to create FFT plan for axis %d (size %d): %w", axis, n, err)
		}
		bySize[n] = plan
		t.plans[axis] = plan
	}
	return t, nil
}

// Shape returns a copy of the planned shape.
func (t *Transform) Shape() []int {
	return append([]int(nil), t.shape...)
}

// Len returns the total element count of the planned shape.
func (t *Transform) Len() int {
	return t.total
}

// Forward computes the unnormalized forward N-dimensional FFT of src into
// dst. dst and src must both have the planned element count; they may alias.
func (t *Transform) Forward(dst, src []complex128) error {
	return t.transform(dst, src, false)
}

// Inverse computes the inverse N-dimensional FFT of src into dst, including
// the full 1/elementCount normalization. dst and src must both have the
// planned element count; they may alias.
func (t *Transform) Inverse(dst, src []complex128) error {
	return t.transform(dst, src, true)
}

func (t *Transform) transform(dst, src []complex128, inverse bool) error {
	if len(dst) != t.total || len(src) != t.total {
		return fmt.Errorf("%w: dst %d, src %d, want %d", ErrLengthMismatch, len(dst), len(src), t.total)
	}

	if &dst[0] != &src[0] {
		copy(dst, src)
	}

	// One in-place pass of strided 1-D transforms per axis.
	for axis, n := range t.shape {
		stride := t.strides[axis]
		block := n * stride
		plan := t.plans[axis]
		for outer := 0; outer < t.total; outer += block {
			for inner := 0; inner < stride; inner++ {
				line := dst[outer+inner:]
				if err := plan.TransformStrided(line, line, stride, inverse); err != nil {
					return fmt.Errorf("fftn: axis %d transform failed: %w", axis, err)
				}
			}
		}
	}
	return nil
}
