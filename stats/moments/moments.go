package moments

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-geostat/geostat/grid"
)

// Package-level errors for estimator contract violations.
var (
	ErrEmptyInput     = errors.New("moments: empty input")
	ErrLengthMismatch = errors.New("moments: input length mismatch")
)

// Stats holds one-pass moment statistics of a realization.
type Stats struct {
	Length   int
	Mean     float64
	Variance float64 // population variance (divide by n)
	StdDev   float64
	Min      float64
	Max      float64
	Skewness float64
	Kurtosis float64 // excess kurtosis; 0 for a Gaussian
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm for numerical stability on higher-order moments.
func Calculate(data []float64) Stats {
	n := len(data)
	if n == 0 {
		return Stats{}
	}

	var (
		mean float64
		m2   float64
		m3   float64
		m4   float64
	)
	minVal := data[0]
	maxVal := data[0]

	for i, x := range data {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		if x < minVal {
			minVal = x
		}
		if x > maxVal {
			maxVal = x
		}
	}

	variance := m2 / float64(n)
	stddev := math.Sqrt(variance)

	s := Stats{
		Length:   n,
		Mean:     mean,
		Variance: variance,
		StdDev:   stddev,
		Min:      minVal,
		Max:      maxVal,
	}
	if variance > 0 {
		s.Skewness = math.Sqrt(float64(n)) * m3 / math.Pow(m2, 1.5)
		s.Kurtosis = float64(n)*m4/(m2*m2) - 3
	}
	return s
}

// Covariance returns the sample covariance of a and b (normalized by n).
func Covariance(a, b []float64) (float64, error) {
	if len(a) == 0 {
		return 0, ErrEmptyInput
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}

	meanA := Calculate(a).Mean
	meanB := Calculate(b).Mean
	sum := 0.0
	for i := range a {
		sum += (a[i] - meanA) * (b[i] - meanB)
	}
	return sum / float64(len(a)), nil
}

// Correlation returns the Pearson correlation coefficient of a and b, in
// [-1, 1]. Returns 0 when either input has zero variance.
func Correlation(a, b []float64) (float64, error) {
	cov, err := Covariance(a, b)
	if err != nil {
		return 0, err
	}
	sa := Calculate(a).StdDev
	sb := Calculate(b).StdDev
	if sa == 0 || sb == 0 {
		return 0, nil
	}
	return cov / (sa * sb), nil
}

// LagCovariance returns the empirical covariance of a realization with a
// toroidally shifted copy of itself: cov(x[c], x[c+lag]) averaged over all
// cells c, with the shift wrapping at the grid boundary.
//
// data must be a flat row-major array over shape, and lag must have one
// entry per axis.
func LagCovariance(data []float64, shape, lag []int) (float64, error) {
	if err := grid.Validate(shape); err != nil {
		return 0, fmt.Errorf("moments: %w", err)
	}
	total := grid.ElementCount(shape)
	if len(data) != total {
		return 0, fmt.Errorf("%w: data %d, shape wants %d", ErrLengthMismatch, len(data), total)
	}
	if len(lag) != len(shape) {
		return 0, fmt.Errorf("%w: lag rank %d, shape rank %d", ErrLengthMismatch, len(lag), len(shape))
	}

	mean := Calculate(data).Mean
	strides := grid.Strides(shape)
	coord := make([]int, len(shape))

	sum := 0.0
	for idx := range data {
		grid.Unravel(idx, shape, coord)
		shifted := 0
		for d, c := range coord {
			s := (c + lag[d]) % shape[d]
			if s < 0 {
				s += shape[d]
			}
			shifted += s * strides[d]
		}
		sum += (data[idx] - mean) * (data[shifted] - mean)
	}
	return sum / float64(total), nil
}
