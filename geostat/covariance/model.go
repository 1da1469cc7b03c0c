package covariance

import (
	"errors"
	"fmt"
	"math"
)

// Package-level errors for model contract violations.
var (
	ErrLengthMismatch = errors.New("covariance: buffer length mismatch")
	ErrNilModel       = errors.New("covariance: nil model")
)

// Model is a stationary covariance model: covariance as a pure function of
// lag distance.
type Model interface {
	// Covariance returns the covariance value at lag distance h >= 0.
	Covariance(h float64) float64

	// EffectiveRange returns the distance beyond which correlation is
	// negligible. Domain padding is sized from this value; models with
	// compact support return their exact range.
	EffectiveRange() float64
}

// Covariogram evaluates model element-wise over the lag array h into dst.
// dst and h must have the same length.
func Covariogram(dst, h []float64, model Model) error {
	if model == nil {
		return ErrNilModel
	}
	if len(dst) != len(h) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(dst), len(h))
	}
	for i, lag := range h {
		dst[i] = model.Covariance(lag)
	}
	return nil
}

// Exponential is the exponential model sill*exp(-h/range). Correlation
// decays below 5% at three times the range parameter, which is reported as
// the effective range.
type Exponential struct {
	Sill  float64
	Range float64
}

// Covariance returns the model value at lag h.
func (m Exponential) Covariance(h float64) float64 {
	return m.Sill * math.Exp(-h/m.Range)
}

// EffectiveRange returns the practical range 3*Range.
func (m Exponential) EffectiveRange() float64 {
	return 3 * m.Range
}

// Gaussian is the Gaussian model sill*exp(-(h/range)^2), with practical
// range sqrt(3)*Range.
type Gaussian struct {
	Sill  float64
	Range float64
}

// Covariance returns the model value at lag h.
func (m Gaussian) Covariance(h float64) float64 {
	r := h / m.Range
	return m.Sill * math.Exp(-r*r)
}

// EffectiveRange returns the practical range sqrt(3)*Range.
func (m Gaussian) EffectiveRange() float64 {
	return math.Sqrt(3) * m.Range
}

// Spherical is the spherical model with compact support: the covariance
// reaches exactly zero at lag Range and stays there.
type Spherical struct {
	Sill  float64
	Range float64
}

// Covariance returns the model value at lag h.
func (m Spherical) Covariance(h float64) float64 {
	if h >= m.Range {
		return 0
	}
	r := h / m.Range
	return m.Sill * (1 - 1.5*r + 0.5*r*r*r)
}

// EffectiveRange returns the exact support range.
func (m Spherical) EffectiveRange() float64 {
	return m.Range
}

// Nugget is the pure nugget-effect model: full sill at zero lag, zero
// covariance everywhere else. Its discrete spectrum is exactly flat, which
// makes it the reference model for spectral tests.
type Nugget struct {
	Sill float64
}

// Covariance returns Sill at zero lag and 0 elsewhere.
func (m Nugget) Covariance(h float64) float64 {
	if h == 0 {
		return m.Sill
	}
	return 0
}

// EffectiveRange returns 0; a nugget needs no padding.
func (m Nugget) EffectiveRange() float64 {
	return 0
}

// Sum nests models additively: covariances add, and the effective range is
// the maximum over all parts.
type Sum []Model

// Covariance returns the summed model value at lag h.
func (s Sum) Covariance(h float64) float64 {
	total := 0.0
	for _, m := range s {
		total += m.Covariance(h)
	}
	return total
}

// EffectiveRange returns the maximum effective range over all parts.
func (s Sum) EffectiveRange() float64 {
	maxRange := 0.0
	for _, m := range s {
		if r := m.EffectiveRange(); r > maxRange {
			maxRange = r
		}
	}
	return maxRange
}
