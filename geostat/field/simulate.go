package field

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-geostat/geostat/grid"
)

// Simulate draws one new realization of the field.
//
// The returned array is shaped like DomainSize in row-major order and is
// freshly allocated on every call; the generator keeps no reference to it
// beyond [Generator.Last]. The call advances the noise stream and the draw
// counter but leaves all constructed state untouched.
func (g *Generator) Simulate() ([]float64, error) {
	a, _, err := g.simulate(false)
	if err != nil {
		return nil, err
	}
	g.last = a
	return a, nil
}

// SimulatePair draws two independent realizations from a single inverse
// transform.
//
// The real and imaginary parts of one complex noise draw yield two
// uncorrelated fields with the same target covariance, so a pair costs the
// same transform work as a single field. Both arrays are shaped like
// DomainSize and freshly allocated.
func (g *Generator) SimulatePair() ([]float64, []float64, error) {
	a, b, err := g.simulate(true)
	if err != nil {
		return nil, nil, err
	}
	g.last = a
	return a, b, nil
}

// simulate is the shared noise-shaping core: complex white noise scaled by
// the spectral standard deviation, inverse-transformed, rescaled by the
// element count, and cropped for non-periodic output. The imaginary part is
// materialized only when pair is set.
func (g *Generator) simulate(pair bool) ([]float64, []float64, error) {
	g.drawCount++

	total := len(g.stddev)
	g.noise.Fill(g.re)
	g.noise.Fill(g.im)
	vecmath.MulBlockInPlace(g.re, g.stddev)
	vecmath.MulBlockInPlace(g.im, g.stddev)
	for i := range g.eps {
		g.eps[i] = complex(g.re[i], g.im[i])
	}

	if err := g.transform.Inverse(g.eps, g.eps); err != nil {
		return nil, nil, fmt.Errorf("field: %w", err)
	}

	// The inverse transform carries a 1/elementCount normalization that the
	// spectral construction already accounted for; undo it here.
	scale := float64(total)

	a := make([]float64, total)
	for i, c := range g.eps {
		a[i] = real(c) * scale
	}
	var b []float64
	if pair {
		b = make([]float64, total)
		for i, c := range g.eps {
			b[i] = imag(c) * scale
		}
	}

	if g.periodic {
		return a, b, nil
	}

	cropped, err := grid.Crop(a, g.paddedSize, g.domainSize)
	if err != nil {
		return nil, nil, fmt.Errorf("field: %w", err)
	}
	a = cropped
	if pair {
		cropped, err = grid.Crop(b, g.paddedSize, g.domainSize)
		if err != nil {
			return nil, nil, fmt.Errorf("field: %w", err)
		}
		b = cropped
	}
	return a, b, nil
}
