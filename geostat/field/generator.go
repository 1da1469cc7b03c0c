package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-geostat/geostat/covariance"
	"github.com/cwbudde/algo-geostat/geostat/fftn"
	"github.com/cwbudde/algo-geostat/geostat/grid"
)

// Padded extents are rounded up to a multiple of this for transform
// efficiency.
const paddingMultiple = 8

// Package-level errors for configuration failures. All of them surface at
// construction; synthesis itself has no failure modes beyond the transform
// backend.
var (
	ErrNilModel     = errors.New("field: nil covariance model")
	ErrInvalidRange = errors.New("field: covariance model effective range must be finite and >= 0")
)

// Generator produces realizations of a stationary Gaussian random field
// with a given covariance model on a regular N-dimensional grid.
//
// All derived state (padding, spectral standard deviation, transform plans)
// is computed once by [New] and never mutated afterwards; only the random
// stream and the draw counter advance between calls.
type Generator struct {
	domainSize []int
	paddedSize []int
	cutoff     []int
	model      covariance.Model
	periodic   bool

	stddev    []float64 // per-frequency standard deviation, len = padded element count
	transform *fftn.Transform
	noise     *normalSource
	seed      int64
	drawCount uint64
	last      []float64

	// Per-draw scratch, reused across calls.
	re  []float64
	im  []float64
	eps []complex128
}

// Option configures a Generator before construction runs.
type Option func(*config)

type config struct {
	periodic bool
	seed     int64
	seedSet  bool
}

// WithPeriodic makes the output periodic: no padding is added and
// realizations wrap around at the domain boundary.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// WithSeed sets a deterministic seed for the noise stream. Generators built
// with the same configuration and seed reproduce identical draw sequences.
// Without this option the seed is taken from the OS entropy source.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.seedSet = true
	}
}

// New builds a Generator for the requested grid shape and covariance model.
//
// domainSize must have at least one dimension with all-positive extents.
// Construction runs the whole spectral pipeline: domain padding, toroidal
// lag grid, covariance discretization, and the forward transform whose
// magnitude square root becomes the synthesis spectrum. Model or shape
// problems surface here and are fatal; they are never retried.
func New(domainSize []int, model covariance.Model, opts ...Option) (*Generator, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if err := grid.Validate(domainSize); err != nil {
		return nil, fmt.Errorf("field: %w", err)
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	g := &Generator{
		domainSize: append([]int(nil), domainSize...),
		model:      model,
		periodic:   cfg.periodic,
	}

	if err := g.pad(); err != nil {
		return nil, err
	}
	if err := g.buildSpectrum(); err != nil {
		return nil, err
	}

	seed := cfg.seed
	if !cfg.seedSet {
		s, err := entropySeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}
	g.seed = seed
	g.noise = newNormalSource(seed)

	total := len(g.stddev)
	g.re = make([]float64, total)
	g.im = make([]float64, total)
	g.eps = make([]complex128, total)

	return g, nil
}

// pad computes cutoff and paddedSize. Periodic output needs no padding;
// otherwise each extent grows past the model's effective range and is
// rounded up to a multiple of 8.
func (g *Generator) pad() error {
	dims := len(g.domainSize)
	g.cutoff = make([]int, dims)
	g.paddedSize = make([]int, dims)

	if g.periodic {
		copy(g.paddedSize, g.domainSize)
		return nil
	}

	maxRange := g.model.EffectiveRange()
	if math.IsNaN(maxRange) || math.IsInf(maxRange, 0) || maxRange < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidRange, maxRange)
	}

	for i, n := range g.domainSize {
		target := float64(n) + maxRange
		padded := paddingMultiple * int(math.Ceil(target/paddingMultiple))
		g.cutoff[i] = padded - n
		g.paddedSize[i] = padded
	}
	return nil
}

// buildSpectrum discretizes the covariance model on the toroidal lag grid
// and converts its Fourier spectrum into the per-frequency standard
// deviation used for synthesis.
func (g *Generator) buildSpectrum() error {
	h, err := grid.ToroidalLag(g.paddedSize)
	if err != nil {
		return fmt.Errorf("field: %w", err)
	}
	total := len(h)

	q := make([]float64, total)
	if err := covariance.Covariogram(q, h, g.model); err != nil {
		return fmt.Errorf("field: %w", err)
	}

	g.transform, err = fftn.New(g.paddedSize)
	if err != nil {
		return fmt.Errorf("field: %w", err)
	}

	buf := make([]complex128, total)
	for i, v := range q {
		buf[i] = complex(v, 0)
	}
	if err := g.transform.Forward(buf, buf); err != nil {
		return fmt.Errorf("field: %w", err)
	}

	// The spectrum of a real, wrap-symmetric covariance is real and
	// non-negative up to rounding noise; the magnitude clamps that noise
	// away before the square root.
	re := make([]float64, total)
	im := make([]float64, total)
	for i, c := range buf {
		re[i] = real(c)
		im[i] = imag(c)
	}
	power := make([]float64, total)
	vecmath.Magnitude(power, re, im)

	g.stddev = make([]float64, total)
	inv := 1 / float64(total)
	for i, s := range power {
		g.stddev[i] = math.Sqrt(s * inv)
	}
	return nil
}

// DomainSize returns a copy of the requested grid shape.
func (g *Generator) DomainSize() []int {
	return append([]int(nil), g.domainSize...)
}

// PaddedSize returns a copy of the internal (padded) grid shape. It equals
// DomainSize for periodic generators.
func (g *Generator) PaddedSize() []int {
	return append([]int(nil), g.paddedSize...)
}

// Cutoff returns a copy of the per-axis padding, PaddedSize - DomainSize.
func (g *Generator) Cutoff() []int {
	return append([]int(nil), g.cutoff...)
}

// Periodic reports whether realizations wrap at the domain boundary.
func (g *Generator) Periodic() bool {
	return g.periodic
}

// Seed returns the seed driving the noise stream. For generators built
// without [WithSeed] this is the entropy-derived value, so a run can be
// reproduced after the fact.
func (g *Generator) Seed() int64 {
	return g.seed
}

// DrawCount returns the number of synthesis calls made so far.
func (g *Generator) DrawCount() uint64 {
	return g.drawCount
}

// SpectralStdDev returns a copy of the per-frequency standard deviation
// array, shaped like PaddedSize in row-major order. All entries are >= 0.
func (g *Generator) SpectralStdDev() []float64 {
	return append([]float64(nil), g.stddev...)
}

// Last returns the most recent realization (the real-part field), or nil
// before the first draw. The slice is the one previously returned to the
// caller, kept only as a convenience.
func (g *Generator) Last() []float64 {
	return g.last
}
