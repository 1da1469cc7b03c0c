package field

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-geostat/geostat/covariance"
	"github.com/cwbudde/algo-geostat/geostat/grid"
	"github.com/cwbudde/algo-geostat/internal/testutil"
	"github.com/cwbudde/algo-geostat/stats/moments"
)

func mustGenerator(t *testing.T, shape []int, model covariance.Model, opts ...Option) *Generator {
	t.Helper()
	g, err := New(shape, model, opts...)
	if err != nil {
		t.Fatalf("New(%v) failed: %v", shape, err)
	}
	return g
}

func TestSimulateShapeLaw(t *testing.T) {
	model := covariance.Exponential{Sill: 1, Range: 2}
	tests := []struct {
		name  string
		shape []int
		opts  []Option
	}{
		{name: "1d periodic", shape: []int{17}, opts: []Option{WithPeriodic(), WithSeed(1)}},
		{name: "2d periodic", shape: []int{8, 8}, opts: []Option{WithPeriodic(), WithSeed(1)}},
		{name: "2d padded", shape: []int{10, 13}, opts: []Option{WithSeed(1)}},
		{name: "3d padded", shape: []int{5, 6, 7}, opts: []Option{WithSeed(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGenerator(t, tt.shape, model, tt.opts...)

			one, err := g.Simulate()
			if err != nil {
				t.Fatalf("Simulate failed: %v", err)
			}
			testutil.RequireShapeLen(t, one, tt.shape)
			testutil.RequireFinite(t, one)

			a, b, err := g.SimulatePair()
			if err != nil {
				t.Fatalf("SimulatePair failed: %v", err)
			}
			testutil.RequireShapeLen(t, a, tt.shape)
			testutil.RequireShapeLen(t, b, tt.shape)
			testutil.RequireFinite(t, a)
			testutil.RequireFinite(t, b)
		})
	}
}

func TestDeterminism(t *testing.T) {
	model := covariance.Exponential{Sill: 1, Range: 2}
	shape := []int{8, 8}

	g1 := mustGenerator(t, shape, model, WithPeriodic(), WithSeed(42))
	g2 := mustGenerator(t, shape, model, WithPeriodic(), WithSeed(42))

	for draw := 0; draw < 3; draw++ {
		a1, b1, err := g1.SimulatePair()
		if err != nil {
			t.Fatalf("SimulatePair failed: %v", err)
		}
		a2, b2, err := g2.SimulatePair()
		if err != nil {
			t.Fatalf("SimulatePair failed: %v", err)
		}
		testutil.RequireSliceNearlyEqual(t, a1, a2, 0)
		testutil.RequireSliceNearlyEqual(t, b1, b2, 0)
	}
}

func TestDeterminismAcrossModes(t *testing.T) {
	// Simulate consumes exactly the same stream as SimulatePair, so the
	// single-field draw must equal field A of the pair draw.
	model := covariance.Gaussian{Sill: 1, Range: 2}
	shape := []int{8, 8}

	g1 := mustGenerator(t, shape, model, WithPeriodic(), WithSeed(7))
	g2 := mustGenerator(t, shape, model, WithPeriodic(), WithSeed(7))

	one, err := g1.Simulate()
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	a, _, err := g2.SimulatePair()
	if err != nil {
		t.Fatalf("SimulatePair failed: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, one, a, 0)
}

func TestDrawCountAndLast(t *testing.T) {
	g := mustGenerator(t, []int{8}, covariance.Nugget{Sill: 1}, WithPeriodic(), WithSeed(3))

	if g.DrawCount() != 0 {
		t.Fatalf("DrawCount = %d before first draw, want 0", g.DrawCount())
	}
	if g.Last() != nil {
		t.Fatal("Last() non-nil before first draw")
	}

	first, err := g.Simulate()
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if g.DrawCount() != 1 {
		t.Fatalf("DrawCount = %d, want 1", g.DrawCount())
	}
	if &g.Last()[0] != &first[0] {
		t.Fatal("Last() does not reference the most recent realization")
	}

	if _, _, err := g.SimulatePair(); err != nil {
		t.Fatalf("SimulatePair failed: %v", err)
	}
	if g.DrawCount() != 2 {
		t.Fatalf("DrawCount = %d, want 2", g.DrawCount())
	}
}

func TestRealizationsAreFresh(t *testing.T) {
	g := mustGenerator(t, []int{8, 8}, covariance.Exponential{Sill: 1, Range: 2}, WithPeriodic(), WithSeed(5))

	a, err := g.Simulate()
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	b, err := g.Simulate()
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if &a[0] == &b[0] {
		t.Fatal("consecutive realizations share backing memory")
	}
}

func TestEmpiricalVarianceMatchesSill(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}

	sill := 1.0
	g := mustGenerator(t, []int{32, 32}, covariance.Exponential{Sill: sill, Range: 2}, WithPeriodic(), WithSeed(11))

	const draws = 150
	sum := 0.0
	for i := 0; i < draws; i++ {
		a, b, err := g.SimulatePair()
		if err != nil {
			t.Fatalf("SimulatePair failed: %v", err)
		}
		sum += moments.Calculate(a).Variance
		sum += moments.Calculate(b).Variance
	}
	meanVar := sum / (2 * draws)
	if math.Abs(meanVar-sill) > 0.05 {
		t.Fatalf("mean empirical variance = %v, want ~%v", meanVar, sill)
	}
}

func TestEmpiricalCovarianceMatchesModel(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}

	model := covariance.Exponential{Sill: 1, Range: 2}
	shape := []int{32, 32}
	g := mustGenerator(t, shape, model, WithPeriodic(), WithSeed(13))

	lags := [][]int{{0, 1}, {1, 0}, {2, 0}, {0, 4}}
	const draws = 300
	sums := make([]float64, len(lags))
	for i := 0; i < draws; i++ {
		a, b, err := g.SimulatePair()
		if err != nil {
			t.Fatalf("SimulatePair failed: %v", err)
		}
		for j, lag := range lags {
			ca, err := moments.LagCovariance(a, shape, lag)
			if err != nil {
				t.Fatalf("LagCovariance failed: %v", err)
			}
			cb, err := moments.LagCovariance(b, shape, lag)
			if err != nil {
				t.Fatalf("LagCovariance failed: %v", err)
			}
			sums[j] += ca + cb
		}
	}

	for j, lag := range lags {
		dist := math.Sqrt(float64(lag[0]*lag[0] + lag[1]*lag[1]))
		want := model.Covariance(dist)
		got := sums[j] / (2 * draws)
		if math.Abs(got-want) > 0.07 {
			t.Fatalf("lag %v: empirical covariance = %v, want ~%v", lag, got, want)
		}
	}
}

func TestPairFieldsAreUncorrelated(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}

	g := mustGenerator(t, []int{32, 32}, covariance.Exponential{Sill: 1, Range: 2}, WithPeriodic(), WithSeed(17))

	const draws = 100
	sum := 0.0
	for i := 0; i < draws; i++ {
		a, b, err := g.SimulatePair()
		if err != nil {
			t.Fatalf("SimulatePair failed: %v", err)
		}
		r, err := moments.Correlation(a, b)
		if err != nil {
			t.Fatalf("Correlation failed: %v", err)
		}
		sum += r
	}
	meanCorr := sum / draws
	if math.Abs(meanCorr) > 0.05 {
		t.Fatalf("mean cross-correlation = %v, want ~0", meanCorr)
	}
}

func TestCroppedFieldMatchesPaddedRegion(t *testing.T) {
	// A padded generator and the crop utility must agree: synthesizing with
	// the same seed on the padded torus and cropping by hand reproduces the
	// non-periodic output.
	model := covariance.Exponential{Sill: 1, Range: 2}
	shape := []int{10, 10}

	g := mustGenerator(t, shape, model, WithSeed(23))
	padded := g.PaddedSize()

	gFull := mustGenerator(t, padded, model, WithPeriodic(), WithSeed(23))
	testutil.RequireIntSliceEqual(t, gFull.PaddedSize(), padded)

	got, err := g.Simulate()
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	full, err := gFull.Simulate()
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	want, err := grid.Crop(full, padded, shape)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}
