// Package field synthesizes stationary Gaussian random fields on regular
// N-dimensional grids via circulant embedding.
//
// A [Generator] is built once for a grid shape and a covariance model. At
// construction it pads the domain beyond the model's effective range (unless
// the output is periodic), discretizes the covariance on a toroidal lag grid,
// and takes the square root of its Fourier spectrum to obtain a per-frequency
// standard deviation. Each call to [Generator.Simulate] or
// [Generator.SimulatePair] then shapes fresh white noise by that spectrum and
// inverse-transforms it into one or two independent realizations.
//
// The spectral method costs one forward transform at construction and one
// inverse transform per draw, instead of factorizing a dense covariance
// matrix. A complex noise vector yields two uncorrelated real fields from a
// single inverse transform, which is what SimulatePair exposes.
//
// A Generator owns its random stream and scratch buffers exclusively; it is
// not safe for concurrent use without external synchronization.
package field
