// Package covariance provides stationary spatial covariance models.
//
// A [Model] describes the expected covariance between two points as a pure
// function of their separation distance (lag). The field synthesis core
// consumes models through this narrow contract only: element-wise evaluation
// over a lag array and a single effective-range lookup used to size domain
// padding. Any implementation of [Model] can be substituted without touching
// the synthesis pipeline.
//
// The package ships the classic variogram-derived models (exponential,
// spherical, Gaussian, nugget), additive nesting via [Sum], and [Parse] for
// the compact textual form used by geostatistical tooling:
//
//	"1.0 Exp(2.0)"
//	"0.7 Sph(10.0) + 0.3 Nug(0.0)"
package covariance
