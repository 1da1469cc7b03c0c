// Package moments provides one-pass moment statistics and empirical
// covariance estimators for field realizations.
//
// Calculate runs a single Welford pass for numerically stable higher-order
// moments. The covariance estimators treat a realization as a flat
// row-major array over its grid shape and wrap lags toroidally, matching
// the periodic synthesis domain.
package moments
