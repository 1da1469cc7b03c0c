// Package grid provides shape arithmetic and lag-distance grids for regular
// N-dimensional domains.
//
// A shape is an ordered slice of positive extents, one per dimension, and all
// arrays derived from it are stored flat in row-major order (the last axis
// varies fastest). The central primitive is [ToroidalLag], which builds the
// wrap-around lag-distance array used to discretize a stationary covariance
// model on a periodic domain.
package grid
