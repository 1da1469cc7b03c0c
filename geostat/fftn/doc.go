// Package fftn provides N-dimensional Fourier transforms over flat
// row-major complex arrays.
//
// The transform is composed axis by axis from 1-D strided plans of
// github.com/MeKo-Christian/algo-fft. The forward transform is unnormalized; the
// inverse applies the 1/n factor of every axis pass, so a forward/inverse
// round trip recovers the input exactly and the composed inverse carries a
// total 1/elementCount normalization.
package fftn
