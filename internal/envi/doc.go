// Package envi reads ENVI spectral library (SLI) output: a text header
// describing a lines-by-samples matrix and a raw binary data file holding it.
//
// Each line of a spectral library is one named spectrum and each sample is
// one wavelength. Dataset reorganizes a library into one variable per
// spectrum name sharing a wavelength coordinate.
package envi
