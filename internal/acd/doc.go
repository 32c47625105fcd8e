// Package acd decodes atmospheric correction data (ACD) output in its text
// and binary forms.
//
// The binary form starts with an 11-word header whose fourth word is the
// number of correlated-k sub-bands per spectral point, which identifies the
// band model the engine ran with. Each record is framed by Fortran record
// markers. The text form carries the same nine columns after a five-line
// header, rounded to four decimal places.
//
// Primary entry points:
//   - DecodeBinary, ReadBinary: binary records plus the k-index count
//   - DecodeText, ReadText: text records
package acd
