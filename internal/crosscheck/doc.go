// Package crosscheck compares the same physical quantities decoded from the
// engine's different output encodings.
//
// The engine writes one result in up to four encodings: ACD text and binary,
// tape7 binary, ENVI spectral library and JSON. Each comparison walks the
// shared columns and returns a *Mismatch for the first value outside the
// tolerance. Run applies every comparison whose inputs exist to each case of
// a run, concurrently.
package crosscheck
