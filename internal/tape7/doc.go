// Package tape7 decodes the legacy binary spectral output file (tape7).
//
// A tape7 binary file holds one of three record layouts. The layout is not
// named in the file; it is inferred from the low byte of the first record
// marker, which sits at a fixed offset after the header and equals the
// record payload length.
//
// Key types:
//   - Kind: transmittance, full radiance, or thermal-only radiance
//   - Spectra: decoded records tagged with their Kind
//
// Primary entry points:
//   - Decode: decode an in-memory buffer
//   - Read: decode a file
package tape7
