// Package record decodes fixed-size little-endian binary records into
// columnar tables.
//
// Record formats are described declaratively with a Layout: an ordered list of
// 32-bit fields, some of which are internal (record markers, padding) and are
// hidden from consumers once validated. Every public field of a decoded Table
// is addressable by name.
//
// Key types:
//   - Layout, Field: static record descriptors
//   - Table: decoded rows, stored as raw 32-bit words per column
//   - FormatError: a violated expectation about the input bytes
//
// Primary entry point:
//   - Decode: unpacks every record following a fixed-size header
package record
