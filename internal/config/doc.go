// Package config loads, normalizes, and validates mod6 configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts),
// reads TOML files, and honours environment fallbacks such as MODTRAN_EXE
// and MODTRAN_DATA. An engine env file, as written by the engine installer,
// may supply both instead.
//
// Always obtain settings through this package so commands receive absolute
// paths, canonical log formats, and clear validation errors.
package config
