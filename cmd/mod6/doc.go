// Command mod6 inspects the outputs of radiative transfer engine runs.
//
// It resolves where each case of a run wrote its files, decodes the binary
// and text outputs, checks that the different encodings of a case agree, and
// keeps a catalog of known runs so they can be referred to by ID.
package main
