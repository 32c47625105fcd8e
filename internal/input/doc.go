// Package input models engine input documents: the case list, the
// FILEOPTIONS block that controls output naming, and the enumerations shared
// with output decoding.
//
// Only the sections that influence output files are typed. Every other
// section is carried as generic JSON so documents round-trip unchanged.
//
// Key types:
//   - Document, Case: the top-level {"MODTRAN": [...]} structure
//   - CaseInput, FileOptions: one case's MODTRANINPUT and its file options
//   - RTAlgorithm, RTExecutionMode, JSONPrintOpt, FileControl: option enums
//   - Builder: assembles templated cases with consistent file options
//
// Primary entry points:
//   - Read, ReadFile: parse (and optionally validate) a document
//   - NewBuilder: start a programmatic multi-case document
package input
