// Package outputs resolves where the engine writes each output artifact of a
// case and navigates those locations across every case of a run.
//
// Resolution is pure string manipulation: nothing here touches the
// filesystem except CaseFiles.Existing and the directory scan in LoadDir.
// Paths for artifacts a case did not request resolve to sentinel names that
// never exist on disk.
//
// Key types:
//   - CaseFiles: the resolved output paths of one case
//   - Artifact: a named output artifact kind, enumerated by Artifacts
//   - Files: an indexable, lazily resolved view over every case of a run
//
// Primary entry points:
//   - NewCaseFiles: resolve one case
//   - New, Load, LoadDir: build a Files view from a document, an input file,
//     or a directory of per-case JSON output files
package outputs
