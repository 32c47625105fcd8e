// Package catalog keeps a SQLite registry of engine runs known to mod6.
//
// A run is either an input document whose cases were executed in a work
// directory, or a directory of JSON outputs scanned without the input. Each
// registered run gets a UUID so commands can refer to it with --run instead
// of repeating paths. The registry stores locations only; output files stay
// where the engine wrote them and are resolved afresh on every use.
//
// Schema changes bump schemaVersion; users delete the database to adopt the
// new schema.
package catalog
