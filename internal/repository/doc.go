// Package repository defines the save journal interface for figedit.
//
// Every successful save made through an editor session can be appended to
// a History as a domain.Revision: the figure that was written, the format
// and a BLAKE2b digest of the exact bytes. The journal is advisory; loading
// and saving figures never depends on it.
//
// # SQLite Implementation
//
// The sqlite subpackage stores revisions in a local database, migrating
// the schema on open. Tests run it against in-memory databases.
package repository
