// Package database manages the SQLite connection and schema migration.
//
// Repository packages live underneath it, one per aggregate:
//
//   - users: account rows and username lookups
//   - authors, genres: catalog reference data
//   - books: catalog entries with author/genre references
//   - favourites: the user/book favourites join table
//
// Controllers depend on repository interfaces they declare themselves; the
// concrete repositories here satisfy them.
package database
