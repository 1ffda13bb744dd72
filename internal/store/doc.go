// Package store provides persistence for taskdeck accounts and tasks.
//
// The Store interface abstracts the database so services and handlers can be
// tested against MockStore. The production implementation is SQLiteStore,
// backed by modernc.org/sqlite with WAL mode enabled.
//
// # Entities
//
//   - Account: registered identity with a unique email and a bcrypt
//     password hash. The hash never leaves the server process.
//   - Task: owned by exactly one account. The owner is recorded at creation
//     and never changes; UpdateTask does not touch the owner column.
//
// # Errors
//
// Lookups return ErrNotFound for missing rows. CreateAccount returns
// ErrDuplicateEmail when the unique email index rejects the insert, so
// callers can map it to a user-visible conflict without parsing driver
// error strings.
package store
