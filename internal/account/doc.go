// Package account implements registration, login, and profile operations.
//
// # Login semantics
//
// Login returns a single ErrInvalidCredentials for both an unknown email
// and a wrong password, and runs a dummy bcrypt comparison on misses so
// the two paths take the same time. Successful logins are exchanged for a
// signed bearer token whose subject is the account ID.
package account
