// Package metadata is a key/value store kept in the same SQLite file as the
// entities. It holds what a device secure store would: the signed-in email,
// the session id and the app-lock PIN hash.
package metadata
