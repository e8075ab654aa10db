// Package users resolves notification recipients.
//
// Directory.FindByID returns the address, names and email preferences of a
// user. PostgresDirectory reads the users table created by the migrations
// in db/; MemoryDirectory serves tests and local runs without a database.
package users
