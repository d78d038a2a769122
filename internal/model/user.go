package model

import "time"

// User represents an application user record as stored in the `users`
// table.  The json tags are omitted because these structs are used by the
// repository layer; handlers define separate response types with the JSON
// shape the API promises.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address, stored exactly as registered.
//	PasswordHash – bcrypt hashed password.
//	IsBlocked    – administrative block flag.  The flag is stored and
//	               toggled by admins but is not consulted during login or
//	               on guarded requests; see the note in handler/auth.go.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	IsBlocked    bool      // users.is_blocked
	CreatedAt    time.Time // users.created_at
}

// Admin represents a row in the `admins` table.  Admin accounts are
// provisioned out-of-band by cmd/createadmin and never mutated at runtime.
//
// Fields:
//
//	ID           – primary key identifier.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	Role         – free-form role label (e.g. "superadmin").
//	CreatedAt    – timestamp of creation.
type Admin struct {
	ID           uint64    // admins.id
	Email        string    // admins.email
	PasswordHash string    // admins.password_hash
	Role         string    // admins.role
	CreatedAt    time.Time // admins.created_at
}
