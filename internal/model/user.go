package model

import "time"

// User is an account that can authenticate against the API.  Role is
// either ADMIN (may manage the catalog and journeys) or CUSTOMER (may
// book seats and view their own orders).
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role (ADMIN or CUSTOMER)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
