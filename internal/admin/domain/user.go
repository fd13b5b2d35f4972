package domain

import "time"

type User struct {
	ID            string // ULID
	Username      string
	PreferredName string
	PasswordHash  string // argon2 encoded
	RoleID        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
