package domain

import "time"

type Role struct {
	ID        int64
	Name      string
	Scopes    []string // Parsed from space-delimited storage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Well-known scopes carried by role tokens.
const (
	ScopeAdminRead  = "admin:read"
	ScopeAdminWrite = "admin:write"
)
