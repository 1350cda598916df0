package domain

import "time"

// User roles.
const (
	RoleUser      = "user"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string // argon2 encoded
	Role         string
	CreatedAt    time.Time
}
