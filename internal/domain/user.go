package domain

import "time"

// Conventional role values. Role is an open string compared exactly;
// these are the two values the service itself cares about.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered user of the system.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Age          int
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
