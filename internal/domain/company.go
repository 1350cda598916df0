package domain

import "time"

// Company is a hiring organization that clients can be suggested to.
type Company struct {
	ID            int64
	Name          string
	Email         string
	PhoneNumber   string
	Industry      string
	WorkforceSize string
	Location      string
	Roles         []string // roles hired for
	Specification string   // free-text
	Status        string
	CreatedAt     time.Time
}
