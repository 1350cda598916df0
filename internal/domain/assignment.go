package domain

import "time"

// Assignment records that a client was suggested to a company. At most one
// Assignment exists per (client, company) pair; a duplicate suggestion is
// rejected, never overwritten. Created exclusively by the lifecycle
// service's suggest operation and read by the share gateway.
type Assignment struct {
	ID         int64
	ClientID   int64
	CompanyID  int64
	AssignedBy int64 // referring user
	Status     Status
	AssignedAt time.Time
}
