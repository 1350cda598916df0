package domain

import "time"

// Client is a candidate profile. Each owning account has at most one Client;
// the store enforces this with a unique index on UserID. After creation the
// lifecycle service is the only writer of Status, and CVFilePath always
// points at the most recently uploaded CV artifact.
type Client struct {
	ID            int64
	UserID        int64 // owning account
	FullName      string
	Email         string
	PhoneNumber   string
	Location      string
	Skills        string // free-text, comma separated
	PreferredRole string
	Education     string
	LinkedinURL   string
	Experience    string // free-text
	Status        Status
	CVFilePath    string // storage key of the newest CV artifact, empty if none
	CreatedAt     time.Time
}
