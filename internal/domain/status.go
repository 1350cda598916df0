package domain

import (
	"errors"
	"strings"
)

// Status is a client's position in the recruitment pipeline. Values are
// stored in canonical form: lowercase, space-separated words.
type Status string

const (
	StatusPending          Status = "pending"
	StatusInProgress       Status = "in progress"
	StatusSuggested        Status = "suggested"
	StatusInterviewPending Status = "interview pending"
	StatusInterviewed      Status = "interviewed"
	StatusAssigned         Status = "assigned"
	StatusRejected         Status = "rejected"
)

// ErrUnknownStatus reports a status outside the fixed domain.
var ErrUnknownStatus = errors.New("domain: unknown client status")

// allStatuses is the full status domain. Any status may transition to any
// other; validity is membership in this set, not graph adjacency.
var allStatuses = map[Status]struct{}{
	StatusPending:          {},
	StatusInProgress:       {},
	StatusSuggested:        {},
	StatusInterviewPending: {},
	StatusInterviewed:      {},
	StatusAssigned:         {},
	StatusRejected:         {},
}

// CanonicalStatus normalizes raw input into a member of the status domain.
// Input is case-insensitive and treats `_` and `-` as spaces, so
// "In_Progress", "in-progress" and "In Progress" all canonicalize equal.
func CanonicalStatus(raw string) (Status, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.Join(strings.Fields(s), " ")

	st := Status(s)
	if _, ok := allStatuses[st]; !ok {
		return "", ErrUnknownStatus
	}
	return st, nil
}

func (s Status) String() string { return string(s) }
