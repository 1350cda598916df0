package domain

import "time"

// CVFile is the metadata row for an uploaded resume. The object itself lives
// in blob storage under FilePath.
type CVFile struct {
	ID         int64
	ClientID   int64
	FilePath   string // storage key
	MimeType   string
	SizeBytes  int64
	UploadedAt time.Time
}
