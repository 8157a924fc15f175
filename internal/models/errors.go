package models

import "errors"

// Error constants for registration draft operations
var (
	ErrDraftNotFound = errors.New("registration draft not found")
	ErrRateLimited   = errors.New("too many submissions, try again later")

	ErrSubmissionNotFound          = errors.New("registration submission not found")
	ErrSubmissionLookupUnavailable = errors.New("submitted registrations are not stored")
)
