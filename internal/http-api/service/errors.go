package service

import "errors"

// Sentinel errors shared across the resource services. Handlers map these
// onto HTTP statuses.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrReviewExists    = errors.New("a review for this title already exists")
	ErrYearInFuture    = errors.New("year must not be later than the current year")
	ErrUnknownGenre    = errors.New("unknown genre slug")
	ErrUnknownCategory = errors.New("unknown category slug")
	ErrUnknownRole     = errors.New("unknown role")
)
