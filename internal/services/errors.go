package services

import "errors"

// Sentinel errors mapped to HTTP status codes at the handler boundary.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRating      = errors.New("rating must be from 1 to 10 with 0.5 intervals")
	ErrSelfReport         = errors.New("you cannot report your own review")
	ErrAlreadyReported    = errors.New("you have already reported this review")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrNameRequired       = errors.New("watchlist name is required")
	ErrUnknownAction      = errors.New("unknown report action")
	ErrMetadataLookup     = errors.New("film metadata service unavailable")
	ErrFilmNotInCatalog   = errors.New("film not found in OMDb")
)
