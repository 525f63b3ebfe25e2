package services

import "github.com/rotisserie/eris"

// Query errors. Callers classify them with eris.Is.
var (
	ErrMissingField    = eris.New("search term and category are required")
	ErrInvalidCategory = eris.New("invalid category")
	ErrNoResults       = eris.New("no listings found on any platform")
	ErrInternal        = eris.New("internal error")
)
