package domain

import "errors"

var (
	// ErrMissingProfile is returned when no filing profile (status and standard
	// deduction) exists for the requested year. The caller should prompt the user
	// to create one.
	ErrMissingProfile = errors.New("no filing profile for year")

	// ErrTablesUnavailable is returned when no bracket table exists for the
	// requested year and filing status.
	ErrTablesUnavailable = errors.New("tax tables unavailable")
)
