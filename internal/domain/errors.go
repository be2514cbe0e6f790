package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidBloodGroup = errors.New("invalid blood group")
	ErrEmptyCohort       = errors.New("cohort resolved to zero recipients")
)
