package domain

import "errors"

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNotOwner         = errors.New("not owned by user")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidActivity  = errors.New("invalid activity")
)
