package domain

import "errors"

var (
	ErrInvalidPosition = errors.New("domain: invalid card position")
	ErrEmptyDeckName   = errors.New("domain: deck name is empty")
)
