package service

import "errors"

var (
	// ErrMalformedImport wraps every rejected import; the store is left
	// unchanged.
	ErrMalformedImport = errors.New("malformed import")

	// ErrActivityNotFound is returned by operations that need an existing
	// activity to act on, such as duplicate and select.
	ErrActivityNotFound = errors.New("activity not found")
)
