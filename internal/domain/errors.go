package domain

import "errors"

var (
	// ErrInvalidInput means the caller supplied the wrong number or shape of
	// assets. Surfaced immediately, never retried.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMetadataUnavailable means the exchange metadata fetch did not return
	// a well-formed instrument set; the scan that needed it aborts.
	ErrMetadataUnavailable = errors.New("exchange metadata unavailable")
	// ErrNotFound is returned by caches when a key does not exist.
	ErrNotFound = errors.New("not found")
)
