package genapi

import "errors"

var (
	// ErrTimeout indicates the call exceeded its per-task deadline.
	// This is the recoverable "soft timeout" classification: callers may
	// retry without treating the artifact as failed.
	ErrTimeout = errors.New("generation request timed out")

	// ErrUnavailable indicates the API server is unreachable.
	ErrUnavailable = errors.New("generation api unavailable")

	// ErrBadResponse indicates the response could not be decoded into
	// the expected shape.
	ErrBadResponse = errors.New("malformed generation api response")

	// ErrRemote indicates the server answered with an explicit failure
	// envelope or non-2xx status.
	ErrRemote = errors.New("generation api reported failure")

	// ErrFoodNotFound indicates a barcode lookup found no match.
	ErrFoodNotFound = errors.New("no food found for barcode")
)
