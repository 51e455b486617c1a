package places

import (
	"errors"
	"fmt"
)

// Common places lookup errors
var (
	// ErrMissingAPIKey is returned when no Google Maps API key is configured.
	ErrMissingAPIKey = errors.New("missing Google Maps API key: set GOOGLE_MAPS_API_KEY environment variable")

	// ErrNoLocationFound is returned when a search yields zero places.
	// Non-fatal: callers surface it as a "not found" state, not a failure.
	ErrNoLocationFound = errors.New("no location found for query")

	// ErrLookupFailed is returned when the Places API returns a non-OK status
	// or the request fails at the transport level.
	ErrLookupFailed = errors.New("places lookup failed")

	// ErrDetailsFailed is returned when the details enrichment call fails.
	// Recoverable: the basic fields from the initial match remain usable.
	ErrDetailsFailed = errors.New("place details fetch failed")
)

// PlacesError wraps errors with additional context about the lookup failure.
type PlacesError struct {
	// Op is the operation that failed (e.g., "Search", "Details").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *PlacesError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("places: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("places: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *PlacesError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *PlacesError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapPlacesError wraps an error as a PlacesError if it isn't already one.
func WrapPlacesError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var placesErr *PlacesError
	if errors.As(err, &placesErr) {
		return err // Already wrapped
	}

	return &PlacesError{Op: op, Err: err, Details: details}
}
