package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientDateInfo is returned by the preference resolver when
	// fewer than two of start date, end date, and day count are available.
	ErrInsufficientDateInfo = errors.New("insufficient date information provided")

	// ErrUpstreamFetch wraps failures of the activity search collaborator.
	// Tools recover from it locally; it never aborts a turn.
	ErrUpstreamFetch = errors.New("activity search request failed")
)

// DuplicateActivitiesError rejects a day distribution that schedules the same
// activity on more than one day.
type DuplicateActivitiesError struct {
	IDs []string
}

func (e *DuplicateActivitiesError) Error() string {
	return fmt.Sprintf("duplicate activities found across days: %s", strings.Join(e.IDs, ", "))
}
