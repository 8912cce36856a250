package client

import (
	"net/http"
	"strconv"

	errorvalues "github.com/limbo/moodtrack/internal/error_values"
)

// StoreError is a failed call to the mood store. Status is the HTTP status,
// zero when the request never got a response.
type StoreError struct {
	Status  int
	Message string
}

func (e *StoreError) Error() string {
	if e.Status == 0 {
		return "mood store unreachable: " + e.Message
	}
	return "mood store error (" + strconv.Itoa(e.Status) + "): " + e.Message
}

// Unwrap makes errors.Is match ErrStore, and ErrAuthRequired on 401.
func (e *StoreError) Unwrap() []error {
	if e.Status == http.StatusUnauthorized {
		return []error{errorvalues.ErrStore, errorvalues.ErrAuthRequired}
	}
	return []error{errorvalues.ErrStore}
}
