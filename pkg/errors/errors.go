package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrNotFound is returned when a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when credentials are missing or wrong
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrSessionRequired is returned before any network call when no user is signed in
type ErrSessionRequired struct{}

func (e *ErrSessionRequired) Error() string {
	return "session required"
}

// ErrValidation lists the option labels that are missing and the values that
// break their option's rules.
type ErrValidation struct {
	Missing []string
	Invalid map[string]string
}

func (e *ErrValidation) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Missing, ", "))
	}
	names := make([]string, 0, len(e.Invalid))
	for name := range e.Invalid {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Invalid[name]))
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ErrInvalidQuantity is returned when a quantity is below 1 or above stock
type ErrInvalidQuantity struct {
	Quantity int
	Stock    int
}

func (e *ErrInvalidQuantity) Error() string {
	if e.Quantity < 1 {
		return fmt.Sprintf("invalid quantity %d: must be at least 1", e.Quantity)
	}
	return fmt.Sprintf("invalid quantity %d: only %d in stock", e.Quantity, e.Stock)
}

// ErrBusy is returned while another cart mutation is in flight
type ErrBusy struct{}

func (e *ErrBusy) Error() string {
	return "another cart update is in progress"
}

// ErrCancelled is returned when the user declines a confirmation
type ErrCancelled struct {
	Action string
}

func (e *ErrCancelled) Error() string {
	return fmt.Sprintf("%s cancelled", e.Action)
}

// ErrAPI is a non-2xx answer from the storefront backend
type ErrAPI struct {
	Status  int
	Message string
}

func (e *ErrAPI) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storefront API error: status %d", e.Status)
	}
	return fmt.Sprintf("storefront API error: status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether the backend answered 404
func (e *ErrAPI) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}
