// internal/services/errors.go
package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrEmailTaken            = errors.New("email is already taken")
	ErrSlugTaken             = errors.New("slug is already taken")
	ErrDuplicateFavorite     = errors.New("product is already in favorites")
	ErrUnknownProduct        = errors.New("product does not exist")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidPage           = errors.New("page must be greater than or equal to 1")
	ErrOrderAlreadyCompleted = errors.New("order is already completed")
	ErrPaymentsDisabled      = errors.New("payments are not configured")
	ErrInvalidFile           = errors.New("invalid file")
)

// FieldErrors is a {json_field: message} set of validation failures.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has a message.
func (e FieldErrors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

func (e FieldErrors) Merge(other map[string]string) {
	for k, v := range other {
		e.Add(k, v)
	}
}

// OrNil returns nil for an empty set so callers can `return errs.OrNil()`.
func (e FieldErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
