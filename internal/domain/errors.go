package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPersonaNotFound  = errors.New("persona not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrEmptyPersonaName = errors.New("persona name is empty")
	ErrEmptyUsername    = errors.New("search username is empty")
	ErrReservedPersona  = errors.New(`the "Unassigned" persona cannot be renamed or deleted`)
	ErrEmptyScope       = errors.New("no accounts in the selected scope")
	ErrTokenNotFound    = errors.New("bearer token not found")
)

// APIError is a non-2xx response from the directory backend. Detail carries
// the server-provided message when the body included one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("directory request failed (status %d): %s", e.Status, e.Detail)
	}

	return fmt.Sprintf("directory request failed (status %d)", e.Status)
}
