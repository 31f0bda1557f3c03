package domain

import (
	"errors"
	"fmt"
)

// ErrNotEnoughData is returned when the advice gate refuses a request.
// Callers surface NotEnoughDataGuidance to the user.
var ErrNotEnoughData = errors.New("not enough data for advice")

// NotEnoughDataGuidance is the user-facing message paired with ErrNotEnoughData.
const NotEnoughDataGuidance = "Add at least 3 transactions or a scheduled payment to get personalized advice."

// User-facing messages carried by CollaboratorError
const (
	MissingCredentialMessage = "API Key not found. Please set it up to use this feature."
	AdviceUnavailableMessage = "Sorry, I couldn't get any advice right now. Please try again later."
)

// ValidationError indicates rejected input. No state is mutated when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError indicates an unknown id on a read path.
// Delete and mark-paid paths never return it; they are silent no-ops.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// PersistenceReadError describes a stored collection that could not be decoded.
// It is logged and recovered by substituting an empty collection.
type PersistenceReadError struct {
	Key string
	Err error
}

func (e *PersistenceReadError) Error() string {
	return fmt.Sprintf("failed to read persisted collection %q: %v", e.Key, e.Err)
}

func (e *PersistenceReadError) Unwrap() error {
	return e.Err
}

// CollaboratorError indicates a failure of an external collaborator
// (the advice generator) or a missing credential for it.
// Message is safe to show to the user.
type CollaboratorError struct {
	Service string
	Message string
	Err     error
}

func (e *CollaboratorError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("collaborator %s: %s", e.Service, e.Message)
	}
	return fmt.Sprintf("collaborator %s: %s: %v", e.Service, e.Message, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
