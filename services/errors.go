package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidID signals a malformed ObjectID before any store call.
	ErrInvalidID = errors.New("invalid id format")

	// ErrInvalidStatus signals a status string outside the known set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrNotFound signals the resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden signals the resource exists but belongs to another
	// vendor. Kept distinct from ErrNotFound so handlers can answer
	// 403 instead of conflating the two cases.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition signals a status move outside the
	// transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAgentNotFound signals the referenced delivery agent does not
	// exist.
	ErrAgentNotFound = errors.New("delivery agent not found")

	// ErrDuplicatePhone signals the vendor already has an agent with
	// that phone number.
	ErrDuplicatePhone = errors.New("an agent with this phone number already exists")
)

// ValidationError carries the set of fields that failed create/update
// validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func wrapStoreErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
