package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks rejected user input. Nothing is written.
	ErrValidation = errors.New("invalid input")
	// ErrParse marks stored data that cannot be decoded.
	ErrParse = errors.New("malformed stored data")
	// ErrStorage marks a key/value store that could not be read or written.
	ErrStorage = errors.New("storage unavailable")
	// ErrNotFound is returned when a named recipe or saved product does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError names the offending field. errors.Is(err, ErrValidation) holds.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func storageError(op string, err error) error {
	if errors.Is(err, ErrStorage) || errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// ParsePolicy decides what happens to a stored collection that fails to decode.
type ParsePolicy string

const (
	// ResetOnParseError discards the whole collection and rewrites it as "[]".
	// This is the default.
	ResetOnParseError ParsePolicy = "reset"
	// SkipMalformed hides malformed elements on read and keeps them verbatim
	// on the next write. A blob that is not a JSON array is still reset.
	SkipMalformed ParsePolicy = "skip"
)

func ParseParsePolicy(value string) (ParsePolicy, error) {
	switch ParsePolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", ResetOnParseError:
		return ResetOnParseError, nil
	case SkipMalformed:
		return SkipMalformed, nil
	default:
		return "", fmt.Errorf("invalid parse policy %q (expected reset or skip)", value)
	}
}
