package errs

import (
	"errors"
	"fmt"
)

// InvalidInputError is a caller-caused failure: bad credentials, missing or
// duplicate fields, references to nonexistent entities, malformed votes.
// The HTTP layer maps it to a 400 response.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

// DatabaseError is a store-layer or infrastructure failure, not locally
// recoverable. The HTTP layer maps it to a 500 response.
type DatabaseError struct {
	Message string
}

func (e *DatabaseError) Error() string { return e.Message }

func InvalidInput(format string, args ...any) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

func Database(format string, args ...any) error {
	return &DatabaseError{Message: fmt.Sprintf(format, args...)}
}

func IsInvalidInput(err error) bool {
	var t *InvalidInputError
	return errors.As(err, &t)
}

func IsDatabase(err error) bool {
	var t *DatabaseError
	return errors.As(err, &t)
}

// Wrap re-classifies an error coming out of a store operation. Errors that
// are already one of the two user-facing kinds pass through untouched; raw
// driver errors never escape the stores and become DatabaseErrors here.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}
	if IsInvalidInput(err) || IsDatabase(err) {
		return err
	}
	return &DatabaseError{Message: fmt.Sprintf("failed to %s: %v", action, err)}
}
