package skilldev

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a student or exercise cannot be resolved.
var ErrNotFound = errors.New("not found")

// NotFoundError carries the identifiers that failed to resolve.
type NotFoundError struct {
	StudentID  string
	ExerciseID string // empty when the student itself is missing
}

func (e *NotFoundError) Error() string {
	if e.ExerciseID == "" {
		return fmt.Sprintf("student %q not found", e.StudentID)
	}
	return fmt.Sprintf("exercise %q not found for student %q", e.ExerciseID, e.StudentID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
