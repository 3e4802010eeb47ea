package service

import (
	"errors"
	"fmt"
	"strings"

	"bookplanner/internal/microservices/http-api/repository"
)

var (
	ErrBookNotFound          = repository.ErrBookNotFound
	ErrInvalidBook           = errors.New("invalid book")
	ErrInvalidSession        = errors.New("invalid reading session")
	ErrInvalidGoals          = errors.New("invalid goals")
	ErrInvalidQuery          = errors.New("invalid query")
	ErrInvalidImport         = errors.New("invalid import")
	ErrNotificationsDisabled = errors.New("notifications are disabled")
)

// ValidationError lists every problem found and unwraps to its category.
type ValidationError struct {
	Err      error
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(kind error, problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Err: kind, Problems: problems}
}

func problemsOf(err error) []string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Problems
	}
	return nil
}
