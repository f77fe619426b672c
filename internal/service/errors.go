package service

import (
	"errors"
	"fmt"
	"strings"

	"go-warehouse-api/pkg/validator"
)

// Error kinds. Handlers map these to status codes with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateName       = errors.New("product with this name already exists")
	ErrInvalidState        = errors.New("invalid state")
	ErrAlreadyReceived     = errors.New("batch already received into warehouse")
	ErrBatchNotFound       = errors.New("batch not found in warehouse inventory")
	ErrBatchAlreadyShipped = errors.New("batch already shipped")
	ErrInternal            = errors.New("internal error")
)

// NotFoundError names the missing entity and the identifier that was asked for.
type NotFoundError struct {
	Entity     string
	Identifier any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", e.Entity, e.Identifier)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type ValidationError struct {
	Field   string
	Tag     string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", e.Field, e.Tag)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// validationFailure converts the first validator failure into a ValidationError.
func validationFailure(errs []*validator.ErrorResponse) error {
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return &ValidationError{Field: first.FailedField, Tag: first.Tag}
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// BatchError reports the batch ids that caused a shipment to be rejected.
type BatchError struct {
	Kind     error
	BatchIDs []uint
}

func (e *BatchError) Error() string {
	ids := make([]string, len(e.BatchIDs))
	for i, id := range e.BatchIDs {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), strings.Join(ids, ", "))
}

func (e *BatchError) Unwrap() error {
	return e.Kind
}

// StateError explains why an operation's preconditions were not met.
type StateError struct {
	Kind   error
	Detail string
}

func (e *StateError) Error() string {
	return e.Detail
}

func (e *StateError) Unwrap() error {
	return e.Kind
}

func invalidState(format string, args ...any) error {
	return &StateError{Kind: ErrInvalidState, Detail: fmt.Sprintf(format, args...)}
}

func internal(context string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, context, err)
}
