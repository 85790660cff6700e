package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Validation errors
	ErrInvalidID            = errors.New("invalid id")
	ErrInvalidEventName     = errors.New("event name is required")
	ErrInvalidEventType     = errors.New("event type must be OWNED or RENTED")
	ErrInvalidProductName   = errors.New("product name is required")
	ErrInvalidCategory      = errors.New("category must be DRINK, FOOD or OTHER")
	ErrInvalidPrice         = errors.New("price must be greater than zero and at most 1000000000.00")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrTotalMismatch        = errors.New("total does not match the sale lines")
	ErrSaleTotalTooLarge    = errors.New("sale total is too large")
	ErrProductEventMismatch = errors.New("product does not belong to the sale event")

	// Not found errors
	ErrEventNotFound    = errors.New("event not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrPrintJobNotFound = errors.New("print job not found")

	// Conflict errors
	ErrProductInUse        = errors.New("product has recorded sales")
	ErrNoActiveSale        = errors.New("no active sale")
	ErrCommitInProgress    = errors.New("sale commit in progress")
	ErrAccessCodeExhausted = errors.New("could not generate a unique access code")
	ErrPrintJobClosed      = errors.New("print job is already finished")
	ErrPrintJobNotReady    = errors.New("print job is waiting for acknowledgment")
	ErrPrintJobNotWaiting  = errors.New("print job is not waiting for acknowledgment")
	ErrPrintInFlight       = errors.New("a ticket is being printed")
)

// StorageError wraps a failure raised by the persistent store
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the failed operation name
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// PrintError reports a failed ticket print. The sale stays recorded.
type PrintError struct {
	JobID  string
	Ticket int
	Err    error
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("print job %s: ticket %d: %v", e.JobID, e.Ticket, e.Err)
}

func (e *PrintError) Unwrap() error {
	return e.Err
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidEventName) ||
		errors.Is(err, ErrInvalidEventType) ||
		errors.Is(err, ErrInvalidProductName) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrTotalMismatch) ||
		errors.Is(err, ErrSaleTotalTooLarge) ||
		errors.Is(err, ErrProductEventMismatch)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrSaleNotFound) ||
		errors.Is(err, ErrPrintJobNotFound)
}

// IsConflictError checks if the error is a state conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrProductInUse) ||
		errors.Is(err, ErrNoActiveSale) ||
		errors.Is(err, ErrCommitInProgress) ||
		errors.Is(err, ErrAccessCodeExhausted) ||
		errors.Is(err, ErrPrintJobClosed) ||
		errors.Is(err, ErrPrintJobNotReady) ||
		errors.Is(err, ErrPrintJobNotWaiting) ||
		errors.Is(err, ErrPrintInFlight)
}

// IsStorageError checks if the error came from the store
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsPrintError checks if the error is a ticket print failure
func IsPrintError(err error) bool {
	var pe *PrintError
	return errors.As(err, &pe)
}
