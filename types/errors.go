package types

import "fmt"

// ErrProductNotFound when the referenced product id has no row.
var ErrProductNotFound = fmt.Errorf("product not found")

// ErrInvalidArgument when a call shape is malformed, e.g. an empty partial-update set.
var ErrInvalidArgument = fmt.Errorf("invalid argument")

// ValidationError carries the classified outcome of a failed validation.
type ValidationError struct {
	Outcome ProductOutcome
}

func (e *ValidationError) Error() string {
	switch e.Outcome {
	case OutcomeInvalidName:
		return "invalid product name"
	case OutcomeInvalidQuantity:
		return "invalid product quantity"
	case OutcomeInvalidPrice:
		return "invalid product unit price"
	}
	return "product validation failed"
}

// InsufficientStockError when a stock removal would drive quantity negative.
type InsufficientStockError struct {
	ProductID ProductID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock, available: %d, requested: %d", e.Available, e.Requested)
}

// PersistenceError wraps a storage-level failure with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
