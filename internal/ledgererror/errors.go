// Package ledgererror defines the typed failures the ledger core signals.
package ledgererror

import (
	"errors"
	"fmt"
)

// DataAccessError reports that the store was unreachable or a query failed.
// The operation that hit it produced no report and no insert.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed during %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// NewDataAccessError wraps err unless it already is a DataAccessError.
func NewDataAccessError(op string, err error) error {
	if err == nil {
		return nil
	}
	var dae *DataAccessError
	if errors.As(err, &dae) {
		return err
	}
	return &DataAccessError{Op: op, Err: err}
}

// IsDataAccess reports whether err carries a DataAccessError.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}

// ValidationKind names the input field that failed validation.
type ValidationKind string

const (
	InvalidCategoryType ValidationKind = "invalid_category_type"
	EmptyCategory       ValidationKind = "empty_category"
	InvalidAmount       ValidationKind = "invalid_amount"
	InvalidDate         ValidationKind = "invalid_date"
)

// Sentinels for errors.Is checks against a ValidationError's kind.
var (
	ErrInvalidCategoryType = errors.New("invalid category type")
	ErrEmptyCategory       = errors.New("category name is empty")
	ErrInvalidAmount       = errors.New("amount must be a positive number with at most two decimals")
	ErrInvalidDate         = errors.New("date must be a valid YYYY-MM-DD calendar date")
)

var kindSentinels = map[ValidationKind]error{
	InvalidCategoryType: ErrInvalidCategoryType,
	EmptyCategory:       ErrEmptyCategory,
	InvalidAmount:       ErrInvalidAmount,
	InvalidDate:         ErrInvalidDate,
}

// ValidationError reports malformed raw input. Kind tells the caller which
// field to re-prompt for.
type ValidationError struct {
	Kind  ValidationKind
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	msg := e.Sentinel().Error()
	if e.Err != nil {
		return fmt.Sprintf("invalid %s '%s': %s: %v", e.Field, e.Value, msg, e.Err)
	}
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *ValidationError) Is(target error) bool {
	return target == e.Sentinel()
}

// Sentinel returns the ErrXxx value for the error's kind.
func (e *ValidationError) Sentinel() error {
	if s, ok := kindSentinels[e.Kind]; ok {
		return s
	}
	return errors.New(string(e.Kind))
}

// KindOf extracts the ValidationKind from err, if any.
func KindOf(err error) (ValidationKind, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return "", false
}

// ImportError locates a failure inside a bulk import. Row is 1-based and
// counts data rows, not the header.
type ImportError struct {
	Row int
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
