// Package errors provides the error types used across bayesgo.
//
// All failures surface as typed errors that participate in Go 1.13+
// error chains (errors.Is / errors.As). Construction goes through
// github.com/cockroachdb/errors so every error carries a stack trace
// that %+v formatting can reveal.
package errors

import (
	"fmt"

	cockroacherrors "github.com/cockroachdb/errors"
)

// Sentinel errors for common failure conditions. Compare with Is.
var (
	// ErrEmptyData indicates a fit or transform received no rows.
	ErrEmptyData = cockroacherrors.New("empty data")

	// ErrRaggedRows indicates rows of inconsistent width where a
	// rectangular matrix was required.
	ErrRaggedRows = cockroacherrors.New("ragged rows")
)

// NotFittedError is returned when a stateful component is used before
// its Fit method has been called.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError for the given component
// and method.
func NewNotFittedError(modelName, method string) *NotFittedError {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("bayesgo: %s.%s: not fitted; call Fit first", e.ModelName, e.Method)
}

// DimensionError is returned when an input's shape disagrees with what
// the receiving operation requires. Axis 0 is rows (samples), axis 1 is
// columns (features).
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError for the given operation.
func NewDimensionError(op string, expected, got, axis int) *DimensionError {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("bayesgo: %s: dimension mismatch on axis %d: expected %d, got %d",
		e.Op, e.Axis, e.Expected, e.Got)
}

// ValueError is returned when an input value is outside an operation's
// domain (for example a negative smoothing parameter).
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError for the given operation.
func NewValueError(op, message string) *ValueError {
	return &ValueError{Op: op, Message: message}
}

// NewValueErrorf creates a ValueError with a formatted message.
func NewValueErrorf(op, format string, args ...interface{}) *ValueError {
	return &ValueError{Op: op, Message: fmt.Sprintf(format, args...)}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("bayesgo: %s: %s", e.Op, e.Message)
}

// ValidationError is returned when a configuration field fails
// validation. Value holds the offending input.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bayesgo: invalid %s: %s (got %v)", e.Field, e.Message, e.Value)
}

// ModelError wraps a lower-level cause with the operation and a short
// description of what failed. It unwraps to the cause, so sentinel
// checks with Is see through it.
type ModelError struct {
	Op      string
	Message string
	Err     error
}

// NewModelError creates a ModelError. cause may be nil.
func NewModelError(op, message string, cause error) *ModelError {
	return &ModelError{Op: op, Message: message, Err: cause}
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("bayesgo: %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("bayesgo: %s: %s: %v", e.Op, e.Message, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ModelError) Unwrap() error {
	return e.Err
}

// Recover converts a panic into an error, for use as
//
//	defer errors.Recover(&err, "MultinomialNB.Fit")
//
// at the top of operations that call into numeric code. Without a
// panic it leaves *errp untouched.
func Recover(errp *error, op string) {
	if r := recover(); r != nil {
		*errp = cockroacherrors.Newf("bayesgo: %s: recovered from panic: %v", op, r)
	}
}

// New returns an error with the supplied message and a captured stack.
func New(msg string) error {
	return cockroacherrors.New(msg)
}

// Newf returns a formatted error with a captured stack.
func Newf(format string, args ...interface{}) error {
	return cockroacherrors.Newf(format, args...)
}

// Wrap annotates err with msg, preserving the chain. Returns nil if
// err is nil.
func Wrap(err error, msg string) error {
	return cockroacherrors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message, preserving the chain.
func Wrapf(err error, format string, args ...interface{}) error {
	return cockroacherrors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return cockroacherrors.Is(err, target)
}

// As finds the first error in err's chain that matches target's type.
func As(err error, target interface{}) bool {
	return cockroacherrors.As(err, target)
}
