package errors

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	stderr "github.com/pkg/errors"

	"github.com/oasislabs/viewtest/log"
)

type Err interface {
	Error() string
	log.Loggable
}

var (
	ErrInternalError = ErrorCode{
		category: InternalError,
		code:     1000,
		desc:     "Internal Error. Unexpected failure building the test fixture.",
	}

	ErrViewNotConfigured = ErrorCode{
		category: ConfigurationError,
		code:     1001,
		desc:     "Either a view class or a view function must be configured.",
	}

	ErrViewAmbiguous = ErrorCode{
		category: ConfigurationError,
		code:     1002,
		desc:     "A view class and a view function cannot be configured at the same time.",
	}

	ErrViewClassRequired = ErrorCode{
		category: ConfigurationError,
		code:     1003,
		desc:     "A view class is required to create a view object.",
	}

	ErrInvalidViewClass = ErrorCode{
		category: ConfigurationError,
		code:     1004,
		desc:     "View class prototype must be a pointer to a struct embedding view.View.",
	}

	ErrInvalidViewKwargs = ErrorCode{
		category: ConfigurationError,
		code:     1005,
		desc:     "View keyword arguments must match attributes of the view class.",
	}

	ErrInvalidMiddleware = ErrorCode{
		category: ConfigurationError,
		code:     1006,
		desc:     "Middleware must not be nil.",
	}

	ErrInvalidPath = ErrorCode{
		category: InputError,
		code:     2001,
		desc:     "Request path could not be parsed.",
	}

	ErrUnsupportedData = ErrorCode{
		category: InputError,
		code:     2002,
		desc:     "Request data type is not supported for the method and content type.",
	}

	ErrEncodeData = ErrorCode{
		category: InputError,
		code:     2003,
		desc:     "Failed to encode request data.",
	}

	ErrInvalidExtra = ErrorCode{
		category: InputError,
		code:     2004,
		desc:     "Extra request key is not recognized.",
	}
)

// Category defines error categories that logically group them. Tests
// usually only care about the category of a failure, not the exact code
type Category string

const (
	// InternalError refers to unexpected failures in the library itself
	InternalError Category = "InternalError"

	// ConfigurationError refers to a fixture that has been declared
	// incorrectly. These errors are surfaced at setup time and cannot
	// be recovered from
	ConfigurationError Category = "ConfigurationError"

	// InputError refers to errors that are returned because the input
	// provided to build a request is incorrect, malformed or could
	// not be encoded
	InputError Category = "InputError"
)

// Error is the implementation of an error for this package. It contains
// an instance of an ErrorCode which provides information about the error
// and a cause which might be nil if there's no underlying cause for
// the error
type Error struct {
	Cause     error
	ErrorCode ErrorCode
}

// Error is the implementation of error for Error
func (e Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%d] error code %s with desc %s",
			e.ErrorCode.Code(), e.ErrorCode.Category(), e.ErrorCode.Desc())
	}

	return fmt.Sprintf("[%d] error code %s with desc %s with cause %s",
		e.ErrorCode.Code(), e.ErrorCode.Category(), e.ErrorCode.Desc(), e.Cause)
}

// Unwrap returns the underlying cause
func (e Error) Unwrap() error {
	return e.Cause
}

// Log implementation of log.Loggable
func (e Error) Log(fields log.Fields) {
	fields.Add("err", e.ErrorCode.Desc())
	fields.Add("errorCode", e.ErrorCode.Code())

	if e.Cause != nil {
		fields.Add("cause", e.Cause.Error())
	}
}

// New creates a new instance of an error
func New(errorCode ErrorCode, cause error) Error {
	return Error{Cause: cause, ErrorCode: errorCode}
}

// Is returns true if err or any error it wraps is an Error
// with the provided ErrorCode. Errors aggregated in a
// *multierror.Error are checked one by one
func Is(err error, code ErrorCode) bool {
	return match(err, func(e Error) bool {
		return e.ErrorCode == code
	})
}

// IsCategory returns true if err or any error it wraps is an
// Error of the provided category
func IsCategory(err error, category Category) bool {
	return match(err, func(e Error) bool {
		return e.ErrorCode.Category() == category
	})
}

func match(err error, fn func(e Error) bool) bool {
	var merr *multierror.Error
	if stderr.As(err, &merr) {
		for _, err := range merr.Errors {
			if match(err, fn) {
				return true
			}
		}

		return false
	}

	var e Error
	if !stderr.As(err, &e) {
		return false
	}

	return fn(e)
}

// ErrorCode holds the necessary information to uniquely identify an error
type ErrorCode struct {
	// category is the type of the error
	category Category

	// code is a unique identifier for the error that can be used to identify
	// the particular type of error encountered
	code int

	// desc is a human readable description of the error that occurred
	desc string
}

// Category getter for category
func (e ErrorCode) Category() Category {
	return e.category
}

// Code getter for code
func (e ErrorCode) Code() int {
	return e.code
}

// Desc getter for desc
func (e ErrorCode) Desc() string {
	return e.desc
}
