// Package apperr defines the error kinds shared by the storefront packages.
// Packages declare their own sentinels with New and transports match kinds with errors.Is.
package apperr

import "errors"

var (
	NotFound       = errors.New("not found")
	Validation     = errors.New("validation failed")
	ExternalSource = errors.New("external source failure")
)

// Error carries a human message and the kind it belongs to.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap attaches kind to err. A nil err stays nil.
func Wrap(kind error, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Is reports whether err belongs to kind.
func Is(err, kind error) bool {
	return errors.Is(err, kind)
}
