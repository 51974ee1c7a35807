package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// RemoteErrorKind categorizes failures of the hosted store so that callers
// can apply distinct policies per category.
type RemoteErrorKind int

const (
	RemoteUnknown RemoteErrorKind = iota
	RemoteNetwork                 // request never reached the store
	RemotePermission              // 401/403
	RemoteNotFound                // 404
	RemoteServer                  // 5xx
)

func (k RemoteErrorKind) String() string {
	switch k {
	case RemoteNetwork:
		return "network_error"
	case RemotePermission:
		return "permission_error"
	case RemoteNotFound:
		return "not_found"
	case RemoteServer:
		return "server_error"
	}
	return "unknown_error"
}

// RemoteError wraps a store failure with a message suitable for direct display.
type RemoteError struct {
	Kind    RemoteErrorKind
	Message string
	Err     error
}

func NewRemoteError(kind RemoteErrorKind, msg string, err error) error {
	return &RemoteError{Kind: kind, Message: msg, Err: err}
}

func (err *RemoteError) Error() string {
	return err.Message
}

// RemoteKind reports the store failure category of err, if it has one.
func RemoteKind(err error) (RemoteErrorKind, bool) {
	if rerr, ok := errors.Cause(err).(*RemoteError); ok {
		return rerr.Kind, true
	}
	return RemoteUnknown, false
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
