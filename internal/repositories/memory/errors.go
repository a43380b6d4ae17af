// Package memory provides mutex-guarded in-memory repositories used by tests
// and local runs. List semantics are delegated to the catalog query engine so
// every backend answers queries identically.
package memory

import "fmt"

// Error implements repositories.RepositoryError for in-memory repositories.
type Error struct {
	op       string
	msg      string
	notFound bool
	conflict bool
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.op != "" {
		return fmt.Sprintf("%s: %s", e.op, e.msg)
	}
	return e.msg
}

func (e *Error) IsNotFound() bool { return e != nil && e.notFound }

func (e *Error) IsConflict() bool { return e != nil && e.conflict }

// IsUnavailable always reports false; an in-memory store has no backend to lose.
func (e *Error) IsUnavailable() bool { return false }

func notFoundError(op, format string, args ...any) *Error {
	return &Error{op: op, msg: fmt.Sprintf(format, args...), notFound: true}
}

func conflictError(op, format string, args ...any) *Error {
	return &Error{op: op, msg: fmt.Sprintf(format, args...), conflict: true}
}
