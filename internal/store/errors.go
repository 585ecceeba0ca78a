package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
)

type Kind int

const (
	KindStore Kind = iota
	KindNotFound
	KindPermissionDenied
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	default:
		return "store error"
	}
}

// Error describes a failed store operation. It matches ErrNotFound and
// ErrPermissionDenied through errors.Is according to its Kind.
type Error struct {
	Op   string
	Path string
	Name string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	target := e.Path
	if e.Name != "" {
		target += ":" + e.Name
	}
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, target, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, target, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrPermissionDenied:
		return e.Kind == KindPermissionDenied
	}
	return false
}

func newError(op, path, name string, kind Kind, err error) *Error {
	return &Error{Op: op, Path: path, Name: name, Kind: kind, Err: err}
}

// KindOf classifies any error returned by a Store.
func KindOf(err error) Kind {
	var se *Error
	switch {
	case errors.As(err, &se):
		return se.Kind
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	}
	return KindStore
}
