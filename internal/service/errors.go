package service

import (
	"errors"
	"fmt"
)

// ErrInternal is the only failure callers are meant to see. Every *Error
// matches it with errors.Is.
var ErrInternal = errors.New("internal server error")

// Kind tells which collaborator failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindCache
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindCache:
		return "cache"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error carries the failed operation and the original cause for logging.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrInternal
}

// KindOf returns the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
