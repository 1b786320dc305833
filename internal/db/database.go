package db

import (
	"context"
	"errors"

	"github.com/aph138/otpd/internal/entity"
)

// ErrNotFound is returned by FindLatest when no record matches the filter.
var ErrNotFound = errors.New("record not found")

// Filter selects OTP records. Empty fields match anything, so the zero
// value matches every record.
type Filter struct {
	UserID  string
	Purpose string
}

type Database interface {
	// Close disconnects from the database.
	Close(context.Context) error

	// Insert appends a new record. Records are never updated afterwards.
	Insert(ctx context.Context, record *entity.OTP) error

	// FindLatest returns the most recently created record matching the filter.
	// It returns ErrNotFound if nothing matches.
	FindLatest(ctx context.Context, filter Filter) (*entity.OTP, error)

	// DeleteMany removes every record matching the filter and returns
	// how many were removed.
	DeleteMany(ctx context.Context, filter Filter) (int64, error)
}
