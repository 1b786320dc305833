package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aph138/otpd/internal/cache"
	"github.com/aph138/otpd/internal/db"
	"github.com/aph138/otpd/internal/entity"
	"github.com/aph138/otpd/pkg/otp"
)

// Settings supplies the validity window. It is read on every Generate call
// so a reload takes effect without a restart.
type Settings interface {
	OTPValidity() time.Duration
}

// CacheKey returns the cache key of the code for userID and purpose.
func CacheKey(userID, purpose string) string {
	return cachePrefix(userID) + purpose
}

func cachePrefix(userID string) string {
	return "otp:" + userID + ":"
}

// OTPService issues, validates and invalidates codes. The cache decides
// whether a code is currently acceptable; the database keeps the history
// and lets a code survive a cold cache.
//
// Nothing here is locked. Two Generate calls racing on a cold cache may both
// insert a record, the last cache write wins.
type OTPService struct {
	logger   *slog.Logger
	cache    cache.Cache
	db       db.Database
	settings Settings
	now      func() time.Time
	newCode  func() (string, error)
}

type Option func(*OTPService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *OTPService) { s.now = now }
}

// WithCodeGenerator replaces otp.NewCode.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *OTPService) { s.newCode = gen }
}

func NewOTPService(logger *slog.Logger, c cache.Cache, d db.Database, settings Settings, opts ...Option) *OTPService {
	s := &OTPService{
		logger:   logger,
		cache:    c,
		db:       d,
		settings: settings,
		now:      time.Now,
		newCode:  otp.NewCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate returns the code currently valid for userID and purpose, or
// issues a new one. While the cache holds a code it is returned unchanged.
//
// A failure aborts the call and nothing already written is rolled back, a
// cache entry written before a failed insert lives until its ttl.
func (s *OTPService) Generate(ctx context.Context, userID, purpose string) (string, error) {
	const op = "generate"
	key := CacheKey(userID, purpose)

	code, err := s.cache.Get(ctx, key)
	if err == nil {
		return code, nil
	}
	if !errors.Is(err, cache.ErrNotFound) {
		return "", s.fail(op, KindCache, err)
	}

	validity := s.settings.OTPValidity()
	latest, err := s.db.FindLatest(ctx, db.Filter{UserID: userID, Purpose: purpose})
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return "", s.fail(op, KindStore, err)
	}
	now := s.now()
	if latest != nil && now.Sub(latest.CreatedAt) < validity {
		// refresh with the full window, not the remaining time
		if err := s.cache.Set(ctx, key, latest.Code, validity); err != nil {
			return "", s.fail(op, KindCache, err)
		}
		return latest.Code, nil
	}

	code, err = s.newCode()
	if err != nil {
		return "", s.fail(op, KindUnknown, err)
	}
	if err := s.cache.Set(ctx, key, code, validity); err != nil {
		return "", s.fail(op, KindCache, err)
	}
	record := &entity.OTP{
		UserID:    userID,
		Purpose:   purpose,
		Code:      code,
		CreatedAt: now,
	}
	if err := s.db.Insert(ctx, record); err != nil {
		return "", s.fail(op, KindStore, err)
	}
	s.logger.Debug("issued otp", "userId", userID, "purpose", purpose, "otp", code)
	return code, nil
}

// Validate reports whether code equals the cached code. It never consults
// the database, an expired cache entry means an invalid code.
func (s *OTPService) Validate(ctx context.Context, userID, purpose, code string) (bool, error) {
	cached, err := s.cache.Get(ctx, CacheKey(userID, purpose))
	if errors.Is(err, cache.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, &Error{Op: "validate", Kind: KindCache, Err: err}
	}
	return cached == code, nil
}

// Invalidate deletes the records and cached codes of userID. With an empty
// purpose every purpose of the user is removed. It returns the number of
// deleted records.
//
// The two stores are not updated atomically. A failure after the database
// delete may leave a cached code behind until it expires.
func (s *OTPService) Invalidate(ctx context.Context, userID, purpose string) (int64, error) {
	const op = "invalidate"
	deleted, err := s.db.DeleteMany(ctx, db.Filter{UserID: userID, Purpose: purpose})
	if err != nil {
		return 0, &Error{Op: op, Kind: KindStore, Err: err}
	}

	if len(purpose) > 0 {
		if err := s.cache.Delete(ctx, CacheKey(userID, purpose)); err != nil {
			return 0, &Error{Op: op, Kind: KindCache, Err: err}
		}
		return deleted, nil
	}

	keys, err := s.cache.Keys(ctx, cachePrefix(userID))
	if err != nil {
		return 0, &Error{Op: op, Kind: KindCache, Err: err}
	}
	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			return 0, &Error{Op: op, Kind: KindCache, Err: err}
		}
	}
	return deleted, nil
}

// DeleteAll removes every record and flushes the whole cache, including keys
// this service did not write.
func (s *OTPService) DeleteAll(ctx context.Context) (int64, error) {
	const op = "delete all"
	deleted, err := s.db.DeleteMany(ctx, db.Filter{})
	if err != nil {
		return 0, &Error{Op: op, Kind: KindStore, Err: err}
	}
	if err := s.cache.FlushAll(ctx); err != nil {
		return 0, &Error{Op: op, Kind: KindCache, Err: err}
	}
	return deleted, nil
}

func (s *OTPService) fail(op string, kind Kind, err error) error {
	e := &Error{Op: op, Kind: kind, Err: err}
	s.logger.Error("err when generating otp", "kind", kind.String(), "err", err.Error())
	return e
}
