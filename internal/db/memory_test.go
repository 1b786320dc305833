package db

import (
	"context"
	"testing"
	"time"

	"github.com/aph138/otpd/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exercise runs the contract every Database must satisfy.
func exercise(t *testing.T, d Database) {
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := d.FindLatest(ctx, Filter{UserID: "u1", Purpose: "login"})
	require.ErrorIs(t, err, ErrNotFound)

	records := []*entity.OTP{
		{UserID: "u1", Purpose: "login", Code: "111111", CreatedAt: base},
		{UserID: "u1", Purpose: "login", Code: "333333", CreatedAt: base.Add(2 * time.Minute)},
		{UserID: "u1", Purpose: "login", Code: "222222", CreatedAt: base.Add(time.Minute)},
		{UserID: "u1", Purpose: "reset", Code: "444444", CreatedAt: base},
		{UserID: "u2", Purpose: "login", Code: "555555", CreatedAt: base},
	}
	for _, r := range records {
		require.NoError(t, d.Insert(ctx, r))
		assert.False(t, r.ID.IsZero())
	}

	latest, err := d.FindLatest(ctx, Filter{UserID: "u1", Purpose: "login"})
	require.NoError(t, err)
	assert.Equal(t, "333333", latest.Code)
	assert.True(t, latest.CreatedAt.Equal(base.Add(2*time.Minute)))

	n, err := d.DeleteMany(ctx, Filter{UserID: "u1", Purpose: "login"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	latest, err = d.FindLatest(ctx, Filter{UserID: "u1", Purpose: "reset"})
	require.NoError(t, err)
	assert.Equal(t, "444444", latest.Code)

	n, err = d.DeleteMany(ctx, Filter{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = d.DeleteMany(ctx, Filter{UserID: "u1"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = d.DeleteMany(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = d.FindLatest(ctx, Filter{UserID: "u2", Purpose: "login"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestMemoryLatestTie(t *testing.T) {
	d := NewMemory()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, d.Insert(ctx, &entity.OTP{UserID: "u1", Purpose: "login", Code: "111111", CreatedAt: now}))
	require.NoError(t, d.Insert(ctx, &entity.OTP{UserID: "u1", Purpose: "login", Code: "222222", CreatedAt: now}))

	latest, err := d.FindLatest(ctx, Filter{UserID: "u1", Purpose: "login"})
	require.NoError(t, err)
	assert.Equal(t, "222222", latest.Code)
}
