package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, "redis", c.CacheDriver)
	assert.Equal(t, "mongo", c.StoreDriver)
	assert.Equal(t, 300*time.Second, c.Validity())
	assert.Equal(t, 10*time.Second, c.MongoTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OTP_VALIDITY", "60")
	t.Setenv("CACHE_DRIVER", "memory")
	t.Setenv("STORE_DRIVER", "memory")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, c.Validity())
	assert.Equal(t, "memory", c.CacheDriver)
	assert.Equal(t, "memory", c.StoreDriver)
}

func TestLoadUnknownDriver(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "memcached")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidityFallback(t *testing.T) {
	for _, v := range []int{0, -5} {
		c := &Config{OTPValidity: v}
		assert.Equal(t, 300*time.Second, c.Validity())
	}
}

func TestSettingsReload(t *testing.T) {
	s := NewSettings(&Config{OTPValidity: 300})
	assert.Equal(t, 300*time.Second, s.OTPValidity())

	t.Setenv("OTP_VALIDITY", "30")
	require.NoError(t, s.Reload())
	assert.Equal(t, 30*time.Second, s.OTPValidity())

	s.SetOTPValidity(0)
	assert.Equal(t, 300*time.Second, s.OTPValidity())
}
