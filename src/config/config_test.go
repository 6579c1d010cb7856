package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformFeeCents(t *testing.T) {
	// Default rate, truncated to whole cents.
	assert.Equal(t, int64(70), PlatformFeeCents(1000))
	assert.Equal(t, int64(69), PlatformFeeCents(999))
	assert.Equal(t, int64(0), PlatformFeeCents(0))
}

func TestPlatformFeeRateOverride(t *testing.T) {
	t.Setenv("PLATFORM_FEE_RATE", "0.05")
	assert.Equal(t, 0.05, PlatformFeeRate())
	assert.Equal(t, int64(50), PlatformFeeCents(1000))

	t.Setenv("PLATFORM_FEE_RATE", "not a rate")
	assert.Equal(t, 0.07, PlatformFeeRate())

	t.Setenv("PLATFORM_FEE_RATE", "1.5")
	assert.Equal(t, 0.07, PlatformFeeRate())
}
