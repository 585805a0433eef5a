package cryptox

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStableFraction_Deterministic(t *testing.T) {
	assert.Equal(t, StableFraction("user-1"), StableFraction("user-1"))
	assert.NotEqual(t, StableFraction("user-1"), StableFraction("user-2"))
}

func TestStableFraction_Range(t *testing.T) {
	for i := 0; i < 2000; i++ {
		f := StableFraction(fmt.Sprintf("k%d", i))
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
	}
}

func TestRandomDigits(t *testing.T) {
	re := regexp.MustCompile(`^[1-9][0-9]{5}$`)
	for i := 0; i < 200; i++ {
		code, err := RandomDigits(6)
		require.NoError(t, err)
		require.Regexp(t, re, code)
	}

	one, err := RandomDigits(1)
	require.NoError(t, err)
	assert.Regexp(t, `^[1-9]$`, one)

	_, err = RandomDigits(0)
	assert.Error(t, err)
}

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(16)
	require.NoError(t, err)
	b, err := RandomHex(16)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
