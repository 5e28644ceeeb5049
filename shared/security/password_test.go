package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Strong1!pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "Strong1!pass")

	ok, err := VerifyPassword("Strong1!pass", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("Wrong1!pass", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("Strong1!pass")
	require.NoError(t, err)

	second, err := HashPassword("Strong1!pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "valid", password: "Strong1!pass", want: true},
		{name: "too short", password: "short1!", want: false},
		{name: "missing uppercase", password: "alllowercase1!", want: false},
		{name: "missing lowercase", password: "ALLUPPER1!", want: false},
		{name: "missing digit", password: "NoDigitsHere!", want: false},
		{name: "missing symbol", password: "NoSymbol123", want: false},
		{name: "empty", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePasswordStrength(tt.password))
		})
	}
}
