package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utaskhq/utask/internal/domain"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("sup3rsecret")
	require.NoError(t, err)
	require.NotEqual(t, "sup3rsecret", hash)

	assert.True(t, CheckPassword(hash, "sup3rsecret"))
	assert.False(t, CheckPassword(hash, "wrongpass1"))
	assert.False(t, CheckPassword("", "sup3rsecret"))
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "abcdef12", true},
		{"valid unicode letters", "senhá123", true},
		{"too short", "ab1", false},
		{"no digit", "abcdefgh", false},
		{"no letter", "12345678", false},
		{"only symbols", "!!!!!!!!", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrValidation)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.NoError(t, ValidateEmail("a.b+c@sub.example.org"))

	assert.ErrorIs(t, ValidateEmail("not-an-email"), domain.ErrValidation)
	assert.ErrorIs(t, ValidateEmail("a b@example.com"), domain.ErrValidation)
	assert.ErrorIs(t, ValidateEmail("alice@nodomain"), domain.ErrValidation)
	assert.ErrorIs(t, ValidateEmail(""), domain.ErrValidation)
}
