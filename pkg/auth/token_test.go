package auth_test

import (
	"testing"
	"time"

	"go-jobboard-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	t.Run("Issue and parse round-trip", func(t *testing.T) {
		token, err := tokens.Issue(42)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		userID, err := tokens.Parse(token)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("Wrong secret is rejected", func(t *testing.T) {
		token, err := tokens.Issue(42)
		assert.NoError(t, err)

		other := auth.NewTokenManager("other-secret", time.Hour)
		_, err = other.Parse(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		expired := auth.NewTokenManager("test-secret", -time.Minute)
		token, err := expired.Issue(42)
		assert.NoError(t, err)

		_, err = tokens.Parse(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		_, err := tokens.Parse("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
