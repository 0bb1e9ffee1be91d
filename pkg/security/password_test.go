package security_test

import (
	"testing"

	"go-jobboard-backend/pkg/security"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := security.HashPassword("12345678")
	assert.NoError(t, err)
	assert.NotEqual(t, "12345678", hash)

	assert.True(t, security.VerifyPassword(hash, "12345678"))
	assert.False(t, security.VerifyPassword(hash, "wrong"))
	assert.False(t, security.VerifyPassword("not-a-hash", "12345678"))
}
