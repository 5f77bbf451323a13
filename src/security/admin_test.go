package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminAuthVerify(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	auth := NewAdminAuth(string(hash) + "\n")
	assert.True(t, auth.Enabled())
	assert.NoError(t, auth.Verify("s3cret"))
	assert.ErrorIs(t, auth.Verify("wrong"), ErrInvalidKey)
	assert.ErrorIs(t, auth.Verify(""), ErrInvalidKey)
}

func TestAdminAuthDisabled(t *testing.T) {
	auth := NewAdminAuth("")
	assert.False(t, auth.Enabled())
	assert.ErrorIs(t, auth.Verify("anything"), ErrAdminDisabled)

	var nilAuth *AdminAuth
	assert.False(t, nilAuth.Enabled())
}

func TestHashKey(t *testing.T) {
	hash, err := HashKey("operator-key")
	require.NoError(t, err)
	assert.NoError(t, NewAdminAuth(hash).Verify("operator-key"))
}
