package security

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	ErrAdminDisabled = errors.New("admin endpoints disabled")
	ErrInvalidKey    = errors.New("invalid admin key")
)

// AdminAuth checks admin keys against a bcrypt hash taken from configuration.
type AdminAuth struct {
	keyHash string
}

func NewAdminAuth(keyHash string) *AdminAuth {
	return &AdminAuth{keyHash: strings.TrimSpace(keyHash)}
}

// Enabled reports whether an admin key hash has been configured.
func (a *AdminAuth) Enabled() bool {
	return a != nil && a.keyHash != ""
}

// Verify returns nil when key matches the configured hash.
func (a *AdminAuth) Verify(key string) error {
	if !a.Enabled() {
		return ErrAdminDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.keyHash), []byte(key)); err != nil {
		return ErrInvalidKey
	}
	return nil
}

// HashKey produces the value to put in ADMIN_KEY_HASH for a given key.
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
