package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Troubladore/silent-auction-sub001/pkg/config"
)

// DevPassword is accepted for the configured username when ADMIN_PASSWORD_HASH
// is empty outside production.
const DevPassword = "auction"

// ErrInvalidCredentials is returned by Verify for a wrong username or password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Credentials holds the single shared operator account used by bid-entry stations.
type Credentials struct {
	username string
	hash     []byte
}

// NewCredentials builds Credentials from config. In production the hash must
// be set (config.ValidateForProduction enforces it); elsewhere an empty hash
// is replaced by a hash of DevPassword.
func NewCredentials(cfg *config.Config) (*Credentials, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		if cfg.Environment == config.EnvProduction {
			return nil, errors.New("ADMIN_PASSWORD_HASH is required in production")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(DevPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash dev password: %w", err)
		}
	}
	if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
	}
	return &Credentials{username: cfg.AdminUsername, hash: hash}, nil
}

// Verify checks a username/password pair. The bcrypt comparison always runs
// so a wrong username takes as long as a wrong password.
func (c *Credentials) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(c.hash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
