package services

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"cafe-gandom/config"
)

// Authenticator decides whether a username/password pair opens the admin dashboard.
type Authenticator interface {
	Authenticate(username, password string) bool
}

// StaticCredentials accepts exactly one fixed pair.
type StaticCredentials struct {
	Username string
	Password string
}

func (c StaticCredentials) Authenticate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}

// HashedCredentials checks the password against a bcrypt hash. Do not log the plain password.
type HashedCredentials struct {
	Username     string
	PasswordHash string
}

func (c HashedCredentials) Authenticate(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
}

// NewAuthenticator picks the hashed credential when a hash is configured.
func NewAuthenticator(cfg config.AdminConfig) Authenticator {
	if cfg.PasswordHash != "" {
		return HashedCredentials{Username: cfg.Username, PasswordHash: cfg.PasswordHash}
	}
	return StaticCredentials{Username: cfg.Username, Password: cfg.Password}
}
