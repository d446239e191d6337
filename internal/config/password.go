package config

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past 72 bytes, so longer passwords are rejected outright.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned when password plus pepper exceeds what bcrypt hashes.
var ErrPasswordTooLong = errors.New("password too long")

// PasswordConfig hashes and verifies user passwords.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewPasswordConfig validates the password section.
func (c *Config) NewPasswordConfig() (*PasswordConfig, error) {
	pwCfg := &PasswordConfig{
		BcryptCost: c.Password.BcryptCost,
		Pepper:     c.Password.Pepper,
	}
	if err := pwCfg.normalize(); err != nil {
		return nil, err
	}
	return pwCfg, nil
}

// normalize validates the configuration.
func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	if len(c.Pepper) >= maxPasswordBytes {
		return fmt.Errorf("password pepper too long: %d bytes", len(c.Pepper))
	}
	return nil
}

func (c *PasswordConfig) peppered(pw string) string {
	return pw + c.Pepper
}

// HashPassword hashes a password using bcrypt with the configured pepper.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	password := c.peppered(pw)
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches storedHash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(c.peppered(pw))) == nil
}
