package config

import (
	"fmt"
	"time"
)

// minJWTSecretRelease is the shortest secret accepted in release mode.
const minJWTSecretRelease = 32

// JWTConfig holds the validated settings for issuing and checking tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig validates the jwt section. A secret is always required; release
// mode additionally requires at least 32 characters.
func (c *Config) NewJWTConfig() (*JWTConfig, error) {
	jwtCfg := &JWTConfig{
		Secret:          c.JWT.Secret,
		ExpirationHours: c.JWT.ExpirationHours,
	}
	if err := jwtCfg.normalize(); err != nil {
		return nil, err
	}
	if c.Server.Mode == "release" && len(jwtCfg.Secret) < minJWTSecretRelease {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least %d characters in release mode",
			len(jwtCfg.Secret), minJWTSecretRelease)
	}
	return jwtCfg, nil
}

// Expiration returns the token lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT secret is required but not set (CAREER_JWT_SECRET or JWT_SECRET)")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT expiration must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
