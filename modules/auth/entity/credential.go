package entity

import (
	"fmt"
	"time"
)

// Credential is the stored meeting provider token set. Credentials are
// replaced wholesale on refresh, never field-patched.
type Credential struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TTLSeconds   int64  `json:"expires_in"`
	IssuedAt     int64  `json:"update_at"`
}

func (c *Credential) Validate() error {
	if c.AccessToken == "" {
		return fmt.Errorf("credential missing access token")
	}
	if c.TTLSeconds <= 0 {
		return fmt.Errorf("credential ttl must be positive, got %d", c.TTLSeconds)
	}
	return nil
}

// ExpiresAt is the instant the access token stops being usable.
func (c *Credential) ExpiresAt() time.Time {
	return time.Unix(c.IssuedAt+c.TTLSeconds, 0)
}

// Expired reports whether the access token is past its lifetime at now.
// The boundary instant counts as expired.
func (c *Credential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt())
}
