package dto

import "time"

const ProviderGoogle = "google"

type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

type ConnectionResponse struct {
	Provider       string    `json:"provider"`
	CalendarEmail  string    `json:"calendar_email"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
	IsActive       bool      `json:"is_active"`
}
