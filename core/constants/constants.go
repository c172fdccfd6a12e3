package constants

import "time"

const (
	DefaultTimeout = 10 * time.Second

	// Database pool settings
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes

	// JWT scopes for the counselor admin surface
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
	AccessTokenTTL    = 1 * time.Hour
	RefreshTokenTTL   = 720 * time.Hour

	// Availability window policy: slots are resolved from the requested
	// instant through the end of that local day. Busy intervals are fetched
	// from the calendar provider with a bounded page size.
	CalendarPageSize           = 100
	DefaultSlotDurationMinutes = 15

	// Session cookie carrying the meeting-provider credential key
	SessionCookieName = "sid"
	SessionTTL        = 30 * 24 * time.Hour

	// Redis key prefixes
	CredentialKeyPrefix = "credential:"
)
