package entity

import (
	"time"

	"counsel-api/core/entity"

	"github.com/google/uuid"
)

// CalendarConnection stores a counselor's calendar provider tokens
type CalendarConnection struct {
	entity.BaseEntity
	CounselorID    uuid.UUID `db:"counselor_id" json:"counselor_id"`
	Provider       string    `db:"provider" json:"provider"` // "google"
	AccessToken    string    `db:"access_token" json:"-"`
	RefreshToken   string    `db:"refresh_token" json:"-"`
	TokenExpiresAt time.Time `db:"token_expires_at" json:"token_expires_at"`
	CalendarEmail  string    `db:"calendar_email" json:"calendar_email"`
	IsActive       bool      `db:"is_active" json:"is_active"`
}

func (CalendarConnection) TableName() string {
	return "calendar_connections"
}
