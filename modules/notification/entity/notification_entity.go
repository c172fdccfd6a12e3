package entity

import (
	coreentity "counsel-api/core/entity"

	"github.com/google/uuid"
)

const (
	TypeBookingInvite = "booking_invite"
)

// Notification is the in-app record of a delivered notification.
type Notification struct {
	coreentity.BaseEntity
	CounselorID uuid.UUID `db:"counselor_id" json:"counselor_id"`
	Title       string    `db:"title" json:"title"`
	Message     string    `db:"message" json:"message"`
	Type        string    `db:"type" json:"type"`
	IsRead      bool      `db:"is_read" json:"is_read"`
}

func (Notification) TableName() string {
	return "notifications"
}
