package dto

import "time"

// BookingInvite is the payload queued after a successful booking. The worker
// renders it into an ICS attachment and mails it to the counselor.
type BookingInvite struct {
	Recipient string    `json:"recipient"`
	MeetingID string    `json:"meeting_id"`
	Topic     string    `json:"topic"`
	Agenda    string    `json:"agenda,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Timezone  string    `json:"timezone,omitempty"`
	JoinURL   string    `json:"join_url,omitempty"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type MarkReadRequest struct {
	IDs []string `json:"ids"`
}
