package dto

import (
	"time"

	meetingdto "counsel-api/modules/meeting/dto"
)

// BookingOutcome is the terminal state of one booking attempt. Partial
// states are reported, never hidden behind a retry or rollback.
type BookingOutcome string

const (
	OutcomeBooked         BookingOutcome = "booked"
	OutcomeNotAvailable   BookingOutcome = "not_available"
	OutcomePartialSuccess BookingOutcome = "partial_success"
	OutcomeProviderError  BookingOutcome = "provider_error"
	OutcomeCancelled      BookingOutcome = "cancelled"
)

type CreateBookingRequest struct {
	CounselorID     string    `json:"counselor_id" validate:"required"`
	Topic           string    `json:"topic" validate:"required"`
	Agenda          string    `json:"agenda"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration" validate:"required,min=1"`
	Timezone        string    `json:"timezone"`
	AttendeeEmail   string    `json:"attendee_email"`
	AttendeeName    string    `json:"attendee_name"`
}

type RescheduleBookingRequest struct {
	CounselorID string    `json:"counselor_id" validate:"required"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	Timezone    string    `json:"timezone"`
}

// BookingResult reports what actually happened on both providers.
// MeetingCreated and CalendarMirrored diverge on partial success, and the
// meeting id is always present once the provider write went through so the
// caller can recover manually.
type BookingResult struct {
	Outcome          BookingOutcome              `json:"outcome"`
	Meeting          *meetingdto.MeetingResponse `json:"meeting,omitempty"`
	MeetingCreated   bool                        `json:"meeting_created"`
	CalendarMirrored bool                        `json:"calendar_mirrored"`
	UpstreamStatus   int                         `json:"upstream_status,omitempty"`
	Detail           string                      `json:"detail,omitempty"`
}

type BookingPageURLResponse struct {
	URL  string `json:"url"`
	Slug string `json:"slug"`
}
