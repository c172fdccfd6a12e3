package dto

import (
	"counsel-api/modules/meeting/entity"
	"time"
)

type CreateMeetingRequest struct {
	Topic           string    `json:"topic" validate:"required"`
	Agenda          string    `json:"agenda"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration" validate:"required,min=1"`
	Timezone        string    `json:"timezone"`
}

type UpdateMeetingRequest struct {
	Topic           string    `json:"topic"`
	Agenda          string    `json:"agenda"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration"`
	Timezone        string    `json:"timezone"`
}

type AddRegistrantRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
}

type MeetingResponse struct {
	ID              string    `json:"id"`
	Topic           string    `json:"topic"`
	Agenda          string    `json:"agenda,omitempty"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration"`
	Timezone        string    `json:"timezone"`
	JoinURL         string    `json:"join_url,omitempty"`
	Status          string    `json:"status,omitempty"`
}

type RegistrantResponse struct {
	ID      string `json:"id,omitempty"`
	Email   string `json:"email"`
	JoinURL string `json:"join_url,omitempty"`
}

func ToMeetingResponse(m *entity.Meeting) *MeetingResponse {
	return &MeetingResponse{
		ID:              m.ID,
		Topic:           m.Topic,
		Agenda:          m.Agenda,
		StartTime:       m.StartTime,
		DurationMinutes: m.DurationMinutes,
		Timezone:        m.Timezone,
		JoinURL:         m.JoinURL,
		Status:          m.Status,
	}
}
