package entity

import "time"

const (
	// Scheduled meeting with a fixed start time.
	TypeScheduled = 2
)

// Meeting is the provider-side representation of a video meeting. The id is
// assigned by the provider and doubles as the key for the calendar mirror.
type Meeting struct {
	ID              string    `json:"id"`
	HostID          string    `json:"host_id,omitempty"`
	Topic           string    `json:"topic"`
	Agenda          string    `json:"agenda,omitempty"`
	Type            int       `json:"type"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration"`
	Timezone        string    `json:"timezone"`
	Password        string    `json:"password,omitempty"`
	JoinURL         string    `json:"join_url,omitempty"`
	StartURL        string    `json:"start_url,omitempty"`
	Status          string    `json:"status,omitempty"`
}

// EndTime derives the end of the meeting from its start and duration.
func (m *Meeting) EndTime() time.Time {
	return m.StartTime.Add(time.Duration(m.DurationMinutes) * time.Minute)
}

// Registrant is an attendee registered to a meeting.
type Registrant struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	JoinURL   string `json:"join_url,omitempty"`
}
