package entity

import "time"

// Event mirrors a meeting into the calendar provider. Mirror events are keyed
// by the meeting id, so the linkage survives even if the description payload
// is edited by hand.
type Event struct {
	ID          string    `json:"id"`
	MeetingID   string    `json:"meeting_id,omitempty"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	TimeZone    string    `json:"time_zone,omitempty"`
	Status      string    `json:"status,omitempty"`
}
