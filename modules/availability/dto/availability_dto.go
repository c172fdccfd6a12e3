package dto

import (
	"time"

	"counsel-api/modules/availability/entity"

	"github.com/google/uuid"
)

// AvailableSlotsRequest asks for bookable slots anchored at FromDate.
// MeetingID, when set, excludes that meeting's own busy interval (reschedule).
type AvailableSlotsRequest struct {
	FromDate        time.Time `json:"from_date"`
	DurationMinutes int       `json:"duration"`
	TimeZone        string    `json:"time_zone"`
	CounselorID     string    `json:"counselor_id"`
	MeetingID       string    `json:"id,omitempty"`
	MaxResults      int       `json:"max_results,omitempty"`
}

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailableSlotsResponse echoes the computed window bounds alongside the
// ordered slots.
type AvailableSlotsResponse struct {
	Slots      []TimeSlot `json:"lists"`
	AvFromTime time.Time  `json:"av_from_time"`
	AvToTime   time.Time  `json:"av_to_time"`
}

type WorkingHoursRule struct {
	Weekday int    `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type WorkingHoursRequest struct {
	Timezone string             `json:"timezone"`
	Rules    []WorkingHoursRule `json:"rules"`
}

type WorkingHoursResponse struct {
	CounselorID uuid.UUID          `json:"counselor_id"`
	Timezone    string             `json:"timezone"`
	Rules       []WorkingHoursRule `json:"rules"`
}

func ToWorkingHoursResponse(wh *entity.WorkingHours) *WorkingHoursResponse {
	resp := &WorkingHoursResponse{
		CounselorID: wh.CounselorID,
		Timezone:    wh.Timezone,
		Rules:       make([]WorkingHoursRule, 0, len(wh.Rules)),
	}
	for _, r := range wh.Rules {
		resp.Rules = append(resp.Rules, WorkingHoursRule{
			Weekday: int(r.Weekday),
			Start:   r.Start.String(),
			End:     r.End.String(),
		})
	}
	return resp
}
