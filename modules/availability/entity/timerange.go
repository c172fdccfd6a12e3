package entity

import (
	"fmt"
	"time"
)

// TimeRange is a half-open interval [Start, End) of absolute instants.
// All cross-system comparisons happen on instants, never local wall-clock.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("time range start %s must be before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeRange{Start: start, End: end}, nil
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r TimeRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// BusyInterval is an occupied range plus the calendar event id it came from.
// The id lets a reschedule exclude the meeting's own mirror from conflict checks.
type BusyInterval struct {
	TimeRange
	SourceID string `json:"source_id"`
}
