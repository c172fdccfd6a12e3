package entity

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// LocalTime is a wall-clock time of day in the counselor's home timezone.
type LocalTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func ParseLocalTime(s string) (LocalTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return LocalTime{}, fmt.Errorf("invalid local time %q: %w", s, err)
	}
	return LocalTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t LocalTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Rule is one recurring availability block on a weekday.
type Rule struct {
	Weekday time.Weekday `json:"weekday"`
	Start   LocalTime    `json:"start"`
	End     LocalTime    `json:"end"`
}

// RangeOn projects the rule onto the civil date of ref in loc, producing
// absolute instants.
func (r Rule) RangeOn(ref time.Time, loc *time.Location) TimeRange {
	local := ref.In(loc)
	year, month, day := local.Date()
	return TimeRange{
		Start: time.Date(year, month, day, r.Start.Hour, r.Start.Minute, 0, 0, loc),
		End:   time.Date(year, month, day, r.End.Hour, r.End.Minute, 0, 0, loc),
	}
}

// WorkingHours is a counselor's recurring weekly availability.
type WorkingHours struct {
	CounselorID uuid.UUID `json:"counselor_id"`
	Timezone    string    `json:"timezone"`
	Rules       []Rule    `json:"rules"`
}

// Validate rejects malformed configurations at load time, not query time:
// start must precede end within a rule, and rules on the same weekday must
// not overlap.
func (w WorkingHours) Validate() error {
	if _, err := time.LoadLocation(w.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", w.Timezone, err)
	}

	byDay := map[time.Weekday][]Rule{}
	for _, r := range w.Rules {
		if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
			return fmt.Errorf("invalid weekday %d", r.Weekday)
		}
		if r.Start.Minutes() >= r.End.Minutes() {
			return fmt.Errorf("rule %s %s-%s: start must be before end", r.Weekday, r.Start, r.End)
		}
		byDay[r.Weekday] = append(byDay[r.Weekday], r)
	}

	for day, rules := range byDay {
		sort.Slice(rules, func(i, j int) bool {
			return rules[i].Start.Minutes() < rules[j].Start.Minutes()
		})
		for i := 1; i < len(rules); i++ {
			if rules[i].Start.Minutes() < rules[i-1].End.Minutes() {
				return fmt.Errorf("overlapping rules on %s: %s-%s and %s-%s",
					day, rules[i-1].Start, rules[i-1].End, rules[i].Start, rules[i].End)
			}
		}
	}
	return nil
}

// RulesFor returns the rules for a weekday ordered by start time. Pure lookup.
func (w WorkingHours) RulesFor(weekday time.Weekday) []Rule {
	var out []Rule
	for _, r := range w.Rules {
		if r.Weekday == weekday {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Minutes() < out[j].Start.Minutes()
	})
	return out
}

// Location resolves the home timezone. Validate must have passed.
func (w WorkingHours) Location() *time.Location {
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
