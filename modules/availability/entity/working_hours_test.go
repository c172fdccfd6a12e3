package entity

import (
	"testing"
	"time"
)

func TestParseLocalTime(t *testing.T) {
	got, err := ParseLocalTime("09:30")
	if err != nil {
		t.Fatalf("ParseLocalTime: %v", err)
	}
	if got.Hour != 9 || got.Minute != 30 {
		t.Fatalf("got %v, want 09:30", got)
	}

	if _, err := ParseLocalTime("25:00"); err == nil {
		t.Fatal("expected error for 25:00")
	}
	if _, err := ParseLocalTime("9am"); err == nil {
		t.Fatal("expected error for 9am")
	}
}

func TestWorkingHoursValidate(t *testing.T) {
	tests := []struct {
		name    string
		wh      WorkingHours
		wantErr bool
	}{
		{
			name: "valid rules",
			wh: WorkingHours{
				Timezone: "America/New_York",
				Rules: []Rule{
					{Weekday: time.Monday, Start: LocalTime{Hour: 9}, End: LocalTime{Hour: 12}},
					{Weekday: time.Monday, Start: LocalTime{Hour: 13}, End: LocalTime{Hour: 17}},
				},
			},
		},
		{
			name: "start equal to end rejected",
			wh: WorkingHours{
				Timezone: "UTC",
				Rules:    []Rule{{Weekday: time.Monday, Start: LocalTime{Hour: 9}, End: LocalTime{Hour: 9}}},
			},
			wantErr: true,
		},
		{
			name: "start after end rejected",
			wh: WorkingHours{
				Timezone: "UTC",
				Rules:    []Rule{{Weekday: time.Monday, Start: LocalTime{Hour: 12}, End: LocalTime{Hour: 9}}},
			},
			wantErr: true,
		},
		{
			name: "overlapping rules on same weekday rejected",
			wh: WorkingHours{
				Timezone: "UTC",
				Rules: []Rule{
					{Weekday: time.Monday, Start: LocalTime{Hour: 9}, End: LocalTime{Hour: 12}},
					{Weekday: time.Monday, Start: LocalTime{Hour: 11}, End: LocalTime{Hour: 14}},
				},
			},
			wantErr: true,
		},
		{
			name: "same times on different weekdays allowed",
			wh: WorkingHours{
				Timezone: "UTC",
				Rules: []Rule{
					{Weekday: time.Monday, Start: LocalTime{Hour: 9}, End: LocalTime{Hour: 12}},
					{Weekday: time.Tuesday, Start: LocalTime{Hour: 9}, End: LocalTime{Hour: 12}},
				},
			},
		},
		{
			name:    "unknown timezone rejected",
			wh:      WorkingHours{Timezone: "Mars/Olympus"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wh.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRulesForOrdered(t *testing.T) {
	wh := WorkingHours{
		Timezone: "UTC",
		Rules: []Rule{
			{Weekday: time.Monday, Start: LocalTime{Hour: 13}, End: LocalTime{Hour: 17}},
			{Weekday: time.Tuesday, Start: LocalTime{Hour: 9}, End: LocalTime{Hour: 12}},
			{Weekday: time.Monday, Start: LocalTime{Hour: 9}, End: LocalTime{Hour: 12}},
		},
	}

	rules := wh.RulesFor(time.Monday)
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	if rules[0].Start.Hour != 9 || rules[1].Start.Hour != 13 {
		t.Fatalf("rules not ordered by start: %v", rules)
	}
}

func TestRuleRangeOnProjectsTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	rule := Rule{Weekday: time.Monday, Start: LocalTime{Hour: 9}, End: LocalTime{Hour: 12}}

	// 2026-08-31 is a Monday; EDT is UTC-4.
	ref := time.Date(2026, 8, 31, 0, 0, 0, 0, loc)
	rng := rule.RangeOn(ref, loc)

	wantStart := time.Date(2026, 8, 31, 13, 0, 0, 0, time.UTC)
	if !rng.Start.Equal(wantStart) {
		t.Fatalf("projected start = %v, want %v", rng.Start.UTC(), wantStart)
	}
	if rng.Duration() != 3*time.Hour {
		t.Fatalf("projected duration = %v, want 3h", rng.Duration())
	}
}
