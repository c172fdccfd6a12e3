package service

import (
	"strings"
	"testing"
	"time"

	"counsel-api/modules/notification/dto"
)

func TestRenderICS(t *testing.T) {
	invite := &dto.BookingInvite{
		Recipient: "counselor@example.com",
		MeetingID: "9001",
		Topic:     "Counseling session",
		Agenda:    "First intake, bring notes",
		StartTime: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC),
		JoinURL:   "https://meet.example/j/9001",
	}
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	ics := RenderICS(invite, now)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:REQUEST",
		"UID:9001@counsel-api",
		"DTSTAMP:20260829T120000Z",
		"DTSTART:20260831T090000Z",
		"DTEND:20260831T093000Z",
		"SUMMARY:Counseling session",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(ics, want) {
			t.Fatalf("ICS missing %q:\n%s", want, ics)
		}
	}

	// commas in free text are escaped per RFC 5545
	if !strings.Contains(ics, "First intake\\, bring notes") {
		t.Fatalf("description comma not escaped:\n%s", ics)
	}

	for _, line := range strings.Split(strings.TrimRight(ics, "\r\n"), "\r\n") {
		if strings.ContainsAny(line, "\r\n") {
			t.Fatalf("line contains a bare newline: %q", line)
		}
	}
	if !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Fatal("ICS must end with CRLF-terminated END:VCALENDAR")
	}
}

func TestRenderICSNonUTCInput(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	invite := &dto.BookingInvite{
		MeetingID: "9002",
		Topic:     "Session",
		StartTime: time.Date(2026, 8, 31, 9, 0, 0, 0, loc),
		EndTime:   time.Date(2026, 8, 31, 9, 30, 0, 0, loc),
	}

	ics := RenderICS(invite, time.Now())
	// EDT is UTC-4
	if !strings.Contains(ics, "DTSTART:20260831T130000Z") {
		t.Fatalf("local start not normalized to UTC:\n%s", ics)
	}
}
