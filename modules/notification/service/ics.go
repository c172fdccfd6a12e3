package service

import (
	"fmt"
	"strings"
	"time"

	"counsel-api/modules/notification/dto"
)

const icsTimeLayout = "20060102T150405Z"

// icsEscape escapes text per RFC 5545 section 3.3.11.
func icsEscape(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return replacer.Replace(s)
}

// RenderICS builds the VCALENDAR invite for a booking. Times are emitted in
// UTC; the counselor's calendar client localizes them.
func RenderICS(invite *dto.BookingInvite, now time.Time) string {
	description := invite.Agenda
	if invite.JoinURL != "" {
		if description != "" {
			description += "\n\n"
		}
		description += "Join Url: " + invite.JoinURL
	}

	var b strings.Builder
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//counsel-api//booking//EN",
		"METHOD:REQUEST",
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@counsel-api", icsEscape(invite.MeetingID)),
		fmt.Sprintf("DTSTAMP:%s", now.UTC().Format(icsTimeLayout)),
		fmt.Sprintf("DTSTART:%s", invite.StartTime.UTC().Format(icsTimeLayout)),
		fmt.Sprintf("DTEND:%s", invite.EndTime.UTC().Format(icsTimeLayout)),
		fmt.Sprintf("SUMMARY:%s", icsEscape(invite.Topic)),
	}
	if description != "" {
		lines = append(lines, fmt.Sprintf("DESCRIPTION:%s", icsEscape(description)))
	}
	if invite.JoinURL != "" {
		lines = append(lines, fmt.Sprintf("URL:%s", invite.JoinURL))
	}
	lines = append(lines,
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\r\n")
	}
	return b.String()
}
