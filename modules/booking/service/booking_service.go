package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"counsel-api/core/config"
	"counsel-api/core/errors"
	"counsel-api/core/logger"
	availabilityentity "counsel-api/modules/availability/entity"
	availabilityservice "counsel-api/modules/availability/service"
	"counsel-api/modules/booking/dto"
	calendarentity "counsel-api/modules/calendar/entity"
	calendarservice "counsel-api/modules/calendar/service"
	meetingdto "counsel-api/modules/meeting/dto"
	meetingentity "counsel-api/modules/meeting/entity"
	meetingservice "counsel-api/modules/meeting/service"
	notificationdto "counsel-api/modules/notification/dto"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// InviteNotifier queues the counselor's calendar invite after a booking.
// Delivery is best-effort and never changes the booking outcome.
type InviteNotifier interface {
	EnqueueBookingInvite(ctx context.Context, counselorID uuid.UUID, invite *notificationdto.BookingInvite) error
}

// BookingService runs the booking saga across the meeting provider and the
// calendar provider. Steps are strictly sequential with no retries and no
// rollback: once the provider write lands, every later failure is reported
// as partial state with the meeting id so the operator can reconcile.
//
// Two concurrent bookings can both pass the availability check on the same
// snapshot; the providers remain the source of truth for what actually got
// created.
type BookingService interface {
	Create(ctx context.Context, token string, req *dto.CreateBookingRequest) (*dto.BookingResult, *errors.AppError)
	Reschedule(ctx context.Context, token, meetingID string, req *dto.RescheduleBookingRequest) (*dto.BookingResult, *errors.AppError)
	Cancel(ctx context.Context, token, meetingID string, counselorID uuid.UUID) (*dto.BookingResult, *errors.AppError)
	BookingPageURL(counselorID uuid.UUID, counselorName string) (*dto.BookingPageURLResponse, *errors.AppError)
}

type bookingService struct {
	availability availabilityservice.AvailabilityService
	meetings     meetingservice.MeetingProvider
	calendar     calendarservice.CalendarService
	notifier     InviteNotifier
}

func NewBookingService(
	availability availabilityservice.AvailabilityService,
	meetings meetingservice.MeetingProvider,
	calendar calendarservice.CalendarService,
	notifier InviteNotifier,
) BookingService {
	return &bookingService{
		availability: availability,
		meetings:     meetings,
		calendar:     calendar,
		notifier:     notifier,
	}
}

// mirrorDescription embeds the meeting secrets in the calendar event so the
// counselor can start the call straight from the calendar entry.
func mirrorDescription(meeting *meetingentity.Meeting) string {
	var b strings.Builder
	if meeting.Agenda != "" {
		b.WriteString(meeting.Agenda)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Password: %s\nStart Url: %s\nJoin Url: %s", meeting.Password, meeting.StartURL, meeting.JoinURL)
	return b.String()
}

func mirrorEvent(meeting *meetingentity.Meeting) *calendarentity.Event {
	return &calendarentity.Event{
		ID:          meeting.ID,
		MeetingID:   meeting.ID,
		Summary:     meeting.Topic,
		Description: mirrorDescription(meeting),
		Start:       meeting.StartTime,
		End:         meeting.EndTime(),
		TimeZone:    meeting.Timezone,
	}
}

// providerFailure folds a meeting provider error into a result or an error.
// Auth and missing-resource failures keep their dedicated status mapping;
// everything else becomes a provider_error outcome carrying the upstream
// status.
func providerFailure(appErr *errors.AppError) (*dto.BookingResult, *errors.AppError) {
	if appErr.Code == errors.ErrTokenExpired || appErr.Code == errors.ErrResourceMissing {
		return nil, appErr
	}
	return &dto.BookingResult{
		Outcome:        dto.OutcomeProviderError,
		UpstreamStatus: appErr.Status,
		Detail:         appErr.Message,
	}, nil
}

func (s *bookingService) Create(ctx context.Context, token string, req *dto.CreateBookingRequest) (*dto.BookingResult, *errors.AppError) {
	counselorID, err := uuid.Parse(req.CounselorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid counselor id", err)
	}
	if req.DurationMinutes <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "duration must be positive", nil)
	}

	rng, rangeErr := availabilityentity.NewTimeRange(req.StartTime, req.StartTime.Add(time.Duration(req.DurationMinutes)*time.Minute))
	if rangeErr != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid booking range", rangeErr)
	}

	// CHECKING: fresh conflict check, never cached.
	available, appErr := s.availability.IsAvailable(ctx, rng, counselorID, "")
	if appErr != nil {
		return nil, appErr
	}
	if !available {
		logger.Info("BookingService:Create:NotAvailable", "counselor_id", counselorID, "start", req.StartTime)
		return &dto.BookingResult{Outcome: dto.OutcomeNotAvailable}, nil
	}

	// PROVIDER_WRITE
	meeting, appErr := s.meetings.CreateMeeting(ctx, token, &meetingentity.Meeting{
		Topic:           req.Topic,
		Agenda:          req.Agenda,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Timezone:        req.Timezone,
	})
	if appErr != nil {
		logger.Error("BookingService:Create:CreateMeeting:Error", "error", appErr, "counselor_id", counselorID)
		return providerFailure(appErr)
	}

	result := &dto.BookingResult{
		Outcome:        dto.OutcomeBooked,
		Meeting:        meetingdto.ToMeetingResponse(meeting),
		MeetingCreated: true,
	}

	// CALENDAR_MIRROR: a failure here is reported, the meeting stays.
	if _, appErr := s.calendar.AddEvent(ctx, counselorID, mirrorEvent(meeting)); appErr != nil {
		logger.Error("BookingService:Create:AddEvent:Error", "error", appErr, "meeting_id", meeting.ID)
		result.Outcome = dto.OutcomePartialSuccess
		result.UpstreamStatus = appErr.Status
		result.Detail = "meeting created but calendar mirror failed"
		return result, nil
	}
	result.CalendarMirrored = true

	s.sendInvite(ctx, counselorID, meeting)

	logger.Info("BookingService:Create:Success", "meeting_id", meeting.ID, "counselor_id", counselorID)
	return result, nil
}

func (s *bookingService) Reschedule(ctx context.Context, token, meetingID string, req *dto.RescheduleBookingRequest) (*dto.BookingResult, *errors.AppError) {
	counselorID, err := uuid.Parse(req.CounselorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid counselor id", err)
	}

	meeting, appErr := s.meetings.GetMeeting(ctx, token, meetingID)
	if appErr != nil {
		return providerFailure(appErr)
	}

	rng, rangeErr := availabilityentity.NewTimeRange(req.StartTime, req.StartTime.Add(time.Duration(meeting.DurationMinutes)*time.Minute))
	if rangeErr != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid booking range", rangeErr)
	}

	// CHECKING: the meeting's own mirror event must not block its move.
	available, appErr := s.availability.IsAvailable(ctx, rng, counselorID, meetingID)
	if appErr != nil {
		return nil, appErr
	}
	if !available {
		return &dto.BookingResult{Outcome: dto.OutcomeNotAvailable}, nil
	}

	// PROVIDER_WRITE
	meeting.StartTime = req.StartTime
	if req.Timezone != "" {
		meeting.Timezone = req.Timezone
	}
	if appErr := s.meetings.EditMeeting(ctx, token, meetingID, meeting); appErr != nil {
		logger.Error("BookingService:Reschedule:EditMeeting:Error", "error", appErr, "meeting_id", meetingID)
		return providerFailure(appErr)
	}

	result := &dto.BookingResult{
		Outcome:        dto.OutcomeBooked,
		Meeting:        meetingdto.ToMeetingResponse(meeting),
		MeetingCreated: true,
	}

	// CALENDAR_MIRROR: update when present, recreate when the mirror
	// drifted away.
	existing, appErr := s.calendar.GetEvent(ctx, counselorID, meetingID)
	if appErr == nil {
		if existing != nil {
			appErr = s.calendar.UpdateEvent(ctx, counselorID, meetingID, mirrorEvent(meeting))
		} else {
			logger.Warn("BookingService:Reschedule:MirrorMissing", "meeting_id", meetingID)
			_, appErr = s.calendar.AddEvent(ctx, counselorID, mirrorEvent(meeting))
		}
	}
	if appErr != nil {
		logger.Error("BookingService:Reschedule:Mirror:Error", "error", appErr, "meeting_id", meetingID)
		result.Outcome = dto.OutcomePartialSuccess
		result.UpstreamStatus = appErr.Status
		result.Detail = "meeting rescheduled but calendar mirror failed"
		return result, nil
	}
	result.CalendarMirrored = true

	logger.Info("BookingService:Reschedule:Success", "meeting_id", meetingID)
	return result, nil
}

func (s *bookingService) Cancel(ctx context.Context, token, meetingID string, counselorID uuid.UUID) (*dto.BookingResult, *errors.AppError) {
	if appErr := s.meetings.DeleteMeeting(ctx, token, meetingID); appErr != nil {
		if appErr.Code != errors.ErrResourceMissing {
			return providerFailure(appErr)
		}
		// Already gone upstream; still clean up the mirror.
		logger.Warn("BookingService:Cancel:AlreadyGone", "meeting_id", meetingID)
	}

	result := &dto.BookingResult{Outcome: dto.OutcomeCancelled, MeetingCreated: false}

	// Mirror removal is best-effort; a missing mirror is not an error.
	if appErr := s.calendar.DeleteEvent(ctx, counselorID, meetingID); appErr != nil {
		if appErr.Code == errors.ErrUpstream && (appErr.Status == 404 || appErr.Status == 410) {
			result.CalendarMirrored = true
		} else {
			logger.Warn("BookingService:Cancel:DeleteEvent:Error", "error", appErr, "meeting_id", meetingID)
			result.Outcome = dto.OutcomePartialSuccess
			result.Detail = "meeting cancelled but calendar mirror removal failed"
		}
	} else {
		result.CalendarMirrored = true
	}

	logger.Info("BookingService:Cancel:Done", "meeting_id", meetingID, "outcome", result.Outcome)
	return result, nil
}

// BookingPageURL builds the public booking page link for a counselor.
func (s *bookingService) BookingPageURL(counselorID uuid.UUID, counselorName string) (*dto.BookingPageURLResponse, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	pageSlug := slug.Make(counselorName)
	if pageSlug == "" {
		pageSlug = counselorID.String()
	}
	return &dto.BookingPageURLResponse{
		Slug: pageSlug,
		URL:  fmt.Sprintf("%s/book/%s?c=%s", strings.TrimRight(cfg.App.URL, "/"), pageSlug, counselorID),
	}, nil
}

func (s *bookingService) sendInvite(ctx context.Context, counselorID uuid.UUID, meeting *meetingentity.Meeting) {
	if s.notifier == nil {
		return
	}

	conn, appErr := s.calendar.GetConnection(ctx, counselorID)
	if appErr != nil || conn.CalendarEmail == "" {
		logger.Warn("BookingService:sendInvite:NoRecipient", "counselor_id", counselorID)
		return
	}

	invite := &notificationdto.BookingInvite{
		Recipient: conn.CalendarEmail,
		MeetingID: meeting.ID,
		Topic:     meeting.Topic,
		Agenda:    meeting.Agenda,
		StartTime: meeting.StartTime,
		EndTime:   meeting.EndTime(),
		Timezone:  meeting.Timezone,
		JoinURL:   meeting.JoinURL,
	}
	if err := s.notifier.EnqueueBookingInvite(ctx, counselorID, invite); err != nil {
		logger.Warn("BookingService:sendInvite:Enqueue:Error", "error", err, "meeting_id", meeting.ID)
	}
}
