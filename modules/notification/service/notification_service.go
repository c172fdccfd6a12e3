package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"counsel-api/core/config"
	"counsel-api/core/logger"
	"counsel-api/core/queue"
	"counsel-api/modules/notification/dto"
	"counsel-api/modules/notification/entity"
	"counsel-api/modules/notification/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const TaskBookingInvite = "notification:booking_invite"

type bookingInvitePayload struct {
	CounselorID uuid.UUID          `json:"counselor_id"`
	Invite      *dto.BookingInvite `json:"invite"`
}

// NotificationService queues and delivers booking invites, and keeps the
// in-app notification feed. Delivery failures are retried by the queue and
// never reach the booking path.
type NotificationService interface {
	EnqueueBookingInvite(ctx context.Context, counselorID uuid.UUID, invite *dto.BookingInvite) error
	HandleBookingInviteTask(ctx context.Context, task *asynq.Task) error
	GetMyNotifications(ctx context.Context, counselorID uuid.UUID) ([]dto.NotificationResponse, error)
	MarkAsRead(ctx context.Context, counselorID uuid.UUID, ids []string) error
}

type notificationService struct {
	repo   repository.NotificationRepository
	client *queue.Client
	now    func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository, client *queue.Client) NotificationService {
	return &notificationService{repo: repo, client: client, now: time.Now}
}

func (s *notificationService) EnqueueBookingInvite(ctx context.Context, counselorID uuid.UUID, invite *dto.BookingInvite) error {
	if invite == nil || invite.Recipient == "" {
		return fmt.Errorf("invite recipient required")
	}

	raw, err := json.Marshal(bookingInvitePayload{CounselorID: counselorID, Invite: invite})
	if err != nil {
		return fmt.Errorf("encode invite payload: %w", err)
	}

	task := asynq.NewTask(TaskBookingInvite, raw)
	if err := s.client.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)); err != nil {
		return fmt.Errorf("enqueue invite: %w", err)
	}
	logger.Info("NotificationService:EnqueueBookingInvite:Queued", "meeting_id", invite.MeetingID, "recipient", invite.Recipient)
	return nil
}

// HandleBookingInviteTask is the asynq worker handler. Returning an error
// lets the queue retry with backoff.
func (s *notificationService) HandleBookingInviteTask(ctx context.Context, task *asynq.Task) error {
	var payload bookingInvitePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode invite payload: %w", err)
	}

	if err := s.deliver(ctx, payload.Invite); err != nil {
		logger.Error("NotificationService:HandleBookingInviteTask:Deliver:Error", "error", err, "meeting_id", payload.Invite.MeetingID)
		return err
	}

	s.record(ctx, payload.CounselorID, payload.Invite)
	return nil
}

func (s *notificationService) deliver(ctx context.Context, invite *dto.BookingInvite) error {
	cfg, ok := config.GetSafe()
	if !ok {
		return fmt.Errorf("config not initialized")
	}
	if cfg.Mail.SendgridAPIKey == "" {
		logger.Warn("NotificationService:deliver:Skipped", "reason", "sendgrid not configured")
		return nil
	}

	from := mail.NewEmail(cfg.Mail.FromName, cfg.Mail.FromEmail)
	to := mail.NewEmail("", invite.Recipient)
	subject := fmt.Sprintf("Booking confirmed: %s", invite.Topic)
	body := fmt.Sprintf("Your meeting %q is booked for %s.", invite.Topic, invite.StartTime.Format(time.RFC1123))
	if invite.JoinURL != "" {
		body += "\nJoin Url: " + invite.JoinURL
	}

	message := mail.NewSingleEmail(from, subject, to, body, body)

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString([]byte(RenderICS(invite, s.now()))))
	attachment.SetType("text/calendar; method=REQUEST")
	attachment.SetFilename("invite.ics")
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)

	client := sendgrid.NewSendClient(cfg.Mail.SendgridAPIKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}

	logger.Info("NotificationService:deliver:Sent", "recipient", invite.Recipient, "meeting_id", invite.MeetingID)
	return nil
}

// record writes the in-app feed entry. Best-effort: the invite already went
// out, a feed miss is only logged.
func (s *notificationService) record(ctx context.Context, counselorID uuid.UUID, invite *dto.BookingInvite) {
	if counselorID == uuid.Nil {
		return
	}

	notification := &entity.Notification{
		CounselorID: counselorID,
		Title:       "Booking confirmed",
		Message:     fmt.Sprintf("%s on %s", invite.Topic, invite.StartTime.Format(time.RFC1123)),
		Type:        entity.TypeBookingInvite,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		logger.Warn("NotificationService:record:Error", "error", err, "counselor_id", counselorID)
	}
}

func (s *notificationService) GetMyNotifications(ctx context.Context, counselorID uuid.UUID) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.GetByCounselorID(ctx, counselorID, 50)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, dto.NotificationResponse{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return resp, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, counselorID uuid.UUID, ids []string) error {
	return s.repo.MarkAsRead(ctx, counselorID, ids)
}
