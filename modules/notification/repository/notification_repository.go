package repository

import (
	"context"
	"fmt"
	"time"

	"counsel-api/core/database"
	"counsel-api/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByCounselorID(ctx context.Context, counselorID uuid.UUID, limit int) ([]entity.Notification, error)
	MarkAsRead(ctx context.Context, counselorID uuid.UUID, ids []string) error
}

type notificationRepository struct {
	db database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	now := time.Now()
	notification.CreatedAt = now
	notification.UpdatedAt = now

	query := `
		INSERT INTO notifications (id, counselor_id, title, message, type, is_read, created_at, updated_at)
		VALUES (:id, :counselor_id, :title, :message, :type, :is_read, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetByCounselorID(ctx context.Context, counselorID uuid.UUID, limit int) ([]entity.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	var notifications []entity.Notification
	query := `
		SELECT id, counselor_id, title, message, type, is_read, created_at, updated_at
		FROM notifications
		WHERE counselor_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	if err := r.db.SelectContext(ctx, &notifications, query, counselorID, limit); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, counselorID uuid.UUID, ids []string) error {
	if len(ids) == 0 {
		query := `UPDATE notifications SET is_read = true, updated_at = NOW() WHERE counselor_id = $1`
		if err := r.db.ExecContext(ctx, query, counselorID); err != nil {
			return fmt.Errorf("mark all notifications read: %w", err)
		}
		return nil
	}

	query := `UPDATE notifications SET is_read = true, updated_at = NOW() WHERE counselor_id = $1 AND id = ANY($2)`
	if err := r.db.ExecContext(ctx, query, counselorID, pq.Array(ids)); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}
