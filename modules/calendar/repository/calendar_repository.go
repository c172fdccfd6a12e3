package repository

import (
	"context"
	"database/sql"
	"errors"

	"counsel-api/core/database"
	"counsel-api/core/logger"
	"counsel-api/modules/calendar/entity"

	"github.com/google/uuid"
)

type CalendarConnectionRepository interface {
	CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error)
	GetConnection(ctx context.Context, counselorID uuid.UUID, provider string) (*entity.CalendarConnection, error)
	UpdateConnection(ctx context.Context, conn *entity.CalendarConnection) error
	DeactivateConnection(ctx context.Context, counselorID uuid.UUID, provider string) error
}

type calendarConnectionRepository struct {
	db database.IDatabase
}

func NewCalendarConnectionRepository(db database.IDatabase) CalendarConnectionRepository {
	return &calendarConnectionRepository{db: db}
}

// CreateConnection inserts or replaces the counselor's provider connection.
func (r *calendarConnectionRepository) CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error) {
	query := `
		INSERT INTO calendar_connections (counselor_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (counselor_id, provider) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expires_at = EXCLUDED.token_expires_at,
			calendar_email = EXCLUDED.calendar_email,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		conn.CounselorID, conn.Provider, conn.AccessToken, conn.RefreshToken,
		conn.TokenExpiresAt, conn.CalendarEmail, conn.IsActive,
	).Scan(&conn.ID, &conn.CreatedAt, &conn.UpdatedAt)
	if err != nil {
		logger.Error("CalendarConnectionRepository:CreateConnection:Error", "error", err, "counselor_id", conn.CounselorID)
		return nil, err
	}
	return conn, nil
}

// GetConnection returns the active connection or nil when none exists.
func (r *calendarConnectionRepository) GetConnection(ctx context.Context, counselorID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	query := `
		SELECT id, counselor_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active, created_at, updated_at
		FROM calendar_connections
		WHERE counselor_id = $1 AND provider = $2 AND is_active = true
	`
	var conn entity.CalendarConnection
	err := r.db.GetContext(ctx, &conn, query, counselorID, provider)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CalendarConnectionRepository:GetConnection:Error", "error", err, "counselor_id", counselorID)
		return nil, err
	}
	return &conn, nil
}

// UpdateConnection replaces the stored tokens wholesale (last writer wins).
func (r *calendarConnectionRepository) UpdateConnection(ctx context.Context, conn *entity.CalendarConnection) error {
	query := `
		UPDATE calendar_connections
		SET access_token = $1, refresh_token = $2, token_expires_at = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
	`
	return r.db.ExecContext(ctx, query,
		conn.AccessToken, conn.RefreshToken, conn.TokenExpiresAt, conn.IsActive, conn.ID,
	)
}

// DeactivateConnection soft deletes a connection.
func (r *calendarConnectionRepository) DeactivateConnection(ctx context.Context, counselorID uuid.UUID, provider string) error {
	query := `
		UPDATE calendar_connections
		SET is_active = false, updated_at = NOW()
		WHERE counselor_id = $1 AND provider = $2
	`
	return r.db.ExecContext(ctx, query, counselorID, provider)
}
