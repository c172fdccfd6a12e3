package repository

import (
	"context"
	"time"

	"counsel-api/core/database"
	"counsel-api/core/logger"
	"counsel-api/modules/availability/entity"

	"github.com/google/uuid"
)

type WorkingHoursRepository interface {
	Get(ctx context.Context, counselorID uuid.UUID) (*entity.WorkingHours, error)
	Put(ctx context.Context, wh *entity.WorkingHours) error
}

type workingHoursRepository struct {
	db database.IDatabase
}

func NewWorkingHoursRepository(db database.IDatabase) WorkingHoursRepository {
	return &workingHoursRepository{db: db}
}

type workingHoursRow struct {
	CounselorID uuid.UUID `db:"counselor_id"`
	Timezone    string    `db:"timezone"`
	Weekday     int       `db:"weekday"`
	StartTime   string    `db:"start_time"`
	EndTime     string    `db:"end_time"`
}

// Get loads a counselor's working-hours rules. A counselor without rows gets
// an empty rule set, not an error.
func (r *workingHoursRepository) Get(ctx context.Context, counselorID uuid.UUID) (*entity.WorkingHours, error) {
	query := `
		SELECT counselor_id, timezone, weekday, start_time, end_time
		FROM working_hours
		WHERE counselor_id = $1
		ORDER BY weekday, start_time
	`
	var rows []workingHoursRow
	if err := r.db.SelectContext(ctx, &rows, query, counselorID); err != nil {
		logger.Error("WorkingHoursRepository:Get:Error", "error", err, "counselor_id", counselorID)
		return nil, err
	}

	wh := &entity.WorkingHours{CounselorID: counselorID, Timezone: "UTC"}
	for _, row := range rows {
		wh.Timezone = row.Timezone
		start, err := entity.ParseLocalTime(row.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := entity.ParseLocalTime(row.EndTime)
		if err != nil {
			return nil, err
		}
		wh.Rules = append(wh.Rules, entity.Rule{
			Weekday: time.Weekday(row.Weekday),
			Start:   start,
			End:     end,
		})
	}
	return wh, nil
}

// Put replaces the counselor's rules wholesale inside one transaction.
func (r *workingHoursRepository) Put(ctx context.Context, wh *entity.WorkingHours) error {
	tx, err := r.db.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM working_hours WHERE counselor_id = $1`, wh.CounselorID); err != nil {
		logger.Error("WorkingHoursRepository:Put:Delete:Error", "error", err, "counselor_id", wh.CounselorID)
		return err
	}

	insert := `
		INSERT INTO working_hours (counselor_id, timezone, weekday, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	for _, rule := range wh.Rules {
		if _, err := tx.ExecContext(ctx, insert,
			wh.CounselorID, wh.Timezone, int(rule.Weekday), rule.Start.String(), rule.End.String(),
		); err != nil {
			logger.Error("WorkingHoursRepository:Put:Insert:Error", "error", err, "counselor_id", wh.CounselorID)
			return err
		}
	}

	return tx.Commit()
}
