package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database"
)

var _ database.FixRepository = (*FixRepo)(nil)

type FixRepo struct {
	db *sql.DB
}

func NewFixRepo(db *sql.DB) *FixRepo {
	return &FixRepo{db: db}
}

func (r *FixRepo) Insert(ctx context.Context, fix *domain.DeviceFix) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO device_fixes (device_id, student_id, latitude, longitude, accuracy_m, captured_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		fix.DeviceID, fix.StudentID, fix.Location.Lat, fix.Location.Lon, fix.AccuracyMeters, fix.CapturedAt,
	)
	return err
}

func (r *FixRepo) GetLatest(ctx context.Context, studentID int64) (*domain.DeviceFix, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT device_id, student_id, latitude, longitude, accuracy_m, captured_at FROM device_fixes WHERE student_id = $1 ORDER BY captured_at DESC LIMIT 1`,
		studentID,
	)

	var fix domain.DeviceFix
	err := row.Scan(&fix.DeviceID, &fix.StudentID, &fix.Location.Lat, &fix.Location.Lon, &fix.AccuracyMeters, &fix.CapturedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fix, nil
}
