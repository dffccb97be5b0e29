package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database"
)

var _ database.AlertRepository = (*AlertRepo)(nil)

type AlertRepo struct {
	db *sql.DB
}

func NewAlertRepo(db *sql.DB) *AlertRepo {
	return &AlertRepo{db: db}
}

func (r *AlertRepo) Create(ctx context.Context, alert *domain.Alert) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO alerts (student_id, school_id, alert_type, priority, latitude, longitude, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		alert.StudentID, alert.SchoolID, alert.Type, alert.Priority, alert.Location.Lat, alert.Location.Lon, alert.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *AlertRepo) GetAlert(ctx context.Context, alertID int64) (*domain.Alert, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, student_id, school_id, alert_type, priority, latitude, longitude, created_at FROM alerts WHERE id = $1`,
		alertID,
	)

	var a domain.Alert
	err := row.Scan(&a.ID, &a.StudentID, &a.SchoolID, &a.Type, &a.Priority, &a.Location.Lat, &a.Location.Lon, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAlertNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlertRepo) LogResponse(ctx context.Context, alertID int64, summary *domain.ResponseSummary) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO alert_responses (alert_id, response_level, contacts_notified, auto_actions, responded_at) VALUES ($1, $2, $3, $4, $5)`,
		alertID, summary.ResponseLevel, summary.ContactsNotified, strings.Join(summary.AutoActions, "; "), summary.RespondedAt,
	)
	return err
}

func (r *AlertRepo) CountByType(ctx context.Context, schoolID int64, from, to time.Time) (map[domain.AlertType]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT alert_type, COUNT(*) FROM alerts WHERE school_id = $1 AND created_at >= $2 AND created_at < $3 GROUP BY alert_type`,
		schoolID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[domain.AlertType]int)
	for rows.Next() {
		var alertType domain.AlertType
		var n int
		if err := rows.Scan(&alertType, &n); err != nil {
			return nil, err
		}
		counts[alertType] = n
	}
	return counts, rows.Err()
}
