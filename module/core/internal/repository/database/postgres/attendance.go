package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database"
)

var _ database.AttendanceRepository = (*AttendanceRepo)(nil)

type AttendanceRepo struct {
	db *sql.DB
}

func NewAttendanceRepo(db *sql.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

func (r *AttendanceRepo) Commit(ctx context.Context, studentID, classID int64, status domain.AttendanceStatus, reason string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attendance_records (student_id, class_id, status, reason, recorded_at) VALUES ($1, $2, $3, $4, $5)`,
		studentID, classID, status, reason, time.Now(),
	)
	return err
}

var _ database.RosterRepository = (*RosterRepo)(nil)

type RosterRepo struct {
	db *sql.DB
}

func NewRosterRepo(db *sql.DB) *RosterRepo {
	return &RosterRepo{db: db}
}

func (r *RosterRepo) ActiveRosters(ctx context.Context) ([]domain.ClassRoster, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.school_id, c.start_hour, c.end_hour, ARRAY_AGG(e.student_id ORDER BY e.student_id)
		 FROM classes c JOIN enrollments e ON e.class_id = c.id
		 WHERE c.active GROUP BY c.id, c.school_id, c.start_hour, c.end_hour ORDER BY c.id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var rosters []domain.ClassRoster
	for rows.Next() {
		var roster domain.ClassRoster
		if err := rows.Scan(&roster.ClassID, &roster.SchoolID, &roster.Hours.StartHour, &roster.Hours.EndHour, pq.Array(&roster.StudentIDs)); err != nil {
			return nil, err
		}
		rosters = append(rosters, roster)
	}
	return rosters, rows.Err()
}
