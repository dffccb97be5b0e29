package postgres

import (
	"context"
	"database/sql"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database"
)

var _ database.ContactRepository = (*ContactRepo)(nil)

type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) ContactsForStudent(ctx context.Context, studentID int64) ([]domain.EmergencyContact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, student_id, name, relationship, phone, priority, active FROM emergency_contacts WHERE student_id = $1 ORDER BY priority ASC, id ASC`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var contacts []domain.EmergencyContact
	for rows.Next() {
		var c domain.EmergencyContact
		if err := rows.Scan(&c.ID, &c.StudentID, &c.Name, &c.Relationship, &c.Phone, &c.Priority, &c.Active); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
