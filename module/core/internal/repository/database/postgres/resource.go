package postgres

import (
	"context"
	"database/sql"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database"
)

var _ database.ResourceRepository = (*ResourceRepo)(nil)

type ResourceRepo struct {
	db *sql.DB
}

func NewResourceRepo(db *sql.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

func (r *ResourceRepo) ResourcesForSchool(ctx context.Context, schoolID int64) ([]domain.EmergencyResource, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, school_id, resource_type, name, contact, latitude, longitude, eta_minutes FROM emergency_resources WHERE school_id = $1 ORDER BY id`,
		schoolID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var resources []domain.EmergencyResource
	for rows.Next() {
		var res domain.EmergencyResource
		if err := rows.Scan(&res.ID, &res.SchoolID, &res.Type, &res.Name, &res.Contact, &res.Location.Lat, &res.Location.Lon, &res.EtaMinutes); err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}
