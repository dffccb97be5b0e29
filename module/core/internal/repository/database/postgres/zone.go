package postgres

import (
	"context"
	"database/sql"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database"
)

var _ database.ZoneRepository = (*ZoneRepo)(nil)

type ZoneRepo struct {
	db *sql.DB
}

func NewZoneRepo(db *sql.DB) *ZoneRepo {
	return &ZoneRepo{db: db}
}

func (r *ZoneRepo) ZonesForSchool(ctx context.Context, schoolID int64) ([]domain.SafeZone, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, school_id, name, zone_type, latitude, longitude, radius_m, active FROM safe_zones WHERE school_id = $1 ORDER BY id`,
		schoolID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var zones []domain.SafeZone
	for rows.Next() {
		var z domain.SafeZone
		if err := rows.Scan(&z.ID, &z.SchoolID, &z.Name, &z.Type, &z.Center.Lat, &z.Center.Lon, &z.RadiusMeters, &z.Active); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}
