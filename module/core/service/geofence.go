package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database"
)

type GeofenceService struct {
	zoneRepo  database.ZoneRepository
	alertRepo database.AlertRepository
	logger    *zap.Logger
}

func NewGeofenceService(zoneRepo database.ZoneRepository, alertRepo database.AlertRepository, logger *zap.Logger) *GeofenceService {
	return &GeofenceService{
		zoneRepo:  zoneRepo,
		alertRepo: alertRepo,
		logger:    logger,
	}
}

// Contains reports whether point lies within the zone radius.
func (s *GeofenceService) Contains(zone domain.SafeZone, point domain.Coordinate) (bool, error) {
	return zoneContains(zone, point)
}

// NearestZone picks the minimum-distance active zone; ties go to the lowest
// zone id. An empty or fully-inactive zone set returns a nil zone, not an
// error.
func (s *GeofenceService) NearestZone(point domain.Coordinate, zones []domain.SafeZone) (*domain.SafeZone, float64, error) {
	var best *domain.SafeZone
	var bestDist float64
	for _, z := range zones {
		if !z.Active {
			continue
		}
		d, err := domain.DistanceKm(z.Center, point)
		if err != nil {
			return nil, 0, err
		}
		if best == nil || d < bestDist || (d == bestDist && z.ID < best.ID) {
			z := z
			best = &z
			bestDist = d
		}
	}
	if best == nil {
		return nil, 0, nil
	}
	return best, bestDist, nil
}

// CheckFix files a zone_exit alert when the fix lies outside every active
// zone of the school. Schools with no active zones are skipped.
func (s *GeofenceService) CheckFix(ctx context.Context, fix *domain.DeviceFix, schoolID int64) error {
	zones, err := s.zoneRepo.ZonesForSchool(ctx, schoolID)
	if err != nil {
		return domain.NewExternalStoreError("safe-zone", err)
	}

	activeZones := 0
	for _, z := range zones {
		if !z.Active {
			continue
		}
		activeZones++
		inside, err := zoneContains(z, fix.Location)
		if err != nil {
			return err
		}
		if inside {
			return nil
		}
	}
	if activeZones == 0 {
		return nil
	}

	alert := &domain.Alert{
		StudentID: fix.StudentID,
		SchoolID:  schoolID,
		Type:      domain.AlertZoneExit,
		Priority:  domain.PriorityHigh,
		Location:  fix.Location,
		CreatedAt: time.Now(),
	}
	id, err := s.alertRepo.Create(ctx, alert)
	if err != nil {
		return domain.NewExternalStoreError("alert", err)
	}

	s.logger.Warn("device outside all safe zones",
		zap.Int64("student_id", fix.StudentID),
		zap.Int64("school_id", schoolID),
		zap.Int64("alert_id", id),
	)
	return nil
}

func zoneContains(zone domain.SafeZone, point domain.Coordinate) (bool, error) {
	d, err := domain.DistanceKm(zone.Center, point)
	if err != nil {
		return false, err
	}
	return d*1000 <= float64(zone.RadiusMeters), nil
}
