package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database"
)

// Routing policy constants, pending product review. A zone joins a route only
// when it adds at most 20% extra straight-line distance.
const (
	detourTolerance = 1.2
	speedSafeKmh    = 20.0
	speedDefaultKmh = 15.0
)

type RoutePlannerService struct {
	fixRepo  database.FixRepository
	zoneRepo database.ZoneRepository
	logger   *zap.Logger
}

func NewRoutePlannerService(fixRepo database.FixRepository, zoneRepo database.ZoneRepository, logger *zap.Logger) *RoutePlannerService {
	return &RoutePlannerService{
		fixRepo:  fixRepo,
		zoneRepo: zoneRepo,
		logger:   logger,
	}
}

// Optimize plans a route from the student's latest fix to destination, biased
// through the school's active safe zones.
func (s *RoutePlannerService) Optimize(ctx context.Context, studentID, schoolID int64, destination domain.Coordinate) (*domain.RouteOptimization, error) {
	if err := destination.Validate(); err != nil {
		return nil, err
	}

	fix, err := s.fixRepo.GetLatest(ctx, studentID)
	if err != nil {
		return nil, domain.NewExternalStoreError("device", err)
	}
	if fix == nil {
		return nil, fmt.Errorf("student %d: %w", studentID, domain.ErrStaleOrMissingFix)
	}

	zones, err := s.zoneRepo.ZonesForSchool(ctx, schoolID)
	if err != nil {
		return nil, domain.NewExternalStoreError("safe-zone", err)
	}

	route, err := buildRoute(studentID, fix.Location, destination, zones)
	if err != nil {
		return nil, err
	}

	s.logger.Info("route optimized",
		zap.Int64("student_id", studentID),
		zap.Int("waypoints", len(route.Waypoints)),
		zap.Int("eta_minutes", route.EtaMinutes),
		zap.Int("safety_score", route.SafetyScore),
	)
	return route, nil
}

func buildRoute(studentID int64, start, destination domain.Coordinate, zones []domain.SafeZone) (*domain.RouteOptimization, error) {
	direct, err := domain.DistanceKm(start, destination)
	if err != nil {
		return nil, err
	}

	departure := domain.RoutePoint{
		Location:    start,
		Label:       "departure",
		SafetyLevel: domain.SafetyHigh,
		Checkpoints: []string{"departure confirmed"},
	}

	if direct == 0 {
		return &domain.RouteOptimization{
			StudentID:   studentID,
			Start:       start,
			Destination: destination,
			Waypoints:   []domain.RoutePoint{departure},
			EtaMinutes:  0,
			SafetyScore: 100,
		}, nil
	}

	waypoints := []domain.RoutePoint{departure}
	for _, z := range zones {
		if !z.Active {
			continue
		}
		toZone, err := domain.DistanceKm(start, z.Center)
		if err != nil {
			return nil, err
		}
		fromZone, err := domain.DistanceKm(z.Center, destination)
		if err != nil {
			return nil, err
		}
		if (toZone+fromZone)/direct > detourTolerance {
			continue
		}
		waypoints = append(waypoints, domain.RoutePoint{
			Location:    z.Center,
			Label:       z.Name,
			SafetyLevel: domain.SafetyHigh,
			Checkpoints: []string{fmt.Sprintf("passage through %s confirmed", z.Name)},
		})
	}
	waypoints = append(waypoints, domain.RoutePoint{
		Location:    destination,
		Label:       "destination",
		SafetyLevel: domain.SafetyMedium,
		Checkpoints: []string{"arrival confirmed"},
	})

	eta, err := routeEtaMinutes(waypoints)
	if err != nil {
		return nil, err
	}

	return &domain.RouteOptimization{
		StudentID:   studentID,
		Start:       start,
		Destination: destination,
		Waypoints:   waypoints,
		EtaMinutes:  eta,
		SafetyScore: safetyScore(waypoints),
	}, nil
}

func routeEtaMinutes(waypoints []domain.RoutePoint) (int, error) {
	var hours float64
	for i := 0; i < len(waypoints)-1; i++ {
		leg, err := domain.DistanceKm(waypoints[i].Location, waypoints[i+1].Location)
		if err != nil {
			return 0, err
		}
		speed := speedDefaultKmh
		if waypoints[i].SafetyLevel == domain.SafetyHigh {
			speed = speedSafeKmh
		}
		hours += leg / speed
	}
	return int(math.Round(hours * 60)), nil
}

func safetyScore(waypoints []domain.RoutePoint) int {
	if len(waypoints) == 0 {
		return 0
	}
	sum := 0
	for _, wp := range waypoints {
		switch wp.SafetyLevel {
		case domain.SafetyHigh:
			sum += 3
		case domain.SafetyMedium:
			sum += 2
		default:
			sum++
		}
	}
	return int(math.Round(float64(sum) / float64(3*len(waypoints)) * 100))
}
