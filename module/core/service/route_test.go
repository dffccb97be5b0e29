package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
)

func TestOptimize_MissingFix(t *testing.T) {
	fixRepo := &mockFixRepo{
		getLatestFn: func(_ context.Context, _ int64) (*domain.DeviceFix, error) {
			return nil, nil
		},
	}
	svc := NewRoutePlannerService(fixRepo, &mockZoneRepo{}, zap.NewNop())

	_, err := svc.Optimize(context.Background(), 42, 10, domain.Coordinate{Lat: 4.06, Lon: 9.78})
	if !errors.Is(err, domain.ErrStaleOrMissingFix) {
		t.Fatalf("expected ErrStaleOrMissingFix, got %v", err)
	}
}

func TestOptimize_InvalidDestination(t *testing.T) {
	svc := NewRoutePlannerService(&mockFixRepo{}, &mockZoneRepo{}, zap.NewNop())

	_, err := svc.Optimize(context.Background(), 42, 10, domain.Coordinate{Lat: 120, Lon: 9.78})
	if !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestOptimize_SafeZoneOnTheWay(t *testing.T) {
	fixRepo := &mockFixRepo{
		getLatestFn: func(_ context.Context, _ int64) (*domain.DeviceFix, error) {
			return &domain.DeviceFix{
				StudentID:  42,
				Location:   domain.Coordinate{Lat: 4.05, Lon: 9.77},
				CapturedAt: time.Now(),
			}, nil
		},
	}
	zoneRepo := &mockZoneRepo{
		zonesForSchoolFn: func(_ context.Context, _ int64) ([]domain.SafeZone, error) {
			return []domain.SafeZone{
				{ID: 1, Name: "campus", Center: domain.Coordinate{Lat: 4.05, Lon: 9.77}, RadiusMeters: 500, Active: true},
			}, nil
		},
	}
	svc := NewRoutePlannerService(fixRepo, zoneRepo, zap.NewNop())

	route, err := svc.Optimize(context.Background(), 42, 10, domain.Coordinate{Lat: 4.06, Lon: 9.78})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route.Waypoints) != 3 {
		t.Fatalf("expected 3 waypoints (departure, zone, destination), got %d", len(route.Waypoints))
	}
	if route.Waypoints[1].Label != "campus" {
		t.Errorf("expected zone waypoint, got %q", route.Waypoints[1].Label)
	}
	if route.EtaMinutes <= 0 {
		t.Errorf("expected positive ETA, got %d", route.EtaMinutes)
	}
	if route.SafetyScore < 66 {
		t.Errorf("expected safety score >= 66, got %d", route.SafetyScore)
	}
}

func TestOptimize_ZoneTooFarOffRoute(t *testing.T) {
	fixRepo := &mockFixRepo{
		getLatestFn: func(_ context.Context, _ int64) (*domain.DeviceFix, error) {
			return &domain.DeviceFix{
				StudentID:  42,
				Location:   domain.Coordinate{Lat: 4.05, Lon: 9.77},
				CapturedAt: time.Now(),
			}, nil
		},
	}
	zoneRepo := &mockZoneRepo{
		zonesForSchoolFn: func(_ context.Context, _ int64) ([]domain.SafeZone, error) {
			return []domain.SafeZone{
				// a long detour sideways, well past 20% extra distance
				{ID: 1, Name: "uncle", Center: domain.Coordinate{Lat: 4.15, Lon: 9.60}, RadiusMeters: 300, Active: true},
			}, nil
		},
	}
	svc := NewRoutePlannerService(fixRepo, zoneRepo, zap.NewNop())

	route, err := svc.Optimize(context.Background(), 42, 10, domain.Coordinate{Lat: 4.06, Lon: 9.78})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route.Waypoints) != 2 {
		t.Fatalf("expected 2 waypoints, got %d", len(route.Waypoints))
	}
}

func TestBuildRoute_DegenerateRoute(t *testing.T) {
	point := domain.Coordinate{Lat: 4.05, Lon: 9.77}

	route, err := buildRoute(42, point, point, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route.Waypoints) != 1 {
		t.Fatalf("expected single waypoint, got %d", len(route.Waypoints))
	}
	if route.EtaMinutes != 0 {
		t.Errorf("expected ETA 0, got %d", route.EtaMinutes)
	}
	if route.SafetyScore != 100 {
		t.Errorf("expected score 100, got %d", route.SafetyScore)
	}
}

func TestSafetyScore_Bounds(t *testing.T) {
	allHigh := []domain.RoutePoint{
		{SafetyLevel: domain.SafetyHigh},
		{SafetyLevel: domain.SafetyHigh},
	}
	if got := safetyScore(allHigh); got != 100 {
		t.Errorf("expected 100 for all-high route, got %d", got)
	}

	allLow := []domain.RoutePoint{
		{SafetyLevel: domain.SafetyLow},
		{SafetyLevel: domain.SafetyLow},
	}
	if got := safetyScore(allLow); got != 33 {
		t.Errorf("expected 33 for all-low route, got %d", got)
	}

	mixed := []domain.RoutePoint{
		{SafetyLevel: domain.SafetyHigh},
		{SafetyLevel: domain.SafetyMedium},
		{SafetyLevel: domain.SafetyLow},
	}
	got := safetyScore(mixed)
	if got < 0 || got > 100 {
		t.Errorf("score out of range: %d", got)
	}
}

func TestRouteEtaMinutes_SlowerOutsideSafeSegments(t *testing.T) {
	a := domain.Coordinate{Lat: 4.05, Lon: 9.77}
	b := domain.Coordinate{Lat: 4.15, Lon: 9.77}

	fast, err := routeEtaMinutes([]domain.RoutePoint{
		{Location: a, SafetyLevel: domain.SafetyHigh},
		{Location: b, SafetyLevel: domain.SafetyMedium},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slow, err := routeEtaMinutes([]domain.RoutePoint{
		{Location: a, SafetyLevel: domain.SafetyMedium},
		{Location: b, SafetyLevel: domain.SafetyHigh},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fast >= slow {
		t.Errorf("expected high-safety departure to be faster: %d vs %d", fast, slow)
	}
}

func TestOptimize_FixStoreError(t *testing.T) {
	fixRepo := &mockFixRepo{
		getLatestFn: func(_ context.Context, _ int64) (*domain.DeviceFix, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewRoutePlannerService(fixRepo, &mockZoneRepo{}, zap.NewNop())

	_, err := svc.Optimize(context.Background(), 42, 10, domain.Coordinate{Lat: 4.06, Lon: 9.78})
	var storeErr *domain.ExternalStoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected ExternalStoreError, got %v", err)
	}
}
