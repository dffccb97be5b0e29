package database

import (
	"context"
	"time"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
)

type FixRepository interface {
	Insert(ctx context.Context, fix *domain.DeviceFix) error
	// GetLatest returns (nil, nil) when the student has no recorded fix.
	GetLatest(ctx context.Context, studentID int64) (*domain.DeviceFix, error)
}

type ZoneRepository interface {
	// ZonesForSchool returns active and inactive zones; callers filter.
	ZonesForSchool(ctx context.Context, schoolID int64) ([]domain.SafeZone, error)
}

type ContactRepository interface {
	ContactsForStudent(ctx context.Context, studentID int64) ([]domain.EmergencyContact, error)
}

type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) (int64, error)
	// GetAlert returns domain.ErrAlertNotFound for an unknown id.
	GetAlert(ctx context.Context, alertID int64) (*domain.Alert, error)
	LogResponse(ctx context.Context, alertID int64, summary *domain.ResponseSummary) error
	CountByType(ctx context.Context, schoolID int64, from, to time.Time) (map[domain.AlertType]int, error)
}

type ResourceRepository interface {
	ResourcesForSchool(ctx context.Context, schoolID int64) ([]domain.EmergencyResource, error)
}

type AttendanceRepository interface {
	Commit(ctx context.Context, studentID, classID int64, status domain.AttendanceStatus, reason string) error
}

type RosterRepository interface {
	ActiveRosters(ctx context.Context) ([]domain.ClassRoster, error)
}
