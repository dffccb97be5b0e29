package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database"
)

const (
	presentWindow  = 30 * time.Minute
	autoMarkWindow = 60 * time.Minute
	lateWindow     = 15 * time.Minute

	// commitThreshold gates the write to the attendance store; lower-confidence
	// decisions stay advisory.
	commitThreshold = 85
)

type AttendanceService struct {
	fixRepo        database.FixRepository
	zoneRepo       database.ZoneRepository
	attendanceRepo database.AttendanceRepository
	logger         *zap.Logger
	now            func() time.Time
}

func NewAttendanceService(fixRepo database.FixRepository, zoneRepo database.ZoneRepository, attendanceRepo database.AttendanceRepository, logger *zap.Logger) *AttendanceService {
	return &AttendanceService{
		fixRepo:        fixRepo,
		zoneRepo:       zoneRepo,
		attendanceRepo: attendanceRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// Infer derives one student's attendance from their latest fix and the
// school's zones, then commits the record when confidence clears the
// threshold. The commit is fire-and-forget: a store failure is logged and the
// decision is returned unchanged. Safe to call concurrently across a roster.
func (s *AttendanceService) Infer(ctx context.Context, studentID, classID, schoolID int64, hours domain.SchoolHours) (*domain.AttendanceDecision, error) {
	fix, err := s.fixRepo.GetLatest(ctx, studentID)
	if err != nil {
		return nil, domain.NewExternalStoreError("device", err)
	}

	zones, err := s.zoneRepo.ZonesForSchool(ctx, schoolID)
	if err != nil {
		return nil, domain.NewExternalStoreError("safe-zone", err)
	}

	decision, err := Decide(studentID, fix, zones, s.now(), hours)
	if err != nil {
		return nil, err
	}

	if decision.Confidence >= commitThreshold {
		reason := fmt.Sprintf("geolocation inference (confidence %d%%)", decision.Confidence)
		if err := s.attendanceRepo.Commit(ctx, studentID, classID, decision.Status, reason); err != nil {
			s.logger.Error("attendance commit failed",
				zap.Int64("student_id", studentID),
				zap.Int64("class_id", classID),
				zap.String("status", string(decision.Status)),
				zap.Error(err),
			)
		}
	}

	return decision, nil
}

// Decide is the pure inference rule set. Rules are evaluated in order:
// missing fix, fresh fix inside a zone, aging fix inside a zone, fresh fix
// outside during school hours, everything else.
func Decide(studentID int64, fix *domain.DeviceFix, zones []domain.SafeZone, now time.Time, hours domain.SchoolHours) (*domain.AttendanceDecision, error) {
	if fix == nil {
		return &domain.AttendanceDecision{
			StudentID:  studentID,
			Status:     domain.AttendanceAbsent,
			Confidence: 90,
			DecidedAt:  now,
		}, nil
	}

	age := now.Sub(fix.CapturedAt)
	inZone := false
	for _, z := range zones {
		if !z.Active {
			continue
		}
		inside, err := zoneContains(z, fix.Location)
		if err != nil {
			return nil, err
		}
		if inside {
			inZone = true
			break
		}
	}

	hour := now.Hour()
	duringSchool := hour >= hours.StartHour && hour < hours.EndHour

	var status domain.AttendanceStatus
	var confidence int
	switch {
	case inZone && age < presentWindow:
		status, confidence = domain.AttendancePresent, 95
	case inZone && age < autoMarkWindow:
		status, confidence = domain.AttendanceAutoMarked, 80
	case !inZone && duringSchool && age < lateWindow:
		status, confidence = domain.AttendanceLate, 90
	default:
		status, confidence = domain.AttendanceAbsent, 85
	}

	location := fix.Location
	return &domain.AttendanceDecision{
		StudentID:      studentID,
		Status:         status,
		Location:       &location,
		AccuracyMeters: fix.AccuracyMeters,
		Confidence:     confidence,
		DecidedAt:      now,
	}, nil
}
