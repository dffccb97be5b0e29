package service

import (
	"context"
	"time"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
)

type mockFixRepo struct {
	insertFn    func(ctx context.Context, fix *domain.DeviceFix) error
	getLatestFn func(ctx context.Context, studentID int64) (*domain.DeviceFix, error)
}

func (m *mockFixRepo) Insert(ctx context.Context, fix *domain.DeviceFix) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, fix)
	}
	return nil
}

func (m *mockFixRepo) GetLatest(ctx context.Context, studentID int64) (*domain.DeviceFix, error) {
	return m.getLatestFn(ctx, studentID)
}

type mockZoneRepo struct {
	zonesForSchoolFn func(ctx context.Context, schoolID int64) ([]domain.SafeZone, error)
}

func (m *mockZoneRepo) ZonesForSchool(ctx context.Context, schoolID int64) ([]domain.SafeZone, error) {
	return m.zonesForSchoolFn(ctx, schoolID)
}

type mockContactRepo struct {
	contactsFn func(ctx context.Context, studentID int64) ([]domain.EmergencyContact, error)
}

func (m *mockContactRepo) ContactsForStudent(ctx context.Context, studentID int64) ([]domain.EmergencyContact, error) {
	return m.contactsFn(ctx, studentID)
}

type mockAlertRepo struct {
	createFn      func(ctx context.Context, alert *domain.Alert) (int64, error)
	getAlertFn    func(ctx context.Context, alertID int64) (*domain.Alert, error)
	logResponseFn func(ctx context.Context, alertID int64, summary *domain.ResponseSummary) error
	countByTypeFn func(ctx context.Context, schoolID int64, from, to time.Time) (map[domain.AlertType]int, error)

	created   []*domain.Alert
	summaries []*domain.ResponseSummary
}

func (m *mockAlertRepo) Create(ctx context.Context, alert *domain.Alert) (int64, error) {
	m.created = append(m.created, alert)
	if m.createFn != nil {
		return m.createFn(ctx, alert)
	}
	return int64(len(m.created)), nil
}

func (m *mockAlertRepo) GetAlert(ctx context.Context, alertID int64) (*domain.Alert, error) {
	return m.getAlertFn(ctx, alertID)
}

func (m *mockAlertRepo) LogResponse(ctx context.Context, alertID int64, summary *domain.ResponseSummary) error {
	m.summaries = append(m.summaries, summary)
	if m.logResponseFn != nil {
		return m.logResponseFn(ctx, alertID, summary)
	}
	return nil
}

func (m *mockAlertRepo) CountByType(ctx context.Context, schoolID int64, from, to time.Time) (map[domain.AlertType]int, error) {
	return m.countByTypeFn(ctx, schoolID, from, to)
}

type mockResourceRepo struct {
	resourcesFn func(ctx context.Context, schoolID int64) ([]domain.EmergencyResource, error)
}

func (m *mockResourceRepo) ResourcesForSchool(ctx context.Context, schoolID int64) ([]domain.EmergencyResource, error) {
	return m.resourcesFn(ctx, schoolID)
}

type commitCall struct {
	studentID int64
	classID   int64
	status    domain.AttendanceStatus
	reason    string
}

type mockAttendanceRepo struct {
	commitFn func(ctx context.Context, studentID, classID int64, status domain.AttendanceStatus, reason string) error
	commits  []commitCall
}

func (m *mockAttendanceRepo) Commit(ctx context.Context, studentID, classID int64, status domain.AttendanceStatus, reason string) error {
	m.commits = append(m.commits, commitCall{studentID: studentID, classID: classID, status: status, reason: reason})
	if m.commitFn != nil {
		return m.commitFn(ctx, studentID, classID, status, reason)
	}
	return nil
}

type mockRosterRepo struct {
	activeRostersFn func(ctx context.Context) ([]domain.ClassRoster, error)
}

func (m *mockRosterRepo) ActiveRosters(ctx context.Context) ([]domain.ClassRoster, error) {
	return m.activeRostersFn(ctx)
}

type mockNotifier struct {
	publishFn func(ctx context.Context, notification *domain.EmergencyNotification) error
	calls     []*domain.EmergencyNotification
}

func (m *mockNotifier) PublishEmergency(ctx context.Context, notification *domain.EmergencyNotification) error {
	m.calls = append(m.calls, notification)
	if m.publishFn != nil {
		return m.publishFn(ctx, notification)
	}
	return nil
}
