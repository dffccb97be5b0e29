package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
)

type mockInferrer struct {
	mu    sync.Mutex
	calls []int64
	err   error
}

func (m *mockInferrer) Infer(_ context.Context, studentID, _, _ int64, _ domain.SchoolHours) (*domain.AttendanceDecision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, studentID)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.AttendanceDecision{StudentID: studentID}, nil
}

func TestRunOnce_SweepsEveryStudent(t *testing.T) {
	rosterRepo := &mockRosterRepo{
		activeRostersFn: func(_ context.Context) ([]domain.ClassRoster, error) {
			return []domain.ClassRoster{
				{ClassID: 1, SchoolID: 10, Hours: schoolDay, StudentIDs: []int64{1, 2, 3}},
				{ClassID: 2, SchoolID: 10, Hours: schoolDay, StudentIDs: []int64{4, 5}},
			}, nil
		},
	}
	inferrer := &mockInferrer{}
	runner := NewAttendanceRunner(inferrer, rosterRepo, time.Minute, zap.NewNop())

	runner.RunOnce(context.Background())

	if len(inferrer.calls) != 5 {
		t.Fatalf("expected 5 inferences, got %d", len(inferrer.calls))
	}
	if runner.Runs() != 1 {
		t.Errorf("expected 1 completed run, got %d", runner.Runs())
	}
}

func TestRunOnce_InferenceErrorsDoNotAbortSweep(t *testing.T) {
	rosterRepo := &mockRosterRepo{
		activeRostersFn: func(_ context.Context) ([]domain.ClassRoster, error) {
			return []domain.ClassRoster{
				{ClassID: 1, SchoolID: 10, Hours: schoolDay, StudentIDs: []int64{1, 2, 3}},
			}, nil
		},
	}
	inferrer := &mockInferrer{err: errors.New("device store down")}
	runner := NewAttendanceRunner(inferrer, rosterRepo, time.Minute, zap.NewNop())

	runner.RunOnce(context.Background())

	if len(inferrer.calls) != 3 {
		t.Fatalf("expected all 3 students attempted, got %d", len(inferrer.calls))
	}
	if runner.Runs() != 1 {
		t.Errorf("expected sweep to complete despite errors, got %d runs", runner.Runs())
	}
}

func TestRunner_StartStop(t *testing.T) {
	rosterRepo := &mockRosterRepo{
		activeRostersFn: func(_ context.Context) ([]domain.ClassRoster, error) {
			return []domain.ClassRoster{
				{ClassID: 1, SchoolID: 10, Hours: schoolDay, StudentIDs: []int64{1}},
			}, nil
		},
	}
	inferrer := &mockInferrer{}
	runner := NewAttendanceRunner(inferrer, rosterRepo, 5*time.Millisecond, zap.NewNop())

	runner.Start()
	time.Sleep(40 * time.Millisecond)
	runner.Stop()

	if runner.Runs() == 0 {
		t.Error("expected at least one sweep before stop")
	}
	runsAtStop := runner.Runs()
	time.Sleep(20 * time.Millisecond)
	if runner.Runs() != runsAtStop {
		t.Error("expected no sweeps after stop")
	}
}
