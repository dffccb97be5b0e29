package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database"
)

type attendanceInferrer interface {
	Infer(ctx context.Context, studentID, classID, schoolID int64, hours domain.SchoolHours) (*domain.AttendanceDecision, error)
}

// AttendanceRunner periodically sweeps every active class roster and infers
// attendance per student. The runner owns all of its state (tick counter,
// stop channel) behind an explicit Start/Stop lifecycle.
type AttendanceRunner struct {
	svc        attendanceInferrer
	rosterRepo database.RosterRepository
	interval   time.Duration
	logger     *zap.Logger

	runs int64
	stop chan struct{}
	done chan struct{}
}

func NewAttendanceRunner(svc attendanceInferrer, rosterRepo database.RosterRepository, interval time.Duration, logger *zap.Logger) *AttendanceRunner {
	return &AttendanceRunner{
		svc:        svc,
		rosterRepo: rosterRepo,
		interval:   interval,
		logger:     logger,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (r *AttendanceRunner) Start() {
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.RunOnce(context.Background())
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop and waits for it to exit. An in-flight sweep
// finishes first.
func (r *AttendanceRunner) Stop() {
	close(r.stop)
	<-r.done
}

// Runs reports completed sweeps.
func (r *AttendanceRunner) Runs() int64 {
	return atomic.LoadInt64(&r.runs)
}

// RunOnce sweeps all rosters, fanning out one inference per student.
// Inference calls share no state, so a roster is processed fully in
// parallel.
func (r *AttendanceRunner) RunOnce(ctx context.Context) {
	rosters, err := r.rosterRepo.ActiveRosters(ctx)
	if err != nil {
		r.logger.Error("roster fetch failed", zap.Error(err))
		return
	}

	students := 0
	for _, roster := range rosters {
		var wg sync.WaitGroup
		for _, studentID := range roster.StudentIDs {
			wg.Add(1)
			go func(studentID int64, roster domain.ClassRoster) {
				defer wg.Done()
				if _, err := r.svc.Infer(ctx, studentID, roster.ClassID, roster.SchoolID, roster.Hours); err != nil {
					r.logger.Error("attendance inference failed",
						zap.Int64("student_id", studentID),
						zap.Int64("class_id", roster.ClassID),
						zap.Error(err),
					)
				}
			}(studentID, roster)
		}
		wg.Wait()
		students += len(roster.StudentIDs)
	}

	runs := atomic.AddInt64(&r.runs, 1)
	r.logger.Info("attendance sweep complete",
		zap.Int64("run", runs),
		zap.Int("classes", len(rosters)),
		zap.Int("students", students),
	)
}
