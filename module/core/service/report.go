package service

import (
	"context"
	"time"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database"
)

type ReportService struct {
	alertRepo database.AlertRepository
}

func NewReportService(alertRepo database.AlertRepository) *ReportService {
	return &ReportService{alertRepo: alertRepo}
}

// Summary aggregates alert counts by type for createdAt in [from, to).
func (s *ReportService) Summary(ctx context.Context, schoolID int64, from, to time.Time) (*domain.AlertReport, error) {
	counts, err := s.alertRepo.CountByType(ctx, schoolID, from, to)
	if err != nil {
		return nil, domain.NewExternalStoreError("alert", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &domain.AlertReport{
		SchoolID:     schoolID,
		From:         from,
		To:           to,
		TotalAlerts:  total,
		AlertsByType: counts,
	}, nil
}
