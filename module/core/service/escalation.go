package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/publisher"
)

// Fallback when no emergency resource is known near the alert.
const defaultResponseMinutes = 30

var responseMultipliers = map[domain.ResponseLevel]float64{
	domain.ResponseCritical: 0.7,
	domain.ResponseHigh:     0.8,
	domain.ResponseMedium:   1.0,
	domain.ResponseLow:      1.2,
}

var autoActions = map[domain.ResponseLevel][]string{
	domain.ResponseCritical: {
		"police alert",
		"school security notification",
		"emergency SMS to parents",
		"real-time tracking activation",
	},
	domain.ResponseHigh: {
		"school security notification",
		"SMS to emergency contacts",
		"audio recording activation",
	},
	domain.ResponseMedium: {
		"parent notification",
		"responsible teacher alert",
	},
	domain.ResponseLow: {
		"system notification",
	},
}

type EscalationService struct {
	alertRepo    database.AlertRepository
	contactRepo  database.ContactRepository
	resourceRepo database.ResourceRepository
	notifier     publisher.NotificationPublisher
	logger       *zap.Logger
	now          func() time.Time
}

func NewEscalationService(
	alertRepo database.AlertRepository,
	contactRepo database.ContactRepository,
	resourceRepo database.ResourceRepository,
	notifier publisher.NotificationPublisher,
	logger *zap.Logger,
) *EscalationService {
	return &EscalationService{
		alertRepo:    alertRepo,
		contactRepo:  contactRepo,
		resourceRepo: resourceRepo,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// Escalate runs the full response protocol for one alert: classify, auto
// actions, contact fan-out, resource matching, response-time estimate,
// response log. One alert is processed to completion in one call; separate
// alerts may escalate concurrently.
func (s *EscalationService) Escalate(ctx context.Context, alertID int64) (*domain.EmergencyResponse, error) {
	alert, err := s.alertRepo.GetAlert(ctx, alertID)
	if errors.Is(err, domain.ErrAlertNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, domain.NewExternalStoreError("alert", err)
	}

	level := classifyResponseLevel(alert)
	actions := append([]string(nil), autoActions[level]...)

	notified, err := s.fanOut(ctx, alert, level, actions)
	if err != nil {
		return nil, err
	}

	resources, err := s.matchResources(ctx, alert)
	if err != nil {
		return nil, err
	}

	estimate := defaultResponseMinutes
	if len(resources) > 0 {
		estimate = int(math.Round(float64(resources[0].EtaMinutes) * responseMultipliers[level]))
	}

	summary := &domain.ResponseSummary{
		ResponseLevel:    level,
		ContactsNotified: len(notified),
		AutoActions:      actions,
		RespondedAt:      s.now(),
	}
	if err := s.alertRepo.LogResponse(ctx, alertID, summary); err != nil {
		s.logger.Error("response log write failed",
			zap.Int64("alert_id", alertID),
			zap.Error(err),
		)
	}

	s.logger.Info("alert escalated",
		zap.Int64("alert_id", alertID),
		zap.String("response_level", string(level)),
		zap.Int("contacts_notified", len(notified)),
		zap.Int("estimated_response_minutes", estimate),
	)

	return &domain.EmergencyResponse{
		AlertID:                  alertID,
		ResponseLevel:            level,
		AutoActions:              actions,
		ContactsNotified:         notified,
		EstimatedResponseMinutes: estimate,
		NearbyResources:          resources,
	}, nil
}

func classifyResponseLevel(alert *domain.Alert) domain.ResponseLevel {
	switch {
	case alert.Priority == domain.PriorityCritical || alert.Type == domain.AlertPanicButton:
		return domain.ResponseCritical
	case alert.Priority == domain.PriorityHigh || alert.Type == domain.AlertZoneExit:
		return domain.ResponseHigh
	case alert.Priority == domain.PriorityMedium || alert.Type == domain.AlertBatteryLow:
		return domain.ResponseMedium
	default:
		return domain.ResponseLow
	}
}

func contactCap(level domain.ResponseLevel, total int) int {
	switch level {
	case domain.ResponseCritical:
		return total
	case domain.ResponseHigh:
		return min(3, total)
	default:
		return min(2, total)
	}
}

// fanOut notifies active contacts in ascending priority order up to the
// level cap. A dispatcher failure is logged per contact and does not stop
// the fan-out; the message was handed off, delivery is the dispatcher's
// problem.
func (s *EscalationService) fanOut(ctx context.Context, alert *domain.Alert, level domain.ResponseLevel, actions []string) ([]int64, error) {
	contacts, err := s.contactRepo.ContactsForStudent(ctx, alert.StudentID)
	if err != nil {
		return nil, domain.NewExternalStoreError("emergency-contact", err)
	}

	var active []domain.EmergencyContact
	for _, c := range contacts {
		if c.Active {
			active = append(active, c)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Priority < active[j].Priority })

	message := fmt.Sprintf("[%s] %s", level, strings.Join(actions, "; "))
	notified := make([]int64, 0, contactCap(level, len(active)))
	for _, c := range active[:contactCap(level, len(active))] {
		notification := &domain.EmergencyNotification{
			AlertID:       alert.ID,
			ContactID:     c.ID,
			Phone:         c.Phone,
			ResponseLevel: level,
			Message:       message,
		}
		if err := s.notifier.PublishEmergency(ctx, notification); err != nil {
			s.logger.Error("emergency notification publish failed",
				zap.Int64("alert_id", alert.ID),
				zap.Int64("contact_id", c.ID),
				zap.Error(err),
			)
		}
		notified = append(notified, c.ID)
	}
	return notified, nil
}

func (s *EscalationService) matchResources(ctx context.Context, alert *domain.Alert) ([]domain.ResourceMatch, error) {
	resources, err := s.resourceRepo.ResourcesForSchool(ctx, alert.SchoolID)
	if err != nil {
		return nil, domain.NewExternalStoreError("emergency-resource", err)
	}

	matches := make([]domain.ResourceMatch, 0, len(resources))
	for _, res := range resources {
		d, err := domain.DistanceKm(alert.Location, res.Location)
		if err != nil {
			return nil, err
		}
		matches = append(matches, domain.ResourceMatch{
			Type:       res.Type,
			Name:       res.Name,
			DistanceKm: d,
			Contact:    res.Contact,
			EtaMinutes: res.EtaMinutes,
		})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].DistanceKm < matches[j].DistanceKm })
	return matches, nil
}
