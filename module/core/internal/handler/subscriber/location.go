package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
)

const topicPattern = "/educafric/device/+/location"

type fixStore interface {
	Insert(ctx context.Context, fix *domain.DeviceFix) error
}

type geofenceService interface {
	CheckFix(ctx context.Context, fix *domain.DeviceFix, schoolID int64) error
}

type fixMessage struct {
	DeviceID       string  `json:"device_id"`
	StudentID      int64   `json:"student_id"`
	SchoolID       int64   `json:"school_id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracy_m"`
	Timestamp      int64   `json:"timestamp"`
}

type LocationSubscriber struct {
	client      mqtt.Client
	fixes       fixStore
	geofenceSvc geofenceService
	logger      *zap.Logger
}

func NewLocationSubscriber(client mqtt.Client, fixes fixStore, geofenceSvc geofenceService, logger *zap.Logger) *LocationSubscriber {
	return &LocationSubscriber{
		client:      client,
		fixes:       fixes,
		geofenceSvc: geofenceSvc,
		logger:      logger,
	}
}

func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *LocationSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw fixMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		s.logger.Warn("invalid location message", zap.Error(err))
		return
	}

	if err := validateFixMessage(&raw); err != nil {
		s.logger.Warn("location message rejected", zap.Error(err))
		return
	}

	fix := &domain.DeviceFix{
		DeviceID:       raw.DeviceID,
		StudentID:      raw.StudentID,
		Location:       domain.Coordinate{Lat: raw.Latitude, Lon: raw.Longitude},
		AccuracyMeters: raw.AccuracyMeters,
		CapturedAt:     time.Unix(raw.Timestamp, 0),
	}

	ctx := context.Background()

	if err := s.fixes.Insert(ctx, fix); err != nil {
		s.logger.Error("fix insert failed",
			zap.String("device_id", fix.DeviceID),
			zap.Int64("student_id", fix.StudentID),
			zap.Error(err),
		)
		return
	}

	if err := s.geofenceSvc.CheckFix(ctx, fix, raw.SchoolID); err != nil {
		s.logger.Error("geofence check failed",
			zap.Int64("student_id", fix.StudentID),
			zap.Error(err),
		)
	}
}

func validateFixMessage(msg *fixMessage) error {
	if msg.DeviceID == "" {
		return fmt.Errorf("device_id: required")
	}
	if msg.StudentID <= 0 {
		return fmt.Errorf("student_id: must be positive")
	}
	if msg.SchoolID <= 0 {
		return fmt.Errorf("school_id: must be positive")
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
