package core

import (
	"database/sql"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	handler "github.com/simonmuehling/educafric-app-sub005/module/core/internal/handler/http"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/handler/subscriber"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/database/postgres"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/publisher/rabbitmq"
	"github.com/simonmuehling/educafric-app-sub005/module/core/service"
)

type Module struct {
	GeofenceSvc   *service.GeofenceService
	PlannerSvc    *service.RoutePlannerService
	AttendanceSvc *service.AttendanceService
	EscalationSvc *service.EscalationService
	ReportSvc     *service.ReportService

	runner     *service.AttendanceRunner
	handler    *handler.SafetyHandler
	subscriber *subscriber.LocationSubscriber
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, attendanceInterval time.Duration, logger *zap.Logger) (*Module, error) {
	fixRepo := postgres.NewFixRepo(db)
	zoneRepo := postgres.NewZoneRepo(db)
	contactRepo := postgres.NewContactRepo(db)
	alertRepo := postgres.NewAlertRepo(db)
	resourceRepo := postgres.NewResourceRepo(db)
	attendanceRepo := postgres.NewAttendanceRepo(db)
	rosterRepo := postgres.NewRosterRepo(db)

	notifier, err := rabbitmq.NewNotificationPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("notification publisher: %w", err)
	}

	geofenceSvc := service.NewGeofenceService(zoneRepo, alertRepo, logger)
	plannerSvc := service.NewRoutePlannerService(fixRepo, zoneRepo, logger)
	attendanceSvc := service.NewAttendanceService(fixRepo, zoneRepo, attendanceRepo, logger)
	escalationSvc := service.NewEscalationService(alertRepo, contactRepo, resourceRepo, notifier, logger)
	reportSvc := service.NewReportService(alertRepo)
	runner := service.NewAttendanceRunner(attendanceSvc, rosterRepo, attendanceInterval, logger)

	h := handler.NewSafetyHandler(fixRepo, plannerSvc, attendanceSvc, escalationSvc, reportSvc)
	sub := subscriber.NewLocationSubscriber(mqttClient, fixRepo, geofenceSvc, logger)

	return &Module{
		GeofenceSvc:   geofenceSvc,
		PlannerSvc:    plannerSvc,
		AttendanceSvc: attendanceSvc,
		EscalationSvc: escalationSvc,
		ReportSvc:     reportSvc,
		runner:        runner,
		handler:       h,
		subscriber:    sub,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.handler.Register(r)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}

func (m *Module) StartScheduler() {
	m.runner.Start()
}

func (m *Module) StopScheduler() {
	m.runner.Stop()
}
