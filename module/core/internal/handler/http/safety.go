package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
)

type fixReader interface {
	GetLatest(ctx context.Context, studentID int64) (*domain.DeviceFix, error)
}

type routePlanner interface {
	Optimize(ctx context.Context, studentID, schoolID int64, destination domain.Coordinate) (*domain.RouteOptimization, error)
}

type attendanceService interface {
	Infer(ctx context.Context, studentID, classID, schoolID int64, hours domain.SchoolHours) (*domain.AttendanceDecision, error)
}

type escalationService interface {
	Escalate(ctx context.Context, alertID int64) (*domain.EmergencyResponse, error)
}

type reportService interface {
	Summary(ctx context.Context, schoolID int64, from, to time.Time) (*domain.AlertReport, error)
}

type SafetyHandler struct {
	fixes      fixReader
	planner    routePlanner
	attendance attendanceService
	escalation escalationService
	reports    reportService
}

func NewSafetyHandler(fixes fixReader, planner routePlanner, attendance attendanceService, escalation escalationService, reports reportService) *SafetyHandler {
	return &SafetyHandler{
		fixes:      fixes,
		planner:    planner,
		attendance: attendance,
		escalation: escalation,
		reports:    reports,
	}
}

func (h *SafetyHandler) Register(r *gin.RouterGroup) {
	r.GET("/students/:student_id/location", h.GetLatestLocation)
	r.POST("/students/:student_id/route", h.OptimizeRoute)
	r.POST("/students/:student_id/attendance", h.InferAttendance)
	r.POST("/alerts/:alert_id/escalate", h.EscalateAlert)
	r.GET("/schools/:school_id/alerts/report", h.AlertReport)
}

func (h *SafetyHandler) GetLatestLocation(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("student_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	fix, err := h.fixes.GetLatest(c.Request.Context(), studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch location"})
		return
	}
	if fix == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no location data for student"})
		return
	}

	c.JSON(http.StatusOK, fix)
}

type routeRequest struct {
	SchoolID  int64   `json:"school_id" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *SafetyHandler) OptimizeRoute(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("student_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	destination := domain.Coordinate{Lat: req.Latitude, Lon: req.Longitude}
	route, err := h.planner.Optimize(c.Request.Context(), studentID, req.SchoolID, destination)
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid destination coordinate"})
		return
	case errors.Is(err, domain.ErrStaleOrMissingFix):
		c.JSON(http.StatusNotFound, gin.H{"error": "no location data for student"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "route optimization failed"})
		return
	}

	c.JSON(http.StatusOK, route)
}

type attendanceRequest struct {
	ClassID   int64 `json:"class_id" binding:"required"`
	SchoolID  int64 `json:"school_id" binding:"required"`
	StartHour int   `json:"start_hour"`
	EndHour   int   `json:"end_hour"`
}

func (h *SafetyHandler) InferAttendance(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("student_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hours := domain.SchoolHours{StartHour: req.StartHour, EndHour: req.EndHour}
	decision, err := h.attendance.Infer(c.Request.Context(), studentID, req.ClassID, req.SchoolID, hours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "attendance inference failed"})
		return
	}

	c.JSON(http.StatusOK, decision)
}

func (h *SafetyHandler) EscalateAlert(c *gin.Context) {
	alertID, err := strconv.ParseInt(c.Param("alert_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert id"})
		return
	}

	response, err := h.escalation.Escalate(c.Request.Context(), alertID)
	switch {
	case errors.Is(err, domain.ErrAlertNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "escalation failed"})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *SafetyHandler) AlertReport(c *gin.Context) {
	schoolID, err := strconv.ParseInt(c.Param("school_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid school id"})
		return
	}

	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	report, err := h.reports.Summary(c.Request.Context(), schoolID, time.Unix(start, 0), time.Unix(end, 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
