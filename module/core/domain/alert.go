package domain

import "time"

type AlertType string

const (
	AlertPanicButton AlertType = "panic_button"
	AlertZoneExit    AlertType = "zone_exit"
	AlertBatteryLow  AlertType = "battery_low"
	AlertOther       AlertType = "other"
)

type AlertPriority string

const (
	PriorityLow      AlertPriority = "low"
	PriorityMedium   AlertPriority = "medium"
	PriorityHigh     AlertPriority = "high"
	PriorityCritical AlertPriority = "critical"
)

type ResponseLevel string

const (
	ResponseLow      ResponseLevel = "low"
	ResponseMedium   ResponseLevel = "medium"
	ResponseHigh     ResponseLevel = "high"
	ResponseCritical ResponseLevel = "critical"
)

// Alert is created by an external trigger (geofence breach, panic button,
// low battery) and consumed, never created, by escalation.
type Alert struct {
	ID        int64         `json:"id"`
	StudentID int64         `json:"student_id"`
	SchoolID  int64         `json:"school_id"`
	Type      AlertType     `json:"alert_type"`
	Priority  AlertPriority `json:"priority"`
	Location  Coordinate    `json:"location"`
	CreatedAt time.Time     `json:"created_at"`
}

// EmergencyContact is read-only collaborator data, ordered ascending by
// Priority for fan-out.
type EmergencyContact struct {
	ID           int64  `json:"id"`
	StudentID    int64  `json:"student_id"`
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Priority     int    `json:"priority"`
	Active       bool   `json:"active"`
}

type ResourceType string

const (
	ResourcePolice         ResourceType = "police"
	ResourceMedical        ResourceType = "medical"
	ResourceSchoolSecurity ResourceType = "school_security"
)

// EmergencyResource is a catalogue entry (police post, clinic, campus guard)
// with a base response ETA from its own dispatch point.
type EmergencyResource struct {
	ID         int64        `json:"id"`
	SchoolID   int64        `json:"school_id"`
	Type       ResourceType `json:"type"`
	Name       string       `json:"name"`
	Contact    string       `json:"contact"`
	Location   Coordinate   `json:"location"`
	EtaMinutes int          `json:"eta_minutes"`
}

// ResourceMatch is a catalogue entry ranked by distance from an alert.
type ResourceMatch struct {
	Type       ResourceType `json:"type"`
	Name       string       `json:"name"`
	DistanceKm float64      `json:"distance_km"`
	Contact    string       `json:"contact"`
	EtaMinutes int          `json:"eta_minutes"`
}

// EmergencyResponse summarizes one complete escalation of an alert.
type EmergencyResponse struct {
	AlertID                  int64           `json:"alert_id"`
	ResponseLevel            ResponseLevel   `json:"response_level"`
	AutoActions              []string        `json:"auto_actions"`
	ContactsNotified         []int64         `json:"contacts_notified"`
	EstimatedResponseMinutes int             `json:"estimated_response_minutes"`
	NearbyResources          []ResourceMatch `json:"nearby_resources"`
}

// EmergencyNotification is one message handed to the external dispatcher
// (SMS/email/push) during contact fan-out.
type EmergencyNotification struct {
	AlertID       int64         `json:"alert_id"`
	ContactID     int64         `json:"contact_id"`
	Phone         string        `json:"phone"`
	ResponseLevel ResponseLevel `json:"response_level"`
	Message       string        `json:"message"`
}

// ResponseSummary is what escalation persists against the alert.
type ResponseSummary struct {
	ResponseLevel    ResponseLevel
	ContactsNotified int
	AutoActions      []string
	RespondedAt      time.Time
}

// AlertReport aggregates alert counts by type over a date range.
type AlertReport struct {
	SchoolID     int64             `json:"school_id"`
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	TotalAlerts  int               `json:"total_alerts"`
	AlertsByType map[AlertType]int `json:"alerts_by_type"`
}
