package domain

type SafetyLevel string

const (
	SafetyHigh   SafetyLevel = "high"
	SafetyMedium SafetyLevel = "medium"
	SafetyLow    SafetyLevel = "low"
)

// RoutePoint is one stop on a planned route. Transient planning data, never
// persisted by the engine.
type RoutePoint struct {
	Location    Coordinate  `json:"location"`
	Label       string      `json:"label"`
	SafetyLevel SafetyLevel `json:"safety_level"`
	Checkpoints []string    `json:"checkpoints"`
}

// RouteOptimization is the immutable result of planning a safe route between
// a student's current position and a destination.
type RouteOptimization struct {
	StudentID   int64        `json:"student_id"`
	Start       Coordinate   `json:"start"`
	Destination Coordinate   `json:"destination"`
	Waypoints   []RoutePoint `json:"waypoints"`
	EtaMinutes  int          `json:"eta_minutes"`
	SafetyScore int          `json:"safety_score"`
}
