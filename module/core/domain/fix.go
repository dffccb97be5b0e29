package domain

import "time"

// DeviceFix is a single reported device location. Fixes are produced by the
// device-ingestion path; the engine only ever reads the latest fix per student.
type DeviceFix struct {
	DeviceID       string     `json:"device_id"`
	StudentID      int64      `json:"student_id"`
	Location       Coordinate `json:"location"`
	AccuracyMeters float64    `json:"accuracy_meters"`
	CapturedAt     time.Time  `json:"captured_at"`
}
