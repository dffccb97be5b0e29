package domain

import "time"

type AttendanceStatus string

const (
	AttendancePresent    AttendanceStatus = "present"
	AttendanceLate       AttendanceStatus = "late"
	AttendanceAutoMarked AttendanceStatus = "auto_marked"
	AttendanceAbsent     AttendanceStatus = "absent"
)

// SchoolHours bounds the teaching day; EndHour is exclusive.
type SchoolHours struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// ClassRoster lists the students of one class together with the school-day
// bounds used when inferring their attendance.
type ClassRoster struct {
	ClassID    int64       `json:"class_id"`
	SchoolID   int64       `json:"school_id"`
	Hours      SchoolHours `json:"hours"`
	StudentIDs []int64     `json:"student_ids"`
}

// AttendanceDecision is the outcome of inferring a student's attendance from
// their latest device fix. Confidence is 0-100; decisions at or above the
// commit threshold are also written to the attendance store.
type AttendanceDecision struct {
	StudentID      int64            `json:"student_id"`
	Status         AttendanceStatus `json:"status"`
	Location       *Coordinate      `json:"location,omitempty"`
	AccuracyMeters float64          `json:"accuracy_meters,omitempty"`
	Confidence     int              `json:"confidence"`
	DecidedAt      time.Time        `json:"decided_at"`
}
