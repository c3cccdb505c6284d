/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the internal
  domain model.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation lives in handlers and the domain packages; DTOs are pure
  data carriers.
*/
package api

import (
	"time"

	"github.com/warp/presence-engine/attendance"
	"github.com/warp/presence-engine/leave"
	"github.com/warp/presence-engine/org"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CheckEventRequest submits one check-in or check-out. The geofence
// tag is derived server-side; clients send only the raw fix.
type CheckEventRequest struct {
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"type"` // CHECK_IN or CHECK_OUT
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Note       string  `json:"note,omitempty"`
	PhotoRef   string  `json:"photo_ref,omitempty"`
}

// SubmitLeaveRequest carries a candidate leave request. days_count is
// intentionally absent: the server recomputes it from the range.
type SubmitLeaveRequest struct {
	EmployeeID    string `json:"employee_id"`
	Category      string `json:"category"`
	StartDate     string `json:"start_date"` // 2006-01-02
	EndDate       string `json:"end_date"`
	Reason        string `json:"reason"`
	AttachmentRef string `json:"attachment_ref,omitempty"`
}

// DecisionRequest approves or rejects a pending request.
type DecisionRequest struct {
	ApproverID string `json:"approver_id"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// RecordDTO is a stored check event.
type RecordDTO struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Timestamp  time.Time `json:"timestamp"`
	Type       string    `json:"type"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Inside     bool      `json:"inside"`
	Note       string    `json:"note,omitempty"`
	PhotoRef   string    `json:"photo_ref,omitempty"`
}

func toRecordDTO(r attendance.Record) RecordDTO {
	return RecordDTO{
		ID:         r.ID,
		EmployeeID: string(r.EmployeeID),
		Timestamp:  r.Timestamp,
		Type:       string(r.Type),
		Lat:        r.Location.Lat,
		Lng:        r.Location.Lng,
		Inside:     r.Location.Inside,
		Note:       r.Note,
		PhotoRef:   r.PhotoRef,
	}
}

// LeaveRequestDTO is a stored leave request.
type LeaveRequestDTO struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	Category      string `json:"category"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
	DaysCount     int    `json:"days_count"`
	ApproverID    string `json:"approver_id,omitempty"`
	AttachmentRef string `json:"attachment_ref,omitempty"`
}

func toLeaveDTO(r leave.Request) LeaveRequestDTO {
	return LeaveRequestDTO{
		ID:            r.ID,
		EmployeeID:    string(r.EmployeeID),
		Category:      string(r.Category),
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		Reason:        r.Reason,
		Status:        string(r.Status),
		DaysCount:     r.DaysCount,
		ApproverID:    r.ApproverID,
		AttachmentRef: r.AttachmentRef,
	}
}

// EmployeeDTO is one roster entry.
type EmployeeDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	StartDate  string `json:"start_date"`
}

func toEmployeeDTO(e org.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:         string(e.ID),
		Name:       e.Name,
		Role:       string(e.Role),
		Department: e.Department,
		StartDate:  e.StartDate.Format("2006-01-02"),
	}
}

// DaySummaryDTO is the dashboard payload for one day: org totals,
// per-department counts, and per-employee verdicts.
type DaySummaryDTO struct {
	Day         string                       `json:"day"`
	Org         attendance.OrgSummary        `json:"org"`
	Departments map[string]attendance.Counts `json:"departments"`
	Statuses    map[string]string            `json:"statuses"`
}

// RangeSummaryDTO is the trend payload: one org summary per day,
// chronological.
type RangeSummaryDTO struct {
	Days []DayTotalsDTO `json:"days"`
}

// DayTotalsDTO flattens a DaySummary for charting.
type DayTotalsDTO struct {
	Day     string `json:"day"`
	Present int    `json:"present"`
	Late    int    `json:"late"`
	Absent  int    `json:"absent"`
	Leave   int    `json:"leave"`
	Total   int    `json:"total"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
