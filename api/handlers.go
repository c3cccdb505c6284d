/*
handlers.go - HTTP handlers for the presence engine

PURPOSE:
  Exposes the engine via REST. Handlers parse HTTP, delegate to the
  domain packages, and serialize results; no business rules live here
  beyond the off-site evidence gate.

ENDPOINTS:
  Attendance:
    POST   /api/attendance/events           Submit check-in/check-out
    GET    /api/attendance/summary          Day classification + rollups
    GET    /api/attendance/summary/range    Trend over a date range

  Leaves:
    POST   /api/leaves                      Submit a leave request
    GET    /api/leaves/pending              Pending approval queue
    POST   /api/leaves/{id}/approve         Approve (approver required)
    POST   /api/leaves/{id}/reject          Reject (approver required)
    POST   /api/leaves/{id}/cancel          Employee withdrawal

  Roster:
    GET    /api/employees                   List roster
    GET    /api/employees/{id}              One employee
    GET    /api/employees/{id}/records      Check history in a range
    GET    /api/employees/{id}/leaves       Leave history

  Insights:
    GET    /api/insights/brief              Aggregate feed for the AI
                                            summarizer (counts only)

ERROR HANDLING:
  - 400: malformed input (dates, coordinates-as-strings, unknown types)
  - 404: unknown employee or request id
  - 409: transition attempted on a non-PENDING request
  - 422: candidate failed a leave policy rule (reason surfaced verbatim)
  - 500: everything else
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/presence-engine/attendance"
	"github.com/warp/presence-engine/dates"
	"github.com/warp/presence-engine/geo"
	"github.com/warp/presence-engine/insights"
	"github.com/warp/presence-engine/leave"
	"github.com/warp/presence-engine/org"
)

// Store is the persistence surface the handlers need. Both
// store/sqlite and store/memory satisfy it.
type Store interface {
	leave.RequestStore
	attendance.DaySource

	SaveEmployee(ctx context.Context, e org.Employee) error
	Employee(ctx context.Context, id org.EmployeeID) (org.Employee, error)
	Employees(ctx context.Context) ([]org.Employee, error)

	AppendRecord(ctx context.Context, r attendance.Record) error
	RecordsForEmployee(ctx context.Context, id org.EmployeeID, from, to time.Time) ([]attendance.Record, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  Store
	Engine *leave.Engine
	Area   geo.AreaConfig
	Cutoff attendance.LateCutoff

	// Now is the clock; overridable in tests.
	Now func() time.Time
}

// NewHandler wires a handler over a store and the loaded config.
func NewHandler(store Store, area geo.AreaConfig, cutoff attendance.LateCutoff) *Handler {
	return &Handler{
		Store:  store,
		Engine: leave.NewEngine(store),
		Area:   area,
		Cutoff: cutoff,
		Now:    time.Now,
	}
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// SubmitCheckEvent records a check-in or check-out. The geofence tag
// is computed here; an off-site event must carry a note and a photo
// reference before it is accepted.
func (h *Handler) SubmitCheckEvent(w http.ResponseWriter, r *http.Request) {
	var req CheckEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	eventType := attendance.EventType(req.Type)
	if eventType != attendance.CheckIn && eventType != attendance.CheckOut {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown event type %q", req.Type))
		return
	}
	if _, err := h.Store.Employee(r.Context(), org.EmployeeID(req.EmployeeID)); err != nil {
		h.writeDomainError(w, err)
		return
	}

	fix := geo.Coordinate{Lat: req.Lat, Lng: req.Lng}
	inside := h.Area.InRange(fix)
	if !inside && (req.Note == "" || req.PhotoRef == "") {
		writeError(w, http.StatusBadRequest,
			"off-site events require a note and a photo reference")
		return
	}

	record := attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: org.EmployeeID(req.EmployeeID),
		Timestamp:  h.Now(),
		Type:       eventType,
		Location:   attendance.Location{Lat: fix.Lat, Lng: fix.Lng, Inside: inside},
		Note:       req.Note,
		PhotoRef:   req.PhotoRef,
	}
	if err := h.Store.AppendRecord(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toRecordDTO(record))
}

// DaySummary classifies the whole roster for one day and returns org
// and department rollups alongside per-employee verdicts.
func (h *Handler) DaySummary(w http.ResponseWriter, r *http.Request) {
	day, err := h.queryDay(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	employees, err := h.Store.Employees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	records, err := h.Store.RecordsForDay(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	leaves, err := h.Store.ApprovedCovering(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	statuses := attendance.ClassifyRoster(employees, records, leaves, day, h.Cutoff)
	byID := make(map[string]string, len(statuses))
	for id, s := range statuses {
		byID[string(id)] = string(s)
	}

	writeJSON(w, http.StatusOK, DaySummaryDTO{
		Day:         day.Format("2006-01-02"),
		Org:         attendance.AggregateOrg(statuses),
		Departments: attendance.AggregateDepartment(employees, statuses),
		Statuses:    byID,
	})
}

// RangeSummary returns one org summary per day of [from, to], in
// chronological order, from persisted records only.
func (h *Handler) RangeSummary(w http.ResponseWriter, r *http.Request) {
	from, err := parseDay(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := parseDay(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date")
		return
	}

	employees, err := h.Store.Employees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summaries, err := attendance.AggregateRange(r.Context(), employees, dates.Sequence(from, to), h.Store, h.Cutoff)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := RangeSummaryDTO{Days: make([]DayTotalsDTO, 0, len(summaries))}
	for _, s := range summaries {
		resp.Days = append(resp.Days, DayTotalsDTO{
			Day:     s.Day.Format("2006-01-02"),
			Present: s.Present,
			Late:    s.Late,
			Absent:  s.Absent,
			Leave:   s.Leave,
			Total:   s.Total,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// LEAVES
// =============================================================================

// SubmitLeave validates a candidate and files it as PENDING.
func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	var req SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	start, err := parseDay(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	end, err := parseDay(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date")
		return
	}

	employee, err := h.Store.Employee(r.Context(), org.EmployeeID(req.EmployeeID))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	candidate := leave.Candidate{
		EmployeeID:    employee.ID,
		Category:      leave.Category(req.Category),
		StartDate:     start,
		EndDate:       end,
		Reason:        req.Reason,
		HasAttachment: req.AttachmentRef != "",
		AttachmentRef: req.AttachmentRef,
	}

	request, err := h.Engine.Submit(r.Context(), uuid.NewString(), candidate, employee, dates.DayOf(h.Now()))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveDTO(request))
}

// ListPendingLeaves returns the approval queue.
func (h *Handler) ListPendingLeaves(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Store.ListPending(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTOs(pending))
}

// ApproveLeave transitions PENDING -> APPROVED.
func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Engine.Approve)
}

// RejectLeave transitions PENDING -> REJECTED.
func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Engine.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id, approverID string) error) {
	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ApproverID == "" {
		writeError(w, http.StatusBadRequest, "approver_id is required")
		return
	}

	id := chi.URLParam(r, "id")
	if err := op(r.Context(), id, req.ApproverID); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeRequest(w, r, id)
}

// CancelLeave withdraws a PENDING request.
func (h *Handler) CancelLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Engine.Cancel(r.Context(), id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeRequest(w, r, id)
}

func (h *Handler) writeRequest(w http.ResponseWriter, r *http.Request, id string) {
	updated, err := h.Store.GetRequest(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTO(updated))
}

// =============================================================================
// ROSTER
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.Employees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeDTO(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.Store.Employee(r.Context(), org.EmployeeID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(e))
}

// EmployeeRecords returns one employee's check history in a range.
func (h *Handler) EmployeeRecords(w http.ResponseWriter, r *http.Request) {
	id := org.EmployeeID(chi.URLParam(r, "id"))
	to, err := h.queryDay(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	from := to.AddDate(0, 0, -30)
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = parseDay(raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date")
			return
		}
	}

	records, err := h.Store.RecordsForEmployee(r.Context(), id, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]RecordDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordDTO(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

// EmployeeLeaves returns one employee's leave history, newest first.
func (h *Handler) EmployeeLeaves(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListRequests(r.Context(), org.EmployeeID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTOs(requests))
}

// =============================================================================
// INSIGHTS
// =============================================================================

// InsightsBrief returns the aggregate-only feed for the external AI
// summarizer. Per-employee data never appears in this payload.
func (h *Handler) InsightsBrief(w http.ResponseWriter, r *http.Request) {
	day, err := h.queryDay(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	employees, err := h.Store.Employees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	records, err := h.Store.RecordsForDay(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	leaves, err := h.Store.ApprovedCovering(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	pending, err := h.Store.ListPending(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	statuses := attendance.ClassifyRoster(employees, records, leaves, day, h.Cutoff)
	brief := insights.BuildBrief(day, attendance.AggregateOrg(statuses), len(pending))
	writeJSON(w, http.StatusOK, brief)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) queryDay(r *http.Request, param string) (time.Time, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return dates.DayOf(h.Now()), nil
	}
	day, err := parseDay(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q", param, raw)
	}
	return day, nil
}

func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func toLeaveDTOs(requests []leave.Request) []LeaveRequestDTO {
	out := make([]LeaveRequestDTO, 0, len(requests))
	for _, r := range requests {
		out = append(out, toLeaveDTO(r))
	}
	return out
}

// writeDomainError maps typed domain failures onto HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	var rejected *leave.RejectedError
	switch {
	case errors.As(err, &rejected):
		writeError(w, http.StatusUnprocessableEntity, rejected.Reason)
	case leave.IsNotFound(err), errors.Is(err, org.ErrEmployeeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, leave.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
