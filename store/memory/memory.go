// Package memory provides an in-memory store implementation for tests
// and development. It backs the same interfaces as store/sqlite.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/presence-engine/attendance"
	"github.com/warp/presence-engine/dates"
	"github.com/warp/presence-engine/leave"
	"github.com/warp/presence-engine/org"
)

// Store keeps everything in process memory, guarded by one RWMutex.
// Attendance records are append-only; leave status updates are
// compare-and-swap under the write lock.
type Store struct {
	mu        sync.RWMutex
	employees map[org.EmployeeID]org.Employee
	records   []attendance.Record
	requests  map[string]leave.Request
	order     []string // request ids in insertion order
}

// New creates an empty store.
func New() *Store {
	return &Store{
		employees: make(map[org.EmployeeID]org.Employee),
		requests:  make(map[string]leave.Request),
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(_ context.Context, e org.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
	return nil
}

func (s *Store) Employee(_ context.Context, id org.EmployeeID) (org.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[id]
	if !ok {
		return org.Employee{}, org.ErrEmployeeNotFound
	}
	return e, nil
}

func (s *Store) Employees(_ context.Context) ([]org.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]org.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// ATTENDANCE RECORDS (append-only)
// =============================================================================

func (s *Store) AppendRecord(_ context.Context, r attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Keep the log ordered by timestamp so day queries return records
	// in chronological order.
	i := sort.Search(len(s.records), func(i int) bool {
		return s.records[i].Timestamp.After(r.Timestamp)
	})
	s.records = append(s.records, attendance.Record{})
	copy(s.records[i+1:], s.records[i:])
	s.records[i] = r
	return nil
}

func (s *Store) RecordsForDay(_ context.Context, day time.Time) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []attendance.Record
	for _, r := range s.records {
		if dates.SameDay(r.Timestamp, day) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) RecordsForEmployee(_ context.Context, id org.EmployeeID, from, to time.Time) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []attendance.Record
	for _, r := range s.records {
		if r.EmployeeID == id && dates.Covers(from, to, r.Timestamp) {
			out = append(out, r)
		}
	}
	return out, nil
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

func (s *Store) CreateRequest(_ context.Context, r leave.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.ID] = r
	s.order = append(s.order, r.ID)
	return nil
}

func (s *Store) GetRequest(_ context.Context, id string) (leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrNotFound
	}
	return r, nil
}

func (s *Store) ListRequests(_ context.Context, employeeID org.EmployeeID) ([]leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []leave.Request
	for i := len(s.order) - 1; i >= 0; i-- {
		r := s.requests[s.order[i]]
		if employeeID == "" || r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) ListPending(_ context.Context) ([]leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []leave.Request
	for i := len(s.order) - 1; i >= 0; i-- {
		if r := s.requests[s.order[i]]; r.Status == leave.StatusPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) ApprovedCovering(_ context.Context, day time.Time) ([]leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []leave.Request
	for _, id := range s.order {
		r := s.requests[id]
		if r.Status == leave.StatusApproved && r.CoversDay(day) {
			out = append(out, r)
		}
	}
	return out, nil
}

// UpdateStatus transitions id from -> to atomically: the swap happens
// only if the stored status still equals from.
func (s *Store) UpdateStatus(_ context.Context, id string, from, to leave.Status, approverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return leave.ErrNotFound
	}
	if r.Status != from {
		return &leave.InvalidTransitionError{ID: id, From: r.Status, To: to}
	}
	r.Status = to
	if approverID != "" {
		r.ApproverID = approverID
	}
	s.requests[id] = r
	return nil
}
