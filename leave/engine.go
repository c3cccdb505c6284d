/*
engine.go - Leave request lifecycle with serialized transitions

PURPOSE:
  The Engine owns the request state machine. PENDING is the initial
  state of every submitted request and the only state with outgoing
  transitions:

    PENDING -> APPROVED   (approve, requires approver id)
    PENDING -> REJECTED   (reject, requires approver id)
    PENDING -> CANCELLED  (employee withdrawal)

  APPROVED, REJECTED and CANCELLED are terminal.

CONCURRENCY CONTRACT:
  At most one transition out of PENDING may ever succeed per request.
  The engine serializes transitions per request id, and the store's
  UpdateStatus is a compare-and-swap on the current status, so even a
  second process racing on the same database loses cleanly with
  ErrInvalidTransition instead of overwriting the winner.
*/
package leave

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/warp/presence-engine/org"
)

// RequestStore is the persistence the engine needs. The appends are
// write-once; UpdateStatus is the only mutation and must be atomic:
// it succeeds only if the stored status still equals from.
type RequestStore interface {
	// CreateRequest persists a new request. The request arrives in
	// StatusPending; ids are assigned by the caller.
	CreateRequest(ctx context.Context, r Request) error

	// GetRequest returns the request or ErrNotFound.
	GetRequest(ctx context.Context, id string) (Request, error)

	// ListRequests returns requests, optionally filtered by employee
	// (empty id = all), newest first.
	ListRequests(ctx context.Context, employeeID org.EmployeeID) ([]Request, error)

	// ListPending returns all requests still awaiting a decision.
	ListPending(ctx context.Context) ([]Request, error)

	// ApprovedCovering returns approved requests whose inclusive date
	// range contains the given civil day.
	ApprovedCovering(ctx context.Context, day time.Time) ([]Request, error)

	// UpdateStatus transitions id from -> to, recording approverID.
	// Returns ErrNotFound for unknown ids and ErrInvalidTransition when
	// the stored status no longer equals from.
	UpdateStatus(ctx context.Context, id string, from, to Status, approverID string) error
}

// Engine validates submissions and drives the lifecycle state machine.
type Engine struct {
	store RequestStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex // per-request transition locks
}

// NewEngine creates an engine over the given store.
func NewEngine(store RequestStore) *Engine {
	return &Engine{store: store, locks: make(map[string]*sync.Mutex)}
}

// Submit validates a candidate and, if eligible, persists it as a new
// PENDING request with the given id. The day count is recomputed from
// the date range, never taken from the caller.
func (e *Engine) Submit(ctx context.Context, id string, c Candidate, employee org.Employee, today time.Time) (Request, error) {
	if err := Validate(c, employee.StartDate, today); err != nil {
		return Request{}, err
	}

	req := Request{
		ID:            id,
		EmployeeID:    c.EmployeeID,
		Category:      c.Category,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		Reason:        c.Reason,
		Status:        StatusPending,
		DaysCount:     c.Days(),
		AttachmentRef: c.AttachmentRef,
	}
	if err := e.store.CreateRequest(ctx, req); err != nil {
		return Request{}, fmt.Errorf("persist request: %w", err)
	}
	return req, nil
}

// Approve transitions a PENDING request to APPROVED, recording the
// approver. Fails with ErrNotFound or ErrInvalidTransition.
func (e *Engine) Approve(ctx context.Context, id, approverID string) error {
	if approverID == "" {
		return fmt.Errorf("approve %s: approver id required", id)
	}
	return e.transition(ctx, id, StatusApproved, approverID)
}

// Reject transitions a PENDING request to REJECTED, recording the
// approver who declined it.
func (e *Engine) Reject(ctx context.Context, id, approverID string) error {
	if approverID == "" {
		return fmt.Errorf("reject %s: approver id required", id)
	}
	return e.transition(ctx, id, StatusRejected, approverID)
}

// Cancel withdraws a PENDING request. Only the employee withdraws, so
// no approver id is recorded.
func (e *Engine) Cancel(ctx context.Context, id string) error {
	return e.transition(ctx, id, StatusCancelled, "")
}

func (e *Engine) transition(ctx context.Context, id string, to Status, approverID string) error {
	lock := e.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	current, err := e.store.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != StatusPending {
		return &InvalidTransitionError{ID: id, From: current.Status, To: to}
	}
	return e.store.UpdateStatus(ctx, id, StatusPending, to, approverID)
}

func (e *Engine) lockFor(id string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[id]
	if !ok {
		l = &sync.Mutex{}
		e.locks[id] = l
	}
	return l
}
