/*
Package leave implements the leave eligibility policy engine and the
request lifecycle state machine.

PURPOSE:
  A candidate leave request is checked against per-category policy
  rules before it may enter the approval workflow. Once submitted, a
  request moves through a fixed state machine: PENDING is the only
  non-terminal state, and exactly one transition out of it may ever
  succeed, even under concurrent approvals.

KEY CONCEPTS IN THIS FILE (types.go):
  - Category: the seven fixed leave categories
  - Status: the request lifecycle states
  - Request: an immutable-once-terminal leave request
  - Candidate: the shape validated before submission

SEE ALSO:
  - policy.go: per-category validation rules
  - engine.go: lifecycle transitions with per-id serialization
  - errors.go: typed failures (rejection, invalid transition)
*/
package leave

import (
	"time"

	"github.com/warp/presence-engine/dates"
	"github.com/warp/presence-engine/org"
)

// Category is one of the seven fixed leave categories.
type Category string

const (
	CategorySick          Category = "SICK"
	CategoryPersonal      Category = "PERSONAL"
	CategoryAnnual        Category = "ANNUAL"
	CategoryMaternity     Category = "MATERNITY"
	CategorySterilization Category = "STERILIZATION"
	CategoryTraining      Category = "TRAINING"
	CategoryMilitary      Category = "MILITARY"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategorySick,
	CategoryPersonal,
	CategoryAnnual,
	CategoryMaternity,
	CategorySterilization,
	CategoryTraining,
	CategoryMilitary,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status is the lifecycle state of a request.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// Request is a leave request. Once the status is terminal the request
// is immutable; ApproverID is set exactly once, at the approving or
// rejecting transition.
type Request struct {
	ID            string
	EmployeeID    org.EmployeeID
	Category      Category
	StartDate     time.Time
	EndDate       time.Time
	Reason        string
	Status        Status
	DaysCount     int
	ApproverID    string
	AttachmentRef string
}

// CoversDay reports whether the request's inclusive [start, end] range
// contains the given civil day.
func (r Request) CoversDay(day time.Time) bool {
	return dates.Covers(r.StartDate, r.EndDate, day)
}

// Candidate is the pre-submission shape of a request. The day count is
// always recomputed from the date range; a caller-supplied count is
// never trusted.
type Candidate struct {
	EmployeeID    org.EmployeeID
	Category      Category
	StartDate     time.Time
	EndDate       time.Time
	Reason        string
	HasAttachment bool
	AttachmentRef string
}

// Days returns the inclusive day count of the candidate's range.
func (c Candidate) Days() int {
	return dates.InclusiveDays(c.StartDate, c.EndDate)
}
