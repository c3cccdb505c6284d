/*
Package attendance implements daily attendance classification and
aggregation.

PURPOSE:
  Given one employee's check events for a day plus any approved leave
  covering that day, derive a single status verdict; roll verdicts up
  into department and organization summaries for dashboards and trend
  reporting.

KEY CONCEPTS IN THIS FILE (types.go):
  - EventType: CHECK_IN / CHECK_OUT
  - Record: an immutable, append-only check event with its geofence tag
  - Status: the four-way daily verdict
  - LateCutoff: the configured late threshold

DESIGN PRINCIPLES:
  1. Records are created exactly once per physical check event and
     never mutated or deleted.
  2. The geofence tag (Location.Inside) is derived by the geo package,
     never set independently.
  3. Classification is pure: absence of data is a valid verdict
     (Absent), not an error.

SEE ALSO:
  - classifier.go: per-employee and roster classification
  - aggregate.go: department/organization rollups
*/
package attendance

import (
	"time"

	"github.com/warp/presence-engine/org"
)

// EventType distinguishes the two physical check events.
type EventType string

const (
	CheckIn  EventType = "CHECK_IN"
	CheckOut EventType = "CHECK_OUT"
)

// Location is the GPS fix attached to a record, tagged with the
// derived geofence verdict.
type Location struct {
	Lat    float64
	Lng    float64
	Inside bool // derived from geo.AreaConfig, never client-supplied
}

// Record is one check event. Append-only: once created it is never
// mutated or deleted.
type Record struct {
	ID         string
	EmployeeID org.EmployeeID
	Timestamp  time.Time
	Type       EventType
	Location   Location
	Note       string // required for off-site events
	PhotoRef   string // off-site verification evidence
}

// Status is the daily attendance verdict for one employee.
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusAbsent  Status = "ABSENT"
	StatusOnLeave Status = "LEAVE"
)

// LateCutoff is the clock time after which a check-in counts as late.
// A check-in strictly later than the cutoff minute is Late.
type LateCutoff struct {
	Hour   int `yaml:"hour"`
	Minute int `yaml:"minute"`
}

// DefaultLateCutoff is the canonical organization-wide threshold.
// The original system also compared against 09:00 in one reporting
// path; that duplicate was a policy inconsistency and is not encoded.
var DefaultLateCutoff = LateCutoff{Hour: 8, Minute: 30}

// Minutes returns the cutoff as minutes since midnight.
func (c LateCutoff) Minutes() int { return c.Hour*60 + c.Minute }
