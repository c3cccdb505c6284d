/*
classifier.go - Daily attendance classification

PURPOSE:
  Derives the four-way verdict for an employee's day.

PRECEDENCE (fixed tie-break):
  1. Any APPROVED leave covering the day wins: the verdict is LEAVE no
     matter what check-in records exist that day.
  2. Otherwise the earliest CHECK_IN decides: strictly after the late
     cutoff is LATE, at or before it is PRESENT.
  3. No CHECK_IN at all is ABSENT.
  CHECK_OUT records never affect the verdict.
*/
package attendance

import (
	"time"

	"github.com/warp/presence-engine/dates"
	"github.com/warp/presence-engine/leave"
	"github.com/warp/presence-engine/org"
)

// ClassifyDay returns the verdict for one employee's day. records and
// leaves must already be filtered to that employee; records outside
// the day are ignored. Pure function, no error conditions.
func ClassifyDay(day time.Time, records []Record, leaves []leave.Request, cutoff LateCutoff) Status {
	for _, l := range leaves {
		if l.Status == leave.StatusApproved && l.CoversDay(day) {
			return StatusOnLeave
		}
	}

	earliest, ok := earliestCheckIn(day, records)
	if !ok {
		return StatusAbsent
	}
	if dates.MinuteOfDay(earliest.Timestamp) > cutoff.Minutes() {
		return StatusLate
	}
	return StatusPresent
}

// ClassifyRoster applies ClassifyDay to every employee on the roster.
// records and leaves may span the whole organization; they are grouped
// by employee here. Every roster member gets exactly one verdict.
func ClassifyRoster(employees []org.Employee, records []Record, leaves []leave.Request, day time.Time, cutoff LateCutoff) map[org.EmployeeID]Status {
	recordsByEmployee := make(map[org.EmployeeID][]Record)
	for _, r := range records {
		recordsByEmployee[r.EmployeeID] = append(recordsByEmployee[r.EmployeeID], r)
	}
	leavesByEmployee := make(map[org.EmployeeID][]leave.Request)
	for _, l := range leaves {
		leavesByEmployee[l.EmployeeID] = append(leavesByEmployee[l.EmployeeID], l)
	}

	statuses := make(map[org.EmployeeID]Status, len(employees))
	for _, e := range employees {
		statuses[e.ID] = ClassifyDay(day, recordsByEmployee[e.ID], leavesByEmployee[e.ID], cutoff)
	}
	return statuses
}

func earliestCheckIn(day time.Time, records []Record) (Record, bool) {
	var best Record
	found := false
	for _, r := range records {
		if r.Type != CheckIn || !dates.SameDay(r.Timestamp, day) {
			continue
		}
		if !found || r.Timestamp.Before(best.Timestamp) {
			best = r
			found = true
		}
	}
	return best, found
}
