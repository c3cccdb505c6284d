/*
aggregate.go - Department and organization rollups

PURPOSE:
  Rolls per-employee verdicts into the summaries dashboards consume:
  per-department counts for a day, organization totals for a day, and
  chronological per-day totals for a range.

INVARIANT:
  The four counts partition the roster: present + late + absent +
  leave == total == roster size, for every day and every roster.

  Historical trend data comes exclusively from persisted records via
  AggregateRange; no simulated history is ever generated here.
*/
package attendance

import (
	"context"
	"time"

	"github.com/warp/presence-engine/leave"
	"github.com/warp/presence-engine/org"
)

// Counts is a four-way status tally.
type Counts struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	Leave   int `json:"leave"`
}

func (c *Counts) add(s Status) {
	switch s {
	case StatusPresent:
		c.Present++
	case StatusLate:
		c.Late++
	case StatusOnLeave:
		c.Leave++
	default:
		c.Absent++
	}
}

// OrgSummary is the organization-wide tally for one day.
type OrgSummary struct {
	Counts
	Total int `json:"total"`
}

// DaySummary pairs an OrgSummary with its day, for trend reporting.
type DaySummary struct {
	Day time.Time `json:"day"`
	OrgSummary
}

// AggregateDepartment groups the roster by department and tallies each
// department's verdicts for one day. Employees missing from statuses
// count as absent, keeping the partition closed.
func AggregateDepartment(employees []org.Employee, statuses map[org.EmployeeID]Status) map[string]Counts {
	out := make(map[string]Counts)
	for _, e := range employees {
		c := out[e.Department]
		c.add(statuses[e.ID])
		out[e.Department] = c
	}
	return out
}

// AggregateOrg flattens verdicts to organization totals. Total always
// equals len(statuses) and the four counts sum to it.
func AggregateOrg(statuses map[org.EmployeeID]Status) OrgSummary {
	var s OrgSummary
	for _, st := range statuses {
		s.add(st)
		s.Total++
	}
	return s
}

// DaySource supplies the stored inputs AggregateRange needs for one
// day. Both stores in store/ implement it.
type DaySource interface {
	RecordsForDay(ctx context.Context, day time.Time) ([]Record, error)
	ApprovedCovering(ctx context.Context, day time.Time) ([]leave.Request, error)
}

// AggregateRange classifies and aggregates each supplied day in order,
// preserving the chronology of days. Inputs come from persisted data;
// a fetch failure aborts the whole range.
func AggregateRange(ctx context.Context, employees []org.Employee, days []time.Time, source DaySource, cutoff LateCutoff) ([]DaySummary, error) {
	out := make([]DaySummary, 0, len(days))
	for _, day := range days {
		records, err := source.RecordsForDay(ctx, day)
		if err != nil {
			return nil, err
		}
		leaves, err := source.ApprovedCovering(ctx, day)
		if err != nil {
			return nil, err
		}
		statuses := ClassifyRoster(employees, records, leaves, day, cutoff)
		out = append(out, DaySummary{Day: day, OrgSummary: AggregateOrg(statuses)})
	}
	return out, nil
}
