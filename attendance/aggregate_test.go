package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/warp/presence-engine/attendance"
	"github.com/warp/presence-engine/dates"
	"github.com/warp/presence-engine/leave"
	"github.com/warp/presence-engine/org"
)

func rosterOfFour() []org.Employee {
	return []org.Employee{
		{ID: "E001", Department: "IT"},
		{ID: "E002", Department: "IT"},
		{ID: "E003", Department: "HR"},
		{ID: "E004", Department: "HR"},
	}
}

func TestAggregateOrg_ScenarioOfFour(t *testing.T) {
	// GIVEN: 1 on approved leave, 1 in at 08:00, 1 in at 09:00, 1 absent
	employees := rosterOfFour()
	records := []attendance.Record{
		checkInAt("E002", 8, 0),
		checkInAt("E003", 9, 0),
	}
	leaves := []leave.Request{approvedLeave("E001", 0, 1)}

	statuses := attendance.ClassifyRoster(employees, records, leaves, day, cutoff)
	got := attendance.AggregateOrg(statuses)

	want := attendance.OrgSummary{
		Counts: attendance.Counts{Present: 1, Late: 1, Absent: 1, Leave: 1},
		Total:  4,
	}
	if got != want {
		t.Errorf("AggregateOrg() = %+v, want %+v", got, want)
	}
}

func TestAggregateOrg_ClosedPartition(t *testing.T) {
	// The four counts must sum to the roster size for any inputs.
	statuses := map[org.EmployeeID]attendance.Status{
		"A": attendance.StatusPresent,
		"B": attendance.StatusPresent,
		"C": attendance.StatusLate,
		"D": attendance.StatusOnLeave,
		"E": attendance.StatusAbsent,
		"F": attendance.StatusAbsent,
	}
	s := attendance.AggregateOrg(statuses)
	if sum := s.Present + s.Late + s.Absent + s.Leave; sum != s.Total || s.Total != len(statuses) {
		t.Errorf("partition not closed: counts sum %d, total %d, roster %d", sum, s.Total, len(statuses))
	}
}

func TestAggregateOrg_EmptyRoster(t *testing.T) {
	s := attendance.AggregateOrg(nil)
	if s.Total != 0 || s.Counts != (attendance.Counts{}) {
		t.Errorf("empty roster should aggregate to zero, got %+v", s)
	}
}

func TestAggregateDepartment(t *testing.T) {
	employees := rosterOfFour()
	statuses := map[org.EmployeeID]attendance.Status{
		"E001": attendance.StatusPresent,
		"E002": attendance.StatusLate,
		"E003": attendance.StatusOnLeave,
		"E004": attendance.StatusAbsent,
	}

	byDept := attendance.AggregateDepartment(employees, statuses)

	if got := byDept["IT"]; got != (attendance.Counts{Present: 1, Late: 1}) {
		t.Errorf("IT = %+v, want one present one late", got)
	}
	if got := byDept["HR"]; got != (attendance.Counts{Leave: 1, Absent: 1}) {
		t.Errorf("HR = %+v, want one leave one absent", got)
	}
}

func TestAggregateDepartment_MissingStatusCountsAbsent(t *testing.T) {
	employees := []org.Employee{{ID: "E009", Department: "Sales"}}
	byDept := attendance.AggregateDepartment(employees, nil)
	if got := byDept["Sales"]; got.Absent != 1 {
		t.Errorf("unclassified employee should count absent, got %+v", got)
	}
}

// fixedSource feeds AggregateRange from maps keyed by civil day.
type fixedSource struct {
	records map[time.Time][]attendance.Record
	leaves  map[time.Time][]leave.Request
}

func (f fixedSource) RecordsForDay(_ context.Context, day time.Time) ([]attendance.Record, error) {
	return f.records[dates.DayOf(day)], nil
}

func (f fixedSource) ApprovedCovering(_ context.Context, day time.Time) ([]leave.Request, error) {
	return f.leaves[dates.DayOf(day)], nil
}

func TestAggregateRange_PreservesOrder(t *testing.T) {
	employees := []org.Employee{{ID: "E001"}, {ID: "E002"}}
	day1 := dates.NewDay(2025, time.June, 16)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	onTime := checkInAt("E001", 8, 0)
	lateDay2 := checkInAt("E002", 10, 0)
	lateDay2.Timestamp = dates.At(day2, 10, 0)

	source := fixedSource{
		records: map[time.Time][]attendance.Record{
			day1: {onTime},
			day2: {lateDay2},
		},
	}

	summaries, err := attendance.AggregateRange(context.Background(), employees, []time.Time{day1, day2, day3}, source, cutoff)
	if err != nil {
		t.Fatalf("AggregateRange() error: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}
	if !summaries[0].Day.Equal(day1) || !summaries[1].Day.Equal(day2) || !summaries[2].Day.Equal(day3) {
		t.Error("summaries out of chronological order")
	}
	if summaries[0].Present != 1 || summaries[0].Absent != 1 {
		t.Errorf("day1 = %+v, want 1 present 1 absent", summaries[0].OrgSummary)
	}
	if summaries[1].Late != 1 {
		t.Errorf("day2 = %+v, want 1 late", summaries[1].OrgSummary)
	}
	if summaries[2].Absent != 2 {
		t.Errorf("day3 = %+v, want all absent", summaries[2].OrgSummary)
	}
	for i, s := range summaries {
		if s.Total != len(employees) {
			t.Errorf("summary %d total = %d, want roster size %d", i, s.Total, len(employees))
		}
	}
}
