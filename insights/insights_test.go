package insights_test

import (
	"strings"
	"testing"
	"time"

	"github.com/warp/presence-engine/attendance"
	"github.com/warp/presence-engine/dates"
	"github.com/warp/presence-engine/insights"
)

func TestBuildBrief_LateCountsAsPresent(t *testing.T) {
	summary := attendance.OrgSummary{
		Counts: attendance.Counts{Present: 10, Late: 2, Absent: 3, Leave: 1},
		Total:  16,
	}
	brief := insights.BuildBrief(dates.NewDay(2025, time.June, 16), summary, 4)

	if brief.Present != 12 {
		t.Errorf("Present = %d, want 12 (on-time + late)", brief.Present)
	}
	if brief.Late != 2 || brief.Total != 16 || brief.PendingLeaves != 4 {
		t.Errorf("brief = %+v", brief)
	}
}

func TestAttendanceRate_ExactTwoDecimals(t *testing.T) {
	brief := insights.DailyBrief{Total: 3, Present: 1}
	if got := brief.AttendanceRate().String(); got != "33.33" {
		t.Errorf("AttendanceRate() = %s, want 33.33", got)
	}

	empty := insights.DailyBrief{}
	if !empty.AttendanceRate().IsZero() {
		t.Errorf("empty roster rate = %s, want 0", empty.AttendanceRate())
	}
}

func TestPrompt_CarriesOnlyAggregates(t *testing.T) {
	brief := insights.DailyBrief{
		Date:          dates.NewDay(2025, time.June, 16),
		Total:         16,
		Present:       12,
		Late:          2,
		PendingLeaves: 4,
	}
	p := brief.Prompt()
	for _, want := range []string{"2025-06-16", "Total Employees: 16", "Present Today: 12", "Late Arrivals: 2", "Pending Leave Requests: 4"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}
