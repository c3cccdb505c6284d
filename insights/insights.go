/*
Package insights builds the aggregate feed handed to the external AI
summarization service.

PURPOSE:
  Executive dashboards show a free-text daily summary generated by an
  external model. The core's only obligation is the input contract:
  the feed carries plain aggregate counts and never leaks per-employee
  records to the summarizer.

DESIGN PRINCIPLES:
  1. The summarizer is opaque: any implementation of Summarizer works,
     and none ships with this module.
  2. Counts only cross the boundary; names, ids and records never do.
  3. Rates are computed with decimals so reported percentages are
     exact (33.33 rather than 33.329999...).
*/
package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/presence-engine/attendance"
)

// DailyBrief is the complete payload the summarizer receives.
type DailyBrief struct {
	Date          time.Time `json:"date"`
	Total         int       `json:"total"`
	Present       int       `json:"present"`
	Late          int       `json:"late"`
	PendingLeaves int       `json:"pending_leaves"`
}

// Summarizer turns a brief into free text. Implementations live
// outside this module (Gemini, GPT, a canned template - all equal
// here).
type Summarizer interface {
	Summarize(ctx context.Context, brief DailyBrief) (string, error)
}

// BuildBrief folds an organization summary and the pending-leave count
// into the feed payload. Late employees count as present for the
// headline number, matching how the dashboards read "present today".
func BuildBrief(date time.Time, summary attendance.OrgSummary, pendingLeaves int) DailyBrief {
	return DailyBrief{
		Date:          date,
		Total:         summary.Total,
		Present:       summary.Present + summary.Late,
		Late:          summary.Late,
		PendingLeaves: pendingLeaves,
	}
}

// AttendanceRate returns present/total as a percentage with two
// decimal places. Zero when the roster is empty.
func (b DailyBrief) AttendanceRate() decimal.Decimal {
	if b.Total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(b.Present)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(b.Total)), 2)
}

// Prompt renders the text handed to the summarizer. Everything in it
// is an aggregate number.
func (b DailyBrief) Prompt() string {
	return fmt.Sprintf(
		"Analyze the following HR data for %s and provide a brief, professional "+
			"executive summary (max 150 words). Focus on attendance health and pending actions.\n\n"+
			"Data:\n"+
			"- Total Employees: %d\n"+
			"- Present Today: %d (%s%%)\n"+
			"- Late Arrivals: %d\n"+
			"- Pending Leave Requests: %d\n",
		b.Date.Format("2006-01-02"), b.Total, b.Present, b.AttendanceRate(), b.Late, b.PendingLeaves)
}
