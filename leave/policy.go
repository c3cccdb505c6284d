/*
policy.go - Per-category leave eligibility rules

PURPOSE:
  Validate decides whether a candidate request may enter the approval
  workflow. It is a pure decision function: same candidate, employee
  start date, and reference day always yield the same verdict, and
  nothing is written anywhere.

RULE TABLE:
  Rules are keyed by category and evaluated in declaration order after
  the generic shape checks. The first violated rule wins and its reason
  text is surfaced verbatim to the submitter.

  SICK           3+ consecutive days require a medical certificate
  PERSONAL       shape checks only
  ANNUAL         tenure >= 1 year, notice >= 3 days, at most 6 days
  MATERNITY      at most 98 days
  STERILIZATION  medical certificate always required
  TRAINING       notice must not be negative
  MILITARY       notice must not be negative

KNOWN POLICY GAPS (intentionally replicated):
  - The 6-day annual cap is enforced per request only, never against a
    running balance of days already taken this year.
  - TRAINING/MILITARY accept zero-day (same-day) notice even though the
    stated policy asks for one day ahead.
*/
package leave

import (
	"time"

	"github.com/warp/presence-engine/dates"
)

// ruleContext carries the derived quantities the rules inspect.
type ruleContext struct {
	candidate  Candidate
	days       int // inclusive day count, recomputed
	tenureDays int // today - employee start date, whole days
	noticeDays int // candidate start date - today, whole days
}

// rule is one policy constraint. ok returns true when satisfied.
type rule struct {
	id     string
	reason string
	ok     func(ruleContext) bool
}

var categoryRules = map[Category][]rule{
	CategorySick: {
		{
			id:     "sick_certificate",
			reason: "sick leave of 3 or more consecutive days requires a medical certificate",
			ok: func(rc ruleContext) bool {
				return rc.days < 3 || rc.candidate.HasAttachment
			},
		},
	},
	CategoryPersonal: nil,
	CategoryAnnual: {
		{
			id:     "annual_tenure",
			reason: "annual leave requires at least 1 year of service",
			ok:     func(rc ruleContext) bool { return rc.tenureDays >= 365 },
		},
		{
			id:     "annual_notice",
			reason: "annual leave must be requested at least 3 days in advance",
			ok:     func(rc ruleContext) bool { return rc.noticeDays >= 3 },
		},
		{
			id:     "annual_cap",
			reason: "annual leave is limited to 6 days per year",
			ok:     func(rc ruleContext) bool { return rc.days <= 6 },
		},
	},
	CategoryMaternity: {
		{
			id:     "maternity_cap",
			reason: "maternity leave is limited to 98 days",
			ok:     func(rc ruleContext) bool { return rc.days <= 98 },
		},
	},
	CategorySterilization: {
		{
			id:     "sterilization_certificate",
			reason: "sterilization leave always requires a medical certificate",
			ok:     func(rc ruleContext) bool { return rc.candidate.HasAttachment },
		},
	},
	CategoryTraining: {
		{
			id:     "training_notice",
			reason: "training leave must be requested in advance",
			ok:     func(rc ruleContext) bool { return rc.noticeDays >= 0 },
		},
	},
	CategoryMilitary: {
		{
			id:     "military_notice",
			reason: "military service leave must be requested in advance",
			ok:     func(rc ruleContext) bool { return rc.noticeDays >= 0 },
		},
	},
}

// Validate checks a candidate against the generic shape rules and the
// category rule table. It returns nil when the candidate is eligible,
// or a *RejectedError naming the first violated rule.
//
// employeeStart is the employee's employment start date; today is the
// submission day. Both are compared as civil days.
func Validate(c Candidate, employeeStart, today time.Time) error {
	// Generic shape checks come first, for every category.
	if !c.Category.Valid() {
		return &RejectedError{Rule: "unknown_category", Reason: "unknown leave category"}
	}
	if c.EndDate.Before(c.StartDate) {
		return &RejectedError{Rule: "date_range", Reason: "end date must not be before start date"}
	}
	if c.Reason == "" {
		return &RejectedError{Rule: "reason_required", Reason: "a reason is required"}
	}

	rc := ruleContext{
		candidate:  c,
		days:       c.Days(),
		tenureDays: dates.DaysBetween(employeeStart, today),
		noticeDays: dates.DaysBetween(today, c.StartDate),
	}

	for _, r := range categoryRules[c.Category] {
		if !r.ok(rc) {
			return &RejectedError{Rule: r.id, Reason: r.reason}
		}
	}
	return nil
}
