package leave_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/presence-engine/dates"
	"github.com/warp/presence-engine/leave"
)

var today = dates.NewDay(2025, time.June, 16)

// candidate builds a minimally valid candidate for a category, starting
// startIn days from today and spanning days inclusive days.
func candidate(cat leave.Category, startIn, days int) leave.Candidate {
	start := today.AddDate(0, 0, startIn)
	return leave.Candidate{
		EmployeeID: "E001",
		Category:   cat,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, days-1),
		Reason:     "personal errand",
	}
}

// startedDaysAgo returns an employment start date n days before today.
func startedDaysAgo(n int) time.Time {
	return today.AddDate(0, 0, -n)
}

func assertAccepted(t *testing.T, c leave.Candidate, employeeStart time.Time) {
	t.Helper()
	if err := leave.Validate(c, employeeStart, today); err != nil {
		t.Fatalf("Validate() = %v, want accepted", err)
	}
}

func assertRejectedRule(t *testing.T, c leave.Candidate, employeeStart time.Time, rule string) {
	t.Helper()
	err := leave.Validate(c, employeeStart, today)
	if err == nil {
		t.Fatalf("Validate() accepted, want rejection on rule %q", rule)
	}
	var rej *leave.RejectedError
	if !errors.As(err, &rej) {
		t.Fatalf("Validate() = %v, want *RejectedError", err)
	}
	if rej.Rule != rule {
		t.Fatalf("Validate() rejected on rule %q (%s), want %q", rej.Rule, rej.Reason, rule)
	}
	if !leave.IsRejected(err) {
		t.Error("rejection should satisfy leave.IsRejected")
	}
}

func TestValidate_ShapeChecks(t *testing.T) {
	start := startedDaysAgo(1000)

	backwards := candidate(leave.CategoryPersonal, 5, 1)
	backwards.EndDate = backwards.StartDate.AddDate(0, 0, -2)
	assertRejectedRule(t, backwards, start, "date_range")

	noReason := candidate(leave.CategoryPersonal, 5, 2)
	noReason.Reason = ""
	assertRejectedRule(t, noReason, start, "reason_required")

	bogus := candidate(leave.Category("SABBATICAL"), 5, 2)
	assertRejectedRule(t, bogus, start, "unknown_category")
}

func TestValidate_AnnualEligible(t *testing.T) {
	// GIVEN: 400 days of tenure
	// WHEN: Annual leave starting in 5 days, for 4 days
	// THEN: Accepted (tenure >= 365, notice >= 3, days <= 6)
	assertAccepted(t, candidate(leave.CategoryAnnual, 5, 4), startedDaysAgo(400))
}

func TestValidate_AnnualInsufficientNotice(t *testing.T) {
	// Same employee, starting tomorrow: notice rule fires.
	assertRejectedRule(t, candidate(leave.CategoryAnnual, 1, 4), startedDaysAgo(400), "annual_notice")
}

func TestValidate_AnnualTenureTooShort(t *testing.T) {
	assertRejectedRule(t, candidate(leave.CategoryAnnual, 5, 4), startedDaysAgo(200), "annual_tenure")
}

func TestValidate_AnnualOverCap(t *testing.T) {
	assertRejectedRule(t, candidate(leave.CategoryAnnual, 5, 7), startedDaysAgo(400), "annual_cap")
}

func TestValidate_SickCertificate(t *testing.T) {
	start := startedDaysAgo(100)

	// 3 days without attachment: rejected.
	noCert := candidate(leave.CategorySick, 0, 3)
	assertRejectedRule(t, noCert, start, "sick_certificate")

	// Same request with attachment: accepted.
	withCert := noCert
	withCert.HasAttachment = true
	assertAccepted(t, withCert, start)

	// 2 days never need a certificate.
	assertAccepted(t, candidate(leave.CategorySick, 0, 2), start)
}

func TestValidate_Maternity(t *testing.T) {
	start := startedDaysAgo(800)
	assertAccepted(t, candidate(leave.CategoryMaternity, 10, 98), start)
	assertRejectedRule(t, candidate(leave.CategoryMaternity, 10, 99), start, "maternity_cap")
}

func TestValidate_SterilizationAlwaysNeedsCertificate(t *testing.T) {
	start := startedDaysAgo(800)
	assertRejectedRule(t, candidate(leave.CategorySterilization, 10, 1), start, "sterilization_certificate")

	ok := candidate(leave.CategorySterilization, 10, 1)
	ok.HasAttachment = true
	assertAccepted(t, ok, start)
}

func TestValidate_TrainingAndMilitaryNotice(t *testing.T) {
	start := startedDaysAgo(100)
	cases := map[leave.Category]string{
		leave.CategoryTraining: "training_notice",
		leave.CategoryMilitary: "military_notice",
	}
	for cat, rule := range cases {
		// Same-day notice is accepted (observed policy).
		assertAccepted(t, candidate(cat, 0, 1), start)
		// A start date in the past is not.
		assertRejectedRule(t, candidate(cat, -1, 1), start, rule)
	}
}

func TestValidate_PersonalHasNoExtraRules(t *testing.T) {
	assertAccepted(t, candidate(leave.CategoryPersonal, -10, 30), startedDaysAgo(1))
}

func TestValidate_Idempotent(t *testing.T) {
	c := candidate(leave.CategoryAnnual, 1, 4)
	start := startedDaysAgo(400)

	first := leave.Validate(c, start, today)
	second := leave.Validate(c, start, today)
	if (first == nil) != (second == nil) {
		t.Fatalf("verdicts differ: %v vs %v", first, second)
	}
	if first != nil && first.Error() != second.Error() {
		t.Fatalf("reasons differ: %q vs %q", first, second)
	}
}

func TestCandidate_DaysInclusive(t *testing.T) {
	c := candidate(leave.CategoryPersonal, 0, 1)
	if got := c.Days(); got != 1 {
		t.Errorf("single-day range: Days() = %d, want 1", got)
	}
	c.EndDate = c.StartDate.AddDate(0, 0, 3)
	if got := c.Days(); got != 4 {
		t.Errorf("4-day range: Days() = %d, want 4", got)
	}
}
