/*
Package org holds the shared organizational types used across the
presence engine.

PURPOSE:
  Employee identity and role information is referenced by every other
  domain package (attendance classification, leave policy, insights).
  Keeping these types in one base package avoids import cycles between
  the domains.

DESIGN PRINCIPLES:
  1. Read-only: the core never creates or mutates employees; onboarding
     happens in an external system and records flow in as snapshots.
  2. Strong typing for IDs prevents mixing employee and request ids.

SEE ALSO:
  - attendance/: consumes Employee for roster classification
  - leave/: consumes the employment start date for tenure rules
*/
package org

import (
	"errors"
	"time"
)

// ErrEmployeeNotFound is returned by stores when an employee id is
// unknown.
var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeID identifies one employee. Unique and immutable.
type EmployeeID string

// Role is the fixed role enumeration used for approval routing and
// dashboard scoping. The manager tier covers several titles.
type Role string

const (
	RoleEmployee          Role = "EMP"
	RoleAdmin             Role = "ADMIN"
	RoleFactoryManager    Role = "FM"
	RoleSupervisor        Role = "SUP"
	RoleOperationsManager Role = "OM"
	RoleProductionManager Role = "PM"
	RoleDepartmentManager Role = "DM"
	RoleCEO               Role = "CEO"
)

// IsManagerTier reports whether the role sits in the approval chain.
func (r Role) IsManagerTier() bool {
	switch r {
	case RoleFactoryManager, RoleSupervisor, RoleOperationsManager,
		RoleProductionManager, RoleDepartmentManager:
		return true
	}
	return false
}

// Employee is the read-only snapshot of one person on the roster.
// StartDate never changes after creation; tenure rules depend on it.
type Employee struct {
	ID         EmployeeID
	Name       string
	Role       Role
	Department string
	StartDate  time.Time
}

// TenureDays returns whole days elapsed since the employment start
// date as of the supplied day. Negative if the start date is in the
// future (the caller decides what that means).
func (e Employee) TenureDays(today time.Time) int {
	return int(today.Sub(e.StartDate).Hours() / 24)
}
