package leave

import (
	"maps"
	"slices"
	"time"
)

type Employee struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Department string           `json:"department"`
	Position   string           `json:"position"`
	Balances   map[Category]int `json:"balances"`
	RequestIDs []string         `json:"requestIds"`
}

func newEmployee(id, name, department, position string) *Employee {
	return &Employee{
		ID:         id,
		Name:       name,
		Department: department,
		Position:   position,
		Balances:   maps.Clone(DefaultBalances),
	}
}

// BalanceOf returns the remaining days for category. Valid categories with
// no allowance report zero.
func (e *Employee) BalanceOf(category Category) (int, error) {
	if !category.Valid() {
		return 0, ErrInvalidCategory
	}
	return e.Balances[category], nil
}

// deduct subtracts days unconditionally; callers check the balance first.
func (e *Employee) deduct(category Category, days int) {
	e.Balances[category] -= days
}

func (e *Employee) recordSubmission(requestID string) {
	e.RequestIDs = append(e.RequestIDs, requestID)
}

func (e *Employee) clone() Employee {
	out := *e
	out.Balances = maps.Clone(e.Balances)
	if out.Balances == nil {
		out.Balances = map[Category]int{}
	}
	out.RequestIDs = slices.Clone(e.RequestIDs)
	return out
}

type LeaveRequest struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employeeId"`
	Category        Category  `json:"category"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Days            int       `json:"days"`
	Reason          string    `json:"reason"`
	Status          Status    `json:"status"`
	SubmittedOn     time.Time `json:"submittedOn"`
	DecidedOn       time.Time `json:"decidedOn,omitzero"`
	ApproverComment string    `json:"approverComment,omitempty"`
}

// Decided reports whether an approver has acted on the request.
func (r LeaveRequest) Decided() bool {
	return !r.DecidedOn.IsZero()
}

type Stats struct {
	TotalEmployees int            `json:"totalEmployees"`
	TotalRequests  int            `json:"totalRequests"`
	ByStatus       map[Status]int `json:"byStatus"`
}
