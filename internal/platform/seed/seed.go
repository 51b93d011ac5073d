package seed

import (
	"errors"
	"fmt"
	"time"

	"leavedesk/internal/domain/leave"
)

type sampleEmployee struct {
	ID, Name, Department, Position string
}

type sampleRequest struct {
	EmployeeID string
	Category   leave.Category
	Start, End time.Time
	Reason     string
}

var employees = []sampleEmployee{
	{"EMP001", "John Smith", "IT", "Software Engineer"},
	{"EMP002", "Sarah Johnson", "HR", "HR Manager"},
	{"EMP003", "Mike Davis", "Finance", "Accountant"},
	{"EMP004", "Lisa Wilson", "Marketing", "Marketing Specialist"},
}

var requests = []sampleRequest{
	{"EMP001", leave.CategoryAnnual, day(2025, 2, 15), day(2025, 2, 19), "Family vacation"},
	{"EMP002", leave.CategorySick, day(2025, 1, 20), day(2025, 1, 22), "Medical treatment"},
	{"EMP003", leave.CategoryCasual, day(2025, 2, 10), day(2025, 2, 10), "Personal work"},
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Seed loads the sample employees and their pending requests. Employees that
// already exist are left as they are, so running it twice only adds the
// requests again.
func Seed(reg *leave.Registry) ([]string, error) {
	for _, e := range employees {
		if _, err := reg.CreateEmployee(e.ID, e.Name, e.Department, e.Position); err != nil && !errors.Is(err, leave.ErrDuplicateEmployee) {
			return nil, fmt.Errorf("seed employee %s: %w", e.ID, err)
		}
	}

	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		id, err := reg.Submit(r.EmployeeID, r.Category, r.Start, r.End, r.Reason)
		if err != nil {
			return ids, fmt.Errorf("seed request for %s: %w", r.EmployeeID, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
