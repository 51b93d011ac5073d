package reports

import (
	"fmt"
	"io"
	"strings"

	"leavedesk/internal/domain/leave"
)

// DisplayDateLayout is dd-MM-yyyy.
const DisplayDateLayout = "02-01-2006"

// BalanceCategories are the pools shown on balance views.
var BalanceCategories = []leave.Category{leave.CategoryAnnual, leave.CategorySick, leave.CategoryCasual}

func WriteEmployee(w io.Writer, emp leave.Employee) {
	fmt.Fprintln(w, "=== Employee Information ===")
	fmt.Fprintf(w, "Employee ID: %s\n", emp.ID)
	fmt.Fprintf(w, "Name: %s\n", emp.Name)
	fmt.Fprintf(w, "Department: %s\n", emp.Department)
	fmt.Fprintf(w, "Position: %s\n", emp.Position)
	for _, c := range BalanceCategories {
		fmt.Fprintf(w, "%s Balance: %d days\n", c.DisplayName(), emp.Balances[c])
	}
	fmt.Fprintf(w, "Total Leave Requests: %d\n", len(emp.RequestIDs))
	fmt.Fprintln(w, strings.Repeat("=", 29))
	fmt.Fprintln(w)
}

func WriteBalance(w io.Writer, emp leave.Employee) {
	fmt.Fprintf(w, "=== Leave Balance for %s ===\n", emp.Name)
	fmt.Fprintf(w, "Employee ID: %s\n", emp.ID)
	for _, c := range BalanceCategories {
		fmt.Fprintf(w, "%s: %d days\n", c.DisplayName(), emp.Balances[c])
	}
	// Extra pools only appear once an administrator has funded them.
	for _, c := range leave.Categories {
		if _, funded := leave.DefaultBalances[c]; funded {
			continue
		}
		if days := emp.Balances[c]; days > 0 {
			fmt.Fprintf(w, "%s: %d days\n", c.DisplayName(), days)
		}
	}
	fmt.Fprintln(w, strings.Repeat("=", 39))
	fmt.Fprintln(w)
}

func WriteRequest(w io.Writer, req leave.LeaveRequest) {
	fmt.Fprintln(w, "=== Leave Request Details ===")
	fmt.Fprintf(w, "Request ID: %s\n", req.ID)
	fmt.Fprintf(w, "Employee ID: %s\n", req.EmployeeID)
	fmt.Fprintf(w, "Leave Type: %s\n", req.Category.DisplayName())
	fmt.Fprintf(w, "Start Date: %s\n", req.StartDate.Format(DisplayDateLayout))
	fmt.Fprintf(w, "End Date: %s\n", req.EndDate.Format(DisplayDateLayout))
	fmt.Fprintf(w, "Number of Days: %d\n", req.Days)
	fmt.Fprintf(w, "Reason: %s\n", req.Reason)
	fmt.Fprintf(w, "Status: %s\n", req.Status.DisplayName())
	fmt.Fprintf(w, "Request Date: %s\n", req.SubmittedOn.Format(DisplayDateLayout))
	if req.Decided() {
		fmt.Fprintf(w, "Approval Date: %s\n", req.DecidedOn.Format(DisplayDateLayout))
	}
	if req.ApproverComment != "" {
		fmt.Fprintf(w, "Approver Comments: %s\n", req.ApproverComment)
	}
	fmt.Fprintln(w, strings.Repeat("=", 30))
	fmt.Fprintln(w)
}

// WriteRequests prints each request, or empty when there are none.
func WriteRequests(w io.Writer, requests []leave.LeaveRequest, empty string) {
	if len(requests) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	for _, req := range requests {
		WriteRequest(w, req)
	}
}

func WriteStats(w io.Writer, stats leave.Stats) {
	fmt.Fprintln(w, "========== SYSTEM STATISTICS ==========")
	fmt.Fprintf(w, "Total Employees: %d\n", stats.TotalEmployees)
	fmt.Fprintf(w, "Total Leave Requests: %d\n", stats.TotalRequests)
	fmt.Fprintf(w, "Pending Requests: %d\n", stats.ByStatus[leave.StatusPending])
	fmt.Fprintf(w, "Approved Requests: %d\n", stats.ByStatus[leave.StatusApproved])
	fmt.Fprintf(w, "Rejected Requests: %d\n", stats.ByStatus[leave.StatusRejected])
	fmt.Fprintln(w, strings.Repeat("=", 39))
	fmt.Fprintln(w)
}
