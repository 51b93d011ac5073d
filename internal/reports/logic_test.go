package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"leavedesk/internal/domain/leave"
)

func sampleRequests() []leave.LeaveRequest {
	return []leave.LeaveRequest{
		{
			ID: "LR1001", EmployeeID: "EMP001", Category: leave.CategoryAnnual,
			StartDate: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 2, 19, 0, 0, 0, 0, time.UTC),
			Days: 5, Status: leave.StatusApproved, ApproverComment: "Well deserved break!",
			SubmittedOn: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), DecidedOn: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "LR1004", EmployeeID: "EMP001", Category: leave.CategoryCasual,
			StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			Days: 1, Status: leave.StatusPending, SubmittedOn: time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestDashboard(t *testing.T) {
	payload := Dashboard(leave.Stats{
		TotalEmployees: 4,
		TotalRequests:  3,
		ByStatus:       map[leave.Status]int{leave.StatusPending: 1, leave.StatusApproved: 1, leave.StatusRejected: 1},
	}, 3)
	if payload["totalEmployees"].(int) != 4 {
		t.Fatal("unexpected employee count")
	}
	if payload["activeEmployees"].(int) != 3 {
		t.Fatal("unexpected active employee count")
	}
	if payload["pendingRequests"].(int) != 1 {
		t.Fatal("unexpected pending count")
	}
}

func TestUsedDaysCountsApprovedOnly(t *testing.T) {
	used := UsedDays(sampleRequests())
	if used[leave.CategoryAnnual] != 5 {
		t.Fatalf("expected 5 annual days used, got %d", used[leave.CategoryAnnual])
	}
	if used[leave.CategoryCasual] != 0 {
		t.Fatalf("pending request must not count, got %d", used[leave.CategoryCasual])
	}
}

func TestWriteRequestFormatsDates(t *testing.T) {
	var buf bytes.Buffer
	WriteRequest(&buf, sampleRequests()[0])
	out := buf.String()
	for _, want := range []string{"Request ID: LR1001", "Start Date: 15-02-2025", "End Date: 19-02-2025", "Status: Approved", "Approval Date: 06-01-2025", "Approver Comments: Well deserved break!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	WriteRequest(&buf, sampleRequests()[1])
	if strings.Contains(buf.String(), "Approval Date") {
		t.Fatal("pending request must not print an approval date")
	}
}

func TestWriteRequestsEmpty(t *testing.T) {
	var buf bytes.Buffer
	WriteRequests(&buf, nil, "No pending leave requests.")
	if strings.TrimSpace(buf.String()) != "No pending leave requests." {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWriteBalanceShowsFundedExtraPools(t *testing.T) {
	emp := leave.Employee{ID: "EMP001", Name: "John Smith", Balances: map[leave.Category]int{
		leave.CategoryAnnual: 20, leave.CategorySick: 10, leave.CategoryCasual: 5, leave.CategoryMaternity: 90,
	}}
	var buf bytes.Buffer
	WriteBalance(&buf, emp)
	out := buf.String()
	if !strings.Contains(out, "Annual Leave: 20 days") || !strings.Contains(out, "Maternity Leave: 90 days") {
		t.Fatalf("unexpected balance output:\n%s", out)
	}
	if strings.Contains(out, "Paternity") {
		t.Fatal("unfunded pools must be hidden")
	}
}

func TestStatementPDF(t *testing.T) {
	emp := leave.Employee{ID: "EMP001", Name: "John Smith", Department: "IT", Position: "Software Engineer", Balances: map[leave.Category]int{
		leave.CategoryAnnual: 20, leave.CategorySick: 10, leave.CategoryCasual: 5,
	}}
	var buf bytes.Buffer
	if err := StatementPDF(&buf, emp, sampleRequests(), time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatal("expected pdf header")
	}
}
