package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"leavedesk/internal/domain/leave"
)

// StatementPDF writes an employee's balances and request history as a
// single A4 document.
func StatementPDF(w io.Writer, emp leave.Employee, history []leave.LeaveRequest, generated time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Leave statement "+emp.ID, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave Statement")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", emp.Name, emp.ID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", emp.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", emp.Position))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", generated.Format(DisplayDateLayout)))
	pdf.Ln(10)

	used := UsedDays(history)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Leave type", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Remaining", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Used", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, c := range leave.Categories {
		remaining := emp.Balances[c]
		if remaining == 0 && used[c] == 0 {
			continue
		}
		pdf.CellFormat(60, 7, c.DisplayName(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%d", remaining), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%d", used[c]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Requests")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	if len(history) == 0 {
		pdf.Cell(0, 7, "No leave requests found for this employee.")
		pdf.Ln(7)
	}
	for _, req := range history {
		line := fmt.Sprintf("%s  %s  %s to %s  %d day(s)  %s",
			req.ID,
			req.Category.DisplayName(),
			req.StartDate.Format(DisplayDateLayout),
			req.EndDate.Format(DisplayDateLayout),
			req.Days,
			req.Status.DisplayName(),
		)
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
		if req.ApproverComment != "" {
			pdf.Cell(0, 6, "    "+req.ApproverComment)
			pdf.Ln(6)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
