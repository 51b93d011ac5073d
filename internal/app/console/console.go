package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"leavedesk/internal/domain/leave"
	"leavedesk/internal/reports"
)

const inputDateLayout = "2006-01-02"

var upper = cases.Upper(language.Und)

// Console drives the registry from a line-oriented terminal session.
type Console struct {
	reg *leave.Registry
	in  *bufio.Scanner
	out io.Writer
}

func New(reg *leave.Registry, in io.Reader, out io.Writer) *Console {
	return &Console{reg: reg, in: bufio.NewScanner(in), out: out}
}

// Start asks for a mode and runs it. Anything other than "2" falls back to
// the demonstration.
func (c *Console) Start() {
	fmt.Fprintln(c.out, "=== EMPLOYEE LEAVE MANAGEMENT SYSTEM ===")
	fmt.Fprintln(c.out, "Choose mode:")
	fmt.Fprintln(c.out, "1. Run Demonstration")
	fmt.Fprintln(c.out, "2. Interactive Mode")
	fmt.Fprint(c.out, "Enter your choice (1 or 2): ")

	switch c.readChoice() {
	case 1:
		c.Demo()
	case 2:
		c.Interactive()
	default:
		fmt.Fprintln(c.out, "Invalid choice! Running demonstration mode by default...")
		c.Demo()
	}
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) prompt(label string) string {
	fmt.Fprint(c.out, label)
	line, _ := c.readLine()
	return line
}

func (c *Console) readChoice() int {
	line, ok := c.readLine()
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return -1
	}
	return n
}

// Interactive runs the menu loop until the user exits or input ends.
func (c *Console) Interactive() {
	fmt.Fprintln(c.out, "Welcome to the Leave Management System!")
	for {
		c.menu()
		choice := c.readChoice()
		switch choice {
		case 0:
			fmt.Fprintln(c.out, "Thank you for using the Leave Management System!")
			return
		case 1:
			c.listEmployees()
		case 2:
			c.showBalance(c.prompt("Enter Employee ID: "))
		case 3:
			c.submit()
		case 4:
			c.listPending()
		case 5:
			c.decide(c.reg.Approve, "Approval", "approved")
		case 6:
			c.decide(c.reg.Reject, "Rejection", "rejected")
		case 7:
			c.listAll()
		case 8:
			c.showHistory(c.prompt("Enter Employee ID: "))
		case 9:
			reports.WriteStats(c.out, c.reg.Stats())
		default:
			fmt.Fprintln(c.out, "Invalid option! Please try again.")
		}
	}
}

func (c *Console) menu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "========== MAIN MENU ==========")
	fmt.Fprintln(c.out, "1. View All Employees")
	fmt.Fprintln(c.out, "2. Check Leave Balance")
	fmt.Fprintln(c.out, "3. Submit Leave Request")
	fmt.Fprintln(c.out, "4. View Pending Leave Requests")
	fmt.Fprintln(c.out, "5. Approve Leave Request")
	fmt.Fprintln(c.out, "6. Reject Leave Request")
	fmt.Fprintln(c.out, "7. View All Leave Requests")
	fmt.Fprintln(c.out, "8. View Employee Leave History")
	fmt.Fprintln(c.out, "9. View System Statistics")
	fmt.Fprintln(c.out, "0. Exit")
	fmt.Fprintln(c.out, "===============================")
	fmt.Fprint(c.out, "Please select an option: ")
}

func (c *Console) listEmployees() {
	fmt.Fprintln(c.out, "========== ALL EMPLOYEES ==========")
	for _, emp := range c.reg.Employees() {
		reports.WriteEmployee(c.out, emp)
	}
}

func (c *Console) showBalance(employeeID string) {
	emp, ok := c.reg.Employee(employeeID)
	if !ok {
		fmt.Fprintf(c.out, "Employee not found: %s\n", employeeID)
		return
	}
	reports.WriteBalance(c.out, emp)
}

func (c *Console) submit() {
	employeeID := c.prompt("Enter Employee ID: ")

	fmt.Fprintln(c.out, "Leave Types:")
	for i, category := range leave.Categories {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, category)
	}
	fmt.Fprintf(c.out, "Select Leave Type (1-%d): ", len(leave.Categories))
	choice := c.readChoice()
	if choice < 1 || choice > len(leave.Categories) {
		fmt.Fprintln(c.out, "Invalid leave type selection!")
		return
	}
	category := leave.Categories[choice-1]

	rawStart := c.prompt("Enter Start Date (YYYY-MM-DD): ")
	rawEnd := c.prompt("Enter End Date (YYYY-MM-DD): ")
	reason := c.prompt("Enter Reason: ")

	start, errStart := time.Parse(inputDateLayout, rawStart)
	end, errEnd := time.Parse(inputDateLayout, rawEnd)
	if errStart != nil || errEnd != nil {
		fmt.Fprintln(c.out, "Invalid date format! Please use YYYY-MM-DD format.")
		return
	}
	c.submitRequest(employeeID, category, start, end, reason)
}

func (c *Console) submitRequest(employeeID string, category leave.Category, start, end time.Time, reason string) {
	id, err := c.reg.Submit(employeeID, category, start, end, reason)
	if err != nil {
		fmt.Fprintln(c.out, describe(err, employeeID))
		return
	}
	fmt.Fprintln(c.out, "Leave request submitted successfully!")
	fmt.Fprintf(c.out, "Request ID: %s\n", id)
}

func (c *Console) decide(apply func(requestID, comment string) error, label, verb string) {
	requestID := c.prompt("Enter Leave Request ID: ")
	comment := c.prompt("Enter " + label + " Comments: ")
	c.applyDecision(apply, requestID, comment, verb)
}

func (c *Console) applyDecision(apply func(requestID, comment string) error, requestID, comment, verb string) {
	if err := apply(requestID, comment); err != nil {
		fmt.Fprintln(c.out, describe(err, requestID))
		return
	}
	fmt.Fprintf(c.out, "Leave request %s %s successfully!\n", requestID, verb)
	if req, ok := c.reg.Request(requestID); ok {
		reports.WriteRequest(c.out, req)
	}
}

func (c *Console) listPending() {
	fmt.Fprintln(c.out, "========== PENDING LEAVE REQUESTS ==========")
	reports.WriteRequests(c.out, c.reg.RequestsByStatus(leave.StatusPending), "No pending leave requests.")
}

func (c *Console) listAll() {
	fmt.Fprintln(c.out, "========== ALL LEAVE REQUESTS ==========")
	reports.WriteRequests(c.out, c.reg.Requests(), "No leave requests found.")
}

func (c *Console) showHistory(employeeID string) {
	history, ok := c.reg.History(employeeID)
	if !ok {
		fmt.Fprintf(c.out, "Employee not found: %s\n", employeeID)
		return
	}
	emp, _ := c.reg.Employee(employeeID)
	fmt.Fprintf(c.out, "========== LEAVE HISTORY FOR %s ==========\n", upper.String(emp.Name))
	reports.WriteRequests(c.out, history, "No leave history found.")
}

// Demo replays the scripted walkthrough against whatever the registry holds.
func (c *Console) Demo() {
	fmt.Fprintln(c.out, "=== EMPLOYEE LEAVE MANAGEMENT SYSTEM DEMONSTRATION ===")
	fmt.Fprintln(c.out)
	c.listEmployees()

	fmt.Fprintln(c.out, "=== INITIAL LEAVE BALANCES ===")
	c.allBalances()
	c.listAll()
	c.listPending()

	requests := c.reg.Requests()
	fmt.Fprintln(c.out, "=== APPROVING LEAVE REQUEST ===")
	if len(requests) > 0 {
		c.applyDecision(c.reg.Approve, requests[0].ID, "Approved by HR Manager - Well deserved break!", "approved")
	}
	fmt.Fprintln(c.out, "=== REJECTING LEAVE REQUEST ===")
	if len(requests) > 1 {
		c.applyDecision(c.reg.Reject, requests[1].ID, "Insufficient documentation provided for sick leave.", "rejected")
	}

	fmt.Fprintln(c.out, "=== UPDATED LEAVE BALANCES AFTER APPROVALS ===")
	c.allBalances()
	reports.WriteStats(c.out, c.reg.Stats())

	fmt.Fprintln(c.out, "=== FINAL STATUS OF ALL LEAVE REQUESTS ===")
	c.listAll()
}

func (c *Console) allBalances() {
	for _, emp := range c.reg.Employees() {
		reports.WriteBalance(c.out, emp)
	}
}

func describe(err error, subject string) string {
	switch {
	case errors.Is(err, leave.ErrEmployeeNotFound):
		return "Employee not found: " + subject
	case errors.Is(err, leave.ErrRequestNotFound):
		return "Leave request not found: " + subject
	case errors.Is(err, leave.ErrInvalidDateRange):
		return "End date cannot be before start date!"
	case errors.Is(err, leave.ErrInsufficientBalance):
		return "Insufficient leave balance! " + err.Error()
	case errors.Is(err, leave.ErrInvalidState):
		return "Leave request is not in pending status: " + subject
	case errors.Is(err, leave.ErrInvalidCategory):
		return "Invalid leave type selection!"
	default:
		return "Error: " + err.Error()
	}
}
