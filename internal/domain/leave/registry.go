package leave

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Registry owns every employee and leave request and is the only place
// balances and request statuses change. All methods are safe for concurrent
// use; mutations are serialized by a single lock so a balance check and the
// matching deduction cannot interleave with another decision.
type Registry struct {
	mu        sync.Mutex
	employees map[string]*Employee
	order     []string
	requests  map[string]*LeaveRequest
	reqOrder  []string
	seq       *Sequence
	now       func() time.Time
	log       *slog.Logger
}

type Option func(*Registry)

func WithSequence(seq *Sequence) Option {
	return func(r *Registry) {
		if seq != nil {
			r.seq = seq
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.log = logger
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		employees: map[string]*Employee{},
		requests:  map[string]*LeaveRequest{},
		seq:       NewSequence(DefaultRequestIDPrefix, DefaultRequestIDSeed),
		now:       time.Now,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) CreateEmployee(id, name, department, position string) (Employee, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(name) == "" {
		return Employee{}, ErrInvalidEmployee
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; ok {
		return Employee{}, fmt.Errorf("%w: %s", ErrDuplicateEmployee, id)
	}
	emp := newEmployee(id, name, department, position)
	r.employees[id] = emp
	r.order = append(r.order, id)
	r.log.Info("employee created", "employeeId", id, "department", department)
	return emp.clone(), nil
}

// SetBalance is the administrative override for a category allowance.
func (r *Registry) SetBalance(employeeID string, category Category, days int) error {
	if !category.Valid() {
		return ErrInvalidCategory
	}
	if days < 0 {
		return ErrNegativeBalance
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[employeeID]
	if !ok {
		return ErrEmployeeNotFound
	}
	previous := emp.Balances[category]
	emp.Balances[category] = days
	r.log.Info("leave balance overridden", "employeeId", employeeID, "category", category, "from", previous, "to", days)
	return nil
}

// Submit files a PENDING request after checking the employee's current
// balance. Nothing is recorded when a check fails.
func (r *Registry) Submit(employeeID string, category Category, start, end time.Time, reason string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[employeeID]
	if !ok {
		return "", ErrEmployeeNotFound
	}
	if !category.Valid() {
		return "", ErrInvalidCategory
	}

	days, err := CalculateDays(start, end)
	if err != nil {
		return "", err
	}

	balance, err := emp.BalanceOf(category)
	if err != nil {
		return "", err
	}
	if balance < days {
		r.log.Warn("leave request refused",
			"employeeId", employeeID,
			"category", category,
			"days", days,
			"balance", balance,
		)
		return "", fmt.Errorf("%w for %s: have %d, need %d", ErrInsufficientBalance, category.DisplayName(), balance, days)
	}

	req := &LeaveRequest{
		ID:          r.seq.Next(),
		EmployeeID:  employeeID,
		Category:    category,
		StartDate:   Day(start),
		EndDate:     Day(end),
		Days:        days,
		Reason:      reason,
		Status:      StatusPending,
		SubmittedOn: Day(r.now()),
	}
	r.requests[req.ID] = req
	r.reqOrder = append(r.reqOrder, req.ID)
	emp.recordSubmission(req.ID)

	r.log.Info("leave request submitted", "requestId", req.ID, "employeeId", employeeID, "category", category, "days", days)
	return req.ID, nil
}

// Approve deducts the request's days from the owner's balance and marks it
// APPROVED in one step. A pool that can no longer cover the request leaves it
// PENDING with ErrInsufficientBalance.
func (r *Registry) Approve(requestID, comment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, err := r.pendingLocked(requestID)
	if err != nil {
		return err
	}
	emp, ok := r.employees[req.EmployeeID]
	if !ok {
		r.log.Warn("leave approval refused: owner missing", "requestId", requestID, "employeeId", req.EmployeeID)
		return fmt.Errorf("approve %s: %w", requestID, ErrEmployeeNotFound)
	}

	// Other approvals may have drawn the pool down since submission.
	if balance := emp.Balances[req.Category]; balance < req.Days {
		r.log.Warn("leave approval refused: balance exhausted",
			"requestId", requestID,
			"employeeId", emp.ID,
			"category", req.Category,
			"days", req.Days,
			"balance", balance,
		)
		return fmt.Errorf("approve %s: %w for %s: have %d, need %d", requestID, ErrInsufficientBalance, req.Category.DisplayName(), balance, req.Days)
	}

	emp.deduct(req.Category, req.Days)
	r.decideLocked(req, StatusApproved, comment)
	r.log.Info("leave request approved", "requestId", requestID, "employeeId", emp.ID, "remaining", emp.Balances[req.Category])
	return nil
}

func (r *Registry) Reject(requestID, comment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, err := r.pendingLocked(requestID)
	if err != nil {
		return err
	}
	r.decideLocked(req, StatusRejected, comment)
	r.log.Info("leave request rejected", "requestId", requestID, "employeeId", req.EmployeeID)
	return nil
}

func (r *Registry) pendingLocked(requestID string) (*LeaveRequest, error) {
	req, ok := r.requests[requestID]
	if !ok {
		return nil, ErrRequestNotFound
	}
	if req.Status != StatusPending {
		return nil, fmt.Errorf("%w: %s is %s", ErrInvalidState, requestID, req.Status)
	}
	return req, nil
}

func (r *Registry) decideLocked(req *LeaveRequest, status Status, comment string) {
	req.Status = status
	req.ApproverComment = comment
	req.DecidedOn = Day(r.now())
}

func (r *Registry) Employee(id string) (Employee, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[id]
	if !ok {
		return Employee{}, false
	}
	return emp.clone(), true
}

func (r *Registry) Request(id string) (LeaveRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return LeaveRequest{}, false
	}
	return *req, true
}

// Employees returns all employees in creation order.
func (r *Registry) Employees() []Employee {
	return r.filterEmployees(func(*Employee) bool { return true })
}

// EmployeesWithRequests returns employees that have submitted at least once.
func (r *Registry) EmployeesWithRequests() []Employee {
	return r.filterEmployees(func(e *Employee) bool { return len(e.RequestIDs) > 0 })
}

func (r *Registry) filterEmployees(keep func(*Employee) bool) []Employee {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Employee, 0, len(r.order))
	for _, id := range r.order {
		if emp := r.employees[id]; keep(emp) {
			out = append(out, emp.clone())
		}
	}
	return out
}

// Requests returns all requests in submission order.
func (r *Registry) Requests() []LeaveRequest {
	return r.filterRequests(func(*LeaveRequest) bool { return true })
}

func (r *Registry) RequestsByStatus(status Status) []LeaveRequest {
	return r.filterRequests(func(req *LeaveRequest) bool { return req.Status == status })
}

func (r *Registry) filterRequests(keep func(*LeaveRequest) bool) []LeaveRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]LeaveRequest, 0, len(r.reqOrder))
	for _, id := range r.reqOrder {
		if req := r.requests[id]; keep(req) {
			out = append(out, *req)
		}
	}
	return out
}

// History returns an employee's requests in submission order. The bool is
// false when the employee does not exist.
func (r *Registry) History(employeeID string) ([]LeaveRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[employeeID]
	if !ok {
		return nil, false
	}
	out := make([]LeaveRequest, 0, len(emp.RequestIDs))
	for _, id := range emp.RequestIDs {
		if req, ok := r.requests[id]; ok {
			out = append(out, *req)
		}
	}
	return out, true
}

// StatusCounts has an entry for every status, zero included.
func (r *Registry) StatusCounts() map[Status]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statusCountsLocked()
}

func (r *Registry) statusCountsLocked() map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, req := range r.requests {
		counts[req.Status]++
	}
	return counts
}

func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Stats{
		TotalEmployees: len(r.employees),
		TotalRequests:  len(r.requests),
		ByStatus:       r.statusCountsLocked(),
	}
}
