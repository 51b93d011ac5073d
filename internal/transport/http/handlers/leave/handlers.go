package leavehandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"leavedesk/internal/domain/leave"
	"leavedesk/internal/reports"
	"leavedesk/internal/transport/http/api"
	"leavedesk/internal/transport/http/middleware"
	"leavedesk/internal/transport/http/shared"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

type Handler struct {
	Registry *leave.Registry
	Now      func() time.Time

	// statements collapses concurrent renders for the same employee.
	statements singleflight.Group
}

func NewHandler(registry *leave.Registry) *Handler {
	return &Handler{Registry: registry, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Get("/{employeeID}", h.handleGetEmployee)
		r.Get("/{employeeID}/balances", h.handleGetBalances)
		r.Put("/{employeeID}/balances/{category}", h.handleSetBalance)
		r.Get("/{employeeID}/history", h.handleHistory)
		r.Get("/{employeeID}/statement.pdf", h.handleStatement)
	})
	r.Route("/leave", func(r chi.Router) {
		r.Get("/categories", h.handleListCategories)
		r.Get("/stats", h.handleStats)
		r.Get("/requests", h.handleListRequests)
		r.Post("/requests", h.handleSubmitRequest)
		r.Get("/requests/{requestID}", h.handleGetRequest)
		r.Post("/requests/{requestID}/approve", h.handleApproveRequest)
		r.Post("/requests/{requestID}/reject", h.handleRejectRequest)
	})
}

type createEmployeePayload struct {
	ID         string `json:"id" validate:"required,max=32"`
	Name       string `json:"name" validate:"required,max=120"`
	Department string `json:"department" validate:"max=120"`
	Position   string `json:"position" validate:"max=120"`
}

type setBalancePayload struct {
	Days *int `json:"days" validate:"required,min=0"`
}

type submitRequestPayload struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Category   string `json:"category" validate:"required"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate" validate:"required"`
	Reason     string `json:"reason" validate:"max=500"`
}

type decisionPayload struct {
	Comment string `json:"comment" validate:"max=500"`
}

type balanceView struct {
	Category    leave.Category `json:"category"`
	DisplayName string         `json:"displayName"`
	Remaining   int            `json:"remaining"`
	Used        int            `json:"used"`
}

type categoryView struct {
	Category       leave.Category `json:"category"`
	DisplayName    string         `json:"displayName"`
	DefaultBalance int            `json:"defaultBalance"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees := h.Registry.Employees()
	if r.URL.Query().Get("active") == "true" {
		employees = h.Registry.EmployeesWithRequests()
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload createEmployeePayload
	if !decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Registry.CreateEmployee(payload.ID, payload.Name, payload.Department, payload.Position)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.Registry.Employee(chi.URLParam(r, "employeeID"))
	if !ok {
		failDomain(w, r, leave.ErrEmployeeNotFound)
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	emp, ok := h.Registry.Employee(employeeID)
	if !ok {
		failDomain(w, r, leave.ErrEmployeeNotFound)
		return
	}
	history, _ := h.Registry.History(employeeID)
	used := reports.UsedDays(history)

	out := make([]balanceView, 0, len(leave.Categories))
	for _, category := range leave.Categories {
		remaining, _ := emp.BalanceOf(category)
		out = append(out, balanceView{
			Category:    category,
			DisplayName: category.DisplayName(),
			Remaining:   remaining,
			Used:        used[category],
		})
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetBalance(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	category, err := leave.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		failDomain(w, r, err)
		return
	}
	var payload setBalancePayload
	if !decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, requestID) {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Registry.SetBalance(employeeID, category, *payload.Days); err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, map[string]any{"employeeId": employeeID, "category": category, "remaining": *payload.Days}, requestID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, ok := h.Registry.History(chi.URLParam(r, "employeeID"))
	if !ok {
		failDomain(w, r, leave.ErrEmployeeNotFound)
		return
	}
	api.Success(w, history, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	emp, ok := h.Registry.Employee(employeeID)
	if !ok {
		failDomain(w, r, leave.ErrEmployeeNotFound)
		return
	}
	rendered, err, _ := h.statements.Do(employeeID, func() (any, error) {
		history, _ := h.Registry.History(employeeID)
		var buf bytes.Buffer
		if err := reports.StatementPDF(&buf, emp, history, h.Now()); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		slog.Error("leave statement render failed", "employeeId", employeeID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "statement_failed", "failed to render leave statement", middleware.GetRequestID(r.Context()))
		return
	}
	pdf := rendered.([]byte)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="leave-statement-`+employeeID+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	out := make([]categoryView, 0, len(leave.Categories))
	for _, category := range leave.Categories {
		out = append(out, categoryView{
			Category:       category,
			DisplayName:    category.DisplayName(),
			DefaultBalance: leave.DefaultBalances[category],
		})
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.Registry.Stats()
	active := len(h.Registry.EmployeesWithRequests())
	api.Success(w, reports.Dashboard(stats, active), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	var requests []leave.LeaveRequest
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := leave.ParseStatus(raw)
		if !ok {
			shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "status", Reason: "is invalid"}})
			return
		}
		requests = h.Registry.RequestsByStatus(status)
	} else {
		requests = h.Registry.Requests()
	}

	page := shared.ParsePagination(r, defaultPageLimit, maxPageLimit)
	w.Header().Set("X-Total-Count", strconv.Itoa(len(requests)))
	api.Success(w, shared.Page(requests, page), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload submitRequestPayload
	if !decode(w, r, &payload) {
		return
	}

	v := shared.NewValidator()
	v.Struct(payload)
	var category leave.Category
	if payload.Category != "" {
		parsed, err := leave.ParseCategory(payload.Category)
		if err != nil {
			v.Add("category", "must be one of the leave categories")
		}
		category = parsed
	}
	var start, end time.Time
	if payload.StartDate != "" {
		start, _ = v.Date("startDate", payload.StartDate)
	}
	if payload.EndDate != "" {
		end, _ = v.Date("endDate", payload.EndDate)
	}
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, requestID) {
		return
	}

	id, err := h.Registry.Submit(payload.EmployeeID, category, start, end, payload.Reason)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	req, _ := h.Registry.Request(id)
	api.Created(w, req, requestID)
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := h.Registry.Request(chi.URLParam(r, "requestID"))
	if !ok {
		failDomain(w, r, leave.ErrRequestNotFound)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Registry.Approve)
}

func (h *Handler) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Registry.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, apply func(requestID, comment string) error) {
	// The comment is optional, so an empty body is an empty payload.
	var payload decisionPayload
	if !decodeOptional(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	leaveRequestID := chi.URLParam(r, "requestID")
	if err := apply(leaveRequestID, payload.Comment); err != nil {
		failDomain(w, r, err)
		return
	}
	req, _ := h.Registry.Request(leaveRequestID)
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decodeBody(w, r, dst, false)
}

func decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decodeBody(w, r, dst, true)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return true
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request payload too large", middleware.GetRequestID(r.Context()))
			return false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return false
	}
	return true
}

// failDomain maps registry sentinels onto the response envelope.
func failDomain(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leave.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
	case errors.Is(err, leave.ErrRequestNotFound):
		api.Fail(w, http.StatusNotFound, "request_not_found", "leave request not found", requestID)
	case errors.Is(err, leave.ErrInvalidDateRange):
		api.Fail(w, http.StatusBadRequest, "invalid_date_range", "end date is before start date", requestID)
	case errors.Is(err, leave.ErrInvalidCategory):
		api.Fail(w, http.StatusBadRequest, "invalid_category", "unknown leave category", requestID)
	case errors.Is(err, leave.ErrInvalidEmployee):
		api.Fail(w, http.StatusBadRequest, "invalid_employee", "employee id and name are required", requestID)
	case errors.Is(err, leave.ErrNegativeBalance):
		api.Fail(w, http.StatusBadRequest, "negative_balance", "balance cannot be negative", requestID)
	case errors.Is(err, leave.ErrInsufficientBalance):
		api.Fail(w, http.StatusUnprocessableEntity, "insufficient_balance", "insufficient leave balance", requestID)
	case errors.Is(err, leave.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", "leave request is not pending", requestID)
	case errors.Is(err, leave.ErrDuplicateEmployee):
		api.Fail(w, http.StatusConflict, "duplicate_employee", "employee already exists", requestID)
	default:
		slog.Error("leave operation failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
