package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type samplePayload struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Days       int    `json:"days" validate:"min=0"`
}

func TestValidatorStructUsesJSONNames(t *testing.T) {
	v := NewValidator()
	v.Struct(samplePayload{Days: -1})

	issues := v.Issues()
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %+v", issues)
	}
	if issues[0].Field != "days" || issues[0].Reason != "must be at least 0" {
		t.Fatalf("unexpected first issue: %+v", issues[0])
	}
	if issues[1].Field != "employeeId" || issues[1].Reason != "is required" {
		t.Fatalf("unexpected second issue: %+v", issues[1])
	}
}

func TestValidatorDateOrder(t *testing.T) {
	v := NewValidator()
	start, ok := v.Date("startDate", "2025-02-19")
	if !ok {
		t.Fatal("expected valid start date")
	}
	end, ok := v.Date("endDate", "2025-02-15")
	if !ok {
		t.Fatal("expected valid end date")
	}
	v.DateOrder("startDate", start, "endDate", end)
	if len(v.Issues()) != 2 {
		t.Fatalf("expected two ordering issues, got %+v", v.Issues())
	}

	v = NewValidator()
	if _, ok := v.Date("startDate", "19/02/2025"); ok {
		t.Fatal("expected invalid date")
	}
}

func TestValidatorReject(t *testing.T) {
	v := NewValidator()
	rec := httptest.NewRecorder()
	if v.Reject(rec, "req-1") {
		t.Fatal("empty validator must not reject")
	}

	v.Add("reason", "is required")
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Error.Code != "validation_error" || body.RequestID != "req-1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
