package record

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/carely/portal/internal/platform/auth"
)

func newTestHandler() (*Handler, *echo.Echo) {
	return NewHandler(NewService(newMockRepo())), echo.New()
}

func authedContext(e *echo.Echo, method, path, body string, callerID int64) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	ctx := context.WithValue(req.Context(), auth.PatientIDKey, callerID)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const createBody = `{"patient_id":1,"record_type":"lab_result","record_date":"2026-03-14T00:00:00Z","diagnosis":"seasonal allergies"}`

func TestHandler_CreateRecord(t *testing.T) {
	h, e := newTestHandler()
	c, rec := authedContext(e, http.MethodPost, "/api/v1/medical-records", createBody, 1)
	if err := h.CreateRecord(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_CreateRecord_Foreign(t *testing.T) {
	h, e := newTestHandler()
	c, _ := authedContext(e, http.MethodPost, "/api/v1/medical-records", createBody, 2)
	err := h.CreateRecord(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestHandler_GetRecord(t *testing.T) {
	h, e := newTestHandler()
	rec0, err := h.svc.Create(context.Background(), 1, validCreate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	c, rec := authedContext(e, http.MethodGet, "/api/v1/medical-records/1", "", 1)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(rec0.ID, 10))
	if err := h.GetRecord(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetRecord_ForeignAndMissing(t *testing.T) {
	h, e := newTestHandler()
	rec0, err := h.svc.Create(context.Background(), 1, validCreate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	c, _ := authedContext(e, http.MethodGet, "/api/v1/medical-records/1", "", 2)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(rec0.ID, 10))
	err = h.GetRecord(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}

	c, _ = authedContext(e, http.MethodGet, "/api/v1/medical-records/999", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("999")
	err = h.GetRecord(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_UpdateRecord(t *testing.T) {
	h, e := newTestHandler()
	rec0, err := h.svc.Create(context.Background(), 1, validCreate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	c, rec := authedContext(e, http.MethodPut, "/api/v1/medical-records/1", `{"notes":"retest in six weeks"}`, 1)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(rec0.ID, 10))
	if err := h.UpdateRecord(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "retest in six weeks") {
		t.Error("updated notes missing from response")
	}
}

func TestHandler_DeleteRecord(t *testing.T) {
	h, e := newTestHandler()
	rec0, err := h.svc.Create(context.Background(), 1, validCreate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	c, rec := authedContext(e, http.MethodDelete, "/api/v1/medical-records/1", "", 1)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(rec0.ID, 10))
	if err := h.DeleteRecord(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
