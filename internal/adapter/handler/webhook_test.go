package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	pkgvalidator "github.com/quadworks/flowdeck/pkg/validator"
	"github.com/quadworks/flowdeck/pkg/webhook"
)

func newWebhookContext(t *testing.T, body, signature string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = pkgvalidator.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/minutes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set("X-Flowdeck-Signature", signature)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleMinutes_BadSignature(t *testing.T) {
	h := NewMinutesWebhook(nil, "hook-secret", nil)
	body := `{"domain_id":"00000000-0000-0000-0000-000000000001","title":"Standup"}`

	c, rec := newWebhookContext(t, body, "deadbeef")
	if err := h.HandleMinutes(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad signature, got %d", rec.Code)
	}
}

func TestHandleMinutes_MissingSignature(t *testing.T) {
	h := NewMinutesWebhook(nil, "hook-secret", nil)

	c, rec := newWebhookContext(t, `{}`, "")
	if err := h.HandleMinutes(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing signature, got %d", rec.Code)
	}
}

func TestHandleMinutes_ValidationFailure(t *testing.T) {
	h := NewMinutesWebhook(nil, "hook-secret", nil)
	body := `{"domain_id":"not-a-uuid","title":""}`

	c, rec := newWebhookContext(t, body, webhook.Sign("hook-secret", []byte(body)))
	if err := h.HandleMinutes(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload, got %d", rec.Code)
	}
}

func TestHandleMinutes_MalformedJSON(t *testing.T) {
	h := NewMinutesWebhook(nil, "hook-secret", nil)
	body := `{"domain_id":`

	c, rec := newWebhookContext(t, body, webhook.Sign("hook-secret", []byte(body)))
	if err := h.HandleMinutes(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}
