package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService())
	e := echo.New()
	return h, e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Register(t *testing.T) {
	h, e := newTestHandler()

	c, rec := postJSON(e, "/api/register", `{"username":"alice","password":"s3cret-pass"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var u User
	json.Unmarshal(rec.Body.Bytes(), &u)
	if u.Username != "alice" {
		t.Errorf("expected alice, got %s", u.Username)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not contain a password field")
	}
}

func TestHandler_Register_MissingPassword(t *testing.T) {
	h, e := newTestHandler()

	c, _ := postJSON(e, "/api/register", `{"username":"alice"}`)
	err := h.Register(c)
	if err == nil {
		t.Fatal("expected error for missing password")
	}
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Register_ShortPassword(t *testing.T) {
	h, e := newTestHandler()

	c, _ := postJSON(e, "/api/register", `{"username":"alice","password":"short"}`)
	err := h.Register(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Register_DuplicateUsername(t *testing.T) {
	h, e := newTestHandler()

	c, _ := postJSON(e, "/api/register", `{"username":"alice","password":"s3cret-pass"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, _ = postJSON(e, "/api/register", `{"username":"alice","password":"other-pass"}`)
	err := h.Register(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestHandler_Token(t *testing.T) {
	h, e := newTestHandler()

	c, _ := postJSON(e, "/api/register", `{"username":"alice","password":"s3cret-pass"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, rec := postJSON(e, "/api/token", `{"username":"alice","password":"s3cret-pass"}`)
	if err := h.Token(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var pair TokenPair
	json.Unmarshal(rec.Body.Bytes(), &pair)
	if pair.Access == "" || pair.Refresh == "" {
		t.Error("expected access and refresh tokens in response")
	}
}

func TestHandler_Token_BadCredentials(t *testing.T) {
	h, e := newTestHandler()

	c, _ := postJSON(e, "/api/token", `{"username":"alice","password":"wrong-pass"}`)
	err := h.Token(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestHandler_TokenRefresh(t *testing.T) {
	h, e := newTestHandler()

	c, _ := postJSON(e, "/api/register", `{"username":"alice","password":"s3cret-pass"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pair, err := h.svc.Login(context.Background(), "alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, rec := postJSON(e, "/api/token/refresh", `{"refresh":"`+pair.Refresh+`"}`)
	if err := h.TokenRefresh(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_TokenRefresh_Invalid(t *testing.T) {
	h, e := newTestHandler()

	c, _ := postJSON(e, "/api/token/refresh", `{"refresh":"bogus"}`)
	err := h.TokenRefresh(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}
