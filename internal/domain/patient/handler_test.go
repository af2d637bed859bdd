package patient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medrec/medrec/internal/platform/auth"
)

func newTestHandler() (*Handler, *mockRepo) {
	repo := newMockRepo()
	return NewHandler(NewService(repo)), repo
}

// doJSON builds an echo context for a JSON request authenticated as callerID.
// A nil callerID leaves the request unauthenticated.
func doJSON(e *echo.Echo, method, target, body string, callerID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if callerID != uuid.Nil {
		ctx := context.WithValue(req.Context(), auth.UserIDKey, callerID)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Create(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()
	caller := uuid.New()

	c, rec := doJSON(e, http.MethodPost, "/api/patients",
		`{"name":"Jon Snow","date_of_birth":"1990-04-23","address":"1 Wall Rd"}`, caller)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"date_of_birth":"1990-04-23"`) {
		t.Errorf("expected wire-format date in response: %s", rec.Body.String())
	}
}

func TestHandler_Create_IgnoresClientOwner(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()
	caller := uuid.New()

	c, rec := doJSON(e, http.MethodPost, "/api/patients",
		`{"name":"Jon","date_of_birth":"1990-04-23","address":"x","created_by":"`+uuid.NewString()+`"}`, caller)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	for _, p := range repo.patients {
		if p.CreatedBy != caller {
			t.Errorf("client-supplied owner was honored: %s", p.CreatedBy)
		}
	}
}

func TestHandler_Create_Unauthenticated(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	c, _ := doJSON(e, http.MethodPost, "/api/patients",
		`{"name":"Jon","date_of_birth":"1990-04-23","address":"x"}`, uuid.Nil)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestHandler_Create_BadDate(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	c, _ := doJSON(e, http.MethodPost, "/api/patients",
		`{"name":"Jon","date_of_birth":"23/04/1990","address":"x"}`, uuid.New())
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %v", err)
	}
}

func TestHandler_Create_MissingFields(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	c, _ := doJSON(e, http.MethodPost, "/api/patients", `{"name":"Jon"}`, uuid.New())
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_Get_ForbiddenForOtherOwner(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()
	alice := uuid.New()
	bob := uuid.New()

	p := &Patient{Name: "Jon", DateOfBirth: mustDate(t, "1990-04-23"), Address: "x", CreatedBy: alice}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	c, _ := doJSON(e, http.MethodGet, "/api/patients/"+p.ID.String(), "", bob)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())
	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	missing := uuid.NewString()
	c, _ := doJSON(e, http.MethodGet, "/api/patients/"+missing, "", uuid.New())
	c.SetParamNames("id")
	c.SetParamValues(missing)
	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_Get_InvalidID(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	c, _ := doJSON(e, http.MethodGet, "/api/patients/not-a-uuid", "", uuid.New())
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_List_Unauthenticated(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	c, _ := doJSON(e, http.MethodGet, "/api/patients", "", uuid.Nil)
	err := h.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestHandler_List_OnlyCallerPatients(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()
	alice := uuid.New()
	bob := uuid.New()

	for _, owner := range []uuid.UUID{alice, alice, bob} {
		p := &Patient{Name: "p", DateOfBirth: mustDate(t, "1990-04-23"), Address: "x", CreatedBy: owner}
		if err := repo.Create(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}

	c, rec := doJSON(e, http.MethodGet, "/api/patients", "", alice)
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"total":2`) {
		t.Errorf("expected total of 2 for alice: %s", rec.Body.String())
	}
}

func TestHandler_Delete(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()
	alice := uuid.New()

	p := &Patient{Name: "Jon", DateOfBirth: mustDate(t, "1990-04-23"), Address: "x", CreatedBy: alice}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	c, rec := doJSON(e, http.MethodDelete, "/api/patients/"+p.ID.String(), "", alice)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())
	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
