package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"upload-backend/internal/shared/server/middleware"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Identity())
	NewHandler(svc).RegisterRoutes(router.Group("/api"))
	return router
}

func TestHandlerCreateAndGet(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo()))

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"id":"demo-1","name":"Demo"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/users/demo-1", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.Name != "Demo" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestHandlerCreateFallsBackToHeaderIdentity(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo()))

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "from-header")
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"id":"from-header"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestHandlerErrors(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo()))

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "missing id", method: http.MethodPost, path: "/api/users", body: `{"name":"x"}`, want: http.StatusBadRequest},
		{name: "bad json", method: http.MethodPost, path: "/api/users", body: `{`, want: http.StatusBadRequest},
		{name: "unknown user", method: http.MethodGet, path: "/api/users/nope", want: http.StatusNotFound},
	}
	for _, tc := range cases {
		resp := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, resp.Code)
		}
	}
}

func TestHandlerUnavailableWithoutService(t *testing.T) {
	router := newTestRouter(nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/users/a", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
