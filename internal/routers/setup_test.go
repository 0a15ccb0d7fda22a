package routers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Xaan1506/NSTrack-Backend/internal/config"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
	"github.com/Xaan1506/NSTrack-Backend/internal/service"
	"github.com/Xaan1506/NSTrack-Backend/internal/testutil"
)

type routerEnv struct {
	router *gin.Engine
	dep    *dependency.Dependency
	svcs   *service.Services
}

func setupRouterTest(t *testing.T, cfg *config.Config) *routerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dto.InitValidator()

	if cfg == nil {
		cfg = testutil.NewTestConfig()
	}

	myDB := testutil.SetupTestDB(t)
	dep := testutil.NewTestDependency(t, cfg, myDB, nil)

	svcs, err := service.NewServices(dep)
	if err != nil {
		t.Fatalf("failed to build services: %v", err)
	}

	return &routerEnv{
		router: SetupRouter(dep, svcs),
		dep:    dep,
		svcs:   svcs,
	}
}

func (e *routerEnv) do(t *testing.T, method string, path string, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", resp.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, resp *httptest.ResponseRecorder, status int) {
	t.Helper()

	if resp.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, resp.Code, resp.Body.String())
	}
}

func expectKind(t *testing.T, resp *httptest.ResponseRecorder, status int, kind string) {
	t.Helper()

	expectStatus(t, resp, status)
	body := decode[map[string]any](t, resp)
	if body["kind"] != kind {
		t.Fatalf("expected kind %q, got %v", kind, body)
	}
}

// signup registers a user through the API and returns its token.
func (e *routerEnv) signup(t *testing.T, name string, email string) string {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name":     name,
		"email":    email,
		"password": testutil.TestPassword,
	})
	expectStatus(t, resp, http.StatusCreated)

	return decode[dto.AuthResponse](t, resp).AccessToken
}
