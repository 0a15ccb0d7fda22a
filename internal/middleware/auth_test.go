package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	"github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/middleware"
)

type fakeResolver struct {
	tokens map[string]*db.User
	calls  int
}

func (f *fakeResolver) Resolve(_ context.Context, token string) (*db.User, error) {
	f.calls++
	user, ok := f.tokens[token]
	if !ok {
		return nil, apperror.Unauthorized()
	}
	return user, nil
}

func newAuthRouter(resolver middleware.SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Auth(resolver))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": middleware.CurrentUser(c).Email})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	resolver := &fakeResolver{tokens: map[string]*db.User{
		"good-token": {Email: "a@example.com"},
	}}
	r := newAuthRouter(resolver)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{name: "MissingHeader", header: "", status: http.StatusUnauthorized},
		{name: "WrongScheme", header: "Basic good-token", status: http.StatusUnauthorized},
		{name: "EmptyToken", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "UnknownToken", header: "Bearer bad-token", status: http.StatusUnauthorized},
		{name: "ValidToken", header: "Bearer good-token", status: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp := httptest.NewRecorder()

			r.ServeHTTP(resp, req)

			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if tc.status == http.StatusOK {
				if body["email"] != "a@example.com" {
					t.Fatalf("unexpected body: %v", body)
				}
				return
			}
			if body["kind"] != string(apperror.KindUnauthorized) || body["error"] != "Could not validate credentials" {
				t.Fatalf("unexpected error body: %v", body)
			}
		})
	}
}

func TestAuthMiddlewareSkipsResolverWithoutBearer(t *testing.T) {
	resolver := &fakeResolver{}
	r := newAuthRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if resolver.calls != 0 {
		t.Fatalf("expected resolver not to be called, got %d calls", resolver.calls)
	}
}
