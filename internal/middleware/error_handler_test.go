package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	"github.com/Xaan1506/NSTrack-Backend/internal/middleware"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		kind   string
		msg    string
	}{
		{
			name:   "AppError",
			err:    apperror.DuplicateRequest(),
			status: http.StatusConflict,
			kind:   "duplicate_request",
			msg:    "Request already exists",
		},
		{
			name:   "WrappedAppError",
			err:    errors.Join(errors.New("context"), apperror.RequestNotFound()),
			status: http.StatusNotFound,
			kind:   "request_not_found",
			msg:    "Friend request not found",
		},
		{
			name:   "UnknownError",
			err:    errors.New("db is on fire"),
			status: http.StatusInternalServerError,
			kind:   "internal",
			msg:    "Internal Server Error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(middleware.ErrorHandler())
			r.GET("/fail", func(c *gin.Context) {
				_ = c.Error(tc.err)
			})

			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/fail", nil))

			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body["kind"] != tc.kind || body["error"] != tc.msg {
				t.Fatalf("unexpected body: %v", body)
			}
		})
	}
}

func TestErrorHandlerNoErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestPanicHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.PanicHandler())
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["kind"] != "internal" {
		t.Fatalf("unexpected body: %v", body)
	}
}
