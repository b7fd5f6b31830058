package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openbobs/gateway/internal/logger"
	"github.com/openbobs/gateway/internal/middleware"
)

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	var seen string
	h := middleware.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("no request ID stored in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("response header %q, want %q", got, seen)
	}
}

func TestRequestIDPreservesIncoming(t *testing.T) {
	var seen string
	h := middleware.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "incoming-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "incoming-42" {
		t.Errorf("context ID = %q, want incoming-42", seen)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "incoming-42" {
		t.Errorf("response header = %q, want incoming-42", got)
	}
}
