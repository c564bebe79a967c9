package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoggingIncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(orig) })

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	chain := RequestID(Logging(next))

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("X-Request-ID", "req-123")

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	line := buf.String()
	if !strings.Contains(line, "rid=req-123") {
		t.Errorf("expected request id in log line, got %q", line)
	}
	if !strings.Contains(line, "[GET] /items") {
		t.Errorf("expected method and path in log line, got %q", line)
	}
	if !strings.Contains(line, "418") {
		t.Errorf("expected status code in log line, got %q", line)
	}
}
