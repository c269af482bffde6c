package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGinLogger_AssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", &buf)
	defer Init("info")

	r := gin.New()
	r.Use(GinLogger())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	id := w.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("expected a generated request id header")
	}
	if !strings.Contains(buf.String(), id) {
		t.Errorf("log line should carry request id %q, got %s", id, buf.String())
	}
}

func TestGinLogger_KeepsIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", &buf)
	defer Init("info")

	r := gin.New()
	r.Use(GinLogger())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, expected %q", got, "abc-123")
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("4xx should log at warn level, got %s", buf.String())
	}
}

func TestGinRecovery(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", &buf)
	defer Init("info")

	r := gin.New()
	r.Use(GinRecovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/panic", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Errorf("expected panic log, got %s", buf.String())
	}
}

func TestGormWriter(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", &buf)
	defer Init("info")

	GormWriter{}.Printf("%s [%.3fms] %s", "no such table: chats", 1.5, "SELECT 1")

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, `"component":"gorm"`) {
		t.Errorf("unexpected log line: %s", out)
	}
	if !strings.Contains(out, "no such table: chats") {
		t.Errorf("message missing from log line: %s", out)
	}
}
