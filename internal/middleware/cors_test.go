package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func corsRouter() *gin.Engine {
	router := gin.New()
	router.Use(CORS())
	router.GET("/projetos", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.POST("/chats/:chatId/messages", func(c *gin.Context) {
		c.JSON(201, gin.H{"status": "ok"})
	})
	return router
}

func TestCORS_AllowsAnyOrigin(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/projetos", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	corsRouter().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, expected %q", got, "*")
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got == "true" {
		t.Error("credentials should not be allowed")
	}
}

func TestCORS_PreflightRequest(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("OPTIONS", "/chats/1/messages", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, Authorization")
	corsRouter().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent && w.Code != http.StatusOK {
		t.Errorf("preflight request should return 200 or 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Error("Access-Control-Allow-Headers should be set")
	}
}

func TestCORS_ExposesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/projetos", nil)
	req.Header.Set("Origin", "http://example.com")
	corsRouter().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(strings.ToLower(got), "x-request-id") {
		t.Errorf("Access-Control-Expose-Headers = %q, expected it to include X-Request-ID", got)
	}
}
