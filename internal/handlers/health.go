package handlers

import (
	"net/http"

	"github.com/conectahub/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports whether the store is reachable.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// CheckHealth
// GET /health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall, status := "healthy", http.StatusOK

	dbStatus := "ok"
	if err := models.Ping(h.db); err != nil {
		dbStatus = "error: " + err.Error()
		overall, status = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":  overall,
		"service": "conectahub",
		"components": gin.H{
			"database": dbStatus,
		},
	})
}
