package handlers

import (
	"github.com/conectahub/backend/internal/services"
	"github.com/conectahub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type BriefingHandler struct {
	briefingService *services.BriefingService
}

func NewBriefingHandler(briefingService *services.BriefingService) *BriefingHandler {
	return &BriefingHandler{briefingService: briefingService}
}

// Create
// POST /briefings
func (h *BriefingHandler) Create(c *gin.Context) {
	var req services.CreateBriefingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	briefing, err := h.briefingService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, briefing)
}

// List
// GET /briefings
func (h *BriefingHandler) List(c *gin.Context) {
	briefings, err := h.briefingService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, briefings)
}

// GetByID
// GET /briefings/:id
func (h *BriefingHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id", "briefing")
	if !ok {
		return
	}
	briefing, err := h.briefingService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, briefing)
}
