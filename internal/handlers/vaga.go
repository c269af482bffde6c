package handlers

import (
	"github.com/conectahub/backend/internal/services"
	"github.com/conectahub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type VagaHandler struct {
	vagaService *services.VagaService
}

func NewVagaHandler(vagaService *services.VagaService) *VagaHandler {
	return &VagaHandler{vagaService: vagaService}
}

// Create publishes a job listing from the multipart form (logo_empresa)
// POST /vagas
func (h *VagaHandler) Create(c *gin.Context) {
	var req services.CreateVagaRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	logo, err := optionalFile(c, "logo_empresa")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	vaga, err := h.vagaService.Create(c.Request.Context(), &req, logo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, vaga)
}

// List
// GET /vagas
func (h *VagaHandler) List(c *gin.Context) {
	vagas, err := h.vagaService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vagas)
}

// GetByID
// GET /vagas/:id
func (h *VagaHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id", "vaga")
	if !ok {
		return
	}
	vaga, err := h.vagaService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vaga)
}
