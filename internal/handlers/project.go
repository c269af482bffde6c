package handlers

import (
	"github.com/conectahub/backend/internal/services"
	"github.com/conectahub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	collabService  *services.CollaborationService
}

func NewProjectHandler(projectService *services.ProjectService, collabService *services.CollaborationService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, collabService: collabService}
}

// Create creates a project from the multipart form (imagem_capa, imagens)
// POST /projetos
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cover, err := optionalFile(c, "imagem_capa")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), &req, cover, formFiles(c, "imagens"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// List returns all projects, newest first
// GET /projetos
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects)
}

// Search
// GET /projetos/busca?q=
func (h *ProjectHandler) Search(c *gin.Context) {
	var req services.SearchProjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	projects, err := h.projectService.Search(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects)
}

// GetByID
// GET /projetos/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id", "project")
	if !ok {
		return
	}
	project, err := h.projectService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

// AddImages appends gallery images
// POST /projetos/:id/imagens
func (h *ProjectHandler) AddImages(c *gin.Context) {
	id, ok := pathID(c, "id", "project")
	if !ok {
		return
	}
	project, err := h.projectService.AddImages(c.Request.Context(), id, formFiles(c, "imagens"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

// Participants lists the owner and collaborators
// GET /projetos/:id/participantes
func (h *ProjectHandler) Participants(c *gin.Context) {
	id, ok := pathID(c, "id", "project")
	if !ok {
		return
	}
	participants, err := h.collabService.ListParticipants(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, participants)
}
