package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/internal/storage"
	"github.com/conectahub/backend/pkg/response"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VagaService struct {
	db    *gorm.DB
	files storage.Store
}

func NewVagaService(db *gorm.DB, files storage.Store) *VagaService {
	return &VagaService{db: db, files: files}
}

// CreateVagaRequest is bound from the multipart job form. Requisitos and
// diferenciais arrive either as repeated fields or as one JSON array string.
type CreateVagaRequest struct {
	Title         string   `form:"titulo" binding:"required,notblank,max=200"`
	Company       string   `form:"empresa" binding:"required,notblank,max=200"`
	Description   string   `form:"descricao" binding:"required,notblank,max=10000"`
	WorkType      string   `form:"tipo_trabalho" binding:"required,notblank,max=50"`
	Deadline      string   `form:"prazo" binding:"required,notblank,max=100"`
	Requirements  []string `form:"requisitos"`
	Differentials []string `form:"diferenciais"`
	WorkFormat    string   `form:"formato_trabalho" binding:"max=100"`
	Duration      string   `form:"duracao_projeto" binding:"max=100"`
	Compensation  string   `form:"remuneracao" binding:"max=100"`
	OwnerID       uint     `form:"usuario_id" binding:"required,min=1"`
}

func (s *VagaService) Create(ctx context.Context, req *CreateVagaRequest, logo *multipart.FileHeader) (*models.Vaga, error) {
	requirements, err := parseList(req.Requirements)
	if err != nil {
		return nil, response.NewBadRequest("requisitos must be a list of strings")
	}
	differentials, err := parseList(req.Differentials)
	if err != nil {
		return nil, response.NewBadRequest("diferenciais must be a list of strings")
	}

	var owner models.User
	if err := loadByID(ctx, s.db, &owner, req.OwnerID, "user"); err != nil {
		return nil, err
	}

	vaga := models.Vaga{
		Title:         strings.TrimSpace(req.Title),
		Company:       strings.TrimSpace(req.Company),
		Description:   strings.TrimSpace(req.Description),
		WorkType:      strings.TrimSpace(req.WorkType),
		Deadline:      strings.TrimSpace(req.Deadline),
		Requirements:  requirements,
		Differentials: differentials,
		WorkFormat:    strings.TrimSpace(req.WorkFormat),
		Duration:      strings.TrimSpace(req.Duration),
		Compensation:  strings.TrimSpace(req.Compensation),
		OwnerID:       owner.ID,
	}
	if logo != nil {
		if vaga.CompanyLogo, err = s.files.Save(logo, "vagas"); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Create(&vaga).Error; err != nil {
		storage.Discard(s.files, vaga.CompanyLogo)
		return nil, fmt.Errorf("create vaga: %w", err)
	}
	vaga.Owner = &owner
	return &vaga, nil
}

func (s *VagaService) List(ctx context.Context) ([]models.Vaga, error) {
	var vagas []models.Vaga
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Order("created_at DESC").Order("id DESC").
		Find(&vagas).Error
	if err != nil {
		return nil, fmt.Errorf("list vagas: %w", err)
	}
	return vagas, nil
}

func (s *VagaService) GetByID(ctx context.Context, id uint) (*models.Vaga, error) {
	var vaga models.Vaga
	err := s.db.WithContext(ctx).Preload("Owner").First(&vaga, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFound("vaga not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load vaga %d: %w", id, err)
	}
	return &vaga, nil
}

// parseList normalizes a form list: a single JSON array value is expanded,
// entries are trimmed and blanks dropped.
func parseList(values []string) (datatypes.JSONSlice[string], error) {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(values[0]), &decoded); err != nil {
			return nil, err
		}
		values = decoded
	}

	out := datatypes.JSONSlice[string]{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}
