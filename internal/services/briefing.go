package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/pkg/response"
	"gorm.io/gorm"
)

type BriefingService struct {
	db *gorm.DB
}

func NewBriefingService(db *gorm.DB) *BriefingService {
	return &BriefingService{db: db}
}

type CreateBriefingRequest struct {
	Title       string `json:"titulo" binding:"required,notblank,max=200"`
	Description string `json:"descricao" binding:"max=10000"`
	CreatorID   uint   `json:"criado_por" binding:"required,min=1"`
}

func (s *BriefingService) Create(ctx context.Context, req *CreateBriefingRequest) (*models.Briefing, error) {
	var creator models.User
	if err := loadByID(ctx, s.db, &creator, req.CreatorID, "user"); err != nil {
		return nil, err
	}

	briefing := models.Briefing{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		CreatorID:   creator.ID,
	}
	if err := s.db.WithContext(ctx).Create(&briefing).Error; err != nil {
		return nil, fmt.Errorf("create briefing: %w", err)
	}
	briefing.Creator = &creator
	return &briefing, nil
}

// List returns every briefing newest first, with its author.
func (s *BriefingService) List(ctx context.Context) ([]models.Briefing, error) {
	var briefings []models.Briefing
	err := s.db.WithContext(ctx).
		Preload("Creator").
		Order("created_at DESC").Order("id DESC").
		Find(&briefings).Error
	if err != nil {
		return nil, fmt.Errorf("list briefings: %w", err)
	}
	return briefings, nil
}

func (s *BriefingService) GetByID(ctx context.Context, id uint) (*models.Briefing, error) {
	var briefing models.Briefing
	if err := loadByID(ctx, s.db.Preload("Creator"), &briefing, id, "briefing"); err != nil {
		return nil, err
	}
	return &briefing, nil
}

// parseOptionalID reads an optional form id. Blank means none.
func parseOptionalID(raw, field string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, response.NewBadRequest(field + " must be a positive integer")
	}
	id := uint(n)
	return &id, nil
}
