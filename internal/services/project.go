package services

import (
	"context"
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

type ProjectService struct {
	db    *gorm.DB
	files storage.Store
}

func NewProjectService(db *gorm.DB, files storage.Store) *ProjectService {
	return &ProjectService{db: db, files: files}
}

// CreateProjectRequest is bound from the multipart project form.
type CreateProjectRequest struct {
	Title       string `form:"titulo" binding:"required,notblank,max=200"`
	Description string `form:"descricao" binding:"max=10000"`
	FigmaURL    string `form:"link_figma" binding:"omitempty,url,max=500"`
	GithubURL   string `form:"link_github" binding:"omitempty,url,max=500"`
	DriveURL    string `form:"link_drive" binding:"omitempty,url,max=500"`
	OwnerID     uint   `form:"usuario_id" binding:"required,min=1"`
	BriefingID  string `form:"briefing_id"`
}

type SearchProjectsRequest struct {
	Query string `form:"q" binding:"required,notblank,max=200"`
}

// Create stores the project with its cover and any extra images.
func (s *ProjectService) Create(ctx context.Context, req *CreateProjectRequest, cover *multipart.FileHeader, images []*multipart.FileHeader) (*models.Project, error) {
	var owner models.User
	if err := loadByID(ctx, s.db, &owner, req.OwnerID, "user"); err != nil {
		return nil, err
	}
	briefingID, err := parseOptionalID(req.BriefingID, "briefing_id")
	if err != nil {
		return nil, err
	}
	if briefingID != nil {
		if err := ensureExists(ctx, s.db, &models.Briefing{}, *briefingID, "briefing"); err != nil {
			return nil, err
		}
	}

	project := models.Project{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		FigmaURL:    strings.TrimSpace(req.FigmaURL),
		GithubURL:   strings.TrimSpace(req.GithubURL),
		DriveURL:    strings.TrimSpace(req.DriveURL),
		OwnerID:     owner.ID,
		BriefingID:  briefingID,
		Images:      datatypes.JSONSlice[string]{},
	}

	if cover != nil {
		path, err := s.files.Save(cover, "projects")
		if err != nil {
			return nil, err
		}
		project.CoverImage = path
	}
	if len(images) > 0 {
		paths, err := storage.SaveAll(s.files, images, "projects")
		if err != nil {
			storage.Discard(s.files, project.CoverImage)
			return nil, err
		}
		project.Images = paths
	}

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		storage.Discard(s.files, append([]string{project.CoverImage}, project.Images...)...)
		return nil, fmt.Errorf("create project: %w", err)
	}
	project.Owner = &owner
	return &project, nil
}

// List returns every project newest first, with its author.
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Order("created_at DESC").Order("id DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Search matches the query against title and description, case-insensitively.
func (s *ProjectService) Search(ctx context.Context, req *SearchProjectsRequest) ([]models.Project, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(req.Query))) + "%"

	var projects []models.Project
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", pattern, pattern).
		Order("created_at DESC").Order("id DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}
	return projects, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

func (s *ProjectService) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Preload("Owner").First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFound("project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load project %d: %w", id, err)
	}
	return &project, nil
}

// AddImages appends uploaded images to the project's gallery, keeping order.
func (s *ProjectService) AddImages(ctx context.Context, id uint, images []*multipart.FileHeader) (*models.Project, error) {
	if len(images) == 0 {
		return nil, response.NewBadRequest("at least one image is required")
	}
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	paths, err := storage.SaveAll(s.files, images, "projects")
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Project
		if err := tx.Select("id", "images").First(&current, id).Error; err != nil {
			return err
		}
		merged := append(datatypes.JSONSlice[string]{}, current.Images...)
		merged = append(merged, paths...)
		if err := tx.Model(&current).Update("images", merged).Error; err != nil {
			return err
		}
		project.Images = merged
		return nil
	})
	if err != nil {
		storage.Discard(s.files, paths...)
		return nil, fmt.Errorf("add images to project %d: %w", id, err)
	}
	return project, nil
}
