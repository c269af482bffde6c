package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/conectahub/backend/pkg/response"
	"gorm.io/gorm"
)

// loadByID fills dest with the row whose primary key is id. A missing row is
// a 404 naming what.
func loadByID(ctx context.Context, db *gorm.DB, dest interface{}, id uint, what string) error {
	err := db.WithContext(ctx).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFound(what + " not found")
	}
	if err != nil {
		return fmt.Errorf("load %s %d: %w", what, id, err)
	}
	return nil
}

// ensureExists is loadByID for callers that only need the existence check.
func ensureExists(ctx context.Context, db *gorm.DB, model interface{}, id uint, what string) error {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check %s %d: %w", what, id, err)
	}
	if count == 0 {
		return response.NewNotFound(what + " not found")
	}
	return nil
}
