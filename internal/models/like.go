package models

import "time"

// Like is a (user, project) pair; at most one per pair.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"curtida_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_like_user_project;not null" json:"usuario_id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_like_user_project;index;not null" json:"projeto_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Project   *Project  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "curtidas" }
