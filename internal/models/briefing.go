package models

import "time"

// Briefing is a free-form project brief any member can post and projects can reference.
type Briefing struct {
	ID          uint      `gorm:"primaryKey" json:"briefing_id"`
	Title       string    `gorm:"size:200;not null" json:"titulo"`
	Description string    `gorm:"type:text" json:"descricao"`
	CreatorID   uint      `gorm:"index;not null" json:"criado_por"`
	Creator     *User     `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"autor,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (Briefing) TableName() string { return "briefings" }
