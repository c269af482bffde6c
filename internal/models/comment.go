package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"comentario_id"`
	ProjectID uint      `gorm:"index;not null" json:"projeto_id"`
	UserID    uint      `gorm:"index;not null" json:"usuario_id"`
	Text      string    `gorm:"type:text;not null" json:"texto"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Project   *Project  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"data_criacao"`
}

func (Comment) TableName() string { return "comentarios" }
