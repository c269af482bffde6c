package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project is a portfolio piece owned by one user
type Project struct {
	ID          uint                        `gorm:"primaryKey" json:"projeto_id"`
	Title       string                      `gorm:"size:200;not null" json:"titulo"`
	Description string                      `gorm:"type:text" json:"descricao"`
	CoverImage  string                      `gorm:"size:500" json:"imagem_capa"`
	Images      datatypes.JSONSlice[string] `json:"imagens"`
	FigmaURL    string                      `gorm:"size:500" json:"link_figma"`
	GithubURL   string                      `gorm:"size:500" json:"link_github"`
	DriveURL    string                      `gorm:"size:500" json:"link_drive"`
	OwnerID     uint                        `gorm:"index;not null" json:"usuario_id"`
	Owner       *User                       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"autor,omitempty"`
	BriefingID  *uint                       `gorm:"index" json:"briefing_id"`
	Briefing    *Briefing                   `gorm:"foreignKey:BriefingID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (Project) TableName() string { return "projetos" }

// Collaborator grants a non-owner user a role (papel) on a project.
type Collaborator struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_collaborator_project_user;not null" json:"projeto_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_collaborator_project_user;not null" json:"usuario_id"`
	Role      string    `gorm:"size:50;not null" json:"papel"`
	Project   *Project  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"usuario,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Collaborator) TableName() string { return "usuario_projeto" }
