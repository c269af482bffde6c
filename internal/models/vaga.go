package models

import (
	"time"

	"gorm.io/datatypes"
)

// Vaga is a job or gig listing, independent from projects.
type Vaga struct {
	ID            uint                        `gorm:"primaryKey" json:"vaga_id"`
	Title         string                      `gorm:"size:200;not null" json:"titulo"`
	Company       string                      `gorm:"size:200;not null" json:"empresa"`
	CompanyLogo   string                      `gorm:"size:500" json:"logo_empresa"`
	Description   string                      `gorm:"type:text;not null" json:"descricao"`
	WorkType      string                      `gorm:"size:50;not null" json:"tipo_trabalho"` // Freela, Fixa, Estágio
	Deadline      string                      `gorm:"size:100;not null" json:"prazo"`
	Requirements  datatypes.JSONSlice[string] `json:"requisitos"`
	Differentials datatypes.JSONSlice[string] `json:"diferenciais"`
	WorkFormat    string                      `gorm:"size:100" json:"formato_trabalho"`
	Duration      string                      `gorm:"size:100" json:"duracao_projeto"`
	Compensation  string                      `gorm:"size:100" json:"remuneracao"`
	OwnerID       uint                        `gorm:"index;not null" json:"usuario_id"`
	Owner         *User                       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"autor,omitempty"`
	CreatedAt     time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func (Vaga) TableName() string { return "vagas" }
