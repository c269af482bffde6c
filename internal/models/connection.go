package models

import "time"

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusDeclined ConnectionStatus = "declined"
)

// Connection is a direct user-to-user request. Accepted and declined are terminal.
type Connection struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	SenderID       uint             `gorm:"index;not null" json:"sender_id"`
	RecipientID    uint             `gorm:"index;not null" json:"recipient_id"`
	ProjectID      *uint            `json:"projeto_id"`
	VagaID         *uint            `json:"vaga_id"`
	Reason         string           `gorm:"type:text;not null" json:"reason"`
	Link           string           `gorm:"size:500" json:"link"`
	ConnectionType string           `gorm:"size:100" json:"connection_type"`
	Status         ConnectionStatus `gorm:"size:20;not null;default:pending" json:"status"`
	Sender         *User            `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"sender,omitempty"`
	Recipient      *User            `gorm:"foreignKey:RecipientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"recipient,omitempty"`
	Project        *Project         `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"projeto,omitempty"`
	Vaga           *Vaga            `gorm:"foreignKey:VagaID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"vaga,omitempty"`
	CreatedAt      time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (Connection) TableName() string { return "conexoes" }
