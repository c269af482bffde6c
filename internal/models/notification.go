package models

import "time"

type NotificationKind string

const (
	NotificationLike         NotificationKind = "like"
	NotificationComment      NotificationKind = "comment"
	NotificationCollabInvite NotificationKind = "collab_invite"
	NotificationConnection   NotificationKind = "connection"
)

// NotificationStatusPending marks invites and connection requests awaiting an answer.
const NotificationStatusPending = "pending"

// Notification is an ephemeral record owned by its destination user. It is
// deleted when dismissed or resolved.
type Notification struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Kind          NotificationKind `gorm:"size:30;not null" json:"tipo"`
	OriginID      uint             `gorm:"not null" json:"origem_id"`
	DestinationID uint             `gorm:"index:idx_notification_destination,priority:1;not null" json:"destino_id"`
	ProjectID     *uint            `json:"projeto_id"`
	CommentID     *uint            `json:"comentario_id"`
	CommentText   string           `gorm:"type:text" json:"comentario_texto,omitempty"`
	VagaTitle     string           `gorm:"size:200" json:"vaga_titulo,omitempty"`
	ConnectionID  *uint            `json:"conexao_id"`
	Role          string           `gorm:"size:50" json:"papel,omitempty"`
	Status        string           `gorm:"size:20" json:"status"`
	Origin        *User            `gorm:"foreignKey:OriginID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Destination   *User            `gorm:"foreignKey:DestinationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Project       *Project         `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Connection    *Connection      `gorm:"foreignKey:ConnectionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time        `gorm:"index:idx_notification_destination,priority:2" json:"created_at"`
}

func (Notification) TableName() string { return "notificacoes" }
