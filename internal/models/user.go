package models

import "time"

// User tipo values. Anything else is stored as UserTypeOther.
const (
	UserTypeDesigner   = "designer"
	UserTypeProgrammer = "programmer"
	UserTypeOther      = "other"
)

// User represents a ConectaHub member profile
type User struct {
	ID           uint      `gorm:"primaryKey" json:"usuario_id"`
	Name         string    `gorm:"size:150;not null" json:"nome"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Type         string    `gorm:"size:30;default:other" json:"tipo"` // designer, programmer, other
	Bio          string    `gorm:"type:text" json:"descricao"`
	Avatar       string    `gorm:"size:500" json:"foto_perfil"`
	GithubURL    string    `gorm:"size:500" json:"github"`
	DriveURL     string    `gorm:"size:500" json:"google_drive"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "usuarios" }

// UserSnapshot is the display data joined into feeds (notifications, chats, comments).
type UserSnapshot struct {
	ID     uint   `json:"usuario_id"`
	Name   string `json:"nome"`
	Avatar string `json:"foto_perfil"`
}

func (u *User) Snapshot() *UserSnapshot {
	if u == nil {
		return nil
	}
	return &UserSnapshot{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

// NormalizeUserType maps free input onto the known tipo values.
func NormalizeUserType(t string) string {
	switch t {
	case UserTypeDesigner, UserTypeProgrammer:
		return t
	case "programador":
		return UserTypeProgrammer
	default:
		return UserTypeOther
	}
}
