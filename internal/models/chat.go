package models

import "time"

// Chat is a thread between an unordered pair of users. User1ID is always the
// smaller id, so the unique index covers both orderings.
type Chat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User1ID   uint      `gorm:"uniqueIndex:idx_chat_pair;not null" json:"user1_id"`
	User2ID   uint      `gorm:"uniqueIndex:idx_chat_pair;index;not null" json:"user2_id"`
	User1     *User     `gorm:"foreignKey:User1ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User2     *User     `gorm:"foreignKey:User2ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Chat) TableName() string { return "chats" }

// HasParticipant reports whether userID is one of the two chat members.
func (c *Chat) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherParticipant returns the member that is not userID.
func (c *Chat) OtherParticipant(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// NormalizePair orders two user ids the way chats are stored.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// Message is append-only.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChatID    uint      `gorm:"index:idx_message_chat_created,priority:1;not null" json:"chat_id"`
	SenderID  uint      `gorm:"not null" json:"sender_id"`
	Text      string    `gorm:"type:text;not null" json:"message"`
	Chat      *Chat     `gorm:"foreignKey:ChatID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Sender    *User     `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"index:idx_message_chat_created,priority:2" json:"created_at"`
}

func (Message) TableName() string { return "mensagens" }
