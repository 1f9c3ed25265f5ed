package models

import "time"

// Conversation links a product owner and a freelancer (usually a group
// leader), optionally in the context of one project.
type Conversation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OwnerID       uint      `gorm:"not null;index:idx_conv_pair" json:"owner_id"`
	FreelancerID  uint      `gorm:"not null;index:idx_conv_pair" json:"freelancer_id"`
	ProjectID     *uint     `gorm:"index" json:"project_id,omitempty"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type Message struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ConversationID uint       `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint       `gorm:"not null" json:"sender_id"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
