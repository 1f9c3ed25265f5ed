package models

import "time"

// Group is a team of freelancers under one leader. The creator becomes the
// leader; leadership is not transferable.
type Group struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	LeaderID       uint      `gorm:"not null;index" json:"leader_id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Description    *string   `gorm:"type:text" json:"description,omitempty"`
	MaxMembers     int       `gorm:"not null;default:20" json:"max_members"`
	CurrentMembers int       `gorm:"not null;default:1" json:"current_members"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Group) TableName() string {
	return "groups"
}

type GroupMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	GroupID  uint      `gorm:"not null;index:idx_group_user,unique" json:"group_id"`
	UserID   uint      `gorm:"not null;index:idx_group_user,unique" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

func (GroupMember) TableName() string {
	return "group_members"
}
