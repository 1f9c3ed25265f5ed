package models

import "time"

const (
	NotifyTaskApproved       = "task_approved"
	NotifyTaskRejected       = "task_rejected"
	NotifyWithdrawalApproved = "withdrawal_approved"
	NotifyWithdrawalRejected = "withdrawal_rejected"
	NotifyProjectAccepted    = "project_accepted"
	NotifyCommissionSettled  = "commission_settled"
)

// Notification is a best-effort in-app event row. Nothing in the money path
// depends on it being read or delivered.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Kind      string     `gorm:"type:varchar(30);not null" json:"kind"`
	Title     string     `gorm:"size:150;not null" json:"title"`
	Body      string     `gorm:"type:text" json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
