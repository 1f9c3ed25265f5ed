package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TaskStatusAvailable  = "available"
	TaskStatusAssigned   = "assigned"
	TaskStatusInProgress = "in_progress"
	TaskStatusSubmitted  = "submitted"
	TaskStatusApproved   = "approved"
	TaskStatusRejected   = "rejected"
)

const (
	ReviewActionApproved = "approved"
	ReviewActionRejected = "rejected"
)

// Task is the atomic unit of paid work. Exactly one of ProjectID/CampaignID is
// set. Money invariant: Reward = PlatformFee + LeaderCommission + NetReward;
// NetReward is what settlement credits to the assignee on approval.
type Task struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	ProjectID        *uint           `gorm:"index" json:"project_id,omitempty"`
	CampaignID       *uint           `gorm:"index" json:"campaign_id,omitempty"`
	GroupID          *uint           `gorm:"index" json:"group_id,omitempty"`
	FreelancerID     *uint           `gorm:"index" json:"freelancer_id,omitempty"`
	Title            string          `gorm:"size:150;not null" json:"title"`
	Description      string          `gorm:"type:text" json:"description"`
	Reward           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"reward"`
	PlatformFee      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"platform_fee"`
	LeaderCommission decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"leader_commission"`
	NetReward        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"net_reward"`
	Status           string          `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	Submission       *string         `gorm:"type:text" json:"submission,omitempty"`
	ProofURL         *string         `gorm:"type:varchar(255)" json:"proof_url,omitempty"`
	AssignedAt       *time.Time      `json:"assigned_at,omitempty"`
	SubmittedAt      *time.Time      `json:"submitted_at,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskReview is an append-only record of a reviewer's decision on a
// submission. Rejection feedback lives here so a resubmission cycle never
// overwrites the history of earlier rejections.
type TaskReview struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TaskID     uint      `gorm:"not null;index" json:"task_id"`
	ReviewerID uint      `gorm:"not null" json:"reviewer_id"`
	Action     string    `gorm:"type:varchar(20);not null" json:"action"`
	Note       string    `gorm:"type:text" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

func (TaskReview) TableName() string {
	return "task_reviews"
}
