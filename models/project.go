package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProjectStatusPending    = "pending"
	ProjectStatusAccepted   = "accepted"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

// Project is created by a product owner with a freeform budget and accepted by
// exactly one group leader. PlatformFee / LeaderCommission / RewardPerTask are
// filled in at acceptance time from the commission breakdown.
type Project struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	OwnerID           uint            `gorm:"not null;index" json:"owner_id"`
	Title             string          `gorm:"size:150;not null" json:"title"`
	Description       string          `gorm:"type:text" json:"description"`
	Budget            decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"budget"`
	TasksCount        int             `gorm:"not null" json:"tasks_count"`
	TargetCountry     string          `gorm:"size:2" json:"target_country"`
	Deadline          *time.Time      `json:"deadline,omitempty"`
	Status            string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AcceptedByGroupID *uint           `gorm:"index" json:"accepted_by_group_id,omitempty"`
	PlatformFee       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"platform_fee"`
	LeaderCommission  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"leader_commission"`
	RewardPerTask     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"reward_per_task"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
