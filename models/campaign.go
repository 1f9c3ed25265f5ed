package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

const (
	PackageBasic  = "basic"
	PackagePro    = "pro"
	PackageGrowth = "growth"
)

// Campaign is bought against a fixed-price package instead of a freeform
// budget. Its tasks are generated at creation and are open to any freelancer.
type Campaign struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OwnerID       uint            `gorm:"not null;index" json:"owner_id"`
	Title         string          `gorm:"size:150;not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	PackageType   string          `gorm:"type:varchar(20);not null" json:"package_type"`
	Price         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	TasksCount    int             `gorm:"not null" json:"tasks_count"`
	TargetCountry string          `gorm:"size:2" json:"target_country"`
	Status        string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
