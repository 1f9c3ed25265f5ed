package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Setting is the singleton platform configuration row. Rates are fractions
// (0.10 = 10%). HoldDays is the holding period before settled funds become
// withdrawable.
type Setting struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	PlatformFeeRate    decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0.1" json:"platform_fee_rate"`
	ProjectLeaderRate  decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0.03" json:"project_leader_rate"`
	CampaignLeaderRate decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0.05" json:"campaign_leader_rate"`
	HoldDays           int             `gorm:"not null;default:7" json:"hold_days"`
	MinWithdraw        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:50" json:"min_withdraw"`
	MaxWithdraw        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:10000" json:"max_withdraw"`
	Maintenance        bool            `gorm:"default:false" json:"maintenance"`
	ClosedRegister     bool            `gorm:"default:false" json:"closed_register"`
}

func (Setting) TableName() string {
	return "settings"
}

// DefaultSetting returns the values seeded when no settings row exists yet.
func DefaultSetting() Setting {
	return Setting{
		PlatformFeeRate:    decimal.NewFromFloat(0.10),
		ProjectLeaderRate:  decimal.NewFromFloat(0.03),
		CampaignLeaderRate: decimal.NewFromFloat(0.05),
		HoldDays:           7,
		MinWithdraw:        decimal.NewFromInt(50),
		MaxWithdraw:        decimal.NewFromInt(10000),
	}
}

// GetSetting loads the singleton row, creating it with defaults on first use.
func GetSetting(db *gorm.DB) (Setting, error) {
	var s Setting
	err := db.First(&s).Error
	if err == nil {
		return s, nil
	}
	if err != gorm.ErrRecordNotFound {
		return s, err
	}
	s = DefaultSetting()
	if err := db.Create(&s).Error; err != nil {
		return s, err
	}
	return s, nil
}
