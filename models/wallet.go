package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kinds of wallet credits created by task settlement.
const (
	CreditKindTaskReward       = "task_reward"
	CreditKindLeaderCommission = "leader_commission"
)

// Wallet holds a freelancer's money. Balance is withdrawable, PendingBalance is
// held until the credit that carried it matures. Invariant enforced by the
// settlement and withdrawal services:
//
//	TotalEarned - TotalWithdrawn >= Balance + PendingBalance
type Wallet struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	PendingBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"pending_balance"`
	TotalEarned    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_earned"`
	TotalWithdrawn decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_withdrawn"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// WalletCredit is one settled amount sitting in PendingBalance. Each credit
// carries its own maturity clock: the amount becomes withdrawable at
// AvailableAt, independently of any other credit on the same wallet.
// MaturedAt is set exactly once by the maturation sweep.
type WalletCredit struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	WalletID    uint            `gorm:"not null;index" json:"wallet_id"`
	TaskID      *uint           `gorm:"index" json:"task_id,omitempty"`
	Kind        string          `gorm:"type:varchar(30);not null" json:"kind"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	AvailableAt time.Time       `gorm:"not null;index" json:"available_at"`
	MaturedAt   *time.Time      `gorm:"index" json:"matured_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (WalletCredit) TableName() string {
	return "wallet_credits"
}
