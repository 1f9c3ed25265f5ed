package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FlowDebit  = "debit"
	FlowCredit = "credit"
)

const (
	TrxTypeTaskReward       = "task_reward"
	TrxTypeLeaderCommission = "leader_commission"
	TrxTypeWithdrawal       = "withdrawal"
	TrxTypeWithdrawalRefund = "withdrawal_refund"
)

// Transaction is the ledger row mirroring every wallet mutation.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	ReferenceID string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"reference_id"`
	Flow        string          `gorm:"type:varchar(10);not null" json:"flow"`
	Type        string          `gorm:"type:varchar(30);not null" json:"type"`
	Message     *string         `gorm:"type:text" json:"message,omitempty"`
	Status      string          `gorm:"type:varchar(20);not null;default:'Success'" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
