package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusCompleted = "completed"
	WithdrawalStatusRejected  = "rejected"
	WithdrawalStatusCancelled = "cancelled"
)

// Withdrawal reserves its amount from the wallet balance the moment it is
// created. Completion only touches TotalWithdrawn; rejection and cancellation
// put the reserved amount back.
type Withdrawal struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:30;not null" json:"payment_method"`
	AccountNumber string          `gorm:"size:64;not null" json:"account_number"`
	ReferenceID   string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"reference_id"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RejectReason  *string         `gorm:"type:text" json:"reject_reason,omitempty"`
	ProcessedBy   *int64          `json:"processed_by,omitempty"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
