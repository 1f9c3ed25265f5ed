package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Yassin6up/somoo-sub001/models"
)

// RequestWithdrawal reserves amount from the freelancer's withdrawable
// balance and creates a pending withdrawal. The balance check and the debit
// happen under the wallet row lock so two concurrent requests cannot both
// pass the available funds.
func RequestWithdrawal(db *gorm.DB, userID uint, amount decimal.Decimal, paymentMethod, accountNumber string) (models.Withdrawal, error) {
	if !amount.IsPositive() {
		return models.Withdrawal{}, validationf("مبلغ السحب يجب أن يكون أكبر من صفر")
	}
	if paymentMethod == "" || accountNumber == "" {
		return models.Withdrawal{}, validationf("وسيلة الدفع ورقم الحساب مطلوبان")
	}

	// Lazy maturation so funds whose holding period just elapsed count.
	if _, err := MatureWalletCredits(db, userID, time.Now()); err != nil {
		return models.Withdrawal{}, err
	}

	setting, err := models.GetSetting(db)
	if err != nil {
		return models.Withdrawal{}, err
	}
	if amount.LessThan(setting.MinWithdraw) {
		return models.Withdrawal{}, validationf("الحد الأدنى للسحب هو %s", setting.MinWithdraw.StringFixed(2))
	}
	if amount.GreaterThan(setting.MaxWithdraw) {
		return models.Withdrawal{}, validationf("الحد الأقصى للسحب هو %s", setting.MaxWithdraw.StringFixed(2))
	}

	var out models.Withdrawal
	err = db.Transaction(func(tx *gorm.DB) error {
		w, err := lockWallet(tx, userID)
		if err != nil {
			return err
		}
		if w.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}
		if err := tx.Model(&w).Update("balance", w.Balance.Sub(amount)).Error; err != nil {
			return err
		}

		ref := newReference("WD")
		out = models.Withdrawal{
			UserID:        userID,
			Amount:        amount,
			PaymentMethod: paymentMethod,
			AccountNumber: accountNumber,
			ReferenceID:   ref,
			Status:        models.WithdrawalStatusPending,
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}

		msg := fmt.Sprintf("طلب سحب إلى %s %s", paymentMethod, MaskAccountNumber(accountNumber))
		trx := models.Transaction{
			UserID:      userID,
			Amount:      amount,
			ReferenceID: ref,
			Flow:        models.FlowDebit,
			Type:        models.TrxTypeWithdrawal,
			Message:     &msg,
			Status:      "Pending",
		}
		return tx.Create(&trx).Error
	})
	return out, err
}

// CancelWithdrawal lets the requester abandon a still-pending withdrawal and
// puts the reserved amount back.
func CancelWithdrawal(db *gorm.DB, withdrawalID, userID uint) (models.Withdrawal, error) {
	var out models.Withdrawal
	err := db.Transaction(func(tx *gorm.DB) error {
		var wd models.Withdrawal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wd, withdrawalID).Error; err != nil {
			return err
		}
		if wd.UserID != userID {
			return ErrNotAllowed
		}
		res := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", withdrawalID, models.WithdrawalStatusPending).
			Update("status", models.WithdrawalStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}
		if err := releaseReservation(tx, wd); err != nil {
			return err
		}
		if err := tx.Model(&models.Transaction{}).
			Where("reference_id = ?", wd.ReferenceID).
			Update("status", "Cancelled").Error; err != nil {
			return err
		}
		return tx.First(&out, withdrawalID).Error
	})
	return out, err
}

// ApproveWithdrawal marks a pending withdrawal paid out. The amount was
// already reserved at request time, so only TotalWithdrawn moves here.
func ApproveWithdrawal(db *gorm.DB, withdrawalID uint, adminID int64) (models.Withdrawal, error) {
	var out models.Withdrawal
	err := db.Transaction(func(tx *gorm.DB) error {
		var wd models.Withdrawal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wd, withdrawalID).Error; err != nil {
			return err
		}
		now := time.Now()
		res := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", withdrawalID, models.WithdrawalStatusPending).
			Updates(map[string]interface{}{
				"status":       models.WithdrawalStatusCompleted,
				"processed_by": adminID,
				"processed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		w, err := lockWallet(tx, wd.UserID)
		if err != nil {
			return err
		}
		if err := tx.Model(&w).Update("total_withdrawn", w.TotalWithdrawn.Add(wd.Amount)).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Transaction{}).
			Where("reference_id = ?", wd.ReferenceID).
			Update("status", "Success").Error; err != nil {
			return err
		}

		notify(tx, wd.UserID, models.NotifyWithdrawalApproved, "تم تحويل مبلغ السحب",
			fmt.Sprintf("تم تحويل %s إلى حسابك %s", wd.Amount.StringFixed(2), MaskAccountNumber(wd.AccountNumber)))
		return tx.First(&out, withdrawalID).Error
	})
	return out, err
}

// RejectWithdrawal declines a pending withdrawal and restores the reserved
// amount to the balance.
func RejectWithdrawal(db *gorm.DB, withdrawalID uint, adminID int64, reason string) (models.Withdrawal, error) {
	var out models.Withdrawal
	err := db.Transaction(func(tx *gorm.DB) error {
		var wd models.Withdrawal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wd, withdrawalID).Error; err != nil {
			return err
		}
		now := time.Now()
		updates := map[string]interface{}{
			"status":       models.WithdrawalStatusRejected,
			"processed_by": adminID,
			"processed_at": now,
		}
		if reason != "" {
			updates["reject_reason"] = reason
		}
		res := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", withdrawalID, models.WithdrawalStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}
		if err := releaseReservation(tx, wd); err != nil {
			return err
		}
		if err := tx.Model(&models.Transaction{}).
			Where("reference_id = ?", wd.ReferenceID).
			Update("status", "Failed").Error; err != nil {
			return err
		}

		body := "تم رفض طلب السحب وأعيد المبلغ إلى رصيدك"
		if reason != "" {
			body = fmt.Sprintf("تم رفض طلب السحب: %s. أعيد المبلغ إلى رصيدك", reason)
		}
		notify(tx, wd.UserID, models.NotifyWithdrawalRejected, "تم رفض طلب السحب", body)
		return tx.First(&out, withdrawalID).Error
	})
	return out, err
}

// releaseReservation puts a withdrawal's reserved amount back on the balance.
func releaseReservation(tx *gorm.DB, wd models.Withdrawal) error {
	w, err := lockWallet(tx, wd.UserID)
	if err != nil {
		return err
	}
	return tx.Model(&w).Update("balance", w.Balance.Add(wd.Amount)).Error
}

// MaskAccountNumber hides the middle of an account number for display and
// ledger messages.
func MaskAccountNumber(accountNumber string) string {
	if len(accountNumber) <= 6 {
		return accountNumber
	}
	return accountNumber[:4] + "****" + accountNumber[len(accountNumber)-4:]
}
