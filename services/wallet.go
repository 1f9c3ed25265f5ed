package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Yassin6up/somoo-sub001/models"
)

// GetOrCreateWallet returns the user's wallet, creating an empty one on first
// touch. Freelancer wallets are created lazily instead of at registration so
// older accounts migrated without one keep working.
func GetOrCreateWallet(db *gorm.DB, userID uint) (models.Wallet, error) {
	var w models.Wallet
	err := db.Where(models.Wallet{UserID: userID}).FirstOrCreate(&w).Error
	return w, err
}

// lockWallet loads the user's wallet under a row lock, creating it first if
// needed. Every balance mutation goes through this.
func lockWallet(tx *gorm.DB, userID uint) (models.Wallet, error) {
	var w models.Wallet
	if err := tx.Where(models.Wallet{UserID: userID}).FirstOrCreate(&w).Error; err != nil {
		return w, err
	}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, w.ID).Error; err != nil {
		return w, err
	}
	return w, nil
}

// settleCredit credits amount to the user's pending balance inside the
// caller's transaction: wallet totals, the per-credit aging row and the ledger
// row all move together or not at all.
func settleCredit(tx *gorm.DB, userID uint, taskID uint, kind string, amount decimal.Decimal, holdDays int, message string) error {
	w, err := lockWallet(tx, userID)
	if err != nil {
		return err
	}

	if err := tx.Model(&w).Updates(map[string]interface{}{
		"pending_balance": w.PendingBalance.Add(amount),
		"total_earned":    w.TotalEarned.Add(amount),
	}).Error; err != nil {
		return err
	}

	tid := taskID
	credit := models.WalletCredit{
		WalletID:    w.ID,
		TaskID:      &tid,
		Kind:        kind,
		Amount:      amount,
		AvailableAt: time.Now().Add(time.Duration(holdDays) * 24 * time.Hour),
	}
	if err := tx.Create(&credit).Error; err != nil {
		return err
	}

	trxType := models.TrxTypeTaskReward
	if kind == models.CreditKindLeaderCommission {
		trxType = models.TrxTypeLeaderCommission
	}
	trx := models.Transaction{
		UserID:      userID,
		Amount:      amount,
		ReferenceID: newReference("TRX"),
		Flow:        models.FlowCredit,
		Type:        trxType,
		Message:     &message,
		Status:      "Success",
	}
	return tx.Create(&trx).Error
}

// MatureWalletCredits is the lazy check-on-read path: it matures every due
// credit on one user's wallet. Returns how many credits matured.
func MatureWalletCredits(db *gorm.DB, userID uint, now time.Time) (int, error) {
	var w models.Wallet
	if err := db.Where("user_id = ?", userID).First(&w).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	var credits []models.WalletCredit
	if err := db.Where("wallet_id = ? AND matured_at IS NULL AND available_at <= ?", w.ID, now).
		Order("id").Find(&credits).Error; err != nil {
		return 0, err
	}
	return matureAll(db, credits, now)
}

// MatureDueCredits is the periodic sweep over all wallets. Safe to re-run:
// a credit is moved pending -> balance at most once, guarded by matured_at.
func MatureDueCredits(db *gorm.DB, now time.Time) (int, error) {
	var credits []models.WalletCredit
	if err := db.Where("matured_at IS NULL AND available_at <= ?", now).
		Order("id").Find(&credits).Error; err != nil {
		return 0, err
	}
	return matureAll(db, credits, now)
}

func matureAll(db *gorm.DB, credits []models.WalletCredit, now time.Time) (int, error) {
	matured := 0
	for _, c := range credits {
		ok, err := matureCredit(db, c.ID, now)
		if err != nil {
			return matured, err
		}
		if ok {
			matured++
		}
	}
	return matured, nil
}

// matureCredit moves one credit from pending to withdrawable balance. The
// compare-and-set on matured_at makes a concurrent or repeated run a no-op.
func matureCredit(db *gorm.DB, creditID uint, now time.Time) (bool, error) {
	var did bool
	err := db.Transaction(func(tx *gorm.DB) error {
		var c models.WalletCredit
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, creditID).Error; err != nil {
			return err
		}
		if c.MaturedAt != nil || c.AvailableAt.After(now) {
			return nil
		}
		w, err := lockWalletByID(tx, c.WalletID)
		if err != nil {
			return err
		}
		res := tx.Model(&models.WalletCredit{}).
			Where("id = ? AND matured_at IS NULL", c.ID).
			Update("matured_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&w).Updates(map[string]interface{}{
			"balance":         w.Balance.Add(c.Amount),
			"pending_balance": w.PendingBalance.Sub(c.Amount),
		}).Error; err != nil {
			return err
		}
		did = true
		return nil
	})
	return did, err
}

func lockWalletByID(tx *gorm.DB, walletID uint) (models.Wallet, error) {
	var w models.Wallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, walletID).Error
	return w, err
}
