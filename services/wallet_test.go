package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassin6up/somoo-sub001/models"
)

func TestMatureWalletCredits_PerCreditClocks(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Earner", models.RoleFreelancer)

	require.NoError(t, settleCredit(db, user.ID, 1, models.CreditKindTaskReward, mustDecimal(t, "100"), 7, "first"))
	require.NoError(t, settleCredit(db, user.ID, 2, models.CreditKindTaskReward, mustDecimal(t, "50"), 7, "second"))

	wallet := walletOf(t, db, user.ID)
	assert.Equal(t, "150.00", wallet.PendingBalance.StringFixed(2))
	assert.Equal(t, "0.00", wallet.Balance.StringFixed(2))

	// age only the first credit past its hold
	var first models.WalletCredit
	require.NoError(t, db.Where("wallet_id = ?", wallet.ID).Order("id").First(&first).Error)
	require.NoError(t, db.Model(&first).Update("available_at", time.Now().Add(-time.Hour)).Error)

	matured, err := MatureWalletCredits(db, user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, matured)

	wallet = walletOf(t, db, user.ID)
	assert.Equal(t, "100.00", wallet.Balance.StringFixed(2))
	assert.Equal(t, "50.00", wallet.PendingBalance.StringFixed(2))
}

func TestMatureDueCredits_Idempotent(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Sweeper", models.RoleFreelancer)

	require.NoError(t, settleCredit(db, user.ID, 1, models.CreditKindTaskReward, mustDecimal(t, "75"), 7, "reward"))
	wallet := walletOf(t, db, user.ID)
	backdateCredits(t, db, wallet.ID, time.Now().Add(-time.Minute))

	matured, err := MatureDueCredits(db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, matured)

	// re-running the sweep moves nothing
	matured, err = MatureDueCredits(db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, matured)

	wallet = walletOf(t, db, user.ID)
	assert.Equal(t, "75.00", wallet.Balance.StringFixed(2))
	assert.Equal(t, "0.00", wallet.PendingBalance.StringFixed(2))
	assert.Equal(t, "75.00", wallet.TotalEarned.StringFixed(2))
}

func TestMatureWalletCredits_NothingDue(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Patient", models.RoleFreelancer)

	require.NoError(t, settleCredit(db, user.ID, 1, models.CreditKindTaskReward, mustDecimal(t, "40"), 7, "held"))

	matured, err := MatureWalletCredits(db, user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, matured)

	wallet := walletOf(t, db, user.ID)
	assert.Equal(t, "40.00", wallet.PendingBalance.StringFixed(2))
}

func TestMatureWalletCredits_NoWallet(t *testing.T) {
	db := newTestDB(t)
	matured, err := MatureWalletCredits(db, 999, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, matured)
}

func TestSettleCredit_WritesLedgerRow(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ledger", models.RoleFreelancer)

	require.NoError(t, settleCredit(db, user.ID, 3, models.CreditKindLeaderCommission, mustDecimal(t, "12.50"), 7, "commission"))

	var trx models.Transaction
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&trx).Error)
	assert.Equal(t, models.FlowCredit, trx.Flow)
	assert.Equal(t, models.TrxTypeLeaderCommission, trx.Type)
	assert.Equal(t, "12.50", trx.Amount.StringFixed(2))
}
