package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassin6up/somoo-sub001/models"
)

func TestRequestWithdrawal_ReservesAmount(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Saver", models.RoleFreelancer)
	fundWallet(t, db, user.ID, "500")

	wd, err := RequestWithdrawal(db, user.ID, mustDecimal(t, "100"), "bank_transfer", "1234567890123456")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusPending, wd.Status)
	assert.NotEmpty(t, wd.ReferenceID)

	wallet := walletOf(t, db, user.ID)
	assert.Equal(t, "400.00", wallet.Balance.StringFixed(2))
	assert.Equal(t, "0.00", wallet.TotalWithdrawn.StringFixed(2))

	var trx models.Transaction
	require.NoError(t, db.Where("reference_id = ?", wd.ReferenceID).First(&trx).Error)
	assert.Equal(t, models.FlowDebit, trx.Flow)
	assert.Equal(t, "Pending", trx.Status)
}

func TestRequestWithdrawal_InsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Broke", models.RoleFreelancer)
	fundWallet(t, db, user.ID, "80")

	_, err := RequestWithdrawal(db, user.ID, mustDecimal(t, "100"), "bank_transfer", "1234567890")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	wallet := walletOf(t, db, user.ID)
	assert.Equal(t, "80.00", wallet.Balance.StringFixed(2))

	var count int64
	db.Model(&models.Withdrawal{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestRequestWithdrawal_BelowMinimum(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Small", models.RoleFreelancer)
	fundWallet(t, db, user.ID, "500")

	_, err := RequestWithdrawal(db, user.ID, mustDecimal(t, "10"), "bank_transfer", "1234567890")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRequestWithdrawal_PendingBalanceNotSpendable(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Held", models.RoleFreelancer)
	w := walletOf(t, db, user.ID)
	require.NoError(t, settleCredit(db, user.ID, 1, models.CreditKindTaskReward, mustDecimal(t, "200"), 7, "test"))

	_, err := RequestWithdrawal(db, user.ID, mustDecimal(t, "100"), "bank_transfer", "1234567890")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	w = walletOf(t, db, user.ID)
	assert.Equal(t, "200.00", w.PendingBalance.StringFixed(2))
	assert.Equal(t, "0.00", w.Balance.StringFixed(2))
}

func TestCancelWithdrawal_RestoresExactly(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Canceller", models.RoleFreelancer)
	fundWallet(t, db, user.ID, "500")

	wd, err := RequestWithdrawal(db, user.ID, mustDecimal(t, "150"), "vodafone_cash", "01001234567")
	require.NoError(t, err)

	cancelled, err := CancelWithdrawal(db, wd.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusCancelled, cancelled.Status)

	wallet := walletOf(t, db, user.ID)
	assert.Equal(t, "500.00", wallet.Balance.StringFixed(2))

	var trx models.Transaction
	require.NoError(t, db.Where("reference_id = ?", wd.ReferenceID).First(&trx).Error)
	assert.Equal(t, "Cancelled", trx.Status)

	// cancelling again is a conflict, not a second refund
	_, err = CancelWithdrawal(db, wd.ID, user.ID)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	wallet = walletOf(t, db, user.ID)
	assert.Equal(t, "500.00", wallet.Balance.StringFixed(2))
}

func TestCancelWithdrawal_OnlyRequester(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Requester", models.RoleFreelancer)
	other := createUser(t, db, "Other", models.RoleFreelancer)
	fundWallet(t, db, user.ID, "500")

	wd, err := RequestWithdrawal(db, user.ID, mustDecimal(t, "100"), "bank_transfer", "1234567890")
	require.NoError(t, err)

	_, err = CancelWithdrawal(db, wd.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestApproveWithdrawal_MovesTotalWithdrawnOnly(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Payee", models.RoleFreelancer)
	fundWallet(t, db, user.ID, "500")

	wd, err := RequestWithdrawal(db, user.ID, mustDecimal(t, "200"), "bank_transfer", "1234567890123456")
	require.NoError(t, err)

	approved, err := ApproveWithdrawal(db, wd.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusCompleted, approved.Status)
	require.NotNil(t, approved.ProcessedBy)
	assert.EqualValues(t, 1, *approved.ProcessedBy)
	assert.NotNil(t, approved.ProcessedAt)

	wallet := walletOf(t, db, user.ID)
	assert.Equal(t, "300.00", wallet.Balance.StringFixed(2))
	assert.Equal(t, "200.00", wallet.TotalWithdrawn.StringFixed(2))

	// second processing attempt fails and moves nothing
	_, err = ApproveWithdrawal(db, wd.ID, 2)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	wallet = walletOf(t, db, user.ID)
	assert.Equal(t, "200.00", wallet.TotalWithdrawn.StringFixed(2))
}

func TestRejectWithdrawal_Restores(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Rejected", models.RoleFreelancer)
	fundWallet(t, db, user.ID, "500")

	wd, err := RequestWithdrawal(db, user.ID, mustDecimal(t, "250"), "bank_transfer", "1234567890")
	require.NoError(t, err)

	rejected, err := RejectWithdrawal(db, wd.ID, 1, "بيانات الحساب غير صحيحة")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectReason)
	assert.Equal(t, "بيانات الحساب غير صحيحة", *rejected.RejectReason)

	wallet := walletOf(t, db, user.ID)
	assert.Equal(t, "500.00", wallet.Balance.StringFixed(2))
	assert.Equal(t, "0.00", wallet.TotalWithdrawn.StringFixed(2))

	var trx models.Transaction
	require.NoError(t, db.Where("reference_id = ?", wd.ReferenceID).First(&trx).Error)
	assert.Equal(t, "Failed", trx.Status)

	// approve after reject is a conflict
	_, err = ApproveWithdrawal(db, wd.ID, 1)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestMaskAccountNumber(t *testing.T) {
	assert.Equal(t, "1234****3456", MaskAccountNumber("1234567890123456"))
	assert.Equal(t, "123456", MaskAccountNumber("123456"))
}
