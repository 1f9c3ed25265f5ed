package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassin6up/somoo-sub001/models"
)

func TestApproveTask_SettlesRewardAndCommission(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	member := createUser(t, db, "Member", models.RoleFreelancer)
	createGroupWith(t, db, leader, member)

	project := acceptedProject(t, db, owner, leader, "1000", 10)
	assert.Equal(t, "87.00", project.RewardPerTask.StringFixed(2))

	task := submittedProjectTask(t, db, project.ID, member)
	assert.Equal(t, "87.00", task.NetReward.StringFixed(2))
	assert.Equal(t, "3.00", task.LeaderCommission.StringFixed(2))

	approved, err := ApproveTask(db, task.ID, owner.ID, "good work")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)

	memberWallet := walletOf(t, db, member.ID)
	assert.Equal(t, "87.00", memberWallet.PendingBalance.StringFixed(2))
	assert.Equal(t, "0.00", memberWallet.Balance.StringFixed(2))
	assert.Equal(t, "87.00", memberWallet.TotalEarned.StringFixed(2))

	leaderWallet := walletOf(t, db, leader.ID)
	assert.Equal(t, "3.00", leaderWallet.PendingBalance.StringFixed(2))

	var credits []models.WalletCredit
	require.NoError(t, db.Where("wallet_id = ?", memberWallet.ID).Find(&credits).Error)
	require.Len(t, credits, 1)
	assert.Equal(t, models.CreditKindTaskReward, credits[0].Kind)
	assert.Nil(t, credits[0].MaturedAt)

	var review models.TaskReview
	require.NoError(t, db.Where("task_id = ?", task.ID).First(&review).Error)
	assert.Equal(t, models.ReviewActionApproved, review.Action)
}

func TestApproveTask_TwiceCreditsOnce(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	createGroupWith(t, db, leader)

	project := acceptedProject(t, db, owner, leader, "500", 5)
	task := submittedProjectTask(t, db, project.ID, leader)

	_, err := ApproveTask(db, task.ID, owner.ID, "")
	require.NoError(t, err)

	_, err = ApproveTask(db, task.ID, owner.ID, "")
	assert.ErrorIs(t, err, ErrAlreadyFinalized)

	wallet := walletOf(t, db, leader.ID)
	var creditCount int64
	require.NoError(t, db.Model(&models.WalletCredit{}).
		Where("wallet_id = ? AND kind = ?", wallet.ID, models.CreditKindTaskReward).
		Count(&creditCount).Error)
	assert.EqualValues(t, 1, creditCount)
}

func TestApproveTask_LeaderMayReview(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	member := createUser(t, db, "Member", models.RoleFreelancer)
	createGroupWith(t, db, leader, member)

	project := acceptedProject(t, db, owner, leader, "200", 2)
	task := submittedProjectTask(t, db, project.ID, member)

	approved, err := ApproveTask(db, task.ID, leader.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusApproved, approved.Status)
}

func TestApproveTask_StrangerNotAllowed(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	stranger := createUser(t, db, "Stranger", models.RoleFreelancer)
	createGroupWith(t, db, leader)

	project := acceptedProject(t, db, owner, leader, "200", 2)
	task := submittedProjectTask(t, db, project.ID, leader)

	_, err := ApproveTask(db, task.ID, stranger.ID, "")
	assert.ErrorIs(t, err, ErrNotAllowed)

	wallet := walletOf(t, db, leader.ID)
	assert.True(t, wallet.PendingBalance.IsZero())
}

func TestRejectTask_RequiresFeedback(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	createGroupWith(t, db, leader)

	project := acceptedProject(t, db, owner, leader, "200", 2)
	task := submittedProjectTask(t, db, project.ID, leader)

	_, err := RejectTask(db, task.ID, owner.ID, "")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	var reloaded models.Task
	require.NoError(t, db.First(&reloaded, task.ID).Error)
	assert.Equal(t, models.TaskStatusSubmitted, reloaded.Status)
}

func TestRejectResubmitApprove_CreditsOnce(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	createGroupWith(t, db, leader)

	project := acceptedProject(t, db, owner, leader, "300", 3)
	task := submittedProjectTask(t, db, project.ID, leader)

	rejected, err := RejectTask(db, task.ID, owner.ID, "الصور غير واضحة")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusRejected, rejected.Status)

	reopened, err := ResubmitTask(db, task.ID, leader.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusInProgress, reopened.Status)
	assert.Nil(t, reopened.Submission)

	_, err = SubmitTask(db, task.ID, leader.ID, "fresh proof", "")
	require.NoError(t, err)
	_, err = ApproveTask(db, task.ID, owner.ID, "")
	require.NoError(t, err)

	wallet := walletOf(t, db, leader.ID)
	var creditCount int64
	require.NoError(t, db.Model(&models.WalletCredit{}).
		Where("wallet_id = ?", wallet.ID).Count(&creditCount).Error)
	assert.EqualValues(t, 2, creditCount) // task reward + leader commission

	// rejection feedback survives the resubmission cycle
	var reviews []models.TaskReview
	require.NoError(t, db.Where("task_id = ?", task.ID).Order("id").Find(&reviews).Error)
	require.Len(t, reviews, 2)
	assert.Equal(t, models.ReviewActionRejected, reviews[0].Action)
	assert.Equal(t, "الصور غير واضحة", reviews[0].Note)
	assert.Equal(t, models.ReviewActionApproved, reviews[1].Action)
}

func TestAcceptTask_NonMemberBlocked(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	outsider := createUser(t, db, "Outsider", models.RoleFreelancer)
	createGroupWith(t, db, leader)

	project := acceptedProject(t, db, owner, leader, "200", 2)
	var task models.Task
	require.NoError(t, db.Where("project_id = ?", project.ID).Order("id").First(&task).Error)

	_, err := AcceptTask(db, task.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestAcceptTask_SecondClaimLoses(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	member := createUser(t, db, "Member", models.RoleFreelancer)
	createGroupWith(t, db, leader, member)

	project := acceptedProject(t, db, owner, leader, "100", 1)
	var task models.Task
	require.NoError(t, db.Where("project_id = ?", project.ID).First(&task).Error)

	_, err := AcceptTask(db, task.ID, leader.ID)
	require.NoError(t, err)

	_, err = AcceptTask(db, task.ID, member.ID)
	var serr *InvalidStateTransitionError
	assert.ErrorAs(t, err, &serr)
}

func TestSubmitTask_OnlyAssignee(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	member := createUser(t, db, "Member", models.RoleFreelancer)
	createGroupWith(t, db, leader, member)

	project := acceptedProject(t, db, owner, leader, "200", 2)
	var task models.Task
	require.NoError(t, db.Where("project_id = ?", project.ID).Order("id").First(&task).Error)

	_, err := AcceptTask(db, task.ID, leader.ID)
	require.NoError(t, err)
	_, err = StartTask(db, task.ID, leader.ID)
	require.NoError(t, err)

	_, err = SubmitTask(db, task.ID, member.ID, "not mine", "")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestApproveLastTask_CompletesProject(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	createGroupWith(t, db, leader)

	project := acceptedProject(t, db, owner, leader, "100", 1)
	task := submittedProjectTask(t, db, project.ID, leader)

	_, err := ApproveTask(db, task.ID, owner.ID, "")
	require.NoError(t, err)

	var reloaded models.Project
	require.NoError(t, db.First(&reloaded, project.ID).Error)
	assert.Equal(t, models.ProjectStatusCompleted, reloaded.Status)
}
