package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassin6up/somoo-sub001/models"
)

func TestCreateCampaign_GeneratesOpenTasks(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)

	campaign, err := CreateCampaign(db, owner.ID, "Launch buzz", "Download and review", models.PackageBasic, "SA")
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusActive, campaign.Status)
	assert.Equal(t, "300.00", campaign.Price.StringFixed(2))
	assert.Equal(t, 20, campaign.TasksCount)

	var tasks []models.Task
	require.NoError(t, db.Where("campaign_id = ?", campaign.ID).Find(&tasks).Error)
	require.Len(t, tasks, 20)
	for _, task := range tasks {
		assert.Equal(t, models.TaskStatusAvailable, task.Status)
		// 300 - 10% fee = 270 over 20 tasks
		assert.Equal(t, "13.50", task.NetReward.StringFixed(2))
		assert.True(t, task.LeaderCommission.IsZero())
		assert.Nil(t, task.GroupID)
	}
}

func TestCreateCampaign_UnknownPackage(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)

	_, err := CreateCampaign(db, owner.ID, "Bad", "", "platinum", "")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCampaignTask_AnyFreelancerCanAccept(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	freelancer := createUser(t, db, "Anyone", models.RoleFreelancer)

	campaign, err := CreateCampaign(db, owner.ID, "Open work", "", models.PackageBasic, "")
	require.NoError(t, err)

	var task models.Task
	require.NoError(t, db.Where("campaign_id = ?", campaign.ID).Order("id").First(&task).Error)

	accepted, err := AcceptTask(db, task.ID, freelancer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusAssigned, accepted.Status)
}

func TestApproveCampaignTask_NoLeaderCommission(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	freelancer := createUser(t, db, "Worker", models.RoleFreelancer)

	campaign, err := CreateCampaign(db, owner.ID, "Pay me", "", models.PackageBasic, "")
	require.NoError(t, err)

	var task models.Task
	require.NoError(t, db.Where("campaign_id = ?", campaign.ID).Order("id").First(&task).Error)

	_, err = AcceptTask(db, task.ID, freelancer.ID)
	require.NoError(t, err)
	_, err = StartTask(db, task.ID, freelancer.ID)
	require.NoError(t, err)
	_, err = SubmitTask(db, task.ID, freelancer.ID, "done", "")
	require.NoError(t, err)
	_, err = ApproveTask(db, task.ID, owner.ID, "")
	require.NoError(t, err)

	wallet := walletOf(t, db, freelancer.ID)
	assert.Equal(t, "13.50", wallet.PendingBalance.StringFixed(2))

	var creditCount int64
	require.NoError(t, db.Model(&models.WalletCredit{}).
		Where("kind = ?", models.CreditKindLeaderCommission).Count(&creditCount).Error)
	assert.Zero(t, creditCount)
}
