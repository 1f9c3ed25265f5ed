package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassin6up/somoo-sub001/models"
)

func TestAcceptProject_GeneratesTasks(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	member := createUser(t, db, "Member", models.RoleFreelancer)
	grp := createGroupWith(t, db, leader, member)

	project := acceptedProject(t, db, owner, leader, "1000", 10)

	assert.Equal(t, models.ProjectStatusAccepted, project.Status)
	require.NotNil(t, project.AcceptedByGroupID)
	assert.Equal(t, grp.ID, *project.AcceptedByGroupID)
	assert.Equal(t, "100.00", project.PlatformFee.StringFixed(2))
	assert.Equal(t, "30.00", project.LeaderCommission.StringFixed(2))
	assert.Equal(t, "87.00", project.RewardPerTask.StringFixed(2))

	var tasks []models.Task
	require.NoError(t, db.Where("project_id = ?", project.ID).Find(&tasks).Error)
	require.Len(t, tasks, 10)
	for _, task := range tasks {
		assert.Equal(t, models.TaskStatusAvailable, task.Status)
		assert.Equal(t, "87.00", task.NetReward.StringFixed(2))
		assert.Equal(t, "10.00", task.PlatformFee.StringFixed(2))
		assert.Equal(t, "3.00", task.LeaderCommission.StringFixed(2))
		// per-task identity: reward = fee + commission + net
		sum := task.PlatformFee.Add(task.LeaderCommission).Add(task.NetReward)
		assert.True(t, sum.Equal(task.Reward))
		require.NotNil(t, task.GroupID)
		assert.Equal(t, grp.ID, *task.GroupID)
	}
}

func TestAcceptProject_FallsBackToMemberCount(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	member := createUser(t, db, "Member", models.RoleFreelancer)
	createGroupWith(t, db, leader, member)

	// tasks_count 0 means one task per current member
	project := acceptedProject(t, db, owner, leader, "200", 0)

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAcceptProject_OnlyLeaders(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	nonLeader := createUser(t, db, "Solo", models.RoleFreelancer)

	project := models.Project{
		OwnerID:    owner.ID,
		Title:      "Write reviews",
		Budget:     mustDecimal(t, "100"),
		TasksCount: 5,
		Status:     models.ProjectStatusPending,
	}
	require.NoError(t, db.Create(&project).Error)

	_, err := AcceptProject(db, project.ID, nonLeader.ID)
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestAcceptProject_Twice(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leaderA := createUser(t, db, "LeaderA", models.RoleFreelancer)
	leaderB := createUser(t, db, "LeaderB", models.RoleFreelancer)
	createGroupWith(t, db, leaderA)
	createGroupWith(t, db, leaderB)

	project := acceptedProject(t, db, owner, leaderA, "100", 2)

	_, err := AcceptProject(db, project.ID, leaderB.ID)
	var serr *InvalidStateTransitionError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, models.ProjectStatusAccepted, serr.Current)

	// no extra tasks were generated by the losing accept
	var count int64
	require.NoError(t, db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCancelProject_PendingOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	createGroupWith(t, db, leader)

	pending := models.Project{
		OwnerID:    owner.ID,
		Title:      "Cancel me",
		Budget:     mustDecimal(t, "100"),
		TasksCount: 2,
		Status:     models.ProjectStatusPending,
	}
	require.NoError(t, db.Create(&pending).Error)

	cancelled, err := CancelProject(db, pending.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusCancelled, cancelled.Status)

	accepted := acceptedProject(t, db, owner, leader, "100", 2)
	_, err = CancelProject(db, accepted.ID, owner.ID)
	var serr *InvalidStateTransitionError
	assert.ErrorAs(t, err, &serr)
}

func TestCancelProject_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)
	other := createUser(t, db, "Other", models.RoleProductOwner)

	project := models.Project{
		OwnerID:    owner.ID,
		Title:      "Not yours",
		Budget:     mustDecimal(t, "100"),
		TasksCount: 2,
		Status:     models.ProjectStatusPending,
	}
	require.NoError(t, db.Create(&project).Error)

	_, err := CancelProject(db, project.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotAllowed)
}
