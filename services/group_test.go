package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassin6up/somoo-sub001/models"
)

func TestCreateGroup_LeaderCountsAsMember(t *testing.T) {
	db := newTestDB(t)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)

	grp, err := CreateGroup(db, leader.ID, "فريق سمو", "مراجعات التطبيقات", 10)
	require.NoError(t, err)
	assert.Equal(t, leader.ID, grp.LeaderID)
	assert.Equal(t, 1, grp.CurrentMembers)
	assert.Equal(t, 10, grp.MaxMembers)

	var member models.GroupMember
	require.NoError(t, db.Where("group_id = ? AND user_id = ?", grp.ID, leader.ID).First(&member).Error)
}

func TestCreateGroup_OnePerLeader(t *testing.T) {
	db := newTestDB(t)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)

	_, err := CreateGroup(db, leader.ID, "First", "", 0)
	require.NoError(t, err)

	_, err = CreateGroup(db, leader.ID, "Second", "", 0)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCreateGroup_FreelancersOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Owner", models.RoleProductOwner)

	_, err := CreateGroup(db, owner.ID, "Not a crew", "", 0)
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestJoinGroup_DuplicateJoin(t *testing.T) {
	db := newTestDB(t)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	member := createUser(t, db, "Member", models.RoleFreelancer)
	grp := createGroupWith(t, db, leader, member)

	_, err := JoinGroup(db, grp.ID, member.ID)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	var reloaded models.Group
	require.NoError(t, db.First(&reloaded, grp.ID).Error)
	assert.Equal(t, 2, reloaded.CurrentMembers)
}

func TestJoinGroup_CapacityFull(t *testing.T) {
	db := newTestDB(t)
	leader := createUser(t, db, "Leader", models.RoleFreelancer)
	second := createUser(t, db, "Second", models.RoleFreelancer)
	third := createUser(t, db, "Third", models.RoleFreelancer)

	grp, err := CreateGroup(db, leader.ID, "Tiny", "", 2)
	require.NoError(t, err)
	grp, err = JoinGroup(db, grp.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, grp.CurrentMembers)

	_, err = JoinGroup(db, grp.ID, third.ID)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	var count int64
	require.NoError(t, db.Model(&models.GroupMember{}).Where("group_id = ?", grp.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
