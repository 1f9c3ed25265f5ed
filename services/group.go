package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Yassin6up/somoo-sub001/models"
)

const defaultMaxMembers = 20

// CreateGroup makes the freelancer the leader of a new group. A freelancer
// leads at most one group.
func CreateGroup(db *gorm.DB, leaderID uint, name, description string, maxMembers int) (models.Group, error) {
	if name == "" {
		return models.Group{}, validationf("اسم المجموعة مطلوب")
	}
	if maxMembers <= 0 {
		maxMembers = defaultMaxMembers
	}

	var out models.Group
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, leaderID).Error; err != nil {
			return err
		}
		if user.Role != models.RoleFreelancer {
			return ErrNotAllowed
		}

		var existing int64
		if err := tx.Model(&models.Group{}).Where("leader_id = ?", leaderID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return validationf("لديك مجموعة بالفعل")
		}

		out = models.Group{
			LeaderID:       leaderID,
			Name:           name,
			MaxMembers:     maxMembers,
			CurrentMembers: 1,
		}
		if description != "" {
			out.Description = &description
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}
		member := models.GroupMember{GroupID: out.ID, UserID: leaderID, JoinedAt: time.Now()}
		return tx.Create(&member).Error
	})
	return out, err
}

// JoinGroup adds a freelancer to a group, capacity-checked under the group
// row lock.
func JoinGroup(db *gorm.DB, groupID, userID uint) (models.Group, error) {
	var out models.Group
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if user.Role != models.RoleFreelancer {
			return ErrNotAllowed
		}

		var grp models.Group
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&grp, groupID).Error; err != nil {
			return err
		}
		var already int64
		if err := tx.Model(&models.GroupMember{}).
			Where("group_id = ? AND user_id = ?", groupID, userID).Count(&already).Error; err != nil {
			return err
		}
		if already > 0 {
			return validationf("أنت عضو في هذه المجموعة بالفعل")
		}
		if grp.CurrentMembers >= grp.MaxMembers {
			return validationf("المجموعة مكتملة")
		}

		member := models.GroupMember{GroupID: groupID, UserID: userID, JoinedAt: time.Now()}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		if err := tx.Model(&grp).Update("current_members", gorm.Expr("current_members + 1")).Error; err != nil {
			return err
		}
		return tx.First(&out, groupID).Error
	})
	return out, err
}
