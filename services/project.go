package services

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Yassin6up/somoo-sub001/models"
)

// AcceptProject lets a group leader take a pending project for their group.
// The commission breakdown is computed and frozen onto the project, and one
// task per payable unit is generated in `available`, each carrying its exact
// gross/fee/commission/net split.
func AcceptProject(db *gorm.DB, projectID, leaderID uint) (models.Project, error) {
	var out models.Project
	err := db.Transaction(func(tx *gorm.DB) error {
		var grp models.Group
		if err := tx.Where("leader_id = ?", leaderID).First(&grp).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotAllowed
			}
			return err
		}
		if grp.CurrentMembers <= 0 {
			return ErrInvalidGroupSize
		}

		var project models.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&project, projectID).Error; err != nil {
			return err
		}

		setting, err := models.GetSetting(tx)
		if err != nil {
			return err
		}
		units := project.TasksCount
		if units <= 0 {
			units = grp.CurrentMembers
		}
		breakdown, err := SplitBudget(project.Budget, units, ProjectRates(setting))
		if err != nil {
			return err
		}

		perFee := splitPerTask(breakdown.PlatformFee, units)
		perCommission := splitPerTask(breakdown.LeaderCommission, units)
		perNet := breakdown.RewardPerMember

		res := tx.Model(&models.Project{}).
			Where("id = ? AND status = ?", projectID, models.ProjectStatusPending).
			Updates(map[string]interface{}{
				"status":               models.ProjectStatusAccepted,
				"accepted_by_group_id": grp.ID,
				"platform_fee":         breakdown.TotalPlatformFee(),
				"leader_commission":    breakdown.LeaderCommission,
				"reward_per_task":      perNet,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidStateTransitionError{Current: project.Status, Attempted: models.ProjectStatusAccepted}
		}

		tasks := make([]models.Task, 0, units)
		for i := 1; i <= units; i++ {
			pid := project.ID
			gid := grp.ID
			tasks = append(tasks, models.Task{
				ProjectID:        &pid,
				GroupID:          &gid,
				Title:            fmt.Sprintf("%s (%d/%d)", project.Title, i, units),
				Description:      project.Description,
				Reward:           perNet.Add(perFee).Add(perCommission),
				PlatformFee:      perFee,
				LeaderCommission: perCommission,
				NetReward:        perNet,
				Status:           models.TaskStatusAvailable,
			})
		}
		if err := tx.Create(&tasks).Error; err != nil {
			return err
		}

		notify(tx, project.OwnerID, models.NotifyProjectAccepted, "تم قبول مشروعك",
			fmt.Sprintf("قبلت مجموعة \"%s\" مشروعك \"%s\" وبدأ توزيع المهام", grp.Name, project.Title))

		return tx.First(&out, projectID).Error
	})
	return out, err
}

// CancelProject lets the owning product owner cancel a project that no group
// has accepted yet.
func CancelProject(db *gorm.DB, projectID, ownerID uint) (models.Project, error) {
	var out models.Project
	err := db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&project, projectID).Error; err != nil {
			return err
		}
		if project.OwnerID != ownerID {
			return ErrNotAllowed
		}
		res := tx.Model(&models.Project{}).
			Where("id = ? AND status = ?", projectID, models.ProjectStatusPending).
			Update("status", models.ProjectStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidStateTransitionError{Current: project.Status, Attempted: models.ProjectStatusCancelled}
		}
		return tx.First(&out, projectID).Error
	})
	return out, err
}
