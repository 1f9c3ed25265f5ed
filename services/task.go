package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Yassin6up/somoo-sub001/models"
)

// AcceptTask claims an available task for a freelancer. Tasks attached to a
// group are only claimable by members of that group. The status change is a
// compare-and-set so two concurrent accepts cannot both win.
func AcceptTask(db *gorm.DB, taskID, freelancerID uint) (models.Task, error) {
	var out models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, taskID).Error; err != nil {
			return err
		}
		if task.GroupID != nil {
			var cnt int64
			if err := tx.Model(&models.GroupMember{}).
				Where("group_id = ? AND user_id = ?", *task.GroupID, freelancerID).
				Count(&cnt).Error; err != nil {
				return err
			}
			if cnt == 0 {
				return ErrNotAllowed
			}
		}

		now := time.Now()
		res := tx.Model(&models.Task{}).
			Where("id = ? AND status = ? AND freelancer_id IS NULL", taskID, models.TaskStatusAvailable).
			Updates(map[string]interface{}{
				"status":        models.TaskStatusAssigned,
				"freelancer_id": freelancerID,
				"assigned_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidStateTransitionError{Current: task.Status, Attempted: models.TaskStatusAssigned}
		}

		// First claimed task moves the parent project into in_progress.
		if task.ProjectID != nil {
			if err := tx.Model(&models.Project{}).
				Where("id = ? AND status = ?", *task.ProjectID, models.ProjectStatusAccepted).
				Update("status", models.ProjectStatusInProgress).Error; err != nil {
				return err
			}
		}
		return tx.First(&out, taskID).Error
	})
	return out, err
}

// StartTask moves an assigned task into in_progress. Only the assignee may
// start work.
func StartTask(db *gorm.DB, taskID, freelancerID uint) (models.Task, error) {
	var out models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		task, err := loadAssignedTask(tx, taskID, freelancerID)
		if err != nil {
			return err
		}
		res := tx.Model(&models.Task{}).
			Where("id = ? AND status = ?", taskID, models.TaskStatusAssigned).
			Update("status", models.TaskStatusInProgress)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidStateTransitionError{Current: task.Status, Attempted: models.TaskStatusInProgress}
		}
		return tx.First(&out, taskID).Error
	})
	return out, err
}

// SubmitTask records the assignee's proof and moves the task to submitted.
func SubmitTask(db *gorm.DB, taskID, freelancerID uint, submission, proofURL string) (models.Task, error) {
	if submission == "" {
		return models.Task{}, validationf("نص التسليم مطلوب")
	}
	var out models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		task, err := loadAssignedTask(tx, taskID, freelancerID)
		if err != nil {
			return err
		}
		now := time.Now()
		updates := map[string]interface{}{
			"status":       models.TaskStatusSubmitted,
			"submission":   submission,
			"submitted_at": now,
		}
		if proofURL != "" {
			updates["proof_url"] = proofURL
		}
		res := tx.Model(&models.Task{}).
			Where("id = ? AND status = ?", taskID, models.TaskStatusInProgress).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidStateTransitionError{Current: task.Status, Attempted: models.TaskStatusSubmitted}
		}
		return tx.First(&out, taskID).Error
	})
	return out, err
}

// ResubmitTask reopens a rejected task so the assignee can submit fresh proof.
// Earlier rejection feedback stays in task_reviews.
func ResubmitTask(db *gorm.DB, taskID, freelancerID uint) (models.Task, error) {
	var out models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		task, err := loadAssignedTask(tx, taskID, freelancerID)
		if err != nil {
			return err
		}
		res := tx.Model(&models.Task{}).
			Where("id = ? AND status = ?", taskID, models.TaskStatusRejected).
			Updates(map[string]interface{}{
				"status":       models.TaskStatusInProgress,
				"submission":   nil,
				"proof_url":    nil,
				"submitted_at": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidStateTransitionError{Current: task.Status, Attempted: models.TaskStatusInProgress}
		}
		return tx.First(&out, taskID).Error
	})
	return out, err
}

// ApproveTask finalizes a submitted task and settles its reward: the status
// update, the assignee's pending-balance credit, the leader's commission
// credit and the ledger rows commit in one transaction. Approving a task that
// is already finalized fails with ErrAlreadyFinalized and never credits twice.
func ApproveTask(db *gorm.DB, taskID, reviewerID uint, feedback string) (models.Task, error) {
	var out models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, taskID).Error; err != nil {
			return err
		}
		if err := ensureReviewer(tx, task, reviewerID); err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Task{}).
			Where("id = ? AND status = ?", taskID, models.TaskStatusSubmitted).
			Updates(map[string]interface{}{
				"status":      models.TaskStatusApproved,
				"approved_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if task.Status == models.TaskStatusApproved || task.Status == models.TaskStatusRejected {
				return ErrAlreadyFinalized
			}
			return &InvalidStateTransitionError{Current: task.Status, Attempted: models.TaskStatusApproved}
		}

		review := models.TaskReview{TaskID: task.ID, ReviewerID: reviewerID, Action: models.ReviewActionApproved, Note: feedback}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		if task.FreelancerID == nil {
			return fmt.Errorf("task %d submitted without assignee", task.ID)
		}
		setting, err := models.GetSetting(tx)
		if err != nil {
			return err
		}

		msg := fmt.Sprintf("مكافأة المهمة: %s", task.Title)
		if err := settleCredit(tx, *task.FreelancerID, task.ID, models.CreditKindTaskReward, task.NetReward, setting.HoldDays, msg); err != nil {
			return err
		}
		notify(tx, *task.FreelancerID, models.NotifyTaskApproved, "تمت الموافقة على مهمتك",
			fmt.Sprintf("تمت الموافقة على المهمة \"%s\" وأضيفت المكافأة إلى رصيدك المعلق", task.Title))

		if task.LeaderCommission.IsPositive() && task.GroupID != nil {
			var grp models.Group
			if err := tx.First(&grp, *task.GroupID).Error; err != nil {
				return err
			}
			msg := fmt.Sprintf("عمولة قائد المجموعة عن المهمة: %s", task.Title)
			if err := settleCredit(tx, grp.LeaderID, task.ID, models.CreditKindLeaderCommission, task.LeaderCommission, setting.HoldDays, msg); err != nil {
				return err
			}
			notify(tx, grp.LeaderID, models.NotifyCommissionSettled, "تمت إضافة عمولتك",
				fmt.Sprintf("أضيفت عمولة القيادة عن المهمة \"%s\" إلى رصيدك المعلق", task.Title))
		}

		if task.ProjectID != nil {
			if err := maybeCompleteProject(tx, *task.ProjectID); err != nil {
				return err
			}
		}
		if task.CampaignID != nil {
			if err := maybeCompleteCampaign(tx, *task.CampaignID); err != nil {
				return err
			}
		}
		return tx.First(&out, taskID).Error
	})
	return out, err
}

// RejectTask sends a submitted task back with mandatory feedback. Feedback is
// appended to task_reviews so repeated rejection cycles keep their history.
func RejectTask(db *gorm.DB, taskID, reviewerID uint, feedback string) (models.Task, error) {
	if feedback == "" {
		return models.Task{}, validationf("سبب الرفض مطلوب")
	}
	var out models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, taskID).Error; err != nil {
			return err
		}
		if err := ensureReviewer(tx, task, reviewerID); err != nil {
			return err
		}
		res := tx.Model(&models.Task{}).
			Where("id = ? AND status = ?", taskID, models.TaskStatusSubmitted).
			Update("status", models.TaskStatusRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if task.Status == models.TaskStatusApproved || task.Status == models.TaskStatusRejected {
				return ErrAlreadyFinalized
			}
			return &InvalidStateTransitionError{Current: task.Status, Attempted: models.TaskStatusRejected}
		}

		review := models.TaskReview{TaskID: task.ID, ReviewerID: reviewerID, Action: models.ReviewActionRejected, Note: feedback}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		if task.FreelancerID != nil {
			notify(tx, *task.FreelancerID, models.NotifyTaskRejected, "تم رفض تسليمك",
				fmt.Sprintf("رُفض تسليم المهمة \"%s\": %s", task.Title, feedback))
		}
		return tx.First(&out, taskID).Error
	})
	return out, err
}

// loadAssignedTask loads the task under lock and verifies the caller is its
// assignee.
func loadAssignedTask(tx *gorm.DB, taskID, freelancerID uint) (models.Task, error) {
	var task models.Task
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, taskID).Error; err != nil {
		return task, err
	}
	if task.FreelancerID == nil || *task.FreelancerID != freelancerID {
		return task, ErrNotAllowed
	}
	return task, nil
}

// ensureReviewer verifies that reviewerID is the product owner of the task's
// parent (project or campaign) or the leader of the group that accepted it.
func ensureReviewer(tx *gorm.DB, task models.Task, reviewerID uint) error {
	if task.ProjectID != nil {
		var project models.Project
		if err := tx.First(&project, *task.ProjectID).Error; err != nil {
			return err
		}
		if project.OwnerID == reviewerID {
			return nil
		}
		if project.AcceptedByGroupID != nil {
			var grp models.Group
			if err := tx.First(&grp, *project.AcceptedByGroupID).Error; err != nil {
				return err
			}
			if grp.LeaderID == reviewerID {
				return nil
			}
		}
		return ErrNotAllowed
	}
	if task.CampaignID != nil {
		var campaign models.Campaign
		if err := tx.First(&campaign, *task.CampaignID).Error; err != nil {
			return err
		}
		if campaign.OwnerID == reviewerID {
			return nil
		}
		return ErrNotAllowed
	}
	return ErrNotAllowed
}

func maybeCompleteProject(tx *gorm.DB, projectID uint) error {
	var remaining int64
	if err := tx.Model(&models.Task{}).
		Where("project_id = ? AND status != ?", projectID, models.TaskStatusApproved).
		Count(&remaining).Error; err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}
	return tx.Model(&models.Project{}).
		Where("id = ? AND status IN ?", projectID, []string{models.ProjectStatusAccepted, models.ProjectStatusInProgress}).
		Update("status", models.ProjectStatusCompleted).Error
}

func maybeCompleteCampaign(tx *gorm.DB, campaignID uint) error {
	var remaining int64
	if err := tx.Model(&models.Task{}).
		Where("campaign_id = ? AND status != ?", campaignID, models.TaskStatusApproved).
		Count(&remaining).Error; err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}
	return tx.Model(&models.Campaign{}).
		Where("id = ? AND status = ?", campaignID, models.CampaignStatusActive).
		Update("status", models.CampaignStatusCompleted).Error
}
