package owners

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/services"
	"github.com/Yassin6up/somoo-sub001/utils"
)

// GetPendingReviews lists submitted tasks the caller may review: tasks in
// their own projects or campaigns, plus tasks routed to a group they lead.
func GetPendingReviews(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	page, limit, offset := pageParams(r)

	db := database.DB
	query := db.Model(&models.Task{}).
		Where("status = ?", models.TaskStatusSubmitted).
		Where(
			db.Where("project_id IN (?)", db.Model(&models.Project{}).Select("id").Where("owner_id = ?", userID)).
				Or("campaign_id IN (?)", db.Model(&models.Campaign{}).Select("id").Where("owner_id = ?", userID)).
				Or("group_id IN (?)", db.Model(&models.Group{}).Select("id").Where("leader_id = ?", userID)),
		)

	var total int64
	query.Count(&total)

	var tasks []models.Task
	if err := query.Offset(offset).Limit(limit).Order("submitted_at ASC").Find(&tasks).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب المهام بانتظار المراجعة",
		Data: map[string]interface{}{
			"tasks": tasks,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}

type ReviewRequest struct {
	Feedback string `json:"feedback"`
}

// ApproveTask settles the submitted task into the assignee's wallet.
func ApproveTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المهمة غير صالح"})
		return
	}
	var req ReviewRequest
	if r.ContentLength > 0 {
		if err := middleware.ValidateJSON(w, r, &req); err != nil {
			return
		}
	}
	task, err := services.ApproveTask(database.DB, uint(id), userID, req.Feedback)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم اعتماد المهمة وتحويل المكافأة", Data: task})
}

// RejectTask returns the task to its assignee with mandatory feedback.
func RejectTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المهمة غير صالح"})
		return
	}
	var req ReviewRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	task, err := services.RejectTask(database.DB, uint(id), userID, req.Feedback)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم رفض المهمة وإعادتها للمنفذ", Data: task})
}
