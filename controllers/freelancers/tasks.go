package freelancers

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

func pageParams(r *http.Request) (page, limit, offset int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

func taskIDFromPath(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// GetAvailableTasks lists open tasks the caller can take: campaign tasks plus
// project tasks assigned to a group the caller belongs to.
func GetAvailableTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	page, limit, offset := pageParams(r)

	query := database.DB.Model(&models.Task{}).
		Where("status = ?", models.TaskStatusAvailable).
		Where("campaign_id IS NOT NULL OR group_id IN (?)",
			database.DB.Model(&models.GroupMember{}).Select("group_id").Where("user_id = ?", userID))

	var total int64
	query.Count(&total)

	var tasks []models.Task
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&tasks).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب المهام المتاحة",
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

// GetMyTasks lists the caller's tasks, optionally filtered by status.
func GetMyTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	page, limit, offset := pageParams(r)

	query := database.DB.Model(&models.Task{}).Where("freelancer_id = ?", userID)
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var tasks []models.Task
	if err := query.Offset(offset).Limit(limit).Order("updated_at DESC").Find(&tasks).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب مهامك",
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

// AcceptTask claims an available task for the caller.
func AcceptTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	taskID, ok := taskIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المهمة غير صالح"})
		return
	}
	task, err := services.AcceptTask(database.DB, taskID, userID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم قبول المهمة", Data: task})
}

// StartTask moves an assigned task to in_progress.
func StartTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	taskID, ok := taskIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المهمة غير صالح"})
		return
	}
	task, err := services.StartTask(database.DB, taskID, userID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم بدء العمل على المهمة", Data: task})
}

type SubmitTaskRequest struct {
	Submission string `json:"submission" validate:"required"`
	ProofURL   string `json:"proof_url"`
}

// SubmitTask hands the work in for review.
func SubmitTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	taskID, ok := taskIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المهمة غير صالح"})
		return
	}
	var req SubmitTaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	task, err := services.SubmitTask(database.DB, taskID, userID, req.Submission, req.ProofURL)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم إرسال المهمة للمراجعة", Data: task})
}

// ResubmitTask reopens a rejected task so the caller can rework it.
func ResubmitTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	taskID, ok := taskIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المهمة غير صالح"})
		return
	}
	task, err := services.ResubmitTask(database.DB, taskID, userID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "يمكنك الآن إعادة العمل على المهمة", Data: task})
}

// GetTaskReviews returns the review history of one of the caller's tasks.
func GetTaskReviews(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	taskID, ok := taskIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المهمة غير صالح"})
		return
	}
	var task models.Task
	if err := database.DB.First(&task, taskID).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	if task.FreelancerID == nil || *task.FreelancerID != userID {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Code: "authorization_error", Message: "غير مصرح لك بعرض هذه المهمة"})
		return
	}
	var reviews []models.TaskReview
	if err := database.DB.Where("task_id = ?", taskID).Order("created_at ASC").Find(&reviews).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم جلب سجل المراجعات", Data: reviews})
}
