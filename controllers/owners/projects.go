package owners

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

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

type CreateProjectRequest struct {
	Title         string          `json:"title" validate:"required,nameok"`
	Description   string          `json:"description"`
	Budget        decimal.Decimal `json:"budget"`
	TasksCount    int             `json:"tasks_count"`
	TargetCountry string          `json:"target_country" validate:"country"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
}

// CreateProject posts a project with a freeform budget. The commission split
// is only computed when a group leader accepts it.
func CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	var req CreateProjectRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Budget.LessThanOrEqual(decimal.Zero) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "validation_error", Message: "ميزانية المشروع يجب أن تكون أكبر من صفر"})
		return
	}
	if req.TasksCount < 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "validation_error", Message: "عدد المهام غير صالح"})
		return
	}

	project := models.Project{
		OwnerID:       userID,
		Title:         req.Title,
		Description:   req.Description,
		Budget:        req.Budget.Round(2),
		TasksCount:    req.TasksCount,
		TargetCountry: req.TargetCountry,
		Deadline:      req.Deadline,
		Status:        models.ProjectStatusPending,
	}
	if err := database.DB.Create(&project).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "تم نشر المشروع", Data: project})
}

// GetMyProjects lists the caller's projects.
func GetMyProjects(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	page, limit, offset := pageParams(r)

	query := database.DB.Model(&models.Project{}).Where("owner_id = ?", userID)
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var projects []models.Project
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&projects).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب مشاريعك",
		Data: map[string]interface{}{
			"projects": projects,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}

// GetProject returns one of the caller's projects with its task progress.
func GetProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المشروع غير صالح"})
		return
	}

	var project models.Project
	if err := database.DB.First(&project, uint(id)).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	if project.OwnerID != userID {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Code: "authorization_error", Message: "غير مصرح لك بعرض هذا المشروع"})
		return
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var counts []statusCount
	database.DB.Model(&models.Task{}).
		Where("project_id = ?", project.ID).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب المشروع",
		Data: map[string]interface{}{
			"project":       project,
			"task_progress": counts,
		},
	})
}

// CancelProject cancels a still-pending project.
func CancelProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المشروع غير صالح"})
		return
	}
	project, err := services.CancelProject(database.DB, uint(id), userID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم إلغاء المشروع", Data: project})
}
