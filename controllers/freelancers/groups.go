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

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,nameok"`
	Description string `json:"description"`
	MaxMembers  int    `json:"max_members"`
}

// CreateGroup makes the caller the leader of a new group.
func CreateGroup(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	var req CreateGroupRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	grp, err := services.CreateGroup(database.DB, userID, req.Name, req.Description, req.MaxMembers)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "تم إنشاء المجموعة", Data: grp})
}

// JoinGroup adds the caller to an existing group.
func JoinGroup(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المجموعة غير صالح"})
		return
	}
	grp, err := services.JoinGroup(database.DB, uint(id), userID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "انضممت إلى المجموعة", Data: grp})
}

// GetMyGroups lists the groups the caller belongs to.
func GetMyGroups(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)

	var groups []models.Group
	err := database.DB.
		Where("id IN (?)", database.DB.Model(&models.GroupMember{}).Select("group_id").Where("user_id = ?", userID)).
		Find(&groups).Error
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم جلب مجموعاتك", Data: groups})
}

// GetGroupMembers lists a group's members, visible to members only.
func GetGroupMembers(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المجموعة غير صالح"})
		return
	}

	var membership models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", uint(id), userID).First(&membership).Error; err != nil {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Code: "authorization_error", Message: "يجب أن تكون عضوًا في المجموعة"})
		return
	}

	type memberRow struct {
		UserID   uint   `json:"user_id"`
		Name     string `json:"name"`
		JoinedAt string `json:"joined_at"`
	}
	var members []memberRow
	err = database.DB.Model(&models.GroupMember{}).
		Joins("JOIN users ON users.id = group_members.user_id").
		Where("group_members.group_id = ?", uint(id)).
		Select("group_members.user_id, users.name, group_members.joined_at").
		Scan(&members).Error
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم جلب أعضاء المجموعة", Data: members})
}

// GetOpenProjects lists pending projects a leader can accept.
func GetOpenProjects(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	query := database.DB.Model(&models.Project{}).Where("status = ?", models.ProjectStatusPending)
	if c := r.URL.Query().Get("country"); c != "" {
		query = query.Where("target_country = ?", c)
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
		Message: "تم جلب المشاريع المفتوحة",
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

// AcceptProject lets a group leader take a pending project for their group.
func AcceptProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المشروع غير صالح"})
		return
	}
	project, err := services.AcceptProject(database.DB, uint(id), userID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم قبول المشروع وتوزيع المهام على المجموعة", Data: project})
}
