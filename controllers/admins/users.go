package admins

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
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

// GetUsers lists platform users with filters.
func GetUsers(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	query := database.DB.Model(&models.User{})
	if role := r.URL.Query().Get("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		query = query.Where("name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&users).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب المستخدمين",
		Data: map[string]interface{}{
			"users": users,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Active|Suspended"`
}

// UpdateUserStatus suspends or reactivates an account.
func UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المستخدم غير صالح"})
		return
	}
	var req UpdateUserStatusRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	res := database.DB.Model(&models.User{}).Where("id = ?", uint(id)).Update("status", req.Status)
	if res.Error != nil {
		utils.WriteServiceError(w, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Code: "not_found", Message: "المستخدم غير موجود"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم تحديث حالة المستخدم"})
}

// GetUserWallet shows a user's wallet and recent ledger entries.
func GetUserWallet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المستخدم غير صالح"})
		return
	}

	var wallet models.Wallet
	if err := database.DB.Where("user_id = ?", uint(id)).First(&wallet).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	var trxs []models.Transaction
	database.DB.Where("user_id = ?", uint(id)).Order("created_at DESC").Limit(50).Find(&trxs)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب محفظة المستخدم",
		Data: map[string]interface{}{
			"wallet":       wallet,
			"transactions": trxs,
		},
	})
}
