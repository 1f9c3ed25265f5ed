package admins

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

// GetWithdrawals lists withdrawal requests for review.
func GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	query := database.DB.Model(&models.Withdrawal{}).
		Joins("JOIN users ON users.id = withdrawals.user_id")
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("withdrawals.status = ?", status)
	}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		query = query.Where("withdrawals.user_id = ?", userID)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		query = query.Where("withdrawals.reference_id LIKE ?", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	type withdrawalRow struct {
		models.Withdrawal
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}
	var rows []withdrawalRow
	err := query.
		Select("withdrawals.*, users.name as user_name, users.email as user_email").
		Offset(offset).Limit(limit).
		Order("withdrawals.created_at DESC").
		Find(&rows).Error
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب طلبات السحب",
		Data: map[string]interface{}{
			"withdrawals": rows,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}

// ApproveWithdrawal marks a pending withdrawal as paid out.
func ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	adminID, _ := utils.GetAdminID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف طلب السحب غير صالح"})
		return
	}

	wd, err := services.ApproveWithdrawal(database.DB, uint(id), adminID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تمت الموافقة على طلب السحب", Data: wd})
}

type RejectWithdrawalRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RejectWithdrawal refuses a pending withdrawal and releases the reservation.
func RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	adminID, _ := utils.GetAdminID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف طلب السحب غير صالح"})
		return
	}
	var req RejectWithdrawalRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	wd, err := services.RejectWithdrawal(database.DB, uint(id), adminID, req.Reason)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم رفض طلب السحب وإعادة المبلغ", Data: wd})
}
