package freelancers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/services"
	"github.com/Yassin6up/somoo-sub001/utils"
)

type WithdrawalRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	AccountNumber string          `json:"account_number" validate:"required"`
}

// CreateWithdrawal reserves the amount and queues the request for an admin.
func CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	var req WithdrawalRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	wd, err := services.RequestWithdrawal(database.DB, userID, req.Amount, req.PaymentMethod, req.AccountNumber)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	wd.AccountNumber = services.MaskAccountNumber(wd.AccountNumber)
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "تم استلام طلب السحب وسيُراجع قريبًا",
		Data:    wd,
	})
}

// CancelWithdrawal lets the requester take back a still-pending withdrawal.
func CancelWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف طلب السحب غير صالح"})
		return
	}

	wd, err := services.CancelWithdrawal(database.DB, uint(id), userID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	wd.AccountNumber = services.MaskAccountNumber(wd.AccountNumber)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم إلغاء طلب السحب وإعادة المبلغ إلى رصيدك",
		Data:    wd,
	})
}

// GetWithdrawals lists the caller's withdrawal requests.
func GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	page, limit, offset := pageParams(r)

	query := database.DB.Model(&models.Withdrawal{}).Where("user_id = ?", userID)
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var withdrawals []models.Withdrawal
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&withdrawals).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	for i := range withdrawals {
		withdrawals[i].AccountNumber = services.MaskAccountNumber(withdrawals[i].AccountNumber)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب طلبات السحب",
		Data: map[string]interface{}{
			"withdrawals": withdrawals,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}
