package admins

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/utils"
)

// GetSettings returns the singleton platform configuration.
func GetSettings(w http.ResponseWriter, r *http.Request) {
	setting, err := models.GetSetting(database.DB)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم جلب الإعدادات", Data: setting})
}

type UpdateSettingsRequest struct {
	PlatformFeeRate    *decimal.Decimal `json:"platform_fee_rate,omitempty"`
	ProjectLeaderRate  *decimal.Decimal `json:"project_leader_rate,omitempty"`
	CampaignLeaderRate *decimal.Decimal `json:"campaign_leader_rate,omitempty"`
	HoldDays           *int             `json:"hold_days,omitempty"`
	MinWithdraw        *decimal.Decimal `json:"min_withdraw,omitempty"`
	MaxWithdraw        *decimal.Decimal `json:"max_withdraw,omitempty"`
	Maintenance        *bool            `json:"maintenance,omitempty"`
	ClosedRegister     *bool            `json:"closed_register,omitempty"`
}

// UpdateSettings patches the configuration row. Rate changes only affect
// projects accepted and credits settled after the change.
func UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	updates := map[string]interface{}{}
	if req.PlatformFeeRate != nil {
		if req.PlatformFeeRate.IsNegative() || req.PlatformFeeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "validation_error", Message: "نسبة عمولة المنصة يجب أن تكون بين 0 و 1"})
			return
		}
		updates["platform_fee_rate"] = *req.PlatformFeeRate
	}
	if req.ProjectLeaderRate != nil {
		if req.ProjectLeaderRate.IsNegative() || req.ProjectLeaderRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "validation_error", Message: "نسبة عمولة قائد المجموعة يجب أن تكون بين 0 و 1"})
			return
		}
		updates["project_leader_rate"] = *req.ProjectLeaderRate
	}
	if req.CampaignLeaderRate != nil {
		updates["campaign_leader_rate"] = *req.CampaignLeaderRate
	}
	if req.HoldDays != nil {
		if *req.HoldDays < 0 || *req.HoldDays > 90 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "validation_error", Message: "مدة الحجز يجب أن تكون بين 0 و 90 يومًا"})
			return
		}
		updates["hold_days"] = *req.HoldDays
	}
	if req.MinWithdraw != nil {
		updates["min_withdraw"] = *req.MinWithdraw
	}
	if req.MaxWithdraw != nil {
		updates["max_withdraw"] = *req.MaxWithdraw
	}
	if req.Maintenance != nil {
		updates["maintenance"] = *req.Maintenance
	}
	if req.ClosedRegister != nil {
		updates["closed_register"] = *req.ClosedRegister
	}
	if len(updates) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "validation_error", Message: "لا توجد حقول لتحديثها"})
		return
	}

	setting, err := models.GetSetting(database.DB)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	if err := database.DB.Model(&setting).Updates(updates).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	updated, err := models.GetSetting(database.DB)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم تحديث الإعدادات", Data: updated})
}
