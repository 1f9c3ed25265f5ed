package auth

import (
	"net/http"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/utils"
)

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh rotates the refresh token and returns a fresh access token.
func Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	rt, err := utils.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Code:    "invalid_refresh_token",
			Message: "جلسة غير صالحة، يرجى تسجيل الدخول مجددًا",
		})
		return
	}

	var user models.User
	if err := database.DB.First(&user, rt.UserID).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	if user.Status != "Active" {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
			Success: false,
			Code:    "account_suspended",
			Message: "تم إيقاف هذا الحساب، تواصل مع الدعم",
		})
		return
	}

	// rotate: revoke the used token, issue a new pair
	if err := database.DB.Model(&models.RefreshToken{}).
		Where("id = ?", rt.ID).Update("revoked", true).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	newRefresh, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم تجديد الجلسة",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": newRefresh,
		},
	})
}
