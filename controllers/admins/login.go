package admins

import (
	"net/http"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/utils"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a back office admin.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	admin, err := models.GetAdminByUsername(database.DB, req.Username)
	if err != nil || !admin.ValidatePassword(req.Password) {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Code:    "invalid_credentials",
			Message: "اسم المستخدم أو كلمة المرور غير صحيحة",
		})
		return
	}

	token, err := utils.GenerateAccessToken(uint(admin.ID), "admin")
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم تسجيل الدخول بنجاح",
		Data: map[string]interface{}{
			"access_token": token,
			"admin":        admin,
		},
	})
}
