package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/utils"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks credentials and issues an access/refresh token pair. Failed
// attempts feed the progressive account lockout.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	setting, err := models.GetSetting(database.DB)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	if setting.Maintenance {
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{
			Success: false,
			Code:    "maintenance",
			Message: "المنصة تحت الصيانة حاليًا، يرجى المحاولة لاحقًا",
		})
		return
	}

	var user models.User
	err = database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Code:    "invalid_credentials",
				Message: "البريد الإلكتروني أو كلمة المرور غير صحيحة",
			})
			return
		}
		utils.WriteServiceError(w, err)
		return
	}

	if locked, ttl := middleware.IsAccountLocked(user.ID); locked {
		utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{
			Success: false,
			Code:    "account_locked",
			Message: fmt.Sprintf("تم قفل الحساب مؤقتًا، حاول بعد %d دقيقة", int(ttl.Minutes())+1),
		})
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

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		middleware.RecordFailedLogin(user.ID)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Code:    "invalid_credentials",
			Message: "البريد الإلكتروني أو كلمة المرور غير صحيحة",
		})
		return
	}
	middleware.ResetFailedLogin(user.ID)

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم تسجيل الدخول بنجاح",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"user":          user,
		},
	})
}
