package controllers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/utils"
)

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Country *string `json:"country"`
	Bio     *string `json:"bio"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,pwdmin"`
}

// GetProfile returns the authenticated user's account.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب الملف الشخصي",
		Data:    user,
	})
}

// UpdateProfile applies the provided fields only; omitted fields keep their
// current value. Email and role are not editable here.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)

	var req UpdateProfileRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		check := struct {
			Name string `validate:"required,nameok"`
		}{Name: *req.Name}
		if err := utils.ValidateStruct(check); err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "validation_error", Message: "الاسم غير صالح"})
			return
		}
		updates["name"] = *req.Name
	}
	if req.Country != nil {
		check := struct {
			Country string `validate:"country"`
		}{Country: *req.Country}
		if err := utils.ValidateStruct(check); err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "validation_error", Message: "رمز الدولة غير صالح"})
			return
		}
		updates["country"] = *req.Country
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(updates) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "validation_error", Message: "لا توجد حقول لتحديثها"})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم تحديث الملف الشخصي",
		Data:    user,
	})
}

// ChangePassword verifies the current password, stores the new hash, and
// revokes every refresh token so other sessions must log in again.
func ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)

	var req ChangePasswordRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Code:    "invalid_credentials",
			Message: "كلمة المرور الحالية غير صحيحة",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("password", string(hashed)).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	_ = database.DB.Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).Update("revoked", true).Error

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم تغيير كلمة المرور، يرجى تسجيل الدخول مجددًا على الأجهزة الأخرى",
	})
}
