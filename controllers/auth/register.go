package auth

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,nameok"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwdmin"`
	Role     string `json:"role" validate:"required,oneof=freelancer|product_owner"`
	Country  string `json:"country" validate:"country"`
	Phone    string `json:"phone"`
}

// Register creates a user account. Freelancers get their wallet lazily on
// first settlement, so nothing money-related is created here.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	setting, err := models.GetSetting(database.DB)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	if setting.ClosedRegister {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
			Success: false,
			Code:    "registration_closed",
			Message: "التسجيل مغلق حاليًا، يرجى المحاولة لاحقًا",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var existing models.User
	err = database.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{
			Success: false,
			Code:    "email_taken",
			Message: "البريد الإلكتروني مسجل مسبقًا",
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteServiceError(w, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
		Role:     req.Role,
		Country:  strings.ToUpper(req.Country),
		Status:   "Active",
	}
	if p := strings.TrimSpace(req.Phone); p != "" {
		user.Phone = &p
	}
	if err := database.DB.Create(&user).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "تم إنشاء الحساب بنجاح",
		Data:    user,
	})
}
