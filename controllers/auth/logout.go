package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/utils"
)

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout revokes the current access token's jti and, when provided, the
// refresh token. Runs behind the auth middleware so the token is known valid.
func Logout(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	if claims, err := utils.ValidateAccessToken(tokenStr); err == nil {
		if jti, ok := claims["jti"].(string); ok && jti != "" {
			ttl := 15 * time.Minute
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				if d := time.Until(exp.Time); d > 0 {
					ttl = d
				}
			}
			_ = utils.RevokeJTI(jti, ttl)
		}
	}

	var req LogoutRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.RefreshToken != "" {
		_ = database.DB.Model(&models.RefreshToken{}).
			Where("id = ?", req.RefreshToken).Update("revoked", true).Error
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم تسجيل الخروج",
	})
}

// LogoutAll revokes every refresh token of the authenticated user.
func LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Code: "unauthorized", Message: "يجب تسجيل الدخول أولاً"})
		return
	}
	if err := database.DB.Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).Update("revoked", true).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم تسجيل الخروج من جميع الأجهزة",
	})
}
