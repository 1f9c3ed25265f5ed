package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Yassin6up/somoo-sub001/utils"
)

// AdminAuthMiddleware verifies the request carries a valid admin token.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Code: "unauthorized", Message: "يجب تسجيل الدخول أولاً"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		claims, err := utils.ValidateAccessToken(tokenStr)
		if err != nil {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Code: "unauthorized", Message: "رمز الدخول غير صالح"})
			return
		}
		role, _ := claims["role"].(string)
		if role != "admin" {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Code: "authorization_error", Message: "هذه الواجهة مخصصة للمشرفين"})
			return
		}
		adminID := int64(utils.ClaimUint(claims, "id"))
		if adminID == 0 {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Code: "unauthorized", Message: "رمز الدخول غير صالح"})
			return
		}

		ctx := context.WithValue(r.Context(), utils.AdminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
