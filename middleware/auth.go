package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Yassin6up/somoo-sub001/utils"
)

// AuthMiddleware validates the bearer token and injects the user id and role
// into the request context. Admin tokens are rejected here; admins use the
// /admin surface.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Code: "unauthorized", Message: "يجب تسجيل الدخول أولاً"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		claims, err := utils.ValidateAccessToken(tokenStr)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Code: "session_expired", Message: "انتهت جلستك، يرجى تسجيل الدخول مجددًا"})
				return
			}
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Code: "unauthorized", Message: "رمز الدخول غير صالح"})
			return
		}

		userID := utils.ClaimUint(claims, "id")
		role, _ := claims["role"].(string)
		if userID == 0 || role == "admin" {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Code: "authorization_error", Message: "غير مصرح بالوصول"})
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, userID)
		ctx = context.WithValue(ctx, utils.UserRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole wraps a handler and rejects callers whose token role does not
// match. Used to keep owner-only endpoints off the freelancer surface.
func RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if utils.GetUserRole(r) != role {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Code: "authorization_error", Message: "غير مصرح لك بتنفيذ هذه العملية"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
