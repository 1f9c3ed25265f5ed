package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Yassin6up/somoo-sub001/controllers/admins"
	"github.com/Yassin6up/somoo-sub001/middleware"
)

func SetAdminRoutes(api *mux.Router) {
	// Admin login limiter: 5 attempts per IP per minute
	adminLoginLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(admins.Login))).Methods(http.MethodPost)

	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	adminRouter.Handle("/dashboard", http.HandlerFunc(admins.GetDashboard)).Methods(http.MethodGet)

	// User management
	adminRouter.Handle("/users", http.HandlerFunc(admins.GetUsers)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}/status", http.HandlerFunc(admins.UpdateUserStatus)).Methods(http.MethodPut)
	adminRouter.Handle("/users/{id:[0-9]+}/wallet", http.HandlerFunc(admins.GetUserWallet)).Methods(http.MethodGet)

	// Withdrawal processing
	adminRouter.Handle("/withdrawals", http.HandlerFunc(admins.GetWithdrawals)).Methods(http.MethodGet)
	adminRouter.Handle("/withdrawals/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveWithdrawal)).Methods(http.MethodPost)
	adminRouter.Handle("/withdrawals/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectWithdrawal)).Methods(http.MethodPost)

	// Oversight
	adminRouter.Handle("/projects", http.HandlerFunc(admins.GetProjects)).Methods(http.MethodGet)

	// Platform settings
	adminRouter.Handle("/settings", http.HandlerFunc(admins.GetSettings)).Methods(http.MethodGet)
	adminRouter.Handle("/settings", http.HandlerFunc(admins.UpdateSettings)).Methods(http.MethodPut)
}
