package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Yassin6up/somoo-sub001/controllers"
	"github.com/Yassin6up/somoo-sub001/controllers/auth"
	"github.com/Yassin6up/somoo-sub001/controllers/freelancers"
	"github.com/Yassin6up/somoo-sub001/middleware"
)

// UsersRoutes registers auth, freelancer, and shared user routes.
func UsersRoutes(api *mux.Router) {
	// Login/register limiter: 60 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	// General API limiter per IP
	apiLimiter := middleware.NewIPRateLimiter(300, time.Minute)

	authed := func(h http.HandlerFunc) http.Handler {
		return apiLimiter.Middleware(middleware.AuthMiddleware(h))
	}

	// Register & Login
	api.Handle("/register", loginLimiter.Middleware(http.HandlerFunc(auth.Register))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(auth.Login))).Methods(http.MethodPost)
	api.Handle("/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.Refresh))).Methods(http.MethodPost)
	api.Handle("/logout", authed(auth.Logout)).Methods(http.MethodPost)
	api.Handle("/logout-all", authed(auth.LogoutAll)).Methods(http.MethodPost)

	// Profile
	api.Handle("/users/profile", authed(controllers.GetProfile)).Methods(http.MethodGet)
	api.Handle("/users/profile", authed(controllers.UpdateProfile)).Methods(http.MethodPut)
	api.Handle("/users/change-password", authed(controllers.ChangePassword)).Methods(http.MethodPost)

	// Tasks
	api.Handle("/tasks/available", authed(freelancers.GetAvailableTasks)).Methods(http.MethodGet)
	api.Handle("/tasks/mine", authed(freelancers.GetMyTasks)).Methods(http.MethodGet)
	api.Handle("/tasks/{id:[0-9]+}/accept", authed(freelancers.AcceptTask)).Methods(http.MethodPost)
	api.Handle("/tasks/{id:[0-9]+}/start", authed(freelancers.StartTask)).Methods(http.MethodPost)
	api.Handle("/tasks/{id:[0-9]+}/submit", authed(freelancers.SubmitTask)).Methods(http.MethodPost)
	api.Handle("/tasks/{id:[0-9]+}/resubmit", authed(freelancers.ResubmitTask)).Methods(http.MethodPost)
	api.Handle("/tasks/{id:[0-9]+}/reviews", authed(freelancers.GetTaskReviews)).Methods(http.MethodGet)

	// Wallet & ledger
	api.Handle("/wallet", authed(freelancers.GetWallet)).Methods(http.MethodGet)
	api.Handle("/wallet/credits", authed(freelancers.GetWalletCredits)).Methods(http.MethodGet)
	api.Handle("/wallet/transactions", authed(freelancers.GetTransactions)).Methods(http.MethodGet)

	// Withdrawals
	api.Handle("/withdrawals", authed(freelancers.CreateWithdrawal)).Methods(http.MethodPost)
	api.Handle("/withdrawals", authed(freelancers.GetWithdrawals)).Methods(http.MethodGet)
	api.Handle("/withdrawals/{id:[0-9]+}/cancel", authed(freelancers.CancelWithdrawal)).Methods(http.MethodPost)

	// Groups
	api.Handle("/groups", authed(freelancers.CreateGroup)).Methods(http.MethodPost)
	api.Handle("/groups/mine", authed(freelancers.GetMyGroups)).Methods(http.MethodGet)
	api.Handle("/groups/{id:[0-9]+}/join", authed(freelancers.JoinGroup)).Methods(http.MethodPost)
	api.Handle("/groups/{id:[0-9]+}/members", authed(freelancers.GetGroupMembers)).Methods(http.MethodGet)

	// Open projects for group leaders
	api.Handle("/projects/open", authed(freelancers.GetOpenProjects)).Methods(http.MethodGet)
	api.Handle("/projects/{id:[0-9]+}/accept", authed(freelancers.AcceptProject)).Methods(http.MethodPost)

	// Uploads
	api.Handle("/uploads/proof", authed(controllers.UploadProof)).Methods(http.MethodPost)

	// Messaging
	api.Handle("/conversations", authed(controllers.GetConversations)).Methods(http.MethodGet)
	api.Handle("/conversations", authed(controllers.StartConversation)).Methods(http.MethodPost)
	api.Handle("/conversations/{id:[0-9]+}/messages", authed(controllers.GetMessages)).Methods(http.MethodGet)
	api.Handle("/conversations/{id:[0-9]+}/messages", authed(controllers.SendMessage)).Methods(http.MethodPost)

	// Notifications
	api.Handle("/notifications", authed(controllers.GetNotifications)).Methods(http.MethodGet)
	api.Handle("/notifications/read-all", authed(controllers.MarkAllNotificationsRead)).Methods(http.MethodPost)
	api.Handle("/notifications/{id:[0-9]+}/read", authed(controllers.MarkNotificationRead)).Methods(http.MethodPost)
}
