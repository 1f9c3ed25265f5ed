package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Yassin6up/somoo-sub001/controllers/owners"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
)

// OwnersRoutes registers product-owner routes. Review endpoints stay on the
// general authed surface because group leaders review project tasks too.
func OwnersRoutes(api *mux.Router) {
	apiLimiter := middleware.NewIPRateLimiter(300, time.Minute)

	authed := func(h http.HandlerFunc) http.Handler {
		return apiLimiter.Middleware(middleware.AuthMiddleware(h))
	}
	ownerOnly := func(h http.HandlerFunc) http.Handler {
		return apiLimiter.Middleware(middleware.AuthMiddleware(
			middleware.RequireRole(models.RoleProductOwner, h)))
	}

	// Projects
	api.Handle("/projects", ownerOnly(owners.CreateProject)).Methods(http.MethodPost)
	api.Handle("/projects/mine", ownerOnly(owners.GetMyProjects)).Methods(http.MethodGet)
	api.Handle("/projects/{id:[0-9]+}", ownerOnly(owners.GetProject)).Methods(http.MethodGet)
	api.Handle("/projects/{id:[0-9]+}/cancel", ownerOnly(owners.CancelProject)).Methods(http.MethodPost)

	// Campaigns
	api.Handle("/packages", authed(owners.GetPackages)).Methods(http.MethodGet)
	api.Handle("/campaigns", ownerOnly(owners.CreateCampaign)).Methods(http.MethodPost)
	api.Handle("/campaigns/mine", ownerOnly(owners.GetMyCampaigns)).Methods(http.MethodGet)

	// Reviews (owner or group leader; the service checks which)
	api.Handle("/reviews/pending", authed(owners.GetPendingReviews)).Methods(http.MethodGet)
	api.Handle("/tasks/{id:[0-9]+}/approve", authed(owners.ApproveTask)).Methods(http.MethodPost)
	api.Handle("/tasks/{id:[0-9]+}/reject", authed(owners.RejectTask)).Methods(http.MethodPost)
}
