package owners

import (
	"math"
	"net/http"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/services"
	"github.com/Yassin6up/somoo-sub001/utils"
)

// GetPackages lists the sellable campaign packages.
func GetPackages(w http.ResponseWriter, r *http.Request) {
	type pkg struct {
		Type       string `json:"type"`
		Price      string `json:"price"`
		TasksCount int    `json:"tasks_count"`
	}
	var out []pkg
	for _, t := range []string{models.PackageBasic, models.PackagePro, models.PackageGrowth} {
		spec := services.Packages()[t]
		out = append(out, pkg{Type: t, Price: spec.Price.StringFixed(2), TasksCount: spec.TasksCount})
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم جلب الباقات", Data: out})
}

type CreateCampaignRequest struct {
	Title         string `json:"title" validate:"required,nameok"`
	Description   string `json:"description"`
	PackageType   string `json:"package_type" validate:"required,oneof=basic|pro|growth"`
	TargetCountry string `json:"target_country" validate:"country"`
}

// CreateCampaign buys a package; its tasks go live immediately.
func CreateCampaign(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	var req CreateCampaignRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	campaign, err := services.CreateCampaign(database.DB, userID, req.Title, req.Description, req.PackageType, req.TargetCountry)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "تم إطلاق الحملة", Data: campaign})
}

// GetMyCampaigns lists the caller's campaigns.
func GetMyCampaigns(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	page, limit, offset := pageParams(r)

	query := database.DB.Model(&models.Campaign{}).Where("owner_id = ?", userID)
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var campaigns []models.Campaign
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&campaigns).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب حملاتك",
		Data: map[string]interface{}{
			"campaigns": campaigns,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}
