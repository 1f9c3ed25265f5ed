package admins

import (
	"math"
	"net/http"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/utils"
)

// GetProjects lists all projects for oversight.
func GetProjects(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	query := database.DB.Model(&models.Project{}).
		Joins("JOIN users ON users.id = projects.owner_id")
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("projects.status = ?", status)
	}

	var total int64
	query.Count(&total)

	type projectRow struct {
		models.Project
		OwnerName string `json:"owner_name"`
	}
	var rows []projectRow
	err := query.
		Select("projects.*, users.name as owner_name").
		Offset(offset).Limit(limit).
		Order("projects.created_at DESC").
		Find(&rows).Error
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب المشاريع",
		Data: map[string]interface{}{
			"projects": rows,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}
