package admins

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/utils"
)

// GetDashboard returns platform-wide counters for the back office landing
// page.
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var (
		totalUsers         int64
		totalFreelancers   int64
		totalOwners        int64
		totalProjects      int64
		activeCampaigns    int64
		pendingWithdrawals int64
		submittedTasks     int64
		approvedTasks      int64
	)
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.User{}).Where("role = ?", models.RoleFreelancer).Count(&totalFreelancers)
	db.Model(&models.User{}).Where("role = ?", models.RoleProductOwner).Count(&totalOwners)
	db.Model(&models.Project{}).Count(&totalProjects)
	db.Model(&models.Campaign{}).Where("status = ?", models.CampaignStatusActive).Count(&activeCampaigns)
	db.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalStatusPending).Count(&pendingWithdrawals)
	db.Model(&models.Task{}).Where("status = ?", models.TaskStatusSubmitted).Count(&submittedTasks)
	db.Model(&models.Task{}).Where("status = ?", models.TaskStatusApproved).Count(&approvedTasks)

	type sumRow struct {
		Total decimal.Decimal
	}
	var fees sumRow
	db.Model(&models.Task{}).
		Where("status = ?", models.TaskStatusApproved).
		Select("COALESCE(SUM(platform_fee), 0) as total").
		Scan(&fees)

	var paidOut sumRow
	db.Model(&models.Withdrawal{}).
		Where("status = ?", models.WithdrawalStatusCompleted).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&paidOut)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب الإحصائيات",
		Data: map[string]interface{}{
			"total_users":          totalUsers,
			"total_freelancers":    totalFreelancers,
			"total_product_owners": totalOwners,
			"total_projects":       totalProjects,
			"active_campaigns":     activeCampaigns,
			"pending_withdrawals":  pendingWithdrawals,
			"submitted_tasks":      submittedTasks,
			"approved_tasks":       approvedTasks,
			"platform_fees_earned": fees.Total,
			"total_paid_out":       paidOut.Total,
		},
	})
}
