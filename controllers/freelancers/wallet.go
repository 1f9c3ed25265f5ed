package freelancers

import (
	"math"
	"net/http"
	"time"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/services"
	"github.com/Yassin6up/somoo-sub001/utils"
)

// GetWallet returns the caller's wallet. Due credits are matured first so the
// numbers are current even between sweep runs.
func GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)

	if _, err := services.MatureWalletCredits(database.DB, userID, time.Now()); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	wallet, err := services.GetOrCreateWallet(database.DB, userID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم جلب المحفظة", Data: wallet})
}

// GetWalletCredits lists the caller's credits with their maturity dates.
func GetWalletCredits(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	page, limit, offset := pageParams(r)

	wallet, err := services.GetOrCreateWallet(database.DB, userID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	query := database.DB.Model(&models.WalletCredit{}).Where("wallet_id = ?", wallet.ID)
	if r.URL.Query().Get("pending") == "true" {
		query = query.Where("matured_at IS NULL")
	}

	var total int64
	query.Count(&total)

	var credits []models.WalletCredit
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&credits).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب الأرصدة",
		Data: map[string]interface{}{
			"credits": credits,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}

// GetTransactions lists the caller's ledger entries.
func GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	page, limit, offset := pageParams(r)

	query := database.DB.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if t := r.URL.Query().Get("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var total int64
	query.Count(&total)

	var trxs []models.Transaction
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&trxs).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب سجل العمليات",
		Data: map[string]interface{}{
			"transactions": trxs,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}
