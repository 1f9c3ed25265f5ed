package controllers

import (
	"net/http"
	"os"
	"time"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/services"
	"github.com/Yassin6up/somoo-sub001/utils"
)

// MatureCredits runs the maturation sweep on demand. Protected by a shared
// key so an external scheduler can trigger it alongside the in-process cron.
func MatureCredits(w http.ResponseWriter, r *http.Request) {
	key := os.Getenv("CRON_KEY")
	if key == "" || r.Header.Get("X-CRON-KEY") != key {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Code: "authorization_error", Message: "غير مصرح"})
		return
	}

	matured, err := services.MatureDueCredits(database.DB, time.Now())
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "اكتمل تحويل الأرصدة المستحقة",
		Data:    map[string]interface{}{"matured": matured},
	})
}
