package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/utils"
)

func pageParams(r *http.Request) (page, limit, offset int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	page, limit, offset := pageParams(r)

	query := database.DB.Model(&models.Notification{}).Where("user_id = ?", userID)
	if r.URL.Query().Get("unread") == "true" {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	query.Count(&total)

	var notifications []models.Notification
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&notifications).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	var unread int64
	database.DB.Model(&models.Notification{}).Where("user_id = ? AND read_at IS NULL", userID).Count(&unread)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "تم جلب الإشعارات",
		Data: map[string]interface{}{
			"notifications": notifications,
			"unread_count":  unread,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}

// MarkNotificationRead marks one notification as read.
func MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف الإشعار غير صالح"})
		return
	}

	now := time.Now()
	res := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", uint(id), userID).
		Update("read_at", now)
	if res.Error != nil {
		utils.WriteServiceError(w, res.Error)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم تعليم الإشعار كمقروء"})
}

// MarkAllNotificationsRead marks every unread notification of the caller.
func MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	now := time.Now()
	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم تعليم جميع الإشعارات كمقروءة"})
}
