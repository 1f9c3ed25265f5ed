package services

import (
	"log"

	"gorm.io/gorm"

	"github.com/Yassin6up/somoo-sub001/models"
)

// notify records an in-app notification. Best effort: a failed insert is
// logged and never fails the surrounding money operation.
func notify(db *gorm.DB, userID uint, kind, title, body string) {
	n := models.Notification{UserID: userID, Kind: kind, Title: title, Body: body}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("[notify] failed to record %s for user %d: %v", kind, userID, err)
	}
}
