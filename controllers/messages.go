package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/middleware"
	"github.com/Yassin6up/somoo-sub001/models"
	"github.com/Yassin6up/somoo-sub001/utils"
)

// GetConversations lists the caller's conversations, most recent first.
func GetConversations(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)

	var conversations []models.Conversation
	err := database.DB.
		Where("owner_id = ? OR freelancer_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&conversations).Error
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم جلب المحادثات", Data: conversations})
}

type StartConversationRequest struct {
	RecipientID uint   `json:"recipient_id"`
	ProjectID   *uint  `json:"project_id,omitempty"`
	Content     string `json:"content" validate:"required"`
}

// StartConversation opens (or reuses) a conversation with another user and
// sends the first message. The product owner side is always stored as
// OwnerID regardless of who initiates.
func StartConversation(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	role := utils.GetUserRole(r)

	var req StartConversationRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.RecipientID == 0 || req.RecipientID == userID {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "validation_error", Message: "المستلم غير صالح"})
		return
	}

	var recipient models.User
	if err := database.DB.First(&recipient, req.RecipientID).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	ownerID, freelancerID := userID, req.RecipientID
	if role == models.RoleFreelancer {
		ownerID, freelancerID = req.RecipientID, userID
	}

	var conv models.Conversation
	err := database.DB.
		Where("owner_id = ? AND freelancer_id = ?", ownerID, freelancerID).
		First(&conv).Error
	if err != nil {
		conv = models.Conversation{
			OwnerID:       ownerID,
			FreelancerID:  freelancerID,
			ProjectID:     req.ProjectID,
			LastMessageAt: time.Now(),
		}
		if err := database.DB.Create(&conv).Error; err != nil {
			utils.WriteServiceError(w, err)
			return
		}
	}

	msg := models.Message{
		ConversationID: conv.ID,
		SenderID:       userID,
		Content:        req.Content,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	database.DB.Model(&conv).Update("last_message_at", time.Now())

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "تم إرسال الرسالة",
		Data: map[string]interface{}{
			"conversation": conv,
			"message":      msg,
		},
	})
}

// GetMessages returns a conversation's messages and marks the other side's
// messages as read.
func GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المحادثة غير صالح"})
		return
	}

	var conv models.Conversation
	if err := database.DB.First(&conv, uint(id)).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	if conv.OwnerID != userID && conv.FreelancerID != userID {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Code: "authorization_error", Message: "غير مصرح لك بعرض هذه المحادثة"})
		return
	}

	var messages []models.Message
	if err := database.DB.Where("conversation_id = ?", conv.ID).Order("created_at ASC").Find(&messages).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	now := time.Now()
	database.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conv.ID, userID).
		Update("read_at", now)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "تم جلب الرسائل", Data: messages})
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// SendMessage appends a message to an existing conversation.
func SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_id", Message: "معرّف المحادثة غير صالح"})
		return
	}
	var req SendMessageRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var conv models.Conversation
	if err := database.DB.First(&conv, uint(id)).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	if conv.OwnerID != userID && conv.FreelancerID != userID {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Code: "authorization_error", Message: "غير مصرح لك بالكتابة في هذه المحادثة"})
		return
	}

	msg := models.Message{
		ConversationID: conv.ID,
		SenderID:       userID,
		Content:        req.Content,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	database.DB.Model(&conv).Update("last_message_at", time.Now())

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "تم إرسال الرسالة", Data: msg})
}
