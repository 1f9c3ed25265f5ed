package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/Yassin6up/somoo-sub001/services"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteServiceError maps a business error from the services package to an
// HTTP status, a machine-readable code and an Arabic message. Unknown errors
// are treated as infrastructure failures.
func WriteServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	var serr *services.InvalidStateTransitionError

	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Code: "validation_error", Message: verr.Message})
	case errors.As(err, &serr):
		WriteJSON(w, http.StatusConflict, APIResponse{
			Success: false,
			Code:    "invalid_state_transition",
			Message: "لا يمكن تنفيذ هذه العملية في الحالة الحالية",
			Data:    map[string]interface{}{"current": serr.Current, "attempted": serr.Attempted},
		})
	case errors.Is(err, services.ErrAlreadyFinalized):
		WriteJSON(w, http.StatusConflict, APIResponse{Success: false, Code: "already_finalized", Message: "تمت مراجعة هذه المهمة مسبقًا"})
	case errors.Is(err, services.ErrAlreadyProcessed):
		WriteJSON(w, http.StatusConflict, APIResponse{Success: false, Code: "already_processed", Message: "تمت معالجة هذا الطلب مسبقًا"})
	case errors.Is(err, services.ErrInsufficientFunds):
		WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Code: "insufficient_funds", Message: "رصيدك غير كافٍ لإتمام العملية"})
	case errors.Is(err, services.ErrInvalidGroupSize):
		WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Code: "invalid_group_size", Message: "لا يمكن توزيع المهام على مجموعة بدون أعضاء"})
	case errors.Is(err, services.ErrInvalidBudget):
		WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Code: "invalid_budget", Message: "قيمة الميزانية غير صالحة"})
	case errors.Is(err, services.ErrNotAllowed):
		WriteJSON(w, http.StatusForbidden, APIResponse{Success: false, Code: "authorization_error", Message: "غير مصرح لك بتنفيذ هذه العملية"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		WriteJSON(w, http.StatusNotFound, APIResponse{Success: false, Code: "not_found", Message: "العنصر المطلوب غير موجود"})
	default:
		WriteJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Code: "internal_error", Message: "حدث خطأ في النظام، حاول مرة أخرى"})
	}
}

// GetStringValue returns the value of a nullable string pointer or empty string if nil.
func GetStringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
