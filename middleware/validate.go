package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Yassin6up/somoo-sub001/utils"
)

// ValidateJSON decodes a JSON payload into dst and runs the struct validator.
// Unknown fields are rejected so clients notice typos early.
func ValidateJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		utils.WriteJSON(w, http.StatusUnsupportedMediaType, utils.APIResponse{Success: false, Code: "unsupported_media_type", Message: "يجب أن يكون نوع المحتوى application/json"})
		return http.ErrNotSupported
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_json", Message: "صيغة الطلب غير صحيحة"})
		return err
	}
	if err := utils.ValidateStruct(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "validation_error", Message: "فشل التحقق من البيانات", Data: err.Error()})
		return err
	}
	return nil
}
