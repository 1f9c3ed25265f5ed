package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Yassin6up/somoo-sub001/utils"
)

const maxProofSize = 5 << 20 // 5 MiB

var allowedProofExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".pdf":  true,
}

// UploadProof stores a task proof file in R2 and returns the object URL to
// attach to a submission.
func UploadProof(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserID(r)

	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_upload", Message: "حجم الملف يتجاوز الحد المسموح"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_upload", Message: "الملف مطلوب"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedProofExt[ext] {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Code: "invalid_upload", Message: "نوع الملف غير مدعوم"})
		return
	}

	objectName := fmt.Sprintf("proofs/%d/%s%s", userID, uuid.NewString(), ext)
	if err := utils.UploadToR2(r.Context(), objectName, file); err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	url, err := utils.SignedR2URL(r.Context(), objectName, 24*time.Hour)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "تم رفع الملف",
		Data: map[string]interface{}{
			"object_name": objectName,
			"url":         url,
		},
	})
}
