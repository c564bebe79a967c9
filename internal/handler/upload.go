package handler

import (
	"fmt"
	"net/http"

	"stockline-api/internal/service"
	"stockline-api/pkg/apierror"
	"stockline-api/pkg/response"
)

// maxUploadMemory bounds how much of a multipart body is held in memory;
// larger files spill to temporary disk storage.
const maxUploadMemory = 32 << 20 // 32 MiB

// UploadHandler handles file upload HTTP requests.
type UploadHandler struct {
	uploadService *service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// Upload handles POST /uploadfile/
//
// Accepts a multipart form with a "file" field and stores the contents
// under the client-supplied filename, overwriting any existing file of
// that name.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.Error(w, apierror.BadRequest("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, apierror.BadRequest("file field is required"))
		return
	}
	defer file.Close()

	path, err := h.uploadService.SaveFile(r.Context(), header.Filename, file)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"status":    "success",
		"message":   fmt.Sprintf("File '%s' uploaded successfully.", header.Filename),
		"file_path": path,
	})
}
