package controllers

import (
	"errors"
	"net/http"

	"petfectly_server/services"
	"petfectly_server/utils"
)

// UploadController hands out presigned photo URLs
type UploadController struct {
	S3 *services.S3Service
}

// NewUploadController initializes the controller
func NewUploadController(s3 *services.S3Service) *UploadController {
	return &UploadController{S3: s3}
}

// GeneratePresignedURL handles requests for upload URLs
func (c *UploadController) GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := utils.DecodeJSON(r, &request); err != nil || request.FileName == "" {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	url, key, err := c.S3.GenerateUploadURL(r.Context(), request.FileName, request.FileType)
	if errors.Is(err, services.ErrUnsupportedFileType) {
		utils.WriteError(w, http.StatusBadRequest, "Only image files are allowed!")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to generate presigned URL")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// GetPresignedReadURL handles requests for read URLs
func (c *UploadController) GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Key string `json:"key"`
	}
	if err := utils.DecodeJSON(r, &request); err != nil || request.Key == "" {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	url, err := c.S3.GenerateReadURL(r.Context(), request.Key)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to generate presigned URL")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"url": url})
}
