package http

import (
	"net/http"

	"feed-planner/pkg/logger"
	"feed-planner/services/upload/internal/usecase"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadUseCase usecase.UploadUseCase
	backend       string
	logger        *logger.Logger
}

func NewUploadHandler(uploadUseCase usecase.UploadUseCase, backend string, logger *logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUseCase,
		backend:       backend,
		logger:        logger,
	}
}

// Upload godoc
// @Summary      Upload a media file
// @Description  Forwards the multipart body to the external file host (or stores it in S3) and returns the public URL
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        fileToUpload formData file true "Media file"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.backend == "s3" {
		h.uploadToStorage(c)
		return
	}

	url, err := h.uploadUseCase.Forward(c.Request.Context(), c.GetHeader("Content-Type"), c.Request.Body)
	if err != nil {
		h.logger.Error("Upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

func (h *UploadHandler) uploadToStorage(c *gin.Context) {
	file, header, err := c.Request.FormFile("fileToUpload")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileToUpload is required"})
		return
	}
	defer file.Close()

	url, err := h.uploadUseCase.Store(c.Request.Context(), header.Filename, file, header.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("Upload to storage failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
