package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studiocatalog/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/images", h.UploadImage)
}

// UploadImage handles POST /api/v1/admin/images. The auth middleware
// has already run, so a missing admin_id here means a wiring bug, not
// a user error.
func (h *Handler) UploadImage(c *gin.Context) {
	adminID := c.GetInt64("admin_id")
	if adminID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No file provided")
		return
	}

	url, err := h.service.Upload(adminID, fh)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"url": url,
	})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyFile),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrUnsupportedType),
		errors.Is(err, ErrDecode):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrKeyExists):
		response.Error(c, http.StatusConflict, "KEY_EXISTS", err.Error())
	default:
		response.Error(c, http.StatusBadGateway, "UPLOAD_FAILED", "Image upload failed")
	}
}
