package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studiocatalog/internal/domain"
	"studiocatalog/internal/pkg/response"
	"studiocatalog/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	studios := v1.Group("/studios")
	{
		studios.GET("", h.GetStudios)
		studios.GET("/:id", h.GetStudioByID)
		studios.POST("/:id/stats/:channel", h.RecordStat)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard", h.GetDashboard)
	admin.POST("/studios", h.CreateStudio)
	admin.PUT("/studios/:id", h.UpdateStudio)
	admin.DELETE("/studios/:id", h.DeleteStudio)
}

/* ---------- PUBLIC ---------- */

// GetStudios handles GET /api/v1/studios — the home grid.
func (h *Handler) GetStudios(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"studios": h.service.All(),
		"loading": !h.service.Loaded(),
	})
}

// GetStudioByID handles GET /api/v1/studios/:id — the detail page.
// Lookup is local-only against the catalog cache.
func (h *Handler) GetStudioByID(c *gin.Context) {
	studio, ok := h.service.FindByKey(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"studio": studio,
	})
}

// RecordStat handles POST /api/v1/studios/:id/stats/:channel. The
// increment runs as a detached task: the response is 202 regardless of
// whether the remote write later succeeds, and nobody joins the
// goroutine. Engagement counting is at-most-once effort.
func (h *Handler) RecordStat(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid studio ID")
		return
	}

	channel := c.Param("channel")
	if _, ok := (domain.Stats{}).Get(channel); !ok {
		response.Error(c, http.StatusBadRequest, "UNKNOWN_CHANNEL", "Unknown stat channel")
		return
	}

	go func() {
		_ = h.service.IncrementStat(context.Background(), id, channel)
	}()

	response.Success(c, http.StatusAccepted, gin.H{
		"recorded": channel,
	})
}

/* ---------- ADMIN ---------- */

// DashboardRow is one line of the admin statistics table.
type DashboardRow struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	TotalViews     int64  `json:"total_views"`
	Views          int64  `json:"views"`
	PhoneViews     int64  `json:"phone_views"`
	AddressViews   int64  `json:"address_views"`
	InstagramViews int64  `json:"instagram_views"`
	WhatsappViews  int64  `json:"whatsapp_views"`
}

// GetDashboard handles GET /api/v1/admin/dashboard: per-studio channel
// counters sorted by total engagement, busiest studio first.
func (h *Handler) GetDashboard(c *gin.Context) {
	ranked := h.service.RankedByEngagement()

	rows := make([]DashboardRow, 0, len(ranked))
	for i := range ranked {
		s := &ranked[i]
		rows = append(rows, DashboardRow{
			ID:             s.ID,
			Name:           s.Name,
			TotalViews:     s.Stats.Total(),
			Views:          s.Stats.Views,
			PhoneViews:     s.Stats.PhoneViews,
			AddressViews:   s.Stats.AddressViews,
			InstagramViews: s.Stats.InstagramViews,
			WhatsappViews:  s.Stats.WhatsappViews,
		})
	}

	response.Success(c, http.StatusOK, gin.H{
		"studios": rows,
	})
}

// CreateStudio handles POST /api/v1/admin/studios.
func (h *Handler) CreateStudio(c *gin.Context) {
	var req CreateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	studio, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"studio": studio,
	})
}

// UpdateStudio handles PUT /api/v1/admin/studios/:id.
func (h *Handler) UpdateStudio(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid studio ID")
		return
	}

	var req UpdateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	studio, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"studio": studio,
	})
}

// DeleteStudio handles DELETE /api/v1/admin/studios/:id.
func (h *Handler) DeleteStudio(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid studio ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"deleted": id,
	})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio not found")
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrAddressRequired), errors.Is(err, ErrUnknownChannel):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusBadGateway, "REMOTE_ERROR", "Remote store operation failed")
	}
}
