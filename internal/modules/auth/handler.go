package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

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
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/session", h.GetSession)
	}
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	session, err := h.service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusBadGateway, "REMOTE_ERROR", "Sign-in failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": session.Token,
		"admin": session.Admin,
	})
}

// Logout handles POST /api/v1/auth/logout.
func (h *Handler) Logout(c *gin.Context) {
	h.service.SignOut()
	response.Success(c, http.StatusOK, gin.H{
		"signed_out": true,
	})
}

// GetSession handles GET /api/v1/auth/session: resolves the bearer
// token, if any, into the current session.
func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.service.Session(c.Request.Context(), BearerToken(c))
	if err != nil {
		response.Success(c, http.StatusOK, gin.H{
			"session": nil,
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"session": session,
	})
}

// BearerToken extracts the token from the Authorization header, empty
// when absent or malformed.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
