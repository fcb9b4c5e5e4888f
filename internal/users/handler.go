package users

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"upload-backend/internal/shared/server/middleware"
	"upload-backend/internal/shared/server/respond"
	"upload-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.create)
	rg.GET("/users/:id", h.get)
}

type createUserRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) create(c *gin.Context) {
	if h.Svc == nil {
		respond.Unavailable(c, "user directory")
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		req.ID = middleware.UserIDFromContext(c)
	}

	user, err := h.Svc.Ensure(c.Request.Context(), User{ID: req.ID, Name: req.Name})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		telemetry.Error("users.ensure.failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    req.ID,
			"error":      err,
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save user", nil)
		return
	}
	respond.Created(c, user)
}

func (h *Handler) get(c *gin.Context) {
	if h.Svc == nil {
		respond.Unavailable(c, "user directory")
		return
	}
	user, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			telemetry.Error("users.get.failed", map[string]any{
				"request_id": middleware.RequestIDFromContext(c),
				"user_id":    c.Param("id"),
				"error":      err,
			})
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		}
		return
	}
	respond.OK(c, user)
}
