package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"upload-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	if svc == nil {
		svc = NewService()
	}
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/healthz", h.healthz)
	r.GET("/ping", h.ping)
}

func (h *Handler) healthz(c *gin.Context) {
	respond.OK(c, h.Svc.Status())
}

func (h *Handler) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
