package uploads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"upload-backend/internal/shared/metrics"
	"upload-backend/internal/shared/server/middleware"
	"upload-backend/internal/shared/server/respond"
	"upload-backend/internal/shared/telemetry"
)

type Handler struct {
	Issuer *Issuer
}

func NewHandler(issuer *Issuer) *Handler {
	return &Handler{Issuer: issuer}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/presigned-url", h.presign)
}

type presignRequest struct {
	Key       string `json:"key"`
	ExpiresIn int64  `json:"expiresIn"`
	ACL       string `json:"acl"`
}

type presignResponse struct {
	PresignedURL string            `json:"presignedUrl"`
	Key          string            `json:"key"`
	ExpiresIn    int64             `json:"expiresIn"`
	Method       string            `json:"method"`
	Headers      map[string]string `json:"headers,omitempty"`
}

func (h *Handler) presign(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	cred, err := h.Issuer.Issue(c.Request.Context(), req.Key, Options{
		Expires: expiresFromSeconds(req.ExpiresIn),
		ACL:     req.ACL,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrConfiguration):
			metrics.IncPresignFailed()
			respond.Error(c, http.StatusInternalServerError, "internal_error", "uploads not configured", nil)
		default:
			metrics.IncPresignFailed()
			telemetry.Error("uploads.presign.failed", map[string]any{
				"request_id": middleware.RequestIDFromContext(c),
				"key":        req.Key,
				"error":      err,
			})
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate upload url", nil)
		}
		return
	}

	metrics.IncPresignIssued()
	c.Set("storageKey", cred.Key)
	respond.OK(c, presignResponse{
		PresignedURL: cred.URL,
		Key:          cred.Key,
		ExpiresIn:    int64(cred.Expires.Seconds()),
		Method:       cred.Method,
		Headers:      cred.Headers,
	})
}
