package objects

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"upload-backend/internal/shared/metrics"
	"upload-backend/internal/shared/server/middleware"
	"upload-backend/internal/shared/server/respond"
	"upload-backend/internal/shared/storage/object"
	"upload-backend/internal/shared/telemetry"
	"upload-backend/internal/shared/util"
)

const defaultContentType = "application/octet-stream"

// Handler streams stored objects back to the caller.
type Handler struct {
	Store object.Store
}

func NewHandler(store object.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/files/*filename", h.get)
}

func (h *Handler) get(c *gin.Context) {
	key, err := util.NormalizeKey(c.Param("filename"))
	if err != nil {
		metrics.IncObjectFetch("invalid")
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}
	c.Set("storageKey", key)

	if h.Store == nil {
		h.fail(c, key, object.ErrNotConfigured)
		return
	}

	obj, err := h.Store.Open(c.Request.Context(), key)
	if err != nil {
		h.fail(c, key, err)
		return
	}
	defer obj.Body.Close()

	contentType := strings.TrimSpace(obj.ContentType)
	if contentType == "" {
		contentType = defaultContentType
	}

	metrics.IncObjectFetch("ok")
	c.DataFromReader(http.StatusOK, obj.ContentLength, contentType, obj.Body, nil)
}

func (h *Handler) fail(c *gin.Context, key string, err error) {
	fields := map[string]any{
		"request_id":  middleware.RequestIDFromContext(c),
		"storage_key": key,
		"error":       err,
	}
	switch {
	case errors.Is(err, object.ErrNotFound):
		metrics.IncObjectFetch("not_found")
		respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
	case errors.Is(err, object.ErrNotConfigured):
		metrics.IncObjectFetch("unconfigured")
		telemetry.Error("objects.store.unconfigured", fields)
		respond.Error(c, http.StatusInternalServerError, "internal_error", "file retrieval unavailable", nil)
	default:
		metrics.IncObjectFetch("upstream_error")
		telemetry.Error("objects.fetch.failed", fields)
		respond.Error(c, http.StatusBadGateway, "upstream_error", "failed to retrieve file", nil)
	}
}
