package files

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"upload-backend/internal/shared/server/middleware"
	"upload-backend/internal/shared/server/respond"
	"upload-backend/internal/shared/telemetry"
)

// Handler wires the catalog routes. A nil Svc answers 503.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files", h.list)
	rg.POST("/files", h.create)
}

func (h *Handler) list(c *gin.Context) {
	if h.Svc == nil {
		respond.Unavailable(c, "file catalog")
		return
	}

	search := c.Query("search")
	if search == "" {
		search = c.Query("q")
	}
	q := ListQuery{
		Page:     atoiOr(c.Query("page"), 1),
		PageSize: atoiOr(c.Query("pageSize"), DefaultPageSize),
		Search:   search,
		UserID:   c.Query("userId"),
		FolderID: c.Query("folderId"),
	}

	page, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		telemetry.Error("files.list.failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"error":      err,
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list files", nil)
		return
	}
	respond.OK(c, page)
}

type createFileRequest struct {
	OriginalName string `json:"originalName"`
	StorageKey   string `json:"storageKey"`
	S3Key        string `json:"s3Key"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	FolderID     string `json:"folderId"`
	MimeType     string `json:"mimeType"`
	Size         *int64 `json:"size"`
}

func (h *Handler) create(c *gin.Context) {
	if h.Svc == nil {
		respond.Unavailable(c, "file catalog")
		return
	}

	var req createFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	storageKey := req.StorageKey
	if storageKey == "" {
		storageKey = req.S3Key
	}

	rec, err := h.Svc.Create(c.Request.Context(), CreateInput{
		OriginalName: req.OriginalName,
		StorageKey:   storageKey,
		UserID:       req.UserID,
		UserName:     req.UserName,
		FolderID:     req.FolderID,
		MimeType:     req.MimeType,
		Size:         req.Size,
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		telemetry.Error("files.create.failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    req.UserID,
			"error":      err,
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save file", nil)
		return
	}

	c.Set("fileId", rec.ID)
	c.Set("storageKey", rec.StorageKey)
	respond.Created(c, rec)
}
