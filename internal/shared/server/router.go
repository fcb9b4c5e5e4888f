package server

import (
	"github.com/gin-gonic/gin"

	"upload-backend/internal/files"
	"upload-backend/internal/objects"
	"upload-backend/internal/services/health"
	"upload-backend/internal/shared/config"
	"upload-backend/internal/shared/metrics"
	"upload-backend/internal/shared/server/middleware"
	"upload-backend/internal/uploads"
	"upload-backend/internal/users"
)

const presignGroup = "PRESIGN"

// RouterDeps carries the handlers the router mounts. A nil catalog or user
// handler is mounted with a nil service so its routes answer 503.
type RouterDeps struct {
	Config         config.Config
	HealthHandler  *health.Handler
	FilesHandler   *files.Handler
	UsersHandler   *users.Handler
	UploadsHandler *uploads.Handler
	ObjectsHandler *objects.Handler
	RateLimiter    *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(nil, cfg.RateLimitCapacity, 0)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Identity(),
		middleware.Logging(),
		middleware.Recovery(),
		metrics.Middleware(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT":    {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
				presignGroup: {Rate: cfg.PresignRateRPS, Burst: cfg.PresignRateBurst},
			},
			GroupFor: func(c *gin.Context) string {
				if c.FullPath() == "/presigned-url" {
					return presignGroup
				}
				return ""
			},
			Limiter: limiter,
		}),
	)

	healthHandler := deps.HealthHandler
	if healthHandler == nil {
		healthHandler = health.NewHandler(nil)
	}
	filesHandler := deps.FilesHandler
	if filesHandler == nil {
		filesHandler = files.NewHandler(nil)
	}
	usersHandler := deps.UsersHandler
	if usersHandler == nil {
		usersHandler = users.NewHandler(nil)
	}
	uploadsHandler := deps.UploadsHandler
	if uploadsHandler == nil {
		uploadsHandler = uploads.NewHandler(nil)
	}
	objectsHandler := deps.ObjectsHandler
	if objectsHandler == nil {
		objectsHandler = objects.NewHandler(nil)
	}

	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", metrics.Handler())
	uploadsHandler.RegisterRoutes(r)
	objectsHandler.RegisterRoutes(r)

	api := r.Group("/api")
	filesHandler.RegisterRoutes(api)
	usersHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
