package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"

	"upload-backend/internal/files"
	"upload-backend/internal/objects"
	"upload-backend/internal/services/health"
	"upload-backend/internal/shared/config"
	"upload-backend/internal/shared/server"
	"upload-backend/internal/shared/storage/db"
	"upload-backend/internal/shared/storage/object"
	localstore "upload-backend/internal/shared/storage/object/local"
	s3store "upload-backend/internal/shared/storage/object/s3"
	"upload-backend/internal/uploads"
	"upload-backend/internal/users"
)

// App holds the wired dependency graph. FilesService and UsersService are nil
// when no metadata store is available; their routes then answer 503.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Store        object.Store
	Issuer       *uploads.Issuer
	FilesService *files.Service
	UsersService *users.Service
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	return BuildContext(context.Background(), cfg)
}

// BuildContext is Build with a caller-supplied context for the connect,
// migrate and AWS config steps.
func BuildContext(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "s3"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s3Client, err := buildS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  buildStore(cfg, s3Client),
		Issuer: uploads.NewIssuer(s3Client, cfg.StorageBucket, cfg.S3Prefix, uploads.Options{
			Expires: cfg.PresignExpires,
			ACL:     cfg.PresignACL,
		}),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		HealthHandler:  health.NewHandler(health.NewService()),
		FilesHandler:   files.NewHandler(app.FilesService),
		UsersHandler:   users.NewHandler(app.UsersService),
		UploadsHandler: uploads.NewHandler(app.Issuer),
		ObjectsHandler: objects.NewHandler(app.Store),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
		} else {
			log.Printf("bootstrap: DATABASE_URL empty; catalog routes will answer 503")
		}
		return nil, nil
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// buildS3Client returns nil when no bucket is configured; the issuer and the
// S3 store then report their own configuration errors per request.
func buildS3Client(ctx context.Context, cfg config.Config) (*s3.Client, error) {
	if strings.TrimSpace(cfg.StorageBucket) == "" {
		log.Printf("bootstrap: STORAGE_BUCKET_NAME empty; presign and S3 retrieval disabled")
		return nil, nil
	}
	return s3store.NewClient(ctx, s3store.ClientOptions{
		Region:         cfg.AWSRegion,
		Endpoint:       cfg.S3Endpoint,
		ForcePathStyle: cfg.S3ForcePathStyle,
	})
}

func buildStore(cfg config.Config, client *s3.Client) object.Store {
	switch cfg.ObjectStoreType {
	case "local":
		return localstore.New(cfg.LocalStoreDir)
	default:
		return s3store.New(client, cfg.StorageBucket, cfg.S3Prefix)
	}
}

func buildServices(app *App) {
	switch {
	case app.DB != nil:
		app.UsersService = users.NewService(&users.PGRepo{DB: app.DB})
		app.FilesService = files.NewService(&files.PGRepo{DB: app.DB})
	case config.IsDevLike(app.Config.Env):
		userRepo := users.NewMemoryRepo()
		app.UsersService = users.NewService(userRepo)
		app.FilesService = files.NewService(files.NewMemoryRepo(userRepo))
	}
}
