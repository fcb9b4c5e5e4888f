package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port              string
	CORSAllowOrigin   []string
	Env               string
	DatabaseURL       string
	ObjectStoreType   string
	LocalStoreDir     string
	AWSRegion         string
	StorageBucket     string
	S3Prefix          string
	S3Endpoint        string
	S3ForcePathStyle  bool
	PresignExpires    time.Duration
	PresignACL        string
	ShutdownTimeout   time.Duration
	RateLimitRPS      float64
	RateLimitBurst    int
	PresignRateRPS    float64
	PresignRateBurst  int
	RateLimitCapacity int
}

var envFiles = []string{".env", "cmd/.env"}

// Load reads configuration from environment variables with sensible defaults.
// Values from local .env files are merged underneath the process environment.
func Load() Config {
	v := viper.New()
	v.SetConfigType("env")
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("config: ignoring %s: %v", path, err)
		}
	}
	v.AutomaticEnv()
	setDefaults(v)

	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is not set; catalog routes will answer 503")
	}

	bucket := strings.TrimSpace(v.GetString("STORAGE_BUCKET_NAME"))
	if bucket == "" {
		bucket = strings.TrimSpace(v.GetString("S3_BUCKET"))
	}

	return Config{
		Port:              v.GetString("PORT"),
		CORSAllowOrigin:   splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		Env:               env,
		DatabaseURL:       dbURL,
		ObjectStoreType:   normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:     v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:         strings.TrimSpace(v.GetString("AWS_REGION")),
		StorageBucket:     bucket,
		S3Prefix:          strings.TrimSpace(v.GetString("S3_PREFIX")),
		S3Endpoint:        strings.TrimSpace(v.GetString("S3_ENDPOINT")),
		S3ForcePathStyle:  v.GetBool("S3_FORCE_PATH_STYLE"),
		PresignExpires:    v.GetDuration("PRESIGN_EXPIRES"),
		PresignACL:        strings.TrimSpace(v.GetString("PRESIGN_ACL")),
		ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
		RateLimitRPS:      v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:    v.GetInt("RATE_LIMIT_BURST"),
		PresignRateRPS:    v.GetFloat64("PRESIGN_RATE_LIMIT_RPS"),
		PresignRateBurst:  v.GetInt("PRESIGN_RATE_LIMIT_BURST"),
		RateLimitCapacity: v.GetInt("RATE_LIMIT_CAPACITY"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("OBJECT_STORE", "s3")
	v.SetDefault("LOCAL_STORE_DIR", "./data")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("PRESIGN_EXPIRES", "600s")
	v.SetDefault("PRESIGN_ACL", "public-read")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("PRESIGN_RATE_LIMIT_RPS", 5)
	v.SetDefault("PRESIGN_RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_CAPACITY", 10000)
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "local":
		return "local"
	default:
		return "s3"
	}
}

// IsDevLike reports whether env allows in-memory fallbacks.
func IsDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
