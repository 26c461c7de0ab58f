package app

import (
	"time"

	"github.com/yungbote/edulearn-backend/internal/data/db"
	"github.com/yungbote/edulearn-backend/internal/observability"
	"github.com/yungbote/edulearn-backend/internal/platform/envutil"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type Config struct {
	Port string

	Postgres    db.PostgresConfig
	AutoMigrate bool

	JWTSecretKey   string
	AccessTokenTTL time.Duration
	BcryptCost     int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	ObjectStorageMode   string
	GCSBucketName       string
	CDNDomain           string
	GCSCredentials      string
	StorageEmulatorHost string
	StoragePublicURL    string
	LocalMediaDir       string
	LocalMediaBaseURL   string

	Metrics     observability.MetricsConfig
	MetricsAddr string
	Otel        observability.OtelConfig

	AllowedOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	port := envutil.String("PORT", "8080", log)
	return Config{
		Port: port,

		Postgres: db.PostgresConfig{
			Host:            envutil.String("POSTGRES_HOST", "localhost", log),
			Port:            envutil.String("POSTGRES_PORT", "5432", log),
			User:            envutil.String("POSTGRES_USER", "postgres", log),
			Password:        envutil.String("POSTGRES_PASSWORD", "", log),
			Name:            envutil.String("POSTGRES_NAME", "edulearn", log),
			SSLMode:         envutil.String("POSTGRES_SSLMODE", "disable", log),
			MaxOpenConns:    envutil.Int("POSTGRES_MAX_OPEN_CONNS", 25, log),
			MaxIdleConns:    envutil.Int("POSTGRES_MAX_IDLE_CONNS", 10, log),
			ConnMaxLifetime: envutil.Seconds("POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute, log),
		},
		AutoMigrate: envutil.Bool("AUTO_MIGRATE", true, log),

		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL: envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour, log),
		BcryptCost:     envutil.Int("BCRYPT_COST", 0, log),

		RedisAddr:     envutil.String("REDIS_ADDR", "", log),
		RedisPassword: envutil.String("REDIS_PASSWORD", "", log),
		RedisDB:       envutil.Int("REDIS_DB", 0, log),
		RedisChannel:  envutil.String("REDIS_CHANNEL", "edulearn:sse", log),

		ObjectStorageMode:   envutil.String("OBJECT_STORAGE_MODE", string(storageModeLocal), log),
		GCSBucketName:       envutil.String("GCS_BUCKET_NAME", "", log),
		CDNDomain:           envutil.String("CDN_DOMAIN", "", log),
		GCSCredentials:      gcsCredentials(log),
		StorageEmulatorHost: envutil.String("STORAGE_EMULATOR_HOST", "", log),
		StoragePublicURL:    envutil.String("OBJECT_STORAGE_PUBLIC_BASE_URL", "", log),
		LocalMediaDir:       envutil.String("LOCAL_MEDIA_DIR", "./media", log),
		LocalMediaBaseURL:   envutil.String("LOCAL_MEDIA_BASE_URL", "http://localhost:"+port+"/media", log),

		Metrics: observability.MetricsConfig{
			Enabled:          envutil.Bool("METRICS_ENABLED", false, log),
			ScrapeInterval:   envutil.Seconds("METRICS_SCRAPE_INTERVAL", 10*time.Second, log),
			LatencyThreshold: time.Duration(envutil.Float("METRICS_LATENCY_THRESHOLD_SECONDS", 0.5, log) * float64(time.Second)),
		},
		MetricsAddr: envutil.String("METRICS_ADDR", "", log),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "edulearn", log),
			Environment: envutil.String("OTEL_ENVIRONMENT", "development", log),
			Version:     envutil.String("SERVICE_VERSION", "dev", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1, log),
		},

		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil, log),
	}
}

func gcsCredentials(log *logger.Logger) string {
	if v := envutil.String("GOOGLE_APPLICATION_CREDENTIALS_JSON", "", log); v != "" {
		return v
	}
	return envutil.String("GOOGLE_APPLICATION_CREDENTIALS", "", log)
}
