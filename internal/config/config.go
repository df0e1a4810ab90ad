package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds settings for resolving the request principal from bearer tokens.
// Token issuance happens in a separate identity service; this service only verifies.
type AuthConfig struct {
	JWTSecret string
}

// QuotaConfig holds the per-user view-rate ceilings evaluated against the
// access log. Injected rather than declared as package constants so tests can
// exercise different ceilings.
//
// DailyContentLimit (distinct contents per day) is declared but not enforced
// anywhere; it is carried pending a product decision.
type QuotaConfig struct {
	DailyStreamLimit     int
	PerContentDailyLimit int
	DailyContentLimit    int
}

// WatermarkConfig describes the presentation policy of the per-viewer stamp.
// pdfcpu positions text by anchor keyword plus offset; AnchorXFraction against
// RefPageWidthPt yields the horizontal inset from the left-center anchor.
type WatermarkConfig struct {
	FontName        string
	FontSize        int
	Opacity         float64
	Rotation        float64
	FillColor       string
	AnchorXFraction float64
	RefPageWidthPt  float64
}

// PaginationConfig holds page-chunk delivery settings.
type PaginationConfig struct {
	// PageChunkSize bounds per-request PDF processing cost while keeping
	// round-trip count low for typical document lengths.
	PageChunkSize int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost    string
	Port       string
	Timezone   string
	Database   DatabaseConfig
	MinIO      MinIOConfig
	Auth       AuthConfig
	Quota      QuotaConfig
	Watermark  WatermarkConfig
	Pagination PaginationConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"), // default only for non-sensitive value
		Timezone: getEnv("APP_TIMEZONE", ""),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Quota: QuotaConfig{
			DailyStreamLimit:     getEnvInt("QUOTA_DAILY_STREAM_LIMIT", 100),
			PerContentDailyLimit: getEnvInt("QUOTA_PER_CONTENT_DAILY_LIMIT", 10),
			DailyContentLimit:    getEnvInt("QUOTA_DAILY_CONTENT_LIMIT", 50),
		},
		Watermark: WatermarkConfig{
			FontName:        getEnv("WATERMARK_FONT", "Helvetica"),
			FontSize:        getEnvInt("WATERMARK_FONT_SIZE", 12),
			Opacity:         getEnvFloat("WATERMARK_OPACITY", 0.15),
			Rotation:        getEnvFloat("WATERMARK_ROTATION", -45),
			FillColor:       getEnv("WATERMARK_FILL_COLOR", "#b0b0b0"),
			AnchorXFraction: getEnvFloat("WATERMARK_ANCHOR_X_FRACTION", 0.1),
			RefPageWidthPt:  getEnvFloat("WATERMARK_REF_PAGE_WIDTH_PT", 612),
		},
		Pagination: PaginationConfig{
			PageChunkSize: getEnvInt("PAGE_CHUNK_SIZE", 15),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
