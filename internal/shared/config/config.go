package config

import (
	"os"
	"strconv"
	"strings"

	"career-recommender/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin []string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	ModelKey        string
	VectorizerKey   string
	LabelEncoderKey string

	CatalogPath string
	LogoPath    string

	FeedbackStore   string
	FeedbackLogPath string
	DatabaseURL     string

	MaxUploadBytes int64
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	feedbackStore := normalizeFeedbackStore(getEnv("FEEDBACK_STORE", "file"))

	if feedbackStore == "postgres" && dbURL == "" {
		telemetry.Warn("config.feedback_store", map[string]any{
			"message": "FEEDBACK_STORE=postgres without DATABASE_URL; falling back to file",
		})
		feedbackStore = "file"
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("MODEL_DIR", "./models"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		ModelKey:        getEnv("MODEL_KEY", "career_model.json"),
		VectorizerKey:   getEnv("VECTORIZER_KEY", "vectorizer.json"),
		LabelEncoderKey: getEnv("LABEL_ENCODER_KEY", "label_encoder.json"),
		CatalogPath:     getEnv("CATALOG_PATH", ""),
		LogoPath:        getEnv("LOGO_PATH", "logo.png"),
		FeedbackStore:   feedbackStore,
		FeedbackLogPath: getEnv("FEEDBACK_LOG_PATH", "feedback_log.txt"),
		DatabaseURL:     dbURL,
		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst:  int(getEnvInt64("RATE_LIMIT_BURST", 10)),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		telemetry.Warn("config.invalid_value", map[string]any{"key": key, "value": raw})
		return def
	}
	return v
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		telemetry.Warn("config.invalid_value", map[string]any{"key": key, "value": raw})
		return def
	}
	return v
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
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeFeedbackStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg", "db":
		return "postgres"
	default:
		return "file"
	}
}
