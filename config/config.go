// config.go - Handles configuration for the blog backend

package config // Declares the package name

import ( // Import required packages
	"os"      // For reading environment variables
	"strconv" // For parsing numeric and boolean values

	"github.com/joho/godotenv" // Loads a local .env file into the environment
)

type Config struct { // Config struct holds all configuration values
	Port string // Address the HTTP server listens on

	DBDriver string // sqlite or postgres
	DBPath   string // Path to the SQLite database file
	DBDSN    string // Postgres connection string

	JWTSecret    string // Secret key for JWT authentication
	JWTTTLHours  int    // Lifetime of issued tokens
	AuthRequired bool   // When true, callers must present a bearer token on mutating routes

	CreateAdmin   bool   // Seed a default admin on startup
	AdminEmail    string // Seeded admin email
	AdminPassword string // Seeded admin password

	LogLevel string // debug, info, notice, warning, error
	LogDir   string // Directory for the log file; empty disables file logging

	MediaDriver  string // local or minio
	MediaDir     string // Root directory for the local media store
	MediaBaseURL string // Public URL prefix of stored media
	S3Endpoint   string // MinIO / S3 endpoint
	S3AccessKey  string
	S3SecretKey  string
	S3Bucket     string
	S3UseSSL     bool

	MQTTBroker   string // Address of the MQTT broker; empty disables event publishing
	MQTTClientID string // Client id used when connecting to the broker

	MetricsEnabled bool // Expose /metrics and record request metrics
}

func Load() *Config { // Load reads config from environment variables or uses defaults
	_ = godotenv.Load() // A missing .env file is fine; real env vars always win

	return &Config{
		Port: getEnv("PORT", ":8080"),

		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBPath:   getEnv("DB_PATH", "blog.db"),
		DBDSN:    getEnv("DB_DSN", "host=localhost user=blog password=blog dbname=blog port=5432 sslmode=disable"),

		JWTSecret:    getEnv("JWT_SECRET", "supersecret"),
		JWTTTLHours:  getEnvInt("JWT_TTL_HOURS", 72),
		AuthRequired: getEnvBool("AUTH_REQUIRED", false),

		CreateAdmin:   getEnvBool("CREATE_ADMIN", false),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@blog.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   getEnv("LOG_DIR", ""),

		MediaDriver:  getEnv("MEDIA_DRIVER", "local"),
		MediaDir:     getEnv("MEDIA_DIR", "uploads"),
		MediaBaseURL: getEnv("MEDIA_BASE_URL", "http://localhost:8080/uploads"),
		S3Endpoint:   getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey:  getEnv("S3_ACCESS_KEY", "minio"),
		S3SecretKey:  getEnv("S3_SECRET_KEY", "minio123"),
		S3Bucket:     getEnv("S3_BUCKET", "blog-media"),
		S3UseSSL:     getEnvBool("S3_USE_SSL", false),

		MQTTBroker:   getEnv("MQTT_BROKER", ""),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "go-blog-backend"),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string { // Helper to get env var or fallback
	if value := os.Getenv(key); value != "" { // If env var is set, use it
		return value
	}
	return fallback // Otherwise, use fallback value
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil { // Unset or unparsable
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
