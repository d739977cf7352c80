package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	CatalogSource   string
	CatalogFile     string
	CatalogCacheTTL time.Duration

	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	MigrationsDir string

	RedisURL      string
	RedisAddr     string
	RedisPassword string

	JWTSecret     string
	JWTExpiry     time.Duration
	SessionTTL    time.Duration
	SweepInterval time.Duration

	ProcessingDelay       time.Duration
	ConfirmationDelay     time.Duration
	FreeDeliveryThreshold decimal.Decimal

	AssetDir            string
	AssetBaseURL        string
	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	OriginURL string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	AppConfig = FromEnv()
}

// FromEnv builds a Config from the current process environment without
// touching AppConfig.
func FromEnv() *Config {
	threshold, err := decimal.NewFromString(getEnv("FREE_DELIVERY_THRESHOLD", "500"))
	if err != nil {
		threshold = decimal.NewFromInt(500)
	}

	return &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		Port:     getEnv("APP_PORT", getEnv("PORT", "8082")),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CatalogSource:   getEnv("CATALOG_SOURCE", "fixture"),
		CatalogFile:     getEnv("CATALOG_FILE", ""),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5454"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "farm_fresh"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "database/migration"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		JWTExpiry:     getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),

		ProcessingDelay:       getEnvDuration("CHECKOUT_PROCESSING_DELAY", 2*time.Second),
		ConfirmationDelay:     getEnvDuration("CHECKOUT_CONFIRMATION_DELAY", 3*time.Second),
		FreeDeliveryThreshold: threshold,

		AssetDir:            getEnv("ASSET_DIR", "./assets"),
		AssetBaseURL:        getEnv("ASSET_BASE_URL", "/assets"),
		CloudinaryURL:       getEnv("CLOUDINARY_URL", ""),
		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "farm-fresh"),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		SMTPFrom: getEnv("SMTP_FROM", ""),

		OriginURL: getEnv("ORIGIN_URL", ""),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}
