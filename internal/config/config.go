package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP configuration
	HTTPPort string
	BaseURL  string

	// YDB configuration
	YDBEndpoint         string
	YDBDatabasePath     string
	YDBAutoCreateTables bool

	// S3/Storage configuration
	S3Endpoint         string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3Region           string
	S3Bucket           string
	LocalMediaRoot     string

	// Redis configuration (metadata job queue)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Twilio Verify configuration
	TwilioAccountSID       string
	TwilioAuthToken        string
	TwilioVerifyServiceSID string

	// Email/Postbox configuration (deletion request notifications)
	SESEndpoint        string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
	EmailFrom          string

	// Telegram configuration (error alerts)
	TelegramBotToken    string
	TelegramAdminChatID string

	// JWT configuration
	JWTSecretKey string

	// Background sweep configuration
	SubscriptionSweepInterval time.Duration
	AuditSweepInterval        time.Duration
	AuditRetentionDays        int
	WorkerPoolSize            int

	// Subscription defaults
	GracePeriodDays int

	// Metadata prober
	FFProbePath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	s3Endpoint := getEnv("AL_S3_ENDPOINT", "https://storage.yandexcloud.net")
	if !strings.HasPrefix(s3Endpoint, "http://") && !strings.HasPrefix(s3Endpoint, "https://") {
		s3Endpoint = "https://" + s3Endpoint
		log.Printf("WARN: AL_S3_ENDPOINT was missing a protocol scheme. Prepending 'https://'. New endpoint: %s", s3Endpoint)
	}

	return &Config{
		HTTPPort: getEnv("AL_HTTP_PORT", "8080"),
		BaseURL:  getEnv("AL_API_BASE_URL", "https://api.auralink.app"),

		YDBEndpoint:         getEnv("AL_YDB_ENDPOINT", ""),
		YDBDatabasePath:     getEnv("AL_YDB_DATABASE_PATH", ""),
		YDBAutoCreateTables: getEnvBool("AL_YDB_AUTO_CREATE_TABLES", false),

		S3Endpoint:         s3Endpoint,
		AWSAccessKeyID:     getEnv("AL_SA_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AL_SA_KEY", ""),
		S3Region:           getEnv("AL_S3_REGION", "ru-central1"),
		S3Bucket:           getEnv("AL_S3_BUCKET", "auralink-videos"),
		LocalMediaRoot:     getEnv("AL_MEDIA_ROOT", "media/videos"),

		RedisAddr:     getEnv("AL_REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("AL_REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("AL_REDIS_DB", 0, 0, 15),

		TwilioAccountSID:       getEnv("AL_TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:        getEnv("AL_TWILIO_AUTH_TOKEN", ""),
		TwilioVerifyServiceSID: getEnv("AL_TWILIO_VERIFY_SERVICE_SID", ""),

		SESEndpoint:        getEnv("AL_POSTBOX_ENDPOINT", ""),
		SESRegion:          getEnv("AL_POSTBOX_REGION", "ru-central1"),
		SESAccessKeyID:     getEnv("AL_POSTBOX_ACCESS_KEY_ID", ""),
		SESSecretAccessKey: getEnv("AL_POSTBOX_SECRET_ACCESS_KEY", ""),
		EmailFrom:          getEnv("AL_EMAIL_FROM", ""),

		TelegramBotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAdminChatID: getEnv("TELEGRAM_CHAT_ID", ""),

		JWTSecretKey: getEnv("AL_JWT_SECRET_KEY", ""),

		SubscriptionSweepInterval: getEnvDuration("AL_SUBSCRIPTION_SWEEP_INTERVAL", 1*time.Hour),
		AuditSweepInterval:        getEnvDuration("AL_AUDIT_SWEEP_INTERVAL", 24*time.Hour),
		AuditRetentionDays:        getEnvInt("AL_AUDIT_RETENTION_DAYS", 90, 1, 3650),
		WorkerPoolSize:            getEnvInt("AL_WORKER_POOL_SIZE", 4, 1, 64),

		GracePeriodDays: getEnvInt("AL_GRACE_PERIOD_DAYS", 7, 0, 90),

		FFProbePath: getEnv("AL_FFPROBE_PATH", "ffprobe"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback, min, max int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			if n < min {
				return min
			}
			if n > max {
				return max
			}
			return n
		}
		log.Printf("WARN: %s=%q is not an integer, using default %d", key, v, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("WARN: %s=%q is not a duration, using default %s", key, v, fallback)
	}
	return fallback
}
