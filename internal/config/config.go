package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppEnv string

	TelegramToken string `validate:"required"`

	TrackerURL        string `validate:"required,url"`
	TrackerOrgID      string `validate:"required"`
	TrackerOAuthToken string `validate:"required"`
	TrackerQueue      string `validate:"required"`

	AllowedEmailDomains []string `validate:"required,min=1"`
	BusinessUnits       []string `validate:"required,min=1"`

	SessionIdleTTL time.Duration
	ChallengeTTL   time.Duration

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSAlertTopicARN string // empty disables ops alerts

	AdminPort      string
	AdminJWTSecret string // empty disables the authenticated ops endpoints
	JWTExpiry      time.Duration
	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	VerifiedUsers string
	MessageLog    string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),

		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		TrackerURL:        getEnv("TRACKER_URL", "https://api.tracker.yandex.net"),
		TrackerOrgID:      getEnv("TRACKER_ORG_ID", ""),
		TrackerOAuthToken: getEnv("TRACKER_OAUTH_TOKEN", ""),
		TrackerQueue:      getEnv("TRACKER_QUEUE", "HELP"),

		AllowedEmailDomains: splitEnv("ALLOWED_EMAIL_DOMAINS", "kurganmk,reftp,hobbs-it,skhp-ural"),
		BusinessUnits:       splitEnv("BUSINESS_UNITS", "Курганмк,Рефтп,Хоббс-ИТ,СХП-Урал"),

		SessionIdleTTL: getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute),
		ChallengeTTL:   getEnvDuration("CHALLENGE_TTL", 15*time.Minute),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			VerifiedUsers: getEnv("DYNAMO_TABLE_VERIFIED_USERS", "verified_users"),
			MessageLog:    getEnv("DYNAMO_TABLE_MESSAGE_LOG", "message_log"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "helpdesk-bot-images"),

		SMTPHost:     getEnv("SMTP_HOST", "connect.smtp.bz"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@hobbs-it.ru"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSAlertTopicARN: getEnv("SNS_ALERT_TOPIC_ARN", ""),

		AdminPort:      getEnv("ADMIN_PORT", "3000"),
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		JWTExpiry:      getEnvDuration("ADMIN_JWT_EXPIRY", 24*time.Hour),
		AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "*"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}

func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
