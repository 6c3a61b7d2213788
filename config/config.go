package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultDatabaseName is used when DB_NAME is unset
const DefaultDatabaseName = "bhutan_tourism"

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Env          string

	JWTSecret string
	JWTTTL    time.Duration

	SendGridAPIKey   string
	MailFromEmail    string
	MailFromName     string
	AdminNotifyEmail string

	Cloudinary CloudinaryConfig

	CORSAllowedOrigins   []string
	EnquiryRatePerMinute int
	RequestTimeout       time.Duration
	// TrustProxy reads client addresses from the router's X-Forwarded-For hop
	TrustProxy bool

	// DigestSchedule is the cron expression of the pending tour request digest, "off" disables it
	DigestSchedule string
}

// CloudinaryConfig holds the values needed to sign direct browser uploads
type CloudinaryConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string
}

// New sets up all config related services
func New() *Config {
	// a missing .env is fine, the platform usually injects the environment
	_ = godotenv.Load()

	env := os.Getenv("ENV")
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: getEnvStr("DB_NAME", DefaultDatabaseName),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         getEnvStr("PORT", "8080"),
		Env:          env,

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),

		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		MailFromEmail:    getEnvStr("MAIL_FROM_EMAIL", "no-reply@druktrails.bt"),
		MailFromName:     getEnvStr("MAIL_FROM_NAME", "Druk Trails"),
		AdminNotifyEmail: os.Getenv("ADMIN_NOTIFY_EMAIL"),

		Cloudinary: CloudinaryConfig{
			CloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:       os.Getenv("CLOUDINARY_API_KEY"),
			APISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
			UploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		},

		CORSAllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		EnquiryRatePerMinute: getEnvInt("ENQUIRY_RATE_PER_MINUTE", 5),
		RequestTimeout:       getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		TrustProxy:           getEnvBool("TRUST_PROXY", false),

		DigestSchedule: getEnvStr("DIGEST_SCHEDULE", "0 2 * * *"),
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With("error", err).Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_, _ = w.Write([]byte(fmt.Sprintf(`{"response": %q}`, fmt.Sprintf("%s, %v", message, err))))
}

func getEnvStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
