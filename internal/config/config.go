package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	CRM      CRMConfig
	Form     FormConfig
	Auth     AuthConfig
	Brand    *Brand
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	ChatLogFilePath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// CRMConfig holds the GoHighLevel credentials. An empty APIKey disables
// delivery; leads are still accepted and stored.
type CRMConfig struct {
	APIKey     string
	LocationID string
	PipelineID string
	StageID    string
	BaseURL    string
	Timeout    time.Duration
}

type FormConfig struct {
	RevealDelay   time.Duration // per character, chat adapter
	AutoAdvance   time.Duration // select steps, wizard adapter
	SubmitPause   time.Duration // between chat confirmation and submission
	SessionTTL    time.Duration
	DedupWindow   time.Duration
	LeadTopicName string
}

type AuthConfig struct {
	JwtSecret string
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			ChatLogFilePath:    getEnv("CHAT_LOG_FILE_PATH", "logs/chat.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Mortgage Connect"),
		},
		CRM: CRMConfig{
			APIKey:     getEnv("GHL_API_KEY", ""),
			LocationID: getEnv("GHL_LOCATION_ID", ""),
			PipelineID: getEnv("GHL_PIPELINE_ID", ""),
			StageID:    getEnv("GHL_STAGE_ID", ""),
			BaseURL:    getEnv("GHL_BASE_URL", "https://rest.gohighlevel.com/v1"),
			Timeout:    getEnvAsDuration("GHL_TIMEOUT", 10*time.Second),
		},
		Form: FormConfig{
			RevealDelay:   getEnvAsDuration("FORM_REVEAL_DELAY", 30*time.Millisecond),
			AutoAdvance:   getEnvAsDuration("FORM_AUTO_ADVANCE", 200*time.Millisecond),
			SubmitPause:   getEnvAsDuration("FORM_SUBMIT_PAUSE", 500*time.Millisecond),
			SessionTTL:    getEnvAsDuration("FORM_SESSION_TTL", time.Hour),
			DedupWindow:   getEnvAsDuration("LEAD_DEDUP_WINDOW", 10*time.Minute),
			LeadTopicName: getEnv("LEAD_TOPIC_NAME", "lead.received"),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Brand: DefaultBrand(),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("250ms") or a bare millisecond count.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
