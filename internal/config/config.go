package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Submission sinks
const (
	SinkLog   = "log"
	SinkMongo = "mongo"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port           int      `json:"port"`
	Environment    string   `json:"environment"`
	LogLevel       string   `json:"log_level"`
	AllowedOrigins []string `json:"allowed_origins"`

	// MongoDB configuration
	MongoURI               string `json:"mongo_uri"`
	MongoDatabase          string `json:"mongo_database"`
	RegistrationCollection string `json:"mongo_registration_collection"`

	// Redis configuration
	RedisEnabled  bool   `json:"redis_enabled"`
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// Registration drafts
	SubmissionSink           string        `json:"submission_sink"`
	DraftTTL                 time.Duration `json:"draft_ttl"`
	DraftSweepInterval       time.Duration `json:"draft_sweep_interval"`
	SubmitRateLimitPerMinute int           `json:"submit_rate_limit_per_minute"`
	CPFLengthCheck           bool          `json:"cpf_length_check"`

	// Tracing configuration
	ServiceVersion     string  `json:"service_version"`
	TracingEnabled     bool    `json:"tracing_enabled"`
	TracingEndpoint    string  `json:"tracing_endpoint"`
	TracingSampleRatio float64 `json:"tracing_sample_ratio"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisEnabled, err := strconv.ParseBool(getEnvOrDefault("REDIS_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_ENABLED: %w", err)
	}

	draftTTL, err := time.ParseDuration(getEnvOrDefault("DRAFT_TTL", "30m"))
	if err != nil {
		return fmt.Errorf("invalid DRAFT_TTL: %w", err)
	}
	if draftTTL <= 0 {
		return fmt.Errorf("DRAFT_TTL must be positive")
	}

	sweepInterval, err := time.ParseDuration(getEnvOrDefault("DRAFT_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return fmt.Errorf("invalid DRAFT_SWEEP_INTERVAL: %w", err)
	}
	if sweepInterval <= 0 {
		return fmt.Errorf("DRAFT_SWEEP_INTERVAL must be positive")
	}

	rateLimit, err := strconv.Atoi(getEnvOrDefault("SUBMIT_RATE_LIMIT_PER_MINUTE", "30"))
	if err != nil {
		return fmt.Errorf("invalid SUBMIT_RATE_LIMIT_PER_MINUTE: %w", err)
	}

	cpfLengthCheck, err := strconv.ParseBool(getEnvOrDefault("CPF_LENGTH_CHECK", "true"))
	if err != nil {
		return fmt.Errorf("invalid CPF_LENGTH_CHECK: %w", err)
	}

	tracingEnabled, err := strconv.ParseBool(getEnvOrDefault("TRACING_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	sampleRatio, err := strconv.ParseFloat(getEnvOrDefault("TRACING_SAMPLE_RATIO", "1"), 64)
	if err != nil {
		return fmt.Errorf("invalid TRACING_SAMPLE_RATIO: %w", err)
	}
	if sampleRatio < 0 || sampleRatio > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATIO must be between 0 and 1")
	}

	sink := strings.ToLower(getEnvOrDefault("SUBMISSION_SINK", SinkLog))
	if sink != SinkLog && sink != SinkMongo {
		return fmt.Errorf("invalid SUBMISSION_SINK %q: must be %q or %q", sink, SinkLog, SinkMongo)
	}

	AppConfig = &Config{
		// Server configuration
		Port:           port,
		Environment:    getEnvOrDefault("ENVIRONMENT", "development"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		AllowedOrigins: parseCommaSeparatedList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		// MongoDB configuration
		MongoURI:               getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:          getEnvOrDefault("MONGODB_DATABASE", "cadastro"),
		RegistrationCollection: getEnvOrDefault("MONGODB_REGISTRATION_COLLECTION", "registrations"),

		// Redis configuration
		RedisEnabled:  redisEnabled,
		RedisURI:      getEnvOrDefault("REDIS_URI", "redis://localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		// Registration drafts
		SubmissionSink:           sink,
		DraftTTL:                 draftTTL,
		DraftSweepInterval:       sweepInterval,
		SubmitRateLimitPerMinute: rateLimit,
		CPFLengthCheck:           cpfLengthCheck,

		// Tracing configuration
		ServiceVersion:     getEnvOrDefault("SERVICE_VERSION", "dev"),
		TracingEnabled:     tracingEnabled,
		TracingEndpoint:    getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
		TracingSampleRatio: sampleRatio,
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// parseCommaSeparatedList splits a comma separated value, dropping empty items
func parseCommaSeparatedList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
