package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Queue   QueueConfig
	Agent   AgentConfig
	Extract ExtractConfig
}

// QueueConfig holds extraction queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	Concurrency      int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AgentProviderConfig holds settings for a single extraction agent provider.
type AgentProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxAttempts  int    `mapstructure:"max_attempts"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// AgentConfig holds the dual extraction agent settings. Primary and secondary
// must point at distinct underlying models for consensus to be meaningful.
type AgentConfig struct {
	Primary   AgentProviderConfig `mapstructure:"primary"`
	Secondary AgentProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary agent config, or nil if not configured.
func (a *AgentConfig) SecondaryConfig() *AgentProviderConfig {
	if a.Secondary.Provider != "" {
		return &a.Secondary
	}
	return nil
}

// ExtractConfig holds extraction pipeline settings.
type ExtractConfig struct {
	// Mode is the default extraction mode: heuristic, agent, or hybrid.
	Mode string `mapstructure:"mode"`
	// IncludeHidden includes hidden sheets in extraction when true.
	IncludeHidden bool `mapstructure:"include_hidden"`
	// SheetConcurrency bounds concurrent per-sheet extraction in one workbook.
	SheetConcurrency int `mapstructure:"sheet_concurrency"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for workbook archival.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the SOVBRIDGE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SOVBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "sovbridge")
	v.SetDefault("db.password", "sovbridge_secret")
	v.SetDefault("db.name", "sovbridge_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "sovbridge-workbooks")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.concurrency", 3)

	// Agent defaults
	v.SetDefault("agent.primary.provider", "openai")
	v.SetDefault("agent.primary.api_key", "")
	v.SetDefault("agent.primary.default_model", "")
	v.SetDefault("agent.primary.max_attempts", 3)
	v.SetDefault("agent.primary.timeout_secs", 120)
	v.SetDefault("agent.secondary.provider", "claude")
	v.SetDefault("agent.secondary.api_key", "")
	v.SetDefault("agent.secondary.default_model", "")
	v.SetDefault("agent.secondary.max_attempts", 3)
	v.SetDefault("agent.secondary.timeout_secs", 120)

	// Extraction defaults
	v.SetDefault("extract.mode", "hybrid")
	v.SetDefault("extract.include_hidden", false)
	v.SetDefault("extract.sheet_concurrency", 4)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "SOVBRIDGE_SERVER_PORT",
		"server.read_timeout":           "SOVBRIDGE_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "SOVBRIDGE_SERVER_WRITE_TIMEOUT",
		"server.environment":            "SOVBRIDGE_SERVER_ENVIRONMENT",
		"db.host":                       "SOVBRIDGE_DB_HOST",
		"db.port":                       "SOVBRIDGE_DB_PORT",
		"db.user":                       "SOVBRIDGE_DB_USER",
		"db.password":                   "SOVBRIDGE_DB_PASSWORD",
		"db.name":                       "SOVBRIDGE_DB_NAME",
		"db.sslmode":                    "SOVBRIDGE_DB_SSLMODE",
		"db.max_open":                   "SOVBRIDGE_DB_MAX_OPEN",
		"db.max_idle":                   "SOVBRIDGE_DB_MAX_IDLE",
		"s3.region":                     "SOVBRIDGE_S3_REGION",
		"s3.bucket":                     "SOVBRIDGE_S3_BUCKET",
		"s3.endpoint":                   "SOVBRIDGE_S3_ENDPOINT",
		"s3.access_key":                 "SOVBRIDGE_S3_ACCESS_KEY",
		"s3.secret_key":                 "SOVBRIDGE_S3_SECRET_KEY",
		"s3.max_file_size_mb":           "SOVBRIDGE_S3_MAX_FILE_SIZE_MB",
		"log.level":                     "SOVBRIDGE_LOG_LEVEL",
		"log.format":                    "SOVBRIDGE_LOG_FORMAT",
		"cors.allowed_origins":          "SOVBRIDGE_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":      "SOVBRIDGE_QUEUE_POLL_INTERVAL_SECS",
		"queue.concurrency":             "SOVBRIDGE_QUEUE_CONCURRENCY",
		"agent.primary.provider":        "SOVBRIDGE_AGENT_PRIMARY_PROVIDER",
		"agent.primary.api_key":         "SOVBRIDGE_AGENT_PRIMARY_API_KEY",
		"agent.primary.default_model":   "SOVBRIDGE_AGENT_PRIMARY_DEFAULT_MODEL",
		"agent.primary.max_attempts":    "SOVBRIDGE_AGENT_PRIMARY_MAX_ATTEMPTS",
		"agent.primary.timeout_secs":    "SOVBRIDGE_AGENT_PRIMARY_TIMEOUT_SECS",
		"agent.secondary.provider":      "SOVBRIDGE_AGENT_SECONDARY_PROVIDER",
		"agent.secondary.api_key":       "SOVBRIDGE_AGENT_SECONDARY_API_KEY",
		"agent.secondary.default_model": "SOVBRIDGE_AGENT_SECONDARY_DEFAULT_MODEL",
		"agent.secondary.max_attempts":  "SOVBRIDGE_AGENT_SECONDARY_MAX_ATTEMPTS",
		"agent.secondary.timeout_secs":  "SOVBRIDGE_AGENT_SECONDARY_TIMEOUT_SECS",
		"extract.mode":                  "SOVBRIDGE_EXTRACT_MODE",
		"extract.include_hidden":        "SOVBRIDGE_EXTRACT_INCLUDE_HIDDEN",
		"extract.sheet_concurrency":     "SOVBRIDGE_EXTRACT_SHEET_CONCURRENCY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SOVBRIDGE_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SOVBRIDGE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}

	cfg.Agent = AgentConfig{
		Primary: AgentProviderConfig{
			Provider:     v.GetString("agent.primary.provider"),
			APIKey:       v.GetString("agent.primary.api_key"),
			DefaultModel: v.GetString("agent.primary.default_model"),
			MaxAttempts:  v.GetInt("agent.primary.max_attempts"),
			TimeoutSecs:  v.GetInt("agent.primary.timeout_secs"),
		},
		Secondary: AgentProviderConfig{
			Provider:     v.GetString("agent.secondary.provider"),
			APIKey:       v.GetString("agent.secondary.api_key"),
			DefaultModel: v.GetString("agent.secondary.default_model"),
			MaxAttempts:  v.GetInt("agent.secondary.max_attempts"),
			TimeoutSecs:  v.GetInt("agent.secondary.timeout_secs"),
		},
	}

	cfg.Extract = ExtractConfig{
		Mode:             v.GetString("extract.mode"),
		IncludeHidden:    v.GetBool("extract.include_hidden"),
		SheetConcurrency: v.GetInt("extract.sheet_concurrency"),
	}

	return cfg, nil
}
