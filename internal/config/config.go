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
	Auth    AuthConfig
	Storage StorageConfig
	LLM     LLMConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds history store connection settings. Driver selects the
// PostgreSQL or embedded SQLite implementation.
type DBConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxOpen    int    `mapstructure:"max_open"`
	MaxIdle    int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds bearer-token verification settings. Auth is optional; the
// API runs open when Enabled is false.
type AuthConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Secret      string        `mapstructure:"secret"`
	Issuer      string        `mapstructure:"issuer"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
}

// StorageConfig holds upload archive settings.
type StorageConfig struct {
	Backend       string   `mapstructure:"backend"` // "local" or "s3"
	LocalDir      string   `mapstructure:"local_dir"`
	MaxFileSizeMB int64    `mapstructure:"max_file_size_mb"`
	S3            S3Config `mapstructure:"s3"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LLMConfig holds text-generation backend settings. The OCR model is fixed
// here and not selectable per request, unlike the structuring model.
type LLMConfig struct {
	OllamaBaseURL   string `mapstructure:"ollama_base_url"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	OCRModel        string `mapstructure:"ocr_model"`
	DefaultProvider string `mapstructure:"default_provider"`
	DefaultModel    string `mapstructure:"default_model"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the MEDSCRIBE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MEDSCRIBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.sqlite_path", "medscribe.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "medscribe")
	v.SetDefault("db.password", "medscribe_secret")
	v.SetDefault("db.name", "medscribe_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Auth defaults
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "medscribe")
	v.SetDefault("auth.token_expiry", "168h")

	// Storage defaults
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local_dir", "uploads")
	v.SetDefault("storage.max_file_size_mb", 50)
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.bucket", "medscribe-uploads")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")

	// LLM defaults
	v.SetDefault("llm.ollama_base_url", "http://localhost:11434")
	v.SetDefault("llm.timeout_secs", 120)
	v.SetDefault("llm.ocr_model", "deepseek-ocr")
	v.SetDefault("llm.default_provider", "ollama")
	v.SetDefault("llm.default_model", "glm-4.7-flash")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:8501,http://127.0.0.1:8501")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "MEDSCRIBE_SERVER_PORT",
		"server.read_timeout":      "MEDSCRIBE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "MEDSCRIBE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "MEDSCRIBE_SERVER_ENVIRONMENT",
		"db.driver":                "MEDSCRIBE_DB_DRIVER",
		"db.sqlite_path":           "MEDSCRIBE_DB_SQLITE_PATH",
		"db.host":                  "MEDSCRIBE_DB_HOST",
		"db.port":                  "MEDSCRIBE_DB_PORT",
		"db.user":                  "MEDSCRIBE_DB_USER",
		"db.password":              "MEDSCRIBE_DB_PASSWORD",
		"db.name":                  "MEDSCRIBE_DB_NAME",
		"db.sslmode":               "MEDSCRIBE_DB_SSLMODE",
		"db.max_open":              "MEDSCRIBE_DB_MAX_OPEN",
		"db.max_idle":              "MEDSCRIBE_DB_MAX_IDLE",
		"auth.enabled":             "MEDSCRIBE_AUTH_ENABLED",
		"auth.secret":              "MEDSCRIBE_AUTH_SECRET",
		"auth.issuer":              "MEDSCRIBE_AUTH_ISSUER",
		"auth.token_expiry":        "MEDSCRIBE_AUTH_TOKEN_EXPIRY",
		"storage.backend":          "MEDSCRIBE_STORAGE_BACKEND",
		"storage.local_dir":        "MEDSCRIBE_STORAGE_LOCAL_DIR",
		"storage.max_file_size_mb": "MEDSCRIBE_STORAGE_MAX_FILE_SIZE_MB",
		"storage.s3.region":        "MEDSCRIBE_STORAGE_S3_REGION",
		"storage.s3.bucket":        "MEDSCRIBE_STORAGE_S3_BUCKET",
		"storage.s3.endpoint":      "MEDSCRIBE_STORAGE_S3_ENDPOINT",
		"storage.s3.access_key":    "MEDSCRIBE_STORAGE_S3_ACCESS_KEY",
		"storage.s3.secret_key":    "MEDSCRIBE_STORAGE_S3_SECRET_KEY",
		"llm.ollama_base_url":      "MEDSCRIBE_LLM_OLLAMA_BASE_URL",
		"llm.timeout_secs":         "MEDSCRIBE_LLM_TIMEOUT_SECS",
		"llm.ocr_model":            "MEDSCRIBE_LLM_OCR_MODEL",
		"llm.default_provider":     "MEDSCRIBE_LLM_DEFAULT_PROVIDER",
		"llm.default_model":        "MEDSCRIBE_LLM_DEFAULT_MODEL",
		"cors.allowed_origins":     "MEDSCRIBE_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Comma-separated origins arrive as a single string from the environment.
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}

	if cfg.Server.Environment == "production" && cfg.Auth.Enabled && cfg.Auth.Secret == "change-me-in-production" {
		fmt.Fprintln(os.Stderr, "WARNING: auth enabled with default secret")
	}

	return &cfg, nil
}
