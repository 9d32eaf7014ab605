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
	Server    ServerConfig
	Log       LogConfig
	Oracle    OracleConfig
	Pipeline  PipelineConfig
	Buildings BuildingsConfig
	DB        DBConfig
	Archive   ArchiveConfig
	Email     EmailConfig
	CORS      CORSConfig
	Metrics   MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OracleProviderConfig holds settings for a single language-model provider.
type OracleProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// OracleConfig holds language-model settings with primary/secondary support.
type OracleConfig struct {
	// Legacy flat fields
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	Primary   OracleProviderConfig `mapstructure:"primary"`
	Secondary OracleProviderConfig `mapstructure:"secondary"`
}

// PrimaryConfig returns the primary provider config, falling back to legacy flat fields.
func (o *OracleConfig) PrimaryConfig() *OracleProviderConfig {
	if o.Primary.Provider != "" {
		return &o.Primary
	}
	return &OracleProviderConfig{
		Provider:     o.Provider,
		APIKey:       o.APIKey,
		BaseURL:      o.BaseURL,
		DefaultModel: o.DefaultModel,
		TimeoutSecs:  o.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (o *OracleConfig) SecondaryConfig() *OracleProviderConfig {
	if o.Secondary.Provider != "" {
		return &o.Secondary
	}
	return nil
}

// PipelineConfig holds batch processing limits.
type PipelineConfig struct {
	Concurrency   int           `mapstructure:"concurrency"`
	FileTimeout   time.Duration `mapstructure:"file_timeout"`
	MaxFileSizeMB int64         `mapstructure:"max_file_size_mb"`
	MaxFiles      int           `mapstructure:"max_files"`
}

// MaxFileSizeBytes returns the per-file upload limit in bytes.
func (p *PipelineConfig) MaxFileSizeBytes() int64 {
	return p.MaxFileSizeMB * 1024 * 1024
}

// BuildingsConfig selects where the building directory is loaded from.
type BuildingsConfig struct {
	Source string `mapstructure:"source"`
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

// ArchiveConfig holds object storage settings for flagged invoices.
type ArchiveConfig struct {
	Provider  string `mapstructure:"provider"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// EmailConfig holds review notification settings.
type EmailConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	Reviewers   []string `mapstructure:"reviewers"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from environment variables with the UMLAGE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("UMLAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Oracle defaults (legacy flat)
	v.SetDefault("oracle.provider", "openai")
	v.SetDefault("oracle.api_key", "")
	v.SetDefault("oracle.base_url", "")
	v.SetDefault("oracle.default_model", "")
	v.SetDefault("oracle.timeout_secs", 120)

	// Oracle primary/secondary defaults
	v.SetDefault("oracle.primary.provider", "")
	v.SetDefault("oracle.primary.api_key", "")
	v.SetDefault("oracle.primary.base_url", "")
	v.SetDefault("oracle.primary.default_model", "")
	v.SetDefault("oracle.primary.timeout_secs", 120)
	v.SetDefault("oracle.secondary.provider", "")
	v.SetDefault("oracle.secondary.api_key", "")
	v.SetDefault("oracle.secondary.base_url", "")
	v.SetDefault("oracle.secondary.default_model", "")
	v.SetDefault("oracle.secondary.timeout_secs", 120)

	// Pipeline defaults
	v.SetDefault("pipeline.concurrency", 4)
	v.SetDefault("pipeline.file_timeout", "5m")
	v.SetDefault("pipeline.max_file_size_mb", 20)
	v.SetDefault("pipeline.max_files", 50)

	// Building directory defaults
	v.SetDefault("buildings.source", "static")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "umlage")
	v.SetDefault("db.password", "umlage_secret")
	v.SetDefault("db.name", "umlage_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// Archive defaults
	v.SetDefault("archive.provider", "noop")
	v.SetDefault("archive.region", "eu-central-1")
	v.SetDefault("archive.bucket", "umlage-review")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.prefix", "review")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-central-1")
	v.SetDefault("email.from_address", "noreply@umlage.local")
	v.SetDefault("email.from_name", "Umlage")
	v.SetDefault("email.reviewers", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "UMLAGE_SERVER_PORT",
		"server.read_timeout":            "UMLAGE_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "UMLAGE_SERVER_WRITE_TIMEOUT",
		"server.environment":             "UMLAGE_SERVER_ENVIRONMENT",
		"log.level":                      "UMLAGE_LOG_LEVEL",
		"log.format":                     "UMLAGE_LOG_FORMAT",
		"oracle.provider":                "UMLAGE_ORACLE_PROVIDER",
		"oracle.api_key":                 "UMLAGE_ORACLE_API_KEY",
		"oracle.base_url":                "UMLAGE_ORACLE_BASE_URL",
		"oracle.default_model":           "UMLAGE_ORACLE_DEFAULT_MODEL",
		"oracle.timeout_secs":            "UMLAGE_ORACLE_TIMEOUT_SECS",
		"oracle.primary.provider":        "UMLAGE_ORACLE_PRIMARY_PROVIDER",
		"oracle.primary.api_key":         "UMLAGE_ORACLE_PRIMARY_API_KEY",
		"oracle.primary.base_url":        "UMLAGE_ORACLE_PRIMARY_BASE_URL",
		"oracle.primary.default_model":   "UMLAGE_ORACLE_PRIMARY_DEFAULT_MODEL",
		"oracle.primary.timeout_secs":    "UMLAGE_ORACLE_PRIMARY_TIMEOUT_SECS",
		"oracle.secondary.provider":      "UMLAGE_ORACLE_SECONDARY_PROVIDER",
		"oracle.secondary.api_key":       "UMLAGE_ORACLE_SECONDARY_API_KEY",
		"oracle.secondary.base_url":      "UMLAGE_ORACLE_SECONDARY_BASE_URL",
		"oracle.secondary.default_model": "UMLAGE_ORACLE_SECONDARY_DEFAULT_MODEL",
		"oracle.secondary.timeout_secs":  "UMLAGE_ORACLE_SECONDARY_TIMEOUT_SECS",
		"pipeline.concurrency":           "UMLAGE_PIPELINE_CONCURRENCY",
		"pipeline.file_timeout":          "UMLAGE_PIPELINE_FILE_TIMEOUT",
		"pipeline.max_file_size_mb":      "UMLAGE_PIPELINE_MAX_FILE_SIZE_MB",
		"pipeline.max_files":             "UMLAGE_PIPELINE_MAX_FILES",
		"buildings.source":               "UMLAGE_BUILDINGS_SOURCE",
		"db.host":                        "UMLAGE_DB_HOST",
		"db.port":                        "UMLAGE_DB_PORT",
		"db.user":                        "UMLAGE_DB_USER",
		"db.password":                    "UMLAGE_DB_PASSWORD",
		"db.name":                        "UMLAGE_DB_NAME",
		"db.sslmode":                     "UMLAGE_DB_SSLMODE",
		"db.max_open":                    "UMLAGE_DB_MAX_OPEN",
		"db.max_idle":                    "UMLAGE_DB_MAX_IDLE",
		"archive.provider":               "UMLAGE_ARCHIVE_PROVIDER",
		"archive.region":                 "UMLAGE_ARCHIVE_REGION",
		"archive.bucket":                 "UMLAGE_ARCHIVE_BUCKET",
		"archive.endpoint":               "UMLAGE_ARCHIVE_ENDPOINT",
		"archive.access_key":             "UMLAGE_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":             "UMLAGE_ARCHIVE_SECRET_KEY",
		"archive.prefix":                 "UMLAGE_ARCHIVE_PREFIX",
		"email.provider":                 "UMLAGE_EMAIL_PROVIDER",
		"email.region":                   "UMLAGE_EMAIL_REGION",
		"email.from_address":             "UMLAGE_EMAIL_FROM_ADDRESS",
		"email.from_name":                "UMLAGE_EMAIL_FROM_NAME",
		"email.reviewers":                "UMLAGE_EMAIL_REVIEWERS",
		"cors.allowed_origins":           "UMLAGE_CORS_ALLOWED_ORIGINS",
		"metrics.enabled":                "UMLAGE_METRICS_ENABLED",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if UMLAGE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("UMLAGE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Oracle = OracleConfig{
		Provider:     v.GetString("oracle.provider"),
		APIKey:       v.GetString("oracle.api_key"),
		BaseURL:      v.GetString("oracle.base_url"),
		DefaultModel: v.GetString("oracle.default_model"),
		TimeoutSecs:  v.GetInt("oracle.timeout_secs"),
		Primary:      providerConfig(v, "oracle.primary"),
		Secondary:    providerConfig(v, "oracle.secondary"),
	}
	cfg.Pipeline = PipelineConfig{
		Concurrency:   v.GetInt("pipeline.concurrency"),
		FileTimeout:   v.GetDuration("pipeline.file_timeout"),
		MaxFileSizeMB: v.GetInt64("pipeline.max_file_size_mb"),
		MaxFiles:      v.GetInt("pipeline.max_files"),
	}
	if cfg.Pipeline.Concurrency < 1 {
		cfg.Pipeline.Concurrency = 1
	}
	cfg.Buildings = BuildingsConfig{
		Source: v.GetString("buildings.source"),
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
	cfg.Archive = ArchiveConfig{
		Provider:  v.GetString("archive.provider"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
		Prefix:    v.GetString("archive.prefix"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		Reviewers:   splitList(v.GetString("email.reviewers")),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
	}

	return cfg, nil
}

func providerConfig(v *viper.Viper, prefix string) OracleProviderConfig {
	return OracleProviderConfig{
		Provider:     v.GetString(prefix + ".provider"),
		APIKey:       v.GetString(prefix + ".api_key"),
		BaseURL:      v.GetString(prefix + ".base_url"),
		DefaultModel: v.GetString(prefix + ".default_model"),
		TimeoutSecs:  v.GetInt(prefix + ".timeout_secs"),
	}
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
