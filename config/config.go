package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Roster sources
const (
	RosterSourceFile     = "file"
	RosterSourcePostgres = "postgres"
	RosterSourceS3       = "s3"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Roster        RosterConfig
	Cache         CacheConfig
	Form          FormConfig
	Directory     DirectoryConfig
	RateLimit     RateLimitConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
	NavPages       []string
}

type DatabaseConfig struct {
	URL         string
	CACertPath  string // CA bundle used when DATABASE_URL requests TLS
	MaxConns    int32
	MinConns    int32
	WorkOffline bool
}

type RosterConfig struct {
	Source string
	Path   string
	S3     S3Config
}

type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Key             string
	Endpoint        string
	Region          string
}

type CacheConfig struct {
	RosterTTLSeconds int // Roster cache TTL in seconds
}

type FormConfig struct {
	ResetDelay time.Duration // How long the success view stays before the form resets
}

type DirectoryConfig struct {
	SearchDebounce time.Duration // Quiet period before typed search is applied
}

type RateLimitConfig struct {
	GeneralRPS   float64
	GeneralBurst int
	ContactRPS   float64
	ContactBurst int
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	OTLPEndpoint      string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8081")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "http://localhost:8081")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:8080")
	v.SetDefault("NAV_PAGES", "index.html,about.html,faculty.html,research.html,alumni.html,contact.html")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("DATABASE_CA_CERT", "certs/db-ca.crt")
	v.SetDefault("ROSTER_SOURCE", RosterSourceFile)
	v.SetDefault("ROSTER_PATH", "data/faculty.yaml")
	v.SetDefault("ROSTER_S3_KEY", "faculty.yaml")
	v.SetDefault("ROSTER_CACHE_TTL", 600) // 10 minutes in seconds
	v.SetDefault("FORM_RESET_DELAY_MS", 5000)
	v.SetDefault("SEARCH_DEBOUNCE_MS", 300)
	v.SetDefault("RATE_LIMIT_GENERAL_RPS", 50)
	v.SetDefault("RATE_LIMIT_GENERAL_BURST", 100)
	v.SetDefault("RATE_LIMIT_CONTACT_RPS", 0.2) // one submission per 5s, per IP
	v.SetDefault("RATE_LIMIT_CONTACT_BURST", 3)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "deptsite-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "deptsite")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
			NavPages:       splitList(v.GetString("NAV_PAGES")),
		},
		Database: DatabaseConfig{
			URL:         v.GetString("DATABASE_URL"),
			CACertPath:  v.GetString("DATABASE_CA_CERT"),
			MaxConns:    v.GetInt32("DB_MAX_CONNS"),
			MinConns:    v.GetInt32("DB_MIN_CONNS"),
			WorkOffline: v.GetBool("DB_WORK_OFFLINE"),
		},
		Roster: RosterConfig{
			Source: strings.ToLower(v.GetString("ROSTER_SOURCE")),
			Path:   v.GetString("ROSTER_PATH"),
			S3: S3Config{
				AccessKeyID:     v.GetString("ROSTER_S3_ACCESS_KEY_ID"),
				SecretAccessKey: v.GetString("ROSTER_S3_SECRET_ACCESS_KEY"),
				Bucket:          v.GetString("ROSTER_S3_BUCKET"),
				Key:             v.GetString("ROSTER_S3_KEY"),
				Endpoint:        v.GetString("ROSTER_S3_ENDPOINT"),
				Region:          v.GetString("ROSTER_S3_REGION"),
			},
		},
		Cache: CacheConfig{
			RosterTTLSeconds: v.GetInt("ROSTER_CACHE_TTL"),
		},
		Form: FormConfig{
			ResetDelay: time.Duration(v.GetInt("FORM_RESET_DELAY_MS")) * time.Millisecond,
		},
		Directory: DirectoryConfig{
			SearchDebounce: time.Duration(v.GetInt("SEARCH_DEBOUNCE_MS")) * time.Millisecond,
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   v.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: v.GetInt("RATE_LIMIT_GENERAL_BURST"),
			ContactRPS:   v.GetFloat64("RATE_LIMIT_CONTACT_RPS"),
			ContactBurst: v.GetInt("RATE_LIMIT_CONTACT_BURST"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			OTLPEndpoint:      v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	// Server configuration
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	// Roster source
	switch c.Roster.Source {
	case RosterSourceFile:
		if c.Roster.Path == "" {
			return fmt.Errorf("ROSTER_PATH is required when ROSTER_SOURCE=file")
		}
	case RosterSourcePostgres:
		if c.Database.URL == "" || c.Database.WorkOffline {
			return fmt.Errorf("DATABASE_URL is required when ROSTER_SOURCE=postgres")
		}
	case RosterSourceS3:
		if c.Roster.S3.Bucket == "" || c.Roster.S3.Key == "" {
			return fmt.Errorf("ROSTER_S3_BUCKET and ROSTER_S3_KEY are required when ROSTER_SOURCE=s3")
		}
	default:
		return fmt.Errorf("unknown ROSTER_SOURCE %q", c.Roster.Source)
	}

	if c.Form.ResetDelay <= 0 {
		return fmt.Errorf("FORM_RESET_DELAY_MS must be positive")
	}
	if c.Directory.SearchDebounce <= 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE_MS must be positive")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}

	return nil
}

// HasDatabase reports whether a database connection should be opened
func (c *Config) HasDatabase() bool {
	return c.Database.URL != "" && !c.Database.WorkOffline
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// splitList parses a comma-separated list, dropping blanks
func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
