package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Parser    ParserConfig
	Reconcile ReconcileConfig
	Suggest   SuggestConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// ParserConfig points at the external invoice parsing service.
type ParserConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// ReconcileConfig selects between local quality gating and the remote
// reconciliation service. Mode is "local" or "remote".
type ReconcileConfig struct {
	Mode    string
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// SuggestConfig carries defaults for suggested order building.
type SuggestConfig struct {
	RoundToPack bool
	DefaultPar  float64
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "stocktake-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "stocktake")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PARSER_BASE_URL", "http://localhost:9090")
	viper.SetDefault("PARSER_API_KEY", "")
	viper.SetDefault("PARSER_TIMEOUT_SECONDS", 30)
	viper.SetDefault("RECONCILE_MODE", "local")
	viper.SetDefault("RECONCILE_BASE_URL", "")
	viper.SetDefault("RECONCILE_API_KEY", "")
	viper.SetDefault("RECONCILE_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SUGGEST_ROUND_TO_PACK", true)
	viper.SetDefault("SUGGEST_DEFAULT_PAR", 1.0)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Parser: ParserConfig{
			BaseURL: viper.GetString("PARSER_BASE_URL"),
			APIKey:  viper.GetString("PARSER_API_KEY"),
			Timeout: time.Duration(viper.GetInt("PARSER_TIMEOUT_SECONDS")) * time.Second,
		},
		Reconcile: ReconcileConfig{
			Mode:    viper.GetString("RECONCILE_MODE"),
			BaseURL: viper.GetString("RECONCILE_BASE_URL"),
			APIKey:  viper.GetString("RECONCILE_API_KEY"),
			Timeout: time.Duration(viper.GetInt("RECONCILE_TIMEOUT_SECONDS")) * time.Second,
		},
		Suggest: SuggestConfig{
			RoundToPack: viper.GetBool("SUGGEST_ROUND_TO_PACK"),
			DefaultPar:  viper.GetFloat64("SUGGEST_DEFAULT_PAR"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
