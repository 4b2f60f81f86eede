package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default provider module references.
const (
	DefaultIngestModule    = "@soustack/ingest"
	DefaultValidatorModule = "@soustack/validator"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	Log      LogConfig
	Auth     AuthConfig
	CORS     CORSConfig
}

// AuthConfig holds bearer token settings for the HTTP transport. Auth is
// disabled while JWTSecret is empty.
type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret"`
	Issuer      string        `mapstructure:"issuer"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
}

// Enabled reports whether HTTP requests must carry a token.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig holds the module references the providers are loaded from.
type ProviderConfig struct {
	IngestModule    string `mapstructure:"ingest_module"`
	ValidatorModule string `mapstructure:"validator_module"`
	// AliasesFile optionally overrides the export names probed per stage.
	AliasesFile string `mapstructure:"aliases_file"`
}

// ServerConfig holds HTTP server settings. Unused in stdio mode.
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

// Load reads configuration from environment variables with the SOUSTACK_
// prefix, layered over the optional YAML file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SOUSTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider defaults
	v.SetDefault("provider.ingest_module", DefaultIngestModule)
	v.SetDefault("provider.validator_module", DefaultValidatorModule)
	v.SetDefault("provider.aliases_file", "")

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "soustackgw")
	v.SetDefault("auth.token_expiry", "24h")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"provider.ingest_module":    "SOUSTACK_INGEST_MODULE",
		"provider.validator_module": "SOUSTACK_VALIDATOR_MODULE",
		"provider.aliases_file":     "SOUSTACK_PROVIDER_ALIASES_FILE",
		"server.port":               "SOUSTACK_SERVER_PORT",
		"server.read_timeout":       "SOUSTACK_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "SOUSTACK_SERVER_WRITE_TIMEOUT",
		"server.environment":        "SOUSTACK_SERVER_ENVIRONMENT",
		"log.level":                 "SOUSTACK_LOG_LEVEL",
		"log.format":                "SOUSTACK_LOG_FORMAT",
		"auth.jwt_secret":           "SOUSTACK_AUTH_JWT_SECRET",
		"auth.issuer":               "SOUSTACK_AUTH_ISSUER",
		"auth.token_expiry":         "SOUSTACK_AUTH_TOKEN_EXPIRY",
		"cors.allowed_origins":      "SOUSTACK_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if SOUSTACK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SOUSTACK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Provider = ProviderConfig{
		IngestModule:    orDefault(v.GetString("provider.ingest_module"), DefaultIngestModule),
		ValidatorModule: orDefault(v.GetString("provider.validator_module"), DefaultValidatorModule),
		AliasesFile:     v.GetString("provider.aliases_file"),
	}
	cfg.Log = LogConfig{
		Level:  strings.ToLower(v.GetString("log.level")),
		Format: strings.ToLower(v.GetString("log.format")),
	}

	cfg.Auth = AuthConfig{
		JWTSecret:   v.GetString("auth.jwt_secret"),
		Issuer:      v.GetString("auth.issuer"),
		TokenExpiry: v.GetDuration("auth.token_expiry"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.Auth.Enabled() && c.Auth.TokenExpiry <= 0 {
		return fmt.Errorf("auth.token_expiry must be positive, got %s", c.Auth.TokenExpiry)
	}
	return nil
}

// An empty override falls back to the default reference.
func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}
