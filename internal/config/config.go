package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address      string   `mapstructure:"address"`
	Port         int      `mapstructure:"port"`
	Mode         string   `mapstructure:"mode"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
	UploadMaxMiB int64    `mapstructure:"upload_max_mib"`
}

type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"` // sqlite / postgres
	Path    string `mapstructure:"path"`
	DSN     string `mapstructure:"dsn"`
	LogMode bool   `mapstructure:"log_mode"`
}

type AuthConfig struct {
	Secret         string `mapstructure:"secret"`
	ExpireMinutes  int    `mapstructure:"expire_minutes"`
	PasswordScheme string `mapstructure:"password_scheme"`
	CookieSecure   bool   `mapstructure:"cookie_secure"`
}

// TokenTTL returns the configured access token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.ExpireMinutes <= 0 {
		return 120 * time.Minute
	}
	return time.Duration(a.ExpireMinutes) * time.Minute
}

type ModelConfig struct {
	Path     string `mapstructure:"path"`
	SkipLoad bool   `mapstructure:"skip_load"`
}

type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type AssistantConfig struct {
	Groq    ProviderConfig `mapstructure:"groq"`
	Gemini  ProviderConfig `mapstructure:"gemini"`
	Timeout time.Duration  `mapstructure:"timeout"`
}

type ListingConfig struct {
	UserAgent string        `mapstructure:"user_agent"`
	Cookie    string        `mapstructure:"cookie"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RedisAddr string        `mapstructure:"redis_addr"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

type SeedConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	UserEmail     string `mapstructure:"user_email"`
	UserPassword  string `mapstructure:"user_password"`
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Model     ModelConfig     `mapstructure:"model"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Listing   ListingConfig   `mapstructure:"listing"`
	Seed      SeedConfig      `mapstructure:"seed"`
}

// env names kept compatible with existing deployments
var envBindings = map[string][]string{
	"server.address":            {"SERVER_ADDRESS"},
	"server.port":               {"PORT"},
	"server.mode":               {"GIN_MODE"},
	"server.cors_origins":       {"CORS_ORIGINS"},
	"server.upload_max_mib":     {"UPLOAD_MAX_MIB"},
	"database.driver":           {"DB_DRIVER"},
	"database.path":             {"DB_PATH"},
	"database.dsn":              {"DATABASE_URL"},
	"database.log_mode":         {"DB_LOG_MODE"},
	"auth.secret":               {"SECRET_KEY"},
	"auth.expire_minutes":       {"ACCESS_TOKEN_EXPIRE_MINUTES"},
	"auth.password_scheme":      {"PASSWORD_SCHEME"},
	"auth.cookie_secure":        {"COOKIE_SECURE"},
	"model.path":                {"MODEL_PATH"},
	"model.skip_load":           {"SKIP_MODEL_LOAD"},
	"assistant.groq.api_key":    {"GROQ_API_KEY"},
	"assistant.groq.model":      {"GROQ_MODEL"},
	"assistant.groq.base_url":   {"GROQ_BASE_URL"},
	"assistant.gemini.api_key":  {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"assistant.gemini.model":    {"GEMINI_MODEL"},
	"assistant.gemini.base_url": {"GEMINI_BASE_URL"},
	"assistant.timeout":         {"ASSISTANT_TIMEOUT"},
	"listing.user_agent":        {"PRACTO_USER_AGENT"},
	"listing.cookie":            {"PRACTO_COOKIE"},
	"listing.timeout":           {"PRACTO_TIMEOUT"},
	"listing.redis_addr":        {"REDIS_ADDR"},
	"listing.cache_ttl":         {"LISTING_CACHE_TTL"},
	"seed.enabled":              {"SEED_DEMO_USERS"},
	"seed.user_email":           {"DEMO_USER_EMAIL"},
	"seed.user_password":        {"DEMO_USER_PASSWORD"},
	"seed.admin_email":          {"DEMO_ADMIN_EMAIL"},
	"seed.admin_password":       {"DEMO_ADMIN_PASSWORD"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.upload_max_mib", 10)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "app.db")
	v.SetDefault("auth.secret", "dev-secret-change-me")
	v.SetDefault("auth.expire_minutes", 120)
	v.SetDefault("auth.password_scheme", "argon2id")
	v.SetDefault("model.path", "checkpoints/model.yaml")
	v.SetDefault("assistant.groq.model", "llama-3.1-8b-instant")
	v.SetDefault("assistant.groq.base_url", "https://api.groq.com")
	v.SetDefault("assistant.gemini.model", "gemini-1.5-flash")
	v.SetDefault("assistant.gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("assistant.timeout", 30*time.Second)
	v.SetDefault("listing.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 "+
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("listing.timeout", 20*time.Second)
	v.SetDefault("listing.cache_ttl", 6*time.Hour)
	v.SetDefault("seed.user_email", "demo@skindx.local")
	v.SetDefault("seed.user_password", "demo1234")
	v.SetDefault("seed.admin_email", "admin@skindx.local")
	v.SetDefault("seed.admin_password", "admin1234")
}

// Load resolves configuration from an optional YAML file, a .env file and the
// process environment, in increasing priority. An empty path looks for
// "config.yaml" in the working directory and tolerates its absence.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// CORS_ORIGINS arrives as a comma separated string from the environment
	c.Server.CORSOrigins = splitList(strings.Join(c.Server.CORSOrigins, ","))

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("SECRET_KEY must not be empty")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
