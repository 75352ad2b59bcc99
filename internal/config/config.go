package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Env            string   `mapstructure:"ENV"`
	AuthMode       string   `mapstructure:"AUTH_MODE"`
	DatabaseURL    string   `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32    `mapstructure:"DB_MIN_CONNS"`
	AuthJWTSecret  string   `mapstructure:"AUTH_JWT_SECRET"`
	AuthIssuer     string   `mapstructure:"AUTH_ISSUER"`
	AuthAudience   string   `mapstructure:"AUTH_AUDIENCE"`
	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST"`
	MaxBodySize    string   `mapstructure:"MAX_BODY_SIZE"`

	// Parser guardrails. These flow into the prescription parser's limits
	// and alert thresholds.
	ParserMaxMedications int `mapstructure:"PARSER_MAX_MEDICATIONS"`
	ParserQuantityAlert  int `mapstructure:"PARSER_QUANTITY_ALERT"`
	ParserRepeatsAlert   int `mapstructure:"PARSER_REPEATS_ALERT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("AUTH_MODE", "") // auto-detect: "" -> inferred from ENV
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("MAX_BODY_SIZE", "256K")
	v.SetDefault("PARSER_MAX_MEDICATIONS", 21)
	v.SetDefault("PARSER_QUANTITY_ALERT", 1000)
	v.SetDefault("PARSER_REPEATS_ALERT", 12)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("AUTH_MODE")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("AUTH_JWT_SECRET")
	v.BindEnv("AUTH_ISSUER")
	v.BindEnv("AUTH_AUDIENCE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("MAX_BODY_SIZE")
	v.BindEnv("PARSER_MAX_MEDICATIONS")
	v.BindEnv("PARSER_QUANTITY_ALERT")
	v.BindEnv("PARSER_REPEATS_ALERT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.IsDev() {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevAuthMiddleware is active — all requests get admin access.")
		log.Println("WARNING: Do NOT use this configuration in production.")
		log.Println("WARNING: Set ENV=production and configure AUTH_JWT_SECRET for production.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasDatabase reports whether a Postgres reference catalog is configured.
// DATABASE_URL is optional: without it the server runs on the builtin
// reference tables alone.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// ResolvedAuthMode returns the effective auth mode. If AUTH_MODE is explicitly
// set, it is returned. Otherwise, the mode is inferred:
//   - ENV=development → "development" (no auth, all requests get admin)
//   - Otherwise       → "token" (bearer JWT signed with AUTH_JWT_SECRET)
func (c *Config) ResolvedAuthMode() string {
	if c.AuthMode != "" {
		return c.AuthMode
	}
	if c.IsDev() {
		return "development"
	}
	return "token"
}

// Validate checks that the configuration is safe to run. In token mode
// AUTH_JWT_SECRET must be set so that real JWT authentication is enforced,
// and it must be long enough to resist brute-forcing.
func (c *Config) Validate() error {
	mode := c.ResolvedAuthMode()
	if mode != "development" && mode != "token" {
		return fmt.Errorf("AUTH_MODE must be \"development\" or \"token\", got %q", mode)
	}
	if mode == "token" {
		if c.AuthJWTSecret == "" {
			return fmt.Errorf(
				"AUTH_JWT_SECRET must be set when AUTH_MODE is \"token\" (current ENV=%q). "+
					"Refusing to start without authentication configuration. "+
					"Use ENV=development for local work without tokens", c.Env)
		}
		if len(c.AuthJWTSecret) < 32 {
			return fmt.Errorf("AUTH_JWT_SECRET must be at least 32 bytes, got %d", len(c.AuthJWTSecret))
		}
	}

	// Parser guardrails must stay positive; zero would reject every
	// prescription or alert on every quantity.
	if c.ParserMaxMedications <= 0 {
		return fmt.Errorf("PARSER_MAX_MEDICATIONS must be positive, got %d", c.ParserMaxMedications)
	}
	if c.ParserQuantityAlert <= 0 {
		return fmt.Errorf("PARSER_QUANTITY_ALERT must be positive, got %d", c.ParserQuantityAlert)
	}
	if c.ParserRepeatsAlert <= 0 {
		return fmt.Errorf("PARSER_REPEATS_ALERT must be positive, got %d", c.ParserRepeatsAlert)
	}

	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", c.RateLimitRPS)
	}

	return nil
}
