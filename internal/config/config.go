package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Scoring  ScoringConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Enrich   EnrichConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type ScoringConfig struct {
	// RulesPath points at the rule-table JSON loaded once at startup.
	RulesPath string
	// BatchWorkers bounds the worker pool of the batch pipeline.
	BatchWorkers int
	// BatchLimit caps how many unscored jobs one batch run picks up.
	BatchLimit int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
}

type AuthConfig struct {
	// ClientID and ClientSecretHash identify the single service account
	// the API accepts; the hash is a bcrypt digest of the shared secret.
	ClientID         string
	ClientSecretHash string

	JWTSecret      string
	TokenExpiresIn time.Duration
}

type EnrichConfig struct {
	// Enabled switches the pre-scoring company-site probe on.
	Enabled bool
	// Headless switches on the chromedp posting-snapshot fetcher.
	Headless bool
	Timeout  time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Scoring = ScoringConfig{
		RulesPath:    req("RULES_PATH"),
		BatchWorkers: optInt(opt("BATCH_WORKERS"), 4),
		BatchLimit:   optInt(opt("BATCH_LIMIT"), 500),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         opt("DB_PORT"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE"),
		ConnectTimeout: optDuration(opt("DB_CONNECT_TIMEOUT"), 5*time.Second),
		PoolMaxConns:   int32(optInt(opt("DB_POOL_MAX_CONNS"), 0)),
	}

	cfg.Auth = AuthConfig{
		ClientID:         req("AUTH_CLIENT_ID"),
		ClientSecretHash: req("AUTH_CLIENT_SECRET_HASH"),
		JWTSecret:        req("JWT_SECRET"),
		TokenExpiresIn:   optDuration(opt("JWT_EXPIRES_IN"), 1*time.Hour),
	}

	cfg.Enrich = EnrichConfig{
		Enabled:  optBool(opt("ENRICH_ENABLED"), false),
		Headless: optBool(opt("ENRICH_HEADLESS"), false),
		Timeout:  optDuration(opt("ENRICH_TIMEOUT"), 15*time.Second),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func optBool(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func optDuration(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
