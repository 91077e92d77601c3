package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pathmatch/internal/domain/scoring"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Gemini   GeminiConfig
	Scoring  ScoringConfig
	JWT      JWTConfig
	Ingest   IngestConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type GeminiConfig struct {
	APIKey          string
	EmbeddingModel  string
	CompletionModel string
	EmbeddingDim    int
}

type ScoringConfig struct {
	Fit             scoring.FitWeights
	Stretch         scoring.StretchWeights
	Ghost           scoring.GhostWeights
	CacheMaxEntries int
}

type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type IngestConfig struct {
	Workers      int
	UserAgent    string
	HeadlessMode bool
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment, layering a local .env
// file underneath when present. Malformed scoring weights or a bad
// embedding dimension are fatal: they indicate a deployment defect.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "pathmatch"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "8080"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:              opt("DB_HOST", "localhost"),
		DBPort:              opt("DB_PORT", "5432"),
		DBName:              req("DB_NAME"),
		DBUser:              req("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBSSLMode:           opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:      durationEnv("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:        int32(intEnv("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:        int32(intEnv("DB_POOL_MIN_CONNS", 2)),
		PoolMaxConnLifetime: durationEnv("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime: durationEnv("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
	}

	cfg.Redis = RedisConfig{
		Addr:     opt("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       intEnv("REDIS_DB", 0),
		TTL:      durationEnv("REDIS_SCORE_TTL", 6*time.Hour),
	}

	cfg.Gemini = GeminiConfig{
		APIKey:          req("GEMINI_API_KEY"),
		EmbeddingModel:  opt("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
		CompletionModel: opt("GEMINI_COMPLETION_MODEL", "gemini-1.5-flash"),
		EmbeddingDim:    intEnv("GEMINI_EMBEDDING_DIM", 768),
	}

	cfg.Scoring = ScoringConfig{
		Fit:             scoring.DefaultFitWeights(),
		Stretch:         scoring.DefaultStretchWeights(),
		Ghost:           scoring.DefaultGhostWeights(),
		CacheMaxEntries: intEnv("EMBEDDING_CACHE_MAX_ENTRIES", 4096),
	}

	cfg.JWT = JWTConfig{
		Secret:          req("JWT_SECRET"),
		AccessTokenTTL:  durationEnv("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTokenTTL: durationEnv("JWT_REFRESH_TTL", 7*24*time.Hour),
	}

	cfg.Ingest = IngestConfig{
		Workers:      intEnv("INGEST_WORKERS", 4),
		UserAgent:    opt("INGEST_USER_AGENT", "pathmatch-ingest/1.0"),
		HeadlessMode: boolEnv("INGEST_HEADLESS", false),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := c.Scoring.Fit.Validate(); err != nil {
		return err
	}
	if err := c.Scoring.Stretch.Validate(); err != nil {
		return err
	}
	if err := c.Scoring.Ghost.Validate(); err != nil {
		return err
	}
	if c.Gemini.EmbeddingDim <= 0 {
		return fmt.Errorf("GEMINI_EMBEDDING_DIM must be positive, got %d", c.Gemini.EmbeddingDim)
	}
	if c.Scoring.CacheMaxEntries <= 0 {
		return fmt.Errorf("EMBEDDING_CACHE_MAX_ENTRIES must be positive, got %d", c.Scoring.CacheMaxEntries)
	}
	return nil
}

func intEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolEnv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
