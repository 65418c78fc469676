package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type SourceConfig struct {
	Type        string `yaml:"type"` // file | http | s3 | postgres
	Dir         string `yaml:"dir"`
	BaseURL     string `yaml:"base_url"`
	S3Bucket    string `yaml:"s3_bucket"`
	S3Region    string `yaml:"s3_region"`
	S3Prefix    string `yaml:"s3_prefix"`
	DatabaseURL string `yaml:"database_url"`
}

type RedisConfig struct {
	Addr       string `yaml:"addr"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Config struct {
	Port                string       `yaml:"port"`
	LogLevelName        string       `yaml:"log_level"`
	HTTPTimeoutSeconds  int          `yaml:"http_timeout_seconds"`
	FetchConcurrency    int          `yaml:"fetch_concurrency"`
	IndexRefreshMinutes int          `yaml:"index_refresh_minutes"`
	Source              SourceConfig `yaml:"source"`
	Redis               RedisConfig  `yaml:"redis"`
	CORS                CORSConfig   `yaml:"cors"`

	HTTPTimeout  time.Duration `yaml:"-"`
	IndexRefresh time.Duration `yaml:"-"`
	RedisTTL     time.Duration `yaml:"-"`
	LogLevel     slog.Level    `yaml:"-"`
}

// Load reads the optional YAML file at path, then a .env file if present,
// then environment overrides, and fills in defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	_ = godotenv.Load()
	applyEnv(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

// FromEnv is Load without a config file.
func FromEnv() Config {
	cfg, _ := Load("")
	return cfg
}

func applyEnv(cfg *Config) {
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.LogLevelName = envOr("LOG_LEVEL", cfg.LogLevelName)
	cfg.HTTPTimeoutSeconds = envInt("HTTP_TIMEOUT_SECONDS", cfg.HTTPTimeoutSeconds)
	cfg.FetchConcurrency = envInt("FETCH_CONCURRENCY", cfg.FetchConcurrency)
	cfg.IndexRefreshMinutes = envInt("INDEX_REFRESH_MINUTES", cfg.IndexRefreshMinutes)
	cfg.Source.Type = envOr("SOURCE_TYPE", cfg.Source.Type)
	cfg.Source.Dir = envOr("SOURCE_DIR", cfg.Source.Dir)
	cfg.Source.BaseURL = envOr("SOURCE_BASE_URL", cfg.Source.BaseURL)
	cfg.Source.S3Bucket = envOr("SOURCE_S3_BUCKET", cfg.Source.S3Bucket)
	cfg.Source.S3Region = envOr("SOURCE_S3_REGION", cfg.Source.S3Region)
	cfg.Source.S3Prefix = envOr("SOURCE_S3_PREFIX", cfg.Source.S3Prefix)
	cfg.Source.DatabaseURL = envOr("DATABASE_URL", cfg.Source.DatabaseURL)
	cfg.Redis.Addr = envOr("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.TTLMinutes = envInt("REDIS_TTL_MINUTES", cfg.Redis.TTLMinutes)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitCSV(v)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = 15
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = 4
	}
	if cfg.IndexRefreshMinutes <= 0 {
		cfg.IndexRefreshMinutes = 15
	}
	if cfg.Source.Type == "" {
		cfg.Source.Type = "file"
	}
	if cfg.Source.Dir == "" {
		cfg.Source.Dir = "./data"
	}
	if cfg.Source.S3Region == "" {
		cfg.Source.S3Region = "eu-central-1"
	}
	if cfg.Redis.TTLMinutes <= 0 {
		cfg.Redis.TTLMinutes = 24 * 60
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}

	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	cfg.IndexRefresh = time.Duration(cfg.IndexRefreshMinutes) * time.Minute
	cfg.RedisTTL = time.Duration(cfg.Redis.TTLMinutes) * time.Minute
	cfg.LogLevel = slog.LevelInfo
	if strings.EqualFold(cfg.LogLevelName, "debug") {
		cfg.LogLevel = slog.LevelDebug
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
