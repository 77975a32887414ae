package app

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/staffing-graph-backend/internal/platform/envutil"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
)

type Config struct {
	HTTPAddr       string
	ServiceName    string
	Environment    string
	Version        string
	AdminJWTSecret string
	MatchCacheTTL  time.Duration
	BulkWorkers    int
}

// fileConfig is the optional CONFIG_FILE yaml shape. Environment variables
// override anything set here.
type fileConfig struct {
	HTTPAddr      string `yaml:"http_addr"`
	ServiceName   string `yaml:"service_name"`
	Environment   string `yaml:"environment"`
	Version       string `yaml:"version"`
	MatchCacheTTL string `yaml:"match_cache_ttl"`
	BulkWorkers   int    `yaml:"bulk_workers"`
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		HTTPAddr:      ":8080",
		ServiceName:   "staffing-graph-backend",
		Environment:   "development",
		Version:       "dev",
		MatchCacheTTL: time.Minute,
		BulkWorkers:   4,
	}

	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn("config file unreadable (continuing with defaults)", "path", path, "error", err)
		} else {
			var fc fileConfig
			if err := yaml.Unmarshal(raw, &fc); err != nil {
				log.Warn("config file parse failed (continuing with defaults)", "path", path, "error", err)
			} else {
				applyFileConfig(&cfg, fc)
				log.Info("Loaded config file", "path", path)
			}
		}
	}

	cfg.HTTPAddr = envutil.String("HTTP_ADDR", cfg.HTTPAddr)
	cfg.ServiceName = envutil.String("SERVICE_NAME", cfg.ServiceName)
	cfg.Environment = envutil.String("ENVIRONMENT", cfg.Environment)
	cfg.Version = envutil.String("SERVICE_VERSION", cfg.Version)
	cfg.AdminJWTSecret = envutil.String("ADMIN_JWT_SECRET", "")
	cfg.MatchCacheTTL = envutil.Duration("MATCH_CACHE_TTL", cfg.MatchCacheTTL)
	cfg.BulkWorkers = envutil.Int("BULK_INGEST_WORKERS", cfg.BulkWorkers)

	log.Info("Loaded configuration",
		"http_addr", cfg.HTTPAddr,
		"environment", cfg.Environment,
		"bulk_workers", cfg.BulkWorkers)
	return cfg
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.HTTPAddr != "" {
		cfg.HTTPAddr = fc.HTTPAddr
	}
	if fc.ServiceName != "" {
		cfg.ServiceName = fc.ServiceName
	}
	if fc.Environment != "" {
		cfg.Environment = fc.Environment
	}
	if fc.Version != "" {
		cfg.Version = fc.Version
	}
	if fc.MatchCacheTTL != "" {
		if d, err := time.ParseDuration(fc.MatchCacheTTL); err == nil && d > 0 {
			cfg.MatchCacheTTL = d
		}
	}
	if fc.BulkWorkers > 0 {
		cfg.BulkWorkers = fc.BulkWorkers
	}
}
