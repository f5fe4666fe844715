// Package config loads service settings: defaults in code, then an optional
// YAML file named by PARCELGATE_CONFIG, then environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"parcelgate/internal/actdoc/storage"
	"parcelgate/internal/cadastre"
	"parcelgate/internal/zoning"
)

// FileEnv names the YAML config file.
const FileEnv = "PARCELGATE_CONFIG"

// Config is the full service configuration.
type Config struct {
	Server      Server         `yaml:"server"`
	Log         Log            `yaml:"log"`
	Upstream    Upstream       `yaml:"upstream"`
	Diagnostics Diagnostics    `yaml:"diagnostics"`
	Storage     storage.Config `yaml:"storage"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Upstream holds service endpoints and per-call deadlines.
type Upstream struct {
	ULDKURL            string        `yaml:"uldk_url"`
	LandUseURL         string        `yaml:"land_use_url"`
	ZoningURL          string        `yaml:"zoning_url"`
	FeaturePageURL     string        `yaml:"feature_page_url"`
	ULDKTimeout        time.Duration `yaml:"uldk_timeout"`
	WMSTimeout         time.Duration `yaml:"wms_timeout"`
	FeaturePageTimeout time.Duration `yaml:"feature_page_timeout"`
	ActResolveTimeout  time.Duration `yaml:"act_resolve_timeout"`
	ActDownloadTimeout time.Duration `yaml:"act_download_timeout"`
	FanOut             int           `yaml:"fan_out"`
	BreakerThreshold   int           `yaml:"breaker_threshold"`
	BreakerCooldown    time.Duration `yaml:"breaker_cooldown"`
}

// Diagnostics selects where unresolved zoning records go.
type Diagnostics struct {
	Backend        string   `yaml:"backend"`
	MemoryCapacity int      `yaml:"memory_capacity"`
	PostgresDSN    string   `yaml:"postgres_dsn"`
	KafkaBrokers   []string `yaml:"kafka_brokers"`
	KafkaTopic     string   `yaml:"kafka_topic"`
}

// Diagnostics backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendKafka    = "kafka"
	BackendNone     = "none"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{Addr: ":8080", ShutdownTimeout: 10 * time.Second, WriteTimeout: 2 * time.Minute},
		Log:    Log{Level: "info", Format: "text"},
		Upstream: Upstream{
			ULDKURL:            cadastre.DefaultBaseURL,
			LandUseURL:         zoning.DefaultLandUseURL,
			ZoningURL:          zoning.DefaultZoningURL,
			FeaturePageURL:     zoning.DefaultFeaturePageURL,
			ULDKTimeout:        15 * time.Second,
			WMSTimeout:         15 * time.Second,
			FeaturePageTimeout: 10 * time.Second,
			ActResolveTimeout:  20 * time.Second,
			ActDownloadTimeout: 30 * time.Second,
			FanOut:             6,
			BreakerThreshold:   5,
			BreakerCooldown:    30 * time.Second,
		},
		Diagnostics: Diagnostics{Backend: BackendMemory, MemoryCapacity: 500},
		Storage:     storage.Config{Type: storage.TypeLocal, LocalPath: "./storage/acts"},
	}
}

// FromEnv builds a config from defaults and environment variables only.
func FromEnv() Config {
	cfg := Default()
	cfg.applyEnvOverrides()
	return cfg
}

// Load layers the YAML file named by PARCELGATE_CONFIG, when set, between
// the defaults and the environment.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv(FileEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Server.Addr, "PARCELGATE_ADDR")
	setDuration(&c.Server.WriteTimeout, "HTTP_WRITE_TIMEOUT")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	setString(&c.Upstream.ULDKURL, "ULDK_URL")
	setString(&c.Upstream.LandUseURL, "KIUG_URL")
	setString(&c.Upstream.ZoningURL, "KIMPZP_URL")
	setString(&c.Upstream.FeaturePageURL, "EMAPA_PAGE_URL")
	setDuration(&c.Upstream.ULDKTimeout, "ULDK_TIMEOUT")
	setDuration(&c.Upstream.WMSTimeout, "WMS_TIMEOUT")
	setDuration(&c.Upstream.FeaturePageTimeout, "FEATURE_PAGE_TIMEOUT")
	setDuration(&c.Upstream.ActResolveTimeout, "ACT_RESOLVE_TIMEOUT")
	setDuration(&c.Upstream.ActDownloadTimeout, "ACT_DOWNLOAD_TIMEOUT")
	if v, err := strconv.Atoi(os.Getenv("FEATURE_FAN_OUT")); err == nil && v > 0 {
		c.Upstream.FanOut = v
	}
	if v, err := strconv.Atoi(os.Getenv("UPSTREAM_BREAKER_THRESHOLD")); err == nil && v >= 0 {
		c.Upstream.BreakerThreshold = v
	}
	setDuration(&c.Upstream.BreakerCooldown, "UPSTREAM_BREAKER_COOLDOWN")

	setString(&c.Diagnostics.Backend, "DIAGNOSTICS_BACKEND")
	setString(&c.Diagnostics.PostgresDSN, "DATABASE_URL")
	setString(&c.Diagnostics.KafkaTopic, "KAFKA_TOPIC")
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Diagnostics.KafkaBrokers = splitList(v)
	}

	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		c.Storage.Type = storage.Type(v)
	}
	setString(&c.Storage.LocalPath, "STORAGE_LOCAL_PATH")
	setString(&c.Storage.S3Bucket, "AWS_S3_BUCKET")
	setString(&c.Storage.S3Region, "AWS_REGION")
	setString(&c.Storage.S3Endpoint, "AWS_S3_ENDPOINT")
	setString(&c.Storage.PublicBaseURL, "STORAGE_PUBLIC_URL")
	setString(&c.Storage.AWSAccessKey, "AWS_ACCESS_KEY_ID")
	setString(&c.Storage.AWSSecretKey, "AWS_SECRET_ACCESS_KEY")
}

// Validate checks the backend selections.
func (c Config) Validate() error {
	switch c.Diagnostics.Backend {
	case BackendMemory, BackendNone:
	case BackendPostgres:
		if c.Diagnostics.PostgresDSN == "" {
			return fmt.Errorf("diagnostics backend postgres requires DATABASE_URL")
		}
	case BackendKafka:
		if len(c.Diagnostics.KafkaBrokers) == 0 {
			return fmt.Errorf("diagnostics backend kafka requires KAFKA_BROKERS")
		}
	default:
		return fmt.Errorf("invalid diagnostics backend: %s", c.Diagnostics.Backend)
	}
	switch c.Storage.Type {
	case storage.TypeLocal, storage.TypeS3:
	default:
		return fmt.Errorf("invalid storage type: %s", c.Storage.Type)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		*dst = d
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
