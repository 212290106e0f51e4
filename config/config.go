package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Resource layout
	ResourceDir string
	PresetFile  string
	SamplesDir  string

	// Server
	Port int

	LogLevel string // debug, info, warn, error

	S3 S3Config
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether enough is set to build an S3 target.
func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Load reads .env (if present) and the environment. resourceDir overrides
// SAMPLESET_RESOURCE_DIR when non-empty. The only error is failing to
// resolve the working directory when no resource dir is configured.
func Load(resourceDir string) (Config, error) {
	_ = godotenv.Load()

	root := firstNonEmpty(resourceDir, envStr("SAMPLESET_RESOURCE_DIR", ""))
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("resolve working directory: %w", err)
		}
		root = filepath.Join(cwd, "res")
	}

	return Config{
		ResourceDir: root,
		PresetFile:  envStr("SAMPLESET_PRESET_FILE", filepath.Join(root, "presets.json")),
		SamplesDir:  envStr("SAMPLESET_SAMPLES_DIR", filepath.Join(root, "samples")),

		Port:     envInt("SAMPLESET_PORT", 8080),
		LogLevel: strings.ToLower(envStr("SAMPLESET_LOG_LEVEL", "info")),

		S3: S3Config{
			Endpoint:  envStr("SAMPLESET_S3_ENDPOINT", ""),
			Region:    envStr("SAMPLESET_S3_REGION", "us-east-1"),
			AccessKey: envStr("SAMPLESET_S3_ACCESS_KEY", ""),
			SecretKey: envStr("SAMPLESET_S3_SECRET_KEY", ""),
			Bucket:    envStr("SAMPLESET_S3_BUCKET", ""),
			UseSSL:    envBool("SAMPLESET_S3_USE_SSL", true),
		},
	}, nil
}

func envStr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
