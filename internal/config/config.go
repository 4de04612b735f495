package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed matching.yaml
var matchingYAML []byte

type Config struct {
	Upload    UploadConfig
	Admin     AdminConfig
	Embedding EmbeddingConfig
	Matching  MatchingConfig
	Database  DatabaseConfig
}

type UploadConfig struct {
	Dir string // root directory for event photo storage (default "uploads")
}

type AdminConfig struct {
	Username string
	Password string
}

type EmbeddingConfig struct {
	URL string // defaults to http://localhost:8000
	Dim int    // expected descriptor dimension
}

type MatchingConfig struct {
	Threshold    float64 `yaml:"threshold"`
	Dim          int     `yaml:"dim"`
	MaxImageSize int     `yaml:"max_image_size"`
}

type matchingFile struct {
	Matching MatchingConfig `yaml:"matching"`
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL (optional; filesystem store used when empty)
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a float in (0, 1].
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f <= 1 {
		return f
	}
	return defaultVal
}

func envDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() *Config {
	var mf matchingFile
	if err := yaml.Unmarshal(matchingYAML, &mf); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded matching.yaml: " + err.Error())
	}
	matching := mf.Matching

	matching.Threshold = envFloat("MATCH_THRESHOLD", matching.Threshold)
	matching.Dim = envInt("EMBEDDING_DIM", matching.Dim)

	return &Config{
		Upload: UploadConfig{
			Dir: envDefault("UPLOAD_DIR", "uploads"),
		},
		Admin: AdminConfig{
			Username: envDefault("ADMIN_USERNAME", "admin"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Embedding: EmbeddingConfig{
			URL: os.Getenv("EMBEDDING_URL"),
			Dim: matching.Dim,
		},
		Matching: matching,
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
	}
}
