package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"unit-translator/internal/filewalker"
	"unit-translator/internal/glossary"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

type Config struct {
	GlossaryPaths   []string `toml:"glossary_paths"`
	Extensions      []string `toml:"extensions"`
	ExcludeDirs     []string `toml:"exclude_dirs"`
	ExcludeFiles    []string `toml:"exclude_files"`
	Direction       string   `toml:"direction"`
	WorkerCount     int      `toml:"worker_count"`
	StrictConflicts bool     `toml:"strict_conflicts"`
	ReportDir       string   `toml:"report_dir"`
	DatabaseURL     string   `toml:"database_url"`
	DBBatchSize     int      `toml:"db_batch_size"`
	Neo4jURI        string   `toml:"neo4j_uri"`
	Neo4jUser       string   `toml:"neo4j_user"`
	Neo4jPassword   string   `toml:"neo4j_password"`
	LogLevel        string   `toml:"log_level"`
}

// Load reads .env and the environment, then overlays the TOML file at path
// (or $TRANSLATOR_CONFIG when path is empty).
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		GlossaryPaths:   getEnvList("GLOSSARY_PATHS", glossary.DefaultCandidates),
		Extensions:      getEnvList("EXTENSIONS", filewalker.DefaultExtensions),
		ExcludeDirs:     getEnvList("EXCLUDE_DIRS", filewalker.DefaultExcludeDirs),
		ExcludeFiles:    getEnvList("EXCLUDE_FILES", nil),
		Direction:       getEnv("DIRECTION", "forward"),
		WorkerCount:     getEnvInt("WORKER_COUNT", 1),
		StrictConflicts: getEnvBool("STRICT_CONFLICTS", false),
		ReportDir:       getEnv("REPORT_DIR", "scripts/数据集"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		DBBatchSize:     getEnvInt("DB_BATCH_SIZE", 500),
		Neo4jURI:        getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:       getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:   getEnv("NEO4J_PASSWORD", "password"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if path == "" {
		path = os.Getenv("TRANSLATOR_CONFIG")
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// WalkerOptions converts the file-selection settings.
func (c *Config) WalkerOptions() filewalker.Options {
	return filewalker.Options{
		Extensions:   c.Extensions,
		ExcludeDirs:  c.ExcludeDirs,
		ExcludeFiles: c.ExcludeFiles,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getEnvList splits a comma-separated variable, dropping empty items.
func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
