package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the bookcheck tools.
type Config struct {
	Citation    CitationConfig    `yaml:"citation"`
	Plagiarism  PlagiarismConfig  `yaml:"plagiarism"`
	Readability ReadabilityConfig `yaml:"readability"`
	Batch       BatchConfig       `yaml:"batch"`
	Cache       CacheConfig       `yaml:"cache"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// CitationConfig selects which files the citation validator scans.
type CitationConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// PlagiarismConfig holds similarity detection configuration.
type PlagiarismConfig struct {
	Includes       []string `yaml:"includes"`
	Excludes       []string `yaml:"excludes"`
	SourceIncludes []string `yaml:"source_includes"`
	SourcesDir     string   `yaml:"sources_dir"`
	Threshold      float64  `yaml:"threshold"`
	NGramSize      int      `yaml:"ngram_size"`
	ExtraStopWords []string `yaml:"extra_stop_words"`
}

// ReadabilityConfig holds the target grade range.
type ReadabilityConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	MinGrade float64  `yaml:"min_grade"`
	MaxGrade float64  `yaml:"max_grade"`
}

// BatchConfig controls how file batches are processed.
type BatchConfig struct {
	Workers  int  `yaml:"workers"` // 0 = number of CPUs
	Progress bool `yaml:"progress"`
}

// CacheConfig controls the on-disk corpus cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

var defaultExcludes = []string{"**/node_modules/**", "**/.git/**", "**/build/**", "**/.docusaurus/**"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Citation: CitationConfig{
			Includes: []string{"**/*.md"},
			Excludes: defaultExcludes,
		},
		Plagiarism: PlagiarismConfig{
			Includes:       []string{"**/*.md", "**/*.txt"},
			Excludes:       defaultExcludes,
			SourceIncludes: []string{"**/*.txt", "**/*.pdf"},
			SourcesDir:     "./references",
			Threshold:      0.3,
			NGramSize:      3,
		},
		Readability: ReadabilityConfig{
			Includes: []string{"**/*.md"},
			Excludes: defaultExcludes,
			MinGrade: 6,
			MaxGrade: 12,
		},
		Batch: BatchConfig{
			Workers:  0,
			Progress: false,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".bookcheck",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, applyEnv(cfg) // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, applyEnv(cfg)
}

// LoadFromDir loads configuration from a directory (looks for bookcheck.yaml).
// A .env file in dir is loaded first so its values can override the YAML.
func LoadFromDir(dir string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	path := filepath.Join(dir, "bookcheck.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".bookcheck", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	cfg := DefaultConfig()
	return cfg, applyEnv(cfg)
}

// applyEnv overrides file values with BOOKCHECK_* environment variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("BOOKCHECK_SOURCES_DIR"); v != "" {
		cfg.Plagiarism.SourcesDir = v
	}
	if v := os.Getenv("BOOKCHECK_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid BOOKCHECK_THRESHOLD %q: %w", v, err)
		}
		cfg.Plagiarism.Threshold = f
	}
	if v := os.Getenv("BOOKCHECK_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BOOKCHECK_WORKERS %q: %w", v, err)
		}
		cfg.Batch.Workers = n
	}
	if v := os.Getenv("BOOKCHECK_CACHE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid BOOKCHECK_CACHE %q: %w", v, err)
		}
		cfg.Cache.Enabled = b
	}
	if v := os.Getenv("BOOKCHECK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	return nil
}

// Validate checks the configuration for values the analyzers cannot use.
func (c *Config) Validate() error {
	if c.Plagiarism.Threshold < 0 || c.Plagiarism.Threshold > 1 {
		return fmt.Errorf("plagiarism.threshold must be within [0,1], got %g", c.Plagiarism.Threshold)
	}
	if c.Plagiarism.NGramSize < 1 {
		return fmt.Errorf("plagiarism.ngram_size must be at least 1, got %d", c.Plagiarism.NGramSize)
	}
	if c.Readability.MinGrade > c.Readability.MaxGrade {
		return fmt.Errorf("readability.min_grade (%g) exceeds max_grade (%g)", c.Readability.MinGrade, c.Readability.MaxGrade)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers)
	}
	return nil
}

// CorpusDBPath returns the path to the corpus cache database.
func CorpusDBPath(dir string, cfg *Config) string {
	cacheDir := cfg.Cache.Dir
	if !filepath.IsAbs(cacheDir) {
		cacheDir = filepath.Join(dir, cacheDir)
	}
	return filepath.Join(cacheDir, "corpus.db")
}

// EnsureCacheDir ensures the directory holding the corpus cache exists.
func EnsureCacheDir(dir string, cfg *Config) error {
	return os.MkdirAll(filepath.Dir(CorpusDBPath(dir, cfg)), 0755)
}
