// ABOUTME: Centralized configuration for the tubescribe CLI and MCP server
// ABOUTME: Defaults, then an optional YAML file, then environment variables, then validation
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Providers for the text rewriter
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Chunk store backends
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendCharm  = "charm"
)

// Translation modes
const (
	ModeSegments = "segments"
	ModeContext  = "context"
)

// Config holds all configuration for tubescribe
type Config struct {
	// LLM settings
	Provider       string        `yaml:"provider"`
	OpenAIKey      string        `yaml:"openai_api_key"`
	GeminiKeys     []string      `yaml:"gemini_api_keys"`
	ChatModel      string        `yaml:"chat_model"`
	EmbeddingModel string        `yaml:"embedding_model"`
	Temperature    float64       `yaml:"temperature"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`

	// Chunking settings, in seconds
	GroupSpan            float64 `yaml:"group_span"`
	TranslationBatchSpan float64 `yaml:"translation_batch_span"`
	SummaryGroupSpan     float64 `yaml:"summary_group_span"`
	SearchGroupSpan      float64 `yaml:"search_group_span"`
	TranslationWorkers   int     `yaml:"translation_workers"`
	TranslationMode      string  `yaml:"translation_mode"`

	// Storage settings
	StoreBackend string `yaml:"store_backend"`
	DBPath       string `yaml:"db_path"`
	RedisAddr    string `yaml:"redis_addr"`
	CharmHost    string `yaml:"charm_host"`
	CharmDBName  string `yaml:"charm_db"`
	AutoSync     bool   `yaml:"charm_auto_sync"`

	// Paths
	TranscriptDir string `yaml:"transcript_dir"`
	InboxDir      string `yaml:"inbox_dir"`

	LogLevel string `yaml:"log_level"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Provider:             ProviderOpenAI,
		EmbeddingModel:       "text-embedding-3-small",
		Temperature:          0.2,
		Timeout:              60 * time.Second,
		MaxRetries:           3,
		RetryDelay:           2 * time.Second,
		GroupSpan:            60,
		TranslationBatchSpan: 180,
		SummaryGroupSpan:     180,
		SearchGroupSpan:      120,
		TranslationWorkers:   1,
		TranslationMode:      ModeSegments,
		StoreBackend:         BackendSQLite,
		RedisAddr:            "localhost:6379",
		CharmHost:            "cloud.charm.sh",
		CharmDBName:          "tubescribe",
		AutoSync:             true,
		TranscriptDir:        "transcripts",
		InboxDir:             "inbox",
		LogLevel:             "info",
	}
}

// Load builds the configuration. TUBESCRIBE_CONFIG may name a YAML file that
// overlays the defaults; environment variables win over both.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("TUBESCRIBE_CONFIG"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.resolveModel()

	return cfg, cfg.Validate()
}

// LoadFile reads a YAML file over the defaults without consulting the environment
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()
	if err := cfg.overlayFile(path); err != nil {
		return nil, err
	}
	cfg.resolveModel()
	return cfg, cfg.Validate()
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Provider = strings.ToLower(getEnv("TUBESCRIBE_PROVIDER", c.Provider))
	c.OpenAIKey = getEnv("OPENAI_API_KEY", c.OpenAIKey)
	c.GeminiKeys = getEnvList("GEMINI_API_KEYS", c.GeminiKeys)
	c.ChatModel = getEnv("TUBESCRIBE_CHAT_MODEL", c.ChatModel)
	c.EmbeddingModel = getEnv("TUBESCRIBE_EMBEDDING_MODEL", c.EmbeddingModel)
	c.Temperature = getEnvFloat("TUBESCRIBE_TEMPERATURE", c.Temperature)
	c.Timeout = getEnvDuration("LLM_TIMEOUT", c.Timeout)
	c.MaxRetries = getEnvInt("LLM_MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = getEnvDuration("LLM_RETRY_DELAY", c.RetryDelay)

	c.GroupSpan = getEnvFloat("GROUP_SPAN", c.GroupSpan)
	c.TranslationBatchSpan = getEnvFloat("TRANSLATION_BATCH_SPAN", c.TranslationBatchSpan)
	c.SummaryGroupSpan = getEnvFloat("SUMMARY_GROUP_SPAN", c.SummaryGroupSpan)
	c.SearchGroupSpan = getEnvFloat("SEARCH_GROUP_SPAN", c.SearchGroupSpan)
	c.TranslationWorkers = getEnvInt("TRANSLATION_WORKERS", c.TranslationWorkers)
	c.TranslationMode = strings.ToLower(getEnv("TRANSLATION_MODE", c.TranslationMode))

	c.StoreBackend = strings.ToLower(getEnv("STORE_BACKEND", c.StoreBackend))
	c.DBPath = getEnv("TUBESCRIBE_DB", c.DBPath)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.CharmHost = getEnv("CHARM_HOST", c.CharmHost)
	c.CharmDBName = getEnv("CHARM_DB", c.CharmDBName)
	c.AutoSync = getEnvBool("CHARM_AUTO_SYNC", c.AutoSync)

	c.TranscriptDir = getEnv("TRANSCRIPT_DIR", c.TranscriptDir)
	c.InboxDir = getEnv("INBOX_DIR", c.InboxDir)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// resolveModel picks the provider's default chat model when none was configured
func (c *Config) resolveModel() {
	if c.ChatModel != "" {
		return
	}
	switch c.Provider {
	case ProviderGemini:
		c.ChatModel = "gemini-2.5-flash"
	default:
		c.ChatModel = "gpt-4o-mini"
	}
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("TUBESCRIBE_PROVIDER must be openai or gemini, got %q", c.Provider)
	}
	switch c.StoreBackend {
	case BackendSQLite, BackendRedis, BackendCharm:
	default:
		return fmt.Errorf("STORE_BACKEND must be sqlite, redis or charm, got %q", c.StoreBackend)
	}
	switch c.TranslationMode {
	case ModeSegments, ModeContext:
	default:
		return fmt.Errorf("TRANSLATION_MODE must be segments or context, got %q", c.TranslationMode)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("LLM_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %v", c.Timeout)
	}
	if c.TranslationWorkers < 1 {
		return fmt.Errorf("TRANSLATION_WORKERS must be at least 1, got %d", c.TranslationWorkers)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("TUBESCRIBE_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}

	spans := map[string]float64{
		"GROUP_SPAN":             c.GroupSpan,
		"TRANSLATION_BATCH_SPAN": c.TranslationBatchSpan,
		"SUMMARY_GROUP_SPAN":     c.SummaryGroupSpan,
		"SEARCH_GROUP_SPAN":      c.SearchGroupSpan,
	}
	for name, v := range spans {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, v)
		}
	}
	return nil
}

// APIKey returns the credential for the configured provider, or "" if unset
func (c *Config) APIKey() string {
	if c.Provider == ProviderGemini {
		if len(c.GeminiKeys) > 0 {
			return c.GeminiKeys[0]
		}
		return ""
	}
	return c.OpenAIKey
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
