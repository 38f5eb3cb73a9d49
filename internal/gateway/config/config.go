package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderFake       = "fake"
)

// EnvProduction is the APP_ENV value that hides debug routes.
const EnvProduction = "production"

const defaultAllowedOrigins = "http://localhost:3000,http://localhost:3001,http://127.0.0.1:3000"

type Config struct {
	Port           string
	Env            string
	AllowedOrigins []string
	LLM            LLMConfig
	Archive        ArchiveConfig
	LedgerDSN      string
}

type LLMConfig struct {
	Provider   string
	MaxRetries int
	Backoff    time.Duration

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string
	OpenRouterSite    string
	OpenRouterTitle   string

	GeminiAPIKey string
	GeminiModel  string
}

type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ConfigurationError is a missing or malformed setting that prevents startup.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8000", "server port")
	flag.Parse()

	return FromEnv(*port)
}

// FromEnv builds the config from environment variables. PORT overrides port.
func FromEnv(port string) (*Config, error) {
	if envPort := strings.TrimSpace(os.Getenv("PORT")); envPort != "" {
		port = envPort
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	env := firstNonEmpty(strings.TrimSpace(os.Getenv("APP_ENV")), "local")

	llm, err := loadLLMConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           port,
		Env:            env,
		AllowedOrigins: splitList(firstNonEmpty(os.Getenv("ALLOWED_ORIGINS"), defaultAllowedOrigins)),
		LLM:            llm,
		Archive:        loadArchiveConfig(),
		LedgerDSN:      strings.TrimSpace(os.Getenv("LEDGER_PG_DSN")),
	}, nil
}

func loadLLMConfig() (LLMConfig, error) {
	cfg := LLMConfig{
		Provider:          strings.ToLower(firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_PROVIDER")), ProviderOpenRouter)),
		MaxRetries:        3,
		Backoff:           time.Second,
		OpenRouterAPIKey:  strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterBaseURL: strings.TrimSpace(os.Getenv("OPENROUTER_BASE_URL")),
		OpenRouterModel:   strings.TrimSpace(os.Getenv("OPENROUTER_MODEL")),
		OpenRouterSite:    firstNonEmpty(strings.TrimSpace(os.Getenv("OPENROUTER_SITE")), "http://localhost:3000"),
		OpenRouterTitle:   firstNonEmpty(strings.TrimSpace(os.Getenv("OPENROUTER_TITLE")), "Virtual Infrastructure Lab"),
		GeminiAPIKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:       strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
	}

	if raw := strings.TrimSpace(os.Getenv("LLM_MAX_RETRIES")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return LLMConfig{}, &ConfigurationError{Key: "LLM_MAX_RETRIES", Reason: "must be a positive integer"}
		}
		cfg.MaxRetries = n
	}
	if raw := strings.TrimSpace(os.Getenv("LLM_RETRY_BACKOFF")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return LLMConfig{}, &ConfigurationError{Key: "LLM_RETRY_BACKOFF", Reason: "must be a non-negative duration"}
		}
		cfg.Backoff = d
	}

	switch cfg.Provider {
	case ProviderOpenRouter:
		if cfg.OpenRouterAPIKey == "" {
			return LLMConfig{}, &ConfigurationError{Key: "OPENROUTER_API_KEY", Reason: "not configured"}
		}
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return LLMConfig{}, &ConfigurationError{Key: "GEMINI_API_KEY", Reason: "not configured"}
		}
	case ProviderFake:
	default:
		return LLMConfig{}, &ConfigurationError{Key: "LLM_PROVIDER", Reason: fmt.Sprintf("unknown provider %q", cfg.Provider)}
	}
	return cfg, nil
}

func loadArchiveConfig() ArchiveConfig {
	endpoint := strings.TrimSpace(os.Getenv("ARCHIVE_S3_ENDPOINT"))
	return ArchiveConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_BUCKET")), "infralab-proposals"),
		UseSSL:    resolveArchiveUseSSL(),
	}
}

func resolveArchiveUseSSL() bool {
	raw := strings.TrimSpace(os.Getenv("ARCHIVE_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
