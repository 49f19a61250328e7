package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Role-deriver strategies.
const (
	RoleStrategyStatic     = "static"
	RoleStrategyPerplexity = "perplexity"
	RoleStrategyGemini     = "gemini"
)

// Ranking strategies.
const (
	RankStrategyClassifier = "classifier"
	RankStrategyLiveSearch = "livesearch"
	RankStrategyNone       = "none"
)

// Config holds application configuration. It is constructed once at startup
// and passed by reference into the components that need it; business logic
// never reads the environment directly.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	WebDir          string

	RoleStrategy string
	RankStrategy string

	PerplexityAPIKey string
	PerplexityModel  string
	GeminiAPIKey     string
	GeminiModel      string

	HuggingFaceToken string
	ClassifierURL    string

	TheirStackAPIKey string
	SearchURL        string
	SearchCountry    string
	SearchLimit      int
	SearchMaxAgeDays int
	SearchRoleLimit  int

	MinRoles int
	MaxRoles int

	HTTPTimeout    time.Duration
	EchoResumeText bool
}

// ConfigError reports a missing or inconsistent configuration value. It is
// raised at startup so a bad credential surfaces before the first request
// rather than as a cryptic upstream call failure.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Load reads configuration from environment variables with sensible defaults.
// A local .env file is loaded best-effort for dev convenience.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load("cmd/.env")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		WebDir:          getEnv("WEB_DIR", "./web"),

		RoleStrategy: normalizeStrategy(getEnv("ROLE_STRATEGY", RoleStrategyStatic)),
		RankStrategy: normalizeRank(getEnv("RANK_STRATEGY", RankStrategyNone)),

		PerplexityAPIKey: os.Getenv("PERPLEXITY_API_KEY"),
		PerplexityModel:  getEnv("PERPLEXITY_MODEL", "sonar-pro"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		HuggingFaceToken: os.Getenv("HUGGINGFACE_API_TOKEN"),
		ClassifierURL:    getEnv("CLASSIFIER_URL", "https://api-inference.huggingface.co/models/facebook/bart-large-mnli"),

		TheirStackAPIKey: os.Getenv("THEIRSTACK_API_KEY"),
		SearchURL:        getEnv("JOB_SEARCH_URL", "https://api.theirstack.com/v1/jobs/search"),
		SearchCountry:    getEnv("JOB_SEARCH_COUNTRY", "IN"),
		SearchLimit:      getEnvInt("JOB_SEARCH_LIMIT", 3),
		SearchMaxAgeDays: getEnvInt("JOB_SEARCH_MAX_AGE_DAYS", 15),
		SearchRoleLimit:  getEnvInt("JOB_SEARCH_ROLE_LIMIT", 2),

		MinRoles: getEnvInt("MIN_ROLES", 12),
		MaxRoles: getEnvInt("MAX_ROLES", 15),

		HTTPTimeout:    time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 60)) * time.Second,
		EchoResumeText: getEnvBool("ECHO_RESUME_TEXT", false),
	}
}

// Validate checks that the selected strategies have their credentials. It
// returns a *ConfigError naming the first missing value.
func (c Config) Validate() error {
	switch c.RoleStrategy {
	case RoleStrategyStatic:
	case RoleStrategyPerplexity:
		if strings.TrimSpace(c.PerplexityAPIKey) == "" {
			return &ConfigError{Field: "PERPLEXITY_API_KEY", Reason: "required when ROLE_STRATEGY=perplexity"}
		}
	case RoleStrategyGemini:
		if strings.TrimSpace(c.GeminiAPIKey) == "" {
			return &ConfigError{Field: "GEMINI_API_KEY", Reason: "required when ROLE_STRATEGY=gemini"}
		}
	default:
		return &ConfigError{Field: "ROLE_STRATEGY", Reason: fmt.Sprintf("unknown strategy %q", c.RoleStrategy)}
	}

	switch c.RankStrategy {
	case RankStrategyNone:
	case RankStrategyClassifier:
		if strings.TrimSpace(c.HuggingFaceToken) == "" {
			return &ConfigError{Field: "HUGGINGFACE_API_TOKEN", Reason: "required when RANK_STRATEGY=classifier"}
		}
	case RankStrategyLiveSearch:
		if strings.TrimSpace(c.TheirStackAPIKey) == "" {
			return &ConfigError{Field: "THEIRSTACK_API_KEY", Reason: "required when RANK_STRATEGY=livesearch"}
		}
	default:
		return &ConfigError{Field: "RANK_STRATEGY", Reason: fmt.Sprintf("unknown strategy %q", c.RankStrategy)}
	}

	if c.MinRoles <= 0 || c.MaxRoles < c.MinRoles {
		return &ConfigError{Field: "MIN_ROLES/MAX_ROLES", Reason: "must satisfy 0 < min <= max"}
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return parsed
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}

func normalizeStrategy(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case RoleStrategyPerplexity:
		return RoleStrategyPerplexity
	case RoleStrategyGemini:
		return RoleStrategyGemini
	default:
		return RoleStrategyStatic
	}
}

func normalizeRank(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case RankStrategyClassifier:
		return RankStrategyClassifier
	case RankStrategyLiveSearch:
		return RankStrategyLiveSearch
	default:
		return RankStrategyNone
	}
}
